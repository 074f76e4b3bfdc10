// Package tracker records daily habit and smoking entries and folds a window
// of them into gap-filled rows and statistics.
package tracker

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"lifetracker/internal/apperr"
	"lifetracker/internal/model"
	"lifetracker/internal/repository"
	"lifetracker/internal/stats"
	"lifetracker/internal/validate"
	"lifetracker/pkg/metrics"
)

const (
	maxDays              = 365
	defaultOlderThanDays = 30
	defaultKeepLastDays  = 7
)

var (
	errHabitNotFound  = apperr.NotFound("Habit not found")
	errHabitsNotOwned = apperr.NotFound("Some habits not found or do not belong to you")
)

var habitTrackSchema = validate.Schema{Entity: "Habit record", Missing: "Habit ID and date are required", Fields: []validate.Field{
	{Name: "habitId", Label: "Habit id", Kind: validate.String, Required: true, MinLen: 1},
	{Name: "date", Label: "Date", Kind: validate.Date, Required: true},
	{Name: "completed", Label: "Completed", Kind: validate.Bool, Default: false},
	{Name: "count", Label: "Count", Kind: validate.Integer, Min: validate.Float(0), Default: 0},
	{Name: "notes", Label: "Notes", Kind: validate.String, Default: ""},
}}

var smokingTrackSchema = validate.Schema{Entity: "Smoking record", Fields: []validate.Field{
	{Name: "date", Label: "Date", Kind: validate.Date, Required: true},
	{Name: "smokeFree", Label: "Smoke free", Kind: validate.Bool, Required: true, Message: "smokeFree must be a boolean"},
	{Name: "cigarettesSmoked", Label: "Cigarettes smoked", Kind: validate.Integer, Min: validate.Float(0), Max: validate.Float(100), Default: 0,
		Message: "cigarettesSmoked must be a number between 0 and 100"},
	{Name: "notes", Label: "Notes", Kind: validate.String, Default: ""},
}}

type Options struct {
	DefaultDays int
	SmokingGap  stats.SmokingGapPolicy
}

type Service struct {
	habits  repository.HabitStore
	records repository.HabitRecordStore
	smoking repository.SmokingStore
	opts    Options
	now     func() time.Time
	logger  *zap.Logger
}

func NewService(habits repository.HabitStore, records repository.HabitRecordStore, smoking repository.SmokingStore, opts Options, logger *zap.Logger) *Service {
	if opts.DefaultDays <= 0 {
		opts.DefaultDays = 30
	}
	if opts.SmokingGap.Name == "" {
		opts.SmokingGap = stats.AssumeSmoking
	}
	return &Service{
		habits:  habits,
		records: records,
		smoking: smoking,
		opts:    opts,
		now:     func() time.Time { return time.Now().UTC() },
		logger:  logger,
	}
}

// WithClock replaces the time source.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) days(n int) int {
	switch {
	case n <= 0:
		return s.opts.DefaultDays
	case n > maxDays:
		return maxDays
	}
	return n
}

// ActiveHabits lists the user's active habits, newest first.
func (s *Service) ActiveHabits(ctx context.Context, userID string) ([]model.Habit, error) {
	out, err := s.habits.ListActive(ctx, userID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return out, nil
}

type DeleteResult struct {
	Message                string   `json:"message"`
	DeletedHabit           string   `json:"deletedHabit,omitempty"`
	DeactivatedHabit       string   `json:"deactivatedHabit,omitempty"`
	DeletedHabits          []string `json:"deletedHabits,omitempty"`
	DeactivatedHabits      []string `json:"deactivatedHabits,omitempty"`
	DeletedHabitsCount     *int64   `json:"deletedHabitsCount,omitempty"`
	DeactivatedCount       *int64   `json:"deactivatedCount,omitempty"`
	DeletedTrackingRecords *int64   `json:"deletedTrackingRecords,omitempty"`
}

// DeleteHabit deactivates a habit, or with hard removes it and its tracking rows.
func (s *Service) DeleteHabit(ctx context.Context, id, userID string, hard bool) (*DeleteResult, error) {
	h, err := s.habits.Get(ctx, id, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errHabitNotFound
		}
		return nil, apperr.Internal(err)
	}

	if !hard {
		if _, err := s.habits.Deactivate(ctx, userID, []string{id}); err != nil {
			return nil, apperr.Internal(err)
		}
		metrics.IncrementEntityMutation("habit", "deactivate")
		return &DeleteResult{Message: "Habit deactivated successfully", DeactivatedHabit: h.Name}, nil
	}

	_, records, err := s.habits.DeleteWithRecords(ctx, userID, []string{id})
	if err != nil {
		s.logger.Error("Failed to delete habit", zap.String("habit_id", id), zap.Error(err))
		return nil, apperr.Internal(err)
	}
	metrics.IncrementEntityMutation("habit", "delete")
	return &DeleteResult{
		Message:                "Habit and all tracking data deleted permanently",
		DeletedHabit:           h.Name,
		DeletedTrackingRecords: &records,
	}, nil
}

type BulkDeleteRequest struct {
	HabitIDs   []string `json:"habitIds"`
	HardDelete *bool    `json:"hardDelete"`
}

// ownedHabits resolves ids to the user's habits; any unknown id fails the lot.
func (s *Service) ownedHabits(ctx context.Context, userID string, ids []string) ([]model.Habit, []string, error) {
	ids = slices.Clone(ids)
	slices.Sort(ids)
	ids = slices.Compact(ids)
	for _, id := range ids {
		if _, err := uuid.Parse(id); err != nil {
			return nil, nil, errHabitsNotOwned
		}
	}
	habits, err := s.habits.FindOwned(ctx, userID, ids)
	if err != nil {
		return nil, nil, apperr.Internal(err)
	}
	if len(habits) != len(ids) {
		return nil, nil, errHabitsNotOwned
	}
	return habits, ids, nil
}

func names(habits []model.Habit) []string {
	out := make([]string, len(habits))
	for i, h := range habits {
		out[i] = h.Name
	}
	return out
}

// BulkDelete hard deletes by default; HardDelete=false deactivates instead.
func (s *Service) BulkDelete(ctx context.Context, userID string, req BulkDeleteRequest) (*DeleteResult, error) {
	if len(req.HabitIDs) == 0 {
		return nil, apperr.Validation("Habit IDs array is required and must not be empty")
	}
	habits, ids, err := s.ownedHabits(ctx, userID, req.HabitIDs)
	if err != nil {
		return nil, err
	}

	if req.HardDelete != nil && !*req.HardDelete {
		n, err := s.habits.Deactivate(ctx, userID, ids)
		if err != nil {
			return nil, apperr.Internal(err)
		}
		metrics.IncrementEntityMutation("habit", "deactivate")
		return &DeleteResult{
			Message:           "Habits deactivated successfully",
			DeactivatedHabits: names(habits),
			DeactivatedCount:  &n,
		}, nil
	}

	deleted, records, err := s.habits.DeleteWithRecords(ctx, userID, ids)
	if err != nil {
		s.logger.Error("Failed to bulk delete habits", zap.Int("count", len(ids)), zap.Error(err))
		return nil, apperr.Internal(err)
	}
	metrics.IncrementEntityMutation("habit", "delete")
	return &DeleteResult{
		Message:                "Habits and all tracking data deleted permanently",
		DeletedHabits:          names(habits),
		DeletedHabitsCount:     &deleted,
		DeletedTrackingRecords: &records,
	}, nil
}

type CleanupRequest struct {
	HabitIDs      []string `json:"habitIds"`
	OlderThanDays *int     `json:"olderThanDays"`
	KeepLastDays  *int     `json:"keepLastDays"`
}

type CleanupResult struct {
	Message        string `json:"message"`
	CleanedRecords int64  `json:"cleanedRecords"`
	HabitsAffected int    `json:"habitsAffected"`
	CutoffDate     string `json:"cutoffDate,omitempty"`
}

// Cleanup deletes tracking rows older than both retention bounds. An empty
// HabitIDs means every habit of the user.
func (s *Service) Cleanup(ctx context.Context, userID string, req CleanupRequest) (*CleanupResult, error) {
	olderThan, keepLast := defaultOlderThanDays, defaultKeepLastDays
	if req.OlderThanDays != nil {
		olderThan = *req.OlderThanDays
	}
	if req.KeepLastDays != nil {
		keepLast = *req.KeepLastDays
	}
	if olderThan < 0 || keepLast < 0 {
		return nil, apperr.Validation("olderThanDays and keepLastDays must not be negative")
	}

	var ids []string
	if len(req.HabitIDs) > 0 {
		_, owned, err := s.ownedHabits(ctx, userID, req.HabitIDs)
		if err != nil {
			return nil, err
		}
		ids = owned
	} else {
		all, err := s.habits.List(ctx, userID, repository.ListQuery{})
		if err != nil {
			return nil, apperr.Internal(err)
		}
		for _, h := range all {
			ids = append(ids, h.ID)
		}
	}
	if len(ids) == 0 {
		return &CleanupResult{Message: "No habits found to clean up"}, nil
	}

	cutoff := model.TruncateDay(s.now()).AddDate(0, 0, -max(olderThan, keepLast))
	n, err := s.records.DeleteBefore(ctx, userID, ids, cutoff)
	if err != nil {
		s.logger.Error("Failed to clean up habit records", zap.String("user_id", userID), zap.Error(err))
		return nil, apperr.Internal(err)
	}
	s.logger.Info("Habit records cleaned up",
		zap.String("user_id", userID),
		zap.Int64("records", n),
		zap.String("cutoff", cutoff.Format(model.DateLayout)),
	)
	return &CleanupResult{
		Message:        "Old tracking data cleaned up successfully",
		CleanedRecords: n,
		HabitsAffected: len(ids),
		CutoffDate:     cutoff.Format(model.DateLayout),
	}, nil
}

type HabitTracking struct {
	Habits       []model.Habit    `json:"habits"`
	TrackingData []model.HabitDay `json:"trackingData"`
	Statistics   any              `json:"statistics"`
}

// HabitTracking returns a window of days for the active habits, or only
// habitID when given.
func (s *Service) HabitTracking(ctx context.Context, userID string, days int, habitID string) (*HabitTracking, error) {
	habits, err := s.habits.ListActive(ctx, userID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if len(habits) == 0 {
		return &HabitTracking{Habits: []model.Habit{}, TrackingData: []model.HabitDay{}, Statistics: struct{}{}}, nil
	}
	if habitID != "" {
		habits = slices.DeleteFunc(habits, func(h model.Habit) bool { return h.ID != habitID })
		if len(habits) == 0 {
			return nil, errHabitNotFound
		}
	}

	n := s.days(days)
	window := stats.Window(s.now(), n)
	ids := make([]string, len(habits))
	for i, h := range habits {
		ids[i] = h.ID
	}
	records, err := s.records.ListRange(ctx, userID, ids, window[0], window[len(window)-1])
	if err != nil {
		return nil, apperr.Internal(err)
	}

	rows := stats.FillHabits(window, habits, records, stats.NotCompleted)
	return &HabitTracking{
		Habits:       habits,
		TrackingData: rows,
		Statistics:   stats.HabitStats(n, habits, rows),
	}, nil
}

type HabitMark struct {
	HabitID   string `json:"habitId"`
	HabitName string `json:"habitName"`
	Date      string `json:"date"`
	Completed bool   `json:"completed"`
	Count     int    `json:"count"`
	Notes     string `json:"notes"`
	ID        string `json:"id"`
}

// TrackHabit upserts the day's record for an active owned habit. Count is
// zero unless completed.
func (s *Service) TrackHabit(ctx context.Context, userID string, body map[string]any) (*HabitMark, error) {
	v, err := habitTrackSchema.Create(body, s.now())
	if err != nil {
		return nil, apperr.Validation(err.Error())
	}
	habitID := v.String("habitId")
	if _, err := uuid.Parse(habitID); err != nil {
		return nil, errHabitNotFound
	}
	found, err := s.habits.FindOwned(ctx, userID, []string{habitID})
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if len(found) == 0 || !found[0].IsActive {
		return nil, errHabitNotFound
	}

	date, _ := v.Time("date")
	rec := &model.HabitRecord{
		HabitID:   habitID,
		Date:      model.NewDate(date),
		Completed: v.Bool("completed"),
		Notes:     v.String("notes"),
	}
	rec.UserID = userID
	if rec.Completed {
		rec.Count = v.Int("count")
	}
	if err := s.records.Upsert(ctx, rec); err != nil {
		s.logger.Error("Failed to track habit", zap.String("habit_id", habitID), zap.Error(err))
		return nil, apperr.Internal(err)
	}
	metrics.IncrementEntityMutation("habit_record", "upsert")

	return &HabitMark{
		HabitID:   habitID,
		HabitName: found[0].Name,
		Date:      rec.Date.String(),
		Completed: rec.Completed,
		Count:     rec.Count,
		Notes:     rec.Notes,
		ID:        rec.ID,
	}, nil
}

type SmokingTracking struct {
	TrackingData []model.SmokingDay      `json:"trackingData"`
	Stats        model.SmokingStatistics `json:"stats"`
}

// SmokingTracking returns a window of days ending today. Days without a
// record follow the configured gap policy.
func (s *Service) SmokingTracking(ctx context.Context, userID string, days int) (*SmokingTracking, error) {
	window := stats.Window(s.now(), s.days(days))
	records, err := s.smoking.ListRange(ctx, userID, window[0], window[len(window)-1])
	if err != nil {
		return nil, apperr.Internal(err)
	}
	rows := stats.FillSmoking(window, records, s.opts.SmokingGap)
	return &SmokingTracking{TrackingData: rows, Stats: stats.SmokingStats(rows)}, nil
}

// TrackSmoking upserts the day's record; a smoke-free day has no cigarettes.
func (s *Service) TrackSmoking(ctx context.Context, userID string, body map[string]any) (*model.SmokingRecord, error) {
	v, err := smokingTrackSchema.Create(body, s.now())
	if err != nil {
		return nil, apperr.Validation(err.Error())
	}
	date, _ := v.Time("date")
	rec := &model.SmokingRecord{
		Date:      model.NewDate(date),
		SmokeFree: v.Bool("smokeFree"),
		Notes:     v.String("notes"),
	}
	rec.UserID = userID
	if !rec.SmokeFree {
		rec.CigarettesSmoked = v.Int("cigarettesSmoked")
	}
	if err := s.smoking.Upsert(ctx, rec); err != nil {
		s.logger.Error("Failed to track smoking", zap.String("user_id", userID), zap.Error(err))
		return nil, apperr.Internal(err)
	}
	metrics.IncrementEntityMutation("smoking_record", "upsert")
	return rec, nil
}
