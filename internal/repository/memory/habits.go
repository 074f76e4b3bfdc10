package memory

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"lifetracker/internal/model"
	"lifetracker/internal/repository"
)

type habitStore struct {
	*table[model.Habit, *model.Habit]
	records *habitRecordStore
}

func (s *habitStore) ListActive(_ context.Context, userID string) ([]model.Habit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listLocked(userID, repository.ListQuery{}, func(h *model.Habit) bool { return h.IsActive }), nil
}

func (s *habitStore) FindOwned(_ context.Context, userID string, ids []string) ([]model.Habit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.findLocked(userID, ids), nil
}

func (s *habitStore) findLocked(userID string, ids []string) []model.Habit {
	out := make([]model.Habit, 0, len(ids))
	for _, id := range ids {
		if h, err := s.getLocked(id, userID); err == nil {
			out = append(out, *h)
		}
	}
	return out
}

func (s *habitStore) Deactivate(_ context.Context, userID string, ids []string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	var n int64
	for _, h := range s.findLocked(userID, ids) {
		h.IsActive = false
		h.UpdatedAt = now
		s.rows[h.ID] = h
		n++
	}
	return n, nil
}

func (s *habitStore) DeleteWithRecords(_ context.Context, userID string, ids []string) (int64, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	owned := s.findLocked(userID, ids)
	var habits, records int64
	for _, h := range owned {
		for id, r := range s.records.rows {
			if r.HabitID == h.ID && r.UserID == userID {
				delete(s.records.rows, id)
				records++
			}
		}
		delete(s.rows, h.ID)
		habits++
	}
	return habits, records, nil
}

type habitRecordStore struct {
	mu   *sync.RWMutex
	rows map[string]model.HabitRecord
}

func (s *habitRecordStore) Upsert(_ context.Context, rec *model.HabitRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec.Date = model.NewDate(rec.Date.Time)
	now := time.Now().UTC()
	for id, cur := range s.rows {
		if cur.UserID == rec.UserID && cur.HabitID == rec.HabitID && cur.Date.Equal(rec.Date.Time) {
			rec.ID = id
			rec.CreatedAt = cur.CreatedAt
			rec.UpdatedAt = now
			s.rows[id] = *rec
			return nil
		}
	}
	rec.ID = uuid.NewString()
	rec.CreatedAt, rec.UpdatedAt = now, now
	s.rows[rec.ID] = *rec
	return nil
}

func (s *habitRecordStore) ListRange(_ context.Context, userID string, habitIDs []string, from, to time.Time) ([]model.HabitRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	from, to = model.TruncateDay(from), model.TruncateDay(to)
	out := make([]model.HabitRecord, 0)
	for _, r := range s.rows {
		if r.UserID != userID || !slices.Contains(habitIDs, r.HabitID) {
			continue
		}
		if r.Date.Before(from) || r.Date.After(to) {
			continue
		}
		out = append(out, r)
	}
	slices.SortFunc(out, func(a, b model.HabitRecord) int {
		if c := a.Date.Compare(b.Date.Time); c != 0 {
			return c
		}
		return cmp.Compare(a.HabitID, b.HabitID)
	})
	return out, nil
}

func (s *habitRecordStore) DeleteBefore(_ context.Context, userID string, habitIDs []string, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff = model.TruncateDay(cutoff)
	var n int64
	for id, r := range s.rows {
		if r.UserID == userID && slices.Contains(habitIDs, r.HabitID) && r.Date.Before(cutoff) {
			delete(s.rows, id)
			n++
		}
	}
	return n, nil
}

type smokingStore struct {
	mu   *sync.RWMutex
	rows map[string]model.SmokingRecord
}

func (s *smokingStore) Upsert(_ context.Context, rec *model.SmokingRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec.Date = model.NewDate(rec.Date.Time)
	now := time.Now().UTC()
	for id, cur := range s.rows {
		if cur.UserID == rec.UserID && cur.Date.Equal(rec.Date.Time) {
			rec.ID = id
			rec.CreatedAt = cur.CreatedAt
			rec.UpdatedAt = now
			s.rows[id] = *rec
			return nil
		}
	}
	rec.ID = uuid.NewString()
	rec.CreatedAt, rec.UpdatedAt = now, now
	s.rows[rec.ID] = *rec
	return nil
}

func (s *smokingStore) ListRange(_ context.Context, userID string, from, to time.Time) ([]model.SmokingRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	from, to = model.TruncateDay(from), model.TruncateDay(to)
	out := make([]model.SmokingRecord, 0)
	for _, r := range s.rows {
		if r.UserID == userID && !r.Date.Before(from) && !r.Date.After(to) {
			out = append(out, r)
		}
	}
	slices.SortFunc(out, func(a, b model.SmokingRecord) int { return a.Date.Compare(b.Date.Time) })
	return out, nil
}
