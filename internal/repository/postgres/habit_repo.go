package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"lifetracker/internal/model"
	"lifetracker/internal/repository"
	"lifetracker/pkg/db"
)

type HabitRepository struct {
	*Table[model.Habit, *model.Habit]
}

func (r *HabitRepository) ListActive(ctx context.Context, userID string) ([]model.Habit, error) {
	return r.list(ctx, r.pool, userID, repository.ListQuery{}, "is_active = TRUE")
}

func (r *HabitRepository) FindOwned(ctx context.Context, userID string, ids []string) ([]model.Habit, error) {
	out, err := r.collect(ctx, r.pool, r.selectSQL+` WHERE user_id = $1 AND id = ANY($2::uuid[]) ORDER BY created_at DESC`, userID, ids)
	if err == repository.ErrNotFound {
		return []model.Habit{}, nil
	}
	return out, err
}

func (r *HabitRepository) Deactivate(ctx context.Context, userID string, ids []string) (int64, error) {
	tag, err := r.pool.Exec(ctx, `
        UPDATE habits SET is_active = FALSE, updated_at = now()
        WHERE user_id = $1 AND id = ANY($2::uuid[])
    `, userID, ids)
	if err != nil {
		r.logger.Error("Failed to deactivate habits", zap.Error(err))
		return 0, mapErr(err)
	}

	r.logger.Info("Habits deactivated", zap.String("user_id", userID), zap.Int64("count", tag.RowsAffected()))
	return tag.RowsAffected(), nil
}

// DeleteWithRecords removes the habits' tracking rows and then the habits in one transaction.
func (r *HabitRepository) DeleteWithRecords(ctx context.Context, userID string, ids []string) (int64, int64, error) {
	var habits, records int64
	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `DELETE FROM habit_tracking WHERE user_id = $1 AND habit_id = ANY($2::uuid[])`, userID, ids)
		if err != nil {
			return mapErr(err)
		}
		records = tag.RowsAffected()

		tag, err = tx.Exec(ctx, `DELETE FROM habits WHERE user_id = $1 AND id = ANY($2::uuid[])`, userID, ids)
		if err != nil {
			return mapErr(err)
		}
		habits = tag.RowsAffected()
		return nil
	})
	if err != nil {
		r.logger.Error("Failed to delete habits", zap.Error(err))
		return 0, 0, err
	}

	r.logger.Info("Habits deleted permanently",
		zap.String("user_id", userID),
		zap.Int64("habits", habits),
		zap.Int64("records", records),
	)
	return habits, records, nil
}

const habitRecordSelect = `
        SELECT id, user_id, habit_id, date, completed, count, notes, created_at, updated_at
        FROM habit_tracking
    `

type HabitRecordRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewHabitRecordRepository(db *pgxpool.Pool, logger *zap.Logger) *HabitRecordRepository {
	return &HabitRecordRepository{db: db, logger: logger}
}

func (r *HabitRecordRepository) Upsert(ctx context.Context, rec *model.HabitRecord) error {
	r.logger.Debug("Upserting habit record",
		zap.String("habit_id", rec.HabitID),
		zap.String("date", rec.Date.String()),
	)

	query := `
        INSERT INTO habit_tracking (id, user_id, habit_id, date, completed, count, notes, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, now(), now())
        ON CONFLICT (user_id, habit_id, date) DO UPDATE
        SET completed = EXCLUDED.completed, count = EXCLUDED.count, notes = EXCLUDED.notes, updated_at = now()
        RETURNING id, created_at, updated_at
    `
	rec.Date = model.NewDate(rec.Date.Time)
	err := r.db.QueryRow(ctx, query,
		uuid.NewString(), rec.UserID, rec.HabitID, rec.Date, rec.Completed, rec.Count, rec.Notes,
	).Scan(&rec.ID, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		r.logger.Error("Failed to upsert habit record", zap.Error(err))
		return mapErr(err)
	}
	return nil
}

func (r *HabitRecordRepository) ListRange(ctx context.Context, userID string, habitIDs []string, from, to time.Time) ([]model.HabitRecord, error) {
	rows, err := r.db.Query(ctx, habitRecordSelect+`
        WHERE user_id = $1 AND habit_id = ANY($2::uuid[]) AND date BETWEEN $3 AND $4
        ORDER BY date ASC, habit_id ASC
    `, userID, habitIDs, day(from), day(to))
	if err != nil {
		r.logger.Error("Failed to list habit records", zap.Error(err))
		return nil, mapErr(err)
	}
	out, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.HabitRecord])
	if err != nil {
		return nil, mapErr(err)
	}
	if out == nil {
		out = []model.HabitRecord{}
	}
	return out, nil
}

func (r *HabitRecordRepository) DeleteBefore(ctx context.Context, userID string, habitIDs []string, cutoff time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, `
        DELETE FROM habit_tracking
        WHERE user_id = $1 AND habit_id = ANY($2::uuid[]) AND date < $3
    `, userID, habitIDs, day(cutoff))
	if err != nil {
		r.logger.Error("Failed to clean up habit records", zap.Error(err))
		return 0, mapErr(err)
	}

	r.logger.Info("Habit records cleaned up", zap.String("user_id", userID), zap.Int64("count", tag.RowsAffected()))
	return tag.RowsAffected(), nil
}

type SmokingRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewSmokingRepository(db *pgxpool.Pool, logger *zap.Logger) *SmokingRepository {
	return &SmokingRepository{db: db, logger: logger}
}

func (r *SmokingRepository) Upsert(ctx context.Context, rec *model.SmokingRecord) error {
	query := `
        INSERT INTO smoking_tracking (id, user_id, date, smoke_free, cigarettes_smoked, notes, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, now(), now())
        ON CONFLICT (user_id, date) DO UPDATE
        SET smoke_free = EXCLUDED.smoke_free, cigarettes_smoked = EXCLUDED.cigarettes_smoked,
            notes = EXCLUDED.notes, updated_at = now()
        RETURNING id, created_at, updated_at
    `
	rec.Date = model.NewDate(rec.Date.Time)
	err := r.db.QueryRow(ctx, query,
		uuid.NewString(), rec.UserID, rec.Date, rec.SmokeFree, rec.CigarettesSmoked, rec.Notes,
	).Scan(&rec.ID, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		r.logger.Error("Failed to upsert smoking record", zap.Error(err))
		return mapErr(err)
	}

	r.logger.Info("Smoking record saved", zap.String("id", rec.ID), zap.String("date", rec.Date.String()))
	return nil
}

func (r *SmokingRepository) ListRange(ctx context.Context, userID string, from, to time.Time) ([]model.SmokingRecord, error) {
	rows, err := r.db.Query(ctx, `
        SELECT id, user_id, date, smoke_free, cigarettes_smoked, notes, created_at, updated_at
        FROM smoking_tracking
        WHERE user_id = $1 AND date BETWEEN $2 AND $3
        ORDER BY date ASC
    `, userID, day(from), day(to))
	if err != nil {
		r.logger.Error("Failed to list smoking records", zap.Error(err))
		return nil, mapErr(err)
	}
	out, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.SmokingRecord])
	if err != nil {
		return nil, mapErr(err)
	}
	if out == nil {
		out = []model.SmokingRecord{}
	}
	return out, nil
}
