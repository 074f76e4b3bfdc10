package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"lifetracker/internal/model"
	"lifetracker/internal/repository"
	"lifetracker/pkg/db"
)

// DietRepository keeps at most one active diet per user.
type DietRepository struct {
	*Table[model.Diet, *model.Diet]
}

const deactivateDiets = `UPDATE diets SET is_active = FALSE, updated_at = now()
        WHERE user_id = $1 AND is_active AND id <> $2`

func (r *DietRepository) Create(ctx context.Context, d *model.Diet) error {
	stamp(&d.Owned)
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		if d.IsActive {
			if _, err := tx.Exec(ctx, deactivateDiets, d.UserID, d.ID); err != nil {
				return mapErr(err)
			}
		}
		return r.insert(ctx, tx, d)
	})
}

func (r *DietRepository) Update(ctx context.Context, d *model.Diet) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		if d.IsActive {
			if _, err := tx.Exec(ctx, deactivateDiets, d.UserID, d.ID); err != nil {
				return mapErr(err)
			}
		}
		return r.update(ctx, tx, d)
	})
}

func (r *DietRepository) Active(ctx context.Context, userID string) (*model.Diet, error) {
	out, err := r.list(ctx, r.pool, userID, repository.ListQuery{Limit: 1}, "is_active = TRUE")
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, repository.ErrNotFound
	}
	return &out[0], nil
}

type GoalRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewGoalRepository(db *pgxpool.Pool, logger *zap.Logger) *GoalRepository {
	return &GoalRepository{db: db, logger: logger}
}

func (r *GoalRepository) Upsert(ctx context.Context, g *model.HealthGoal) error {
	query := `
        INSERT INTO health_goals (id, user_id, type, current_value, target_value, date, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, now(), now())
        ON CONFLICT (user_id, type) DO UPDATE
        SET current_value = EXCLUDED.current_value, target_value = EXCLUDED.target_value,
            date = EXCLUDED.date, updated_at = now()
        RETURNING id, created_at, updated_at
    `
	err := r.db.QueryRow(ctx, query,
		uuid.NewString(), g.UserID, g.Type, g.CurrentValue, g.TargetValue, g.Date,
	).Scan(&g.ID, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		r.logger.Error("Failed to upsert health goal", zap.Error(err))
		return mapErr(err)
	}

	r.logger.Info("Health goal saved", zap.String("id", g.ID), zap.String("type", g.Type))
	return nil
}

func (r *GoalRepository) List(ctx context.Context, userID string) ([]model.HealthGoal, error) {
	rows, err := r.db.Query(ctx, `
        SELECT id, user_id, type, current_value, target_value, date, created_at, updated_at
        FROM health_goals
        WHERE user_id = $1
        ORDER BY type ASC
    `, userID)
	if err != nil {
		return nil, mapErr(err)
	}
	out, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.HealthGoal])
	if err != nil {
		return nil, mapErr(err)
	}
	if out == nil {
		out = []model.HealthGoal{}
	}
	return out, nil
}
