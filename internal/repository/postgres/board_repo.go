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

type BoardRepository struct {
	*Table[model.Board, *model.Board]
}

func (r *BoardRepository) List(ctx context.Context, userID string) ([]model.Board, error) {
	return r.Table.List(ctx, userID, repository.ListQuery{})
}

// DeleteWithTasks removes the board's tasks and the board in one transaction.
func (r *BoardRepository) DeleteWithTasks(ctx context.Context, id, userID string) (int64, error) {
	r.logger.Debug("Deleting board with tasks", zap.String("board_id", id), zap.String("user_id", userID))

	var deleted int64
	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `DELETE FROM tasks WHERE board_id = $1
			AND EXISTS (SELECT 1 FROM boards WHERE id = $1 AND user_id = $2)`, id, userID)
		if err != nil {
			return mapErr(err)
		}
		deleted = tag.RowsAffected()

		tag, err = tx.Exec(ctx, `DELETE FROM boards WHERE id = $1 AND user_id = $2`, id, userID)
		if err != nil {
			return mapErr(err)
		}
		if tag.RowsAffected() == 0 {
			return repository.ErrNotFound
		}
		return nil
	})
	if err != nil {
		if err != repository.ErrNotFound {
			r.logger.Error("Failed to delete board", zap.String("board_id", id), zap.Error(err))
		}
		return 0, err
	}

	r.logger.Info("Board deleted successfully",
		zap.String("board_id", id),
		zap.Int64("tasks_deleted", deleted),
	)
	return deleted, nil
}

func (r *BoardRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM boards`).Scan(&n)
	return n, err
}

const taskSelect = `
        SELECT id, board_id, title, description, status, priority, due_date, position, created_at, updated_at
        FROM tasks
    `

type TaskRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewTaskRepository(db *pgxpool.Pool, logger *zap.Logger) *TaskRepository {
	return &TaskRepository{db: db, logger: logger}
}

// Append inserts the task after the board's last one; the board row is
// locked so concurrent appends get distinct positions.
func (r *TaskRepository) Append(ctx context.Context, t *model.Task) error {
	r.logger.Debug("Inserting task",
		zap.String("board_id", t.BoardID),
		zap.String("title", t.Title),
	)

	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}
	if t.UpdatedAt.IsZero() {
		t.UpdatedAt = t.CreatedAt
	}

	err := db.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		var locked string
		if err := tx.QueryRow(ctx, `SELECT id FROM boards WHERE id = $1 FOR UPDATE`, t.BoardID).Scan(&locked); err != nil {
			return mapErr(err)
		}
		if err := tx.QueryRow(ctx,
			`SELECT COALESCE(MAX(position) + 1, 0) FROM tasks WHERE board_id = $1`, t.BoardID,
		).Scan(&t.Order); err != nil {
			return err
		}

		query := `
            INSERT INTO tasks (id, board_id, title, description, status, priority, due_date, position, created_at, updated_at)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
        `
		_, err := tx.Exec(ctx, query,
			t.ID, t.BoardID, t.Title, t.Description, t.Status, t.Priority, t.DueDate, t.Order, t.CreatedAt, t.UpdatedAt,
		)
		return mapErr(err)
	})
	if err != nil {
		r.logger.Error("Failed to insert task", zap.Error(err))
		return err
	}

	r.logger.Info("Task inserted successfully",
		zap.String("id", t.ID),
		zap.String("board_id", t.BoardID),
		zap.Int("order", t.Order),
	)
	return nil
}

func (r *TaskRepository) ListByBoard(ctx context.Context, boardID string) ([]model.Task, error) {
	rows, err := r.db.Query(ctx, taskSelect+` WHERE board_id = $1 ORDER BY position ASC, created_at ASC`, boardID)
	if err != nil {
		r.logger.Error("Failed to list tasks", zap.Error(err))
		return nil, mapErr(err)
	}
	tasks, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Task])
	if err != nil {
		r.logger.Error("Failed to scan task", zap.Error(err))
		return nil, err
	}
	if tasks == nil {
		tasks = []model.Task{}
	}

	r.logger.Debug("Listed tasks", zap.String("board_id", boardID), zap.Int("count", len(tasks)))
	return tasks, nil
}

func (r *TaskRepository) Get(ctx context.Context, id string) (*model.Task, error) {
	rows, err := r.db.Query(ctx, taskSelect+` WHERE id = $1`, id)
	if err != nil {
		return nil, mapErr(err)
	}
	t, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Task])
	if err != nil {
		return nil, mapErr(err)
	}
	return &t, nil
}

func (r *TaskRepository) Update(ctx context.Context, t *model.Task) error {
	if t.UpdatedAt.IsZero() {
		t.UpdatedAt = time.Now().UTC()
	}
	query := `
        UPDATE tasks
        SET title = $2, description = $3, status = $4, priority = $5, due_date = $6, updated_at = $7
        WHERE id = $1
        RETURNING created_at, position
    `
	err := r.db.QueryRow(ctx, query,
		t.ID, t.Title, t.Description, t.Status, t.Priority, t.DueDate, t.UpdatedAt,
	).Scan(&t.CreatedAt, &t.Order)
	if err != nil {
		err = mapErr(err)
		if err != repository.ErrNotFound {
			r.logger.Error("Failed to update task", zap.String("id", t.ID), zap.Error(err))
		}
		return err
	}

	r.logger.Info("Task updated successfully", zap.String("id", t.ID))
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	r.logger.Info("Task deleted successfully", zap.String("id", id))
	return nil
}

// Reorder checks ownership of every id and writes all positions in one batch.
func (r *TaskRepository) Reorder(ctx context.Context, userID string, ids []string) error {
	unique := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		unique[id] = struct{}{}
	}

	err := db.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		var owned int
		err := tx.QueryRow(ctx, `
            SELECT COUNT(*)
            FROM tasks t JOIN boards b ON b.id = t.board_id
            WHERE t.id = ANY($1::uuid[]) AND b.user_id = $2
        `, ids, userID).Scan(&owned)
		if err != nil {
			if mapErr(err) == repository.ErrNotFound {
				return repository.ErrForbidden
			}
			return err
		}
		if owned != len(unique) {
			return repository.ErrForbidden
		}

		batch := &pgx.Batch{}
		for i, id := range ids {
			batch.Queue(`UPDATE tasks SET position = $1, updated_at = now() WHERE id = $2`, i, id)
		}
		return tx.SendBatch(ctx, batch).Close()
	})
	if err != nil {
		if err != repository.ErrForbidden {
			r.logger.Error("Failed to reorder tasks", zap.Error(err))
		}
		return err
	}

	r.logger.Info("Tasks reordered", zap.String("user_id", userID), zap.Int("count", len(ids)))
	return nil
}

func (r *TaskRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM tasks`).Scan(&n)
	return n, err
}
