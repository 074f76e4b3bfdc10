package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"lifetracker/internal/model"
	"lifetracker/internal/repository"
)

var ownedColumns = []string{"id", "user_id", "created_at", "updated_at"}

// Columns maps the entity-specific columns of a table to struct values, in order.
type Columns[T any] struct {
	Names  []string
	Values func(*T) []any
}

// Table is the generic per-user CRUD store for one entity table.
type Table[T any, P model.RecordPtr[T]] struct {
	pool    *pgxpool.Pool
	logger  *zap.Logger
	name    string
	dateCol string
	cols    Columns[T]

	selectSQL string
	insertSQL string
	updateSQL string
}

func NewTable[T any, P model.RecordPtr[T]](pool *pgxpool.Pool, logger *zap.Logger, name, dateCol string, cols Columns[T]) *Table[T, P] {
	all := append(append([]string{}, ownedColumns...), cols.Names...)

	sets := make([]string, len(cols.Names))
	for i, c := range cols.Names {
		sets[i] = fmt.Sprintf("%s = $%d", c, i+3)
	}
	sets = append(sets, fmt.Sprintf("updated_at = $%d", len(cols.Names)+3))

	return &Table[T, P]{
		pool:      pool,
		logger:    logger,
		name:      name,
		dateCol:   dateCol,
		cols:      cols,
		selectSQL: fmt.Sprintf("SELECT %s FROM %s", strings.Join(all, ", "), name),
		insertSQL: fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", name, strings.Join(all, ", "), placeholders(1, len(all))),
		updateSQL: fmt.Sprintf("UPDATE %s SET %s WHERE id = $1 AND user_id = $2 RETURNING created_at",
			name, strings.Join(sets, ", ")),
	}
}

func (t *Table[T, P]) order() string {
	if t.dateCol != "" {
		return fmt.Sprintf(" ORDER BY %s DESC, created_at DESC", t.dateCol)
	}
	return " ORDER BY created_at DESC"
}

func (t *Table[T, P]) Create(ctx context.Context, rec *T) error {
	return t.insert(ctx, t.pool, rec)
}

func (t *Table[T, P]) insert(ctx context.Context, q DBTX, rec *T) error {
	o := P(rec).Owner()
	stamp(o)
	t.logger.Debug("Inserting record", zap.String("table", t.name), zap.String("user_id", o.UserID))

	args := append([]any{o.ID, o.UserID, o.CreatedAt, o.UpdatedAt}, t.cols.Values(rec)...)
	if _, err := q.Exec(ctx, t.insertSQL, args...); err != nil {
		t.logger.Error("Failed to insert record", zap.String("table", t.name), zap.Error(err))
		return mapErr(err)
	}

	t.logger.Info("Record inserted successfully",
		zap.String("table", t.name),
		zap.String("id", o.ID),
		zap.String("user_id", o.UserID),
	)
	return nil
}

func (t *Table[T, P]) List(ctx context.Context, userID string, lq repository.ListQuery) ([]T, error) {
	return t.list(ctx, t.pool, userID, lq, "")
}

// list selects the user's rows; extra is an additional AND clause without parameters.
func (t *Table[T, P]) list(ctx context.Context, q DBTX, userID string, lq repository.ListQuery, extra string) ([]T, error) {
	var sb strings.Builder
	sb.WriteString(t.selectSQL)
	sb.WriteString(" WHERE user_id = $1")
	args := []any{userID}
	if extra != "" {
		sb.WriteString(" AND " + extra)
	}
	if t.dateCol != "" && !lq.From.IsZero() {
		args = append(args, lq.From)
		fmt.Fprintf(&sb, " AND %s >= $%d", t.dateCol, len(args))
	}
	if t.dateCol != "" && !lq.To.IsZero() {
		args = append(args, lq.To)
		fmt.Fprintf(&sb, " AND %s < $%d", t.dateCol, len(args))
	}
	sb.WriteString(t.order())
	if lq.Limit > 0 {
		args = append(args, lq.Limit)
		fmt.Fprintf(&sb, " LIMIT $%d", len(args))
	}

	out, err := t.collect(ctx, q, sb.String(), args...)
	if err != nil {
		t.logger.Error("Failed to list records", zap.String("table", t.name), zap.Error(err))
		return nil, err
	}
	t.logger.Debug("Listed records",
		zap.String("table", t.name),
		zap.String("user_id", userID),
		zap.Int("count", len(out)),
	)
	return out, nil
}

func (t *Table[T, P]) collect(ctx context.Context, q DBTX, sql string, args ...any) ([]T, error) {
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, mapErr(err)
	}
	out, err := pgx.CollectRows(rows, pgx.RowToStructByName[T])
	if err != nil {
		return nil, mapErr(err)
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

func (t *Table[T, P]) Get(ctx context.Context, id, userID string) (*T, error) {
	return t.get(ctx, t.pool, id, userID)
}

func (t *Table[T, P]) get(ctx context.Context, q DBTX, id, userID string) (*T, error) {
	rows, err := q.Query(ctx, t.selectSQL+" WHERE id = $1 AND user_id = $2", id, userID)
	if err != nil {
		return nil, mapErr(err)
	}
	rec, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[T])
	if err != nil {
		return nil, mapErr(err)
	}
	return &rec, nil
}

func (t *Table[T, P]) Update(ctx context.Context, rec *T) error {
	return t.update(ctx, t.pool, rec)
}

func (t *Table[T, P]) update(ctx context.Context, q DBTX, rec *T) error {
	o := P(rec).Owner()
	if o.UpdatedAt.IsZero() {
		o.UpdatedAt = time.Now().UTC()
	}

	args := append([]any{o.ID, o.UserID}, t.cols.Values(rec)...)
	args = append(args, o.UpdatedAt)
	if err := q.QueryRow(ctx, t.updateSQL, args...).Scan(&o.CreatedAt); err != nil {
		err = mapErr(err)
		if err != repository.ErrNotFound {
			t.logger.Error("Failed to update record", zap.String("table", t.name), zap.Error(err))
		}
		return err
	}

	t.logger.Info("Record updated successfully", zap.String("table", t.name), zap.String("id", o.ID))
	return nil
}

func (t *Table[T, P]) Delete(ctx context.Context, id, userID string) error {
	tag, err := t.pool.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = $1 AND user_id = $2", t.name), id, userID)
	if err != nil {
		err = mapErr(err)
		if err == repository.ErrNotFound {
			return err
		}
		t.logger.Error("Failed to delete record", zap.String("table", t.name), zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	t.logger.Info("Record deleted successfully", zap.String("table", t.name), zap.String("id", id))
	return nil
}
