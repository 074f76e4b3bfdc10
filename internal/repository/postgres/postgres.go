// Package postgres implements the repository contracts on pgx.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"lifetracker/internal/model"
	"lifetracker/internal/repository"
)

const Driver = "postgres"

// DBTX is satisfied by both *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func New(pool *pgxpool.Pool, logger *zap.Logger) *repository.Repositories {
	boards := NewTable[model.Board](pool, logger, "boards", "", boardColumns)
	habits := NewTable[model.Habit](pool, logger, "habits", "", habitColumns)

	return &repository.Repositories{
		Driver: Driver,

		Users:  NewUserRepository(pool, logger),
		Boards: &BoardRepository{Table: boards},
		Tasks:  NewTaskRepository(pool, logger),

		Expenses:    NewTable[model.Expense](pool, logger, "expenses", "date", expenseColumns),
		Incomes:     NewTable[model.Income](pool, logger, "incomes", "date", incomeColumns),
		Lendings:    NewTable[model.Loan](pool, logger, "lendings", "date", loanColumns),
		Borrowings:  NewTable[model.Loan](pool, logger, "borrowings", "date", loanColumns),
		Investments: NewTable[model.Investment](pool, logger, "investments", "date", investmentColumns),

		Habits:       &HabitRepository{Table: habits},
		HabitRecords: NewHabitRecordRepository(pool, logger),
		Smoking:      NewSmokingRepository(pool, logger),

		Diets:       &DietRepository{Table: NewTable[model.Diet](pool, logger, "diets", "", dietColumns)},
		DietEntries: NewTable[model.DietEntry](pool, logger, "diet_entries", "date", dietEntryColumns),
		Exercises:   NewTable[model.Exercise](pool, logger, "exercises", "date", exerciseColumns),
		Weights:     NewTable[model.WeightEntry](pool, logger, "weight_entries", "date", weightColumns),
		Goals:       NewGoalRepository(pool, logger),

		Ping: pool.Ping,
	}
}

// mapErr translates driver errors into repository sentinels.
func mapErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return repository.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("%w: %s", repository.ErrDuplicate, pgErr.ConstraintName)
		case "22P02", "23503": // malformed uuid, missing parent row
			return repository.ErrNotFound
		}
	}
	return err
}

func stamp(o *model.Owned) {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	if o.CreatedAt.IsZero() {
		o.CreatedAt = time.Now().UTC()
	}
	if o.UpdatedAt.IsZero() {
		o.UpdatedAt = o.CreatedAt
	}
}

// placeholders returns "$from, $from+1, ..." for n parameters.
func placeholders(from, n int) string {
	ps := make([]string, n)
	for i := range ps {
		ps[i] = fmt.Sprintf("$%d", from+i)
	}
	return strings.Join(ps, ", ")
}

func day(t time.Time) model.Date {
	return model.NewDate(t)
}
