// Package repository declares the storage contracts shared by the postgres
// and in-memory drivers. Every per-user read and write is scoped by user id.
package repository

import (
	"context"
	"errors"
	"time"

	"lifetracker/internal/model"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
	// ErrForbidden is returned when a referenced record belongs to another user.
	ErrForbidden = errors.New("record belongs to another user")
)

// ListQuery narrows a list on the record's date column. Zero bounds are open;
// To is exclusive.
type ListQuery struct {
	From  time.Time
	To    time.Time
	Limit int
}

// OwnedStore is the generic per-user CRUD contract.
type OwnedStore[T any] interface {
	Create(ctx context.Context, rec *T) error
	List(ctx context.Context, userID string, q ListQuery) ([]T, error)
	Get(ctx context.Context, id, userID string) (*T, error)
	Update(ctx context.Context, rec *T) error
	Delete(ctx context.Context, id, userID string) error
}

type UserStore interface {
	Create(ctx context.Context, u *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	Count(ctx context.Context) (int64, error)
}

type BoardStore interface {
	Create(ctx context.Context, b *model.Board) error
	List(ctx context.Context, userID string) ([]model.Board, error)
	Get(ctx context.Context, id, userID string) (*model.Board, error)
	Update(ctx context.Context, b *model.Board) error
	// DeleteWithTasks removes the board's tasks and then the board atomically.
	DeleteWithTasks(ctx context.Context, id, userID string) (int64, error)
	Count(ctx context.Context) (int64, error)
}

type TaskStore interface {
	// Append stores t after the board's last task, setting t.Order.
	Append(ctx context.Context, t *model.Task) error
	ListByBoard(ctx context.Context, boardID string) ([]model.Task, error)
	Get(ctx context.Context, id string) (*model.Task, error)
	Update(ctx context.Context, t *model.Task) error
	Delete(ctx context.Context, id string) error
	// Reorder sets order = index for each id, all or nothing. ErrForbidden if
	// any id is unknown or sits on a board userID does not own.
	Reorder(ctx context.Context, userID string, ids []string) error
	Count(ctx context.Context) (int64, error)
}

type HabitStore interface {
	OwnedStore[model.Habit]
	ListActive(ctx context.Context, userID string) ([]model.Habit, error)
	// FindOwned returns the habits among ids that userID owns.
	FindOwned(ctx context.Context, userID string, ids []string) ([]model.Habit, error)
	Deactivate(ctx context.Context, userID string, ids []string) (int64, error)
	// DeleteWithRecords removes tracking rows and then the habits atomically.
	DeleteWithRecords(ctx context.Context, userID string, ids []string) (habits, records int64, err error)
}

type HabitRecordStore interface {
	// Upsert inserts or updates by (user, habit, date); rec.ID is set to the stored id.
	Upsert(ctx context.Context, rec *model.HabitRecord) error
	// ListRange returns rows dated from..to inclusive, oldest first.
	ListRange(ctx context.Context, userID string, habitIDs []string, from, to time.Time) ([]model.HabitRecord, error)
	// DeleteBefore removes rows dated strictly before cutoff's day.
	DeleteBefore(ctx context.Context, userID string, habitIDs []string, cutoff time.Time) (int64, error)
}

type SmokingStore interface {
	// Upsert inserts or updates by (user, date); rec.ID is set to the stored id.
	Upsert(ctx context.Context, rec *model.SmokingRecord) error
	ListRange(ctx context.Context, userID string, from, to time.Time) ([]model.SmokingRecord, error)
}

// DietStore keeps at most one active diet per user: storing an active diet
// deactivates the user's others in the same transaction.
type DietStore interface {
	OwnedStore[model.Diet]
	Active(ctx context.Context, userID string) (*model.Diet, error)
}

type GoalStore interface {
	// Upsert inserts or updates by (user, type). List orders by type.
	Upsert(ctx context.Context, g *model.HealthGoal) error
	List(ctx context.Context, userID string) ([]model.HealthGoal, error)
}

// Repositories bundles every store of one driver.
type Repositories struct {
	Driver string

	Users  UserStore
	Boards BoardStore
	Tasks  TaskStore

	Expenses    OwnedStore[model.Expense]
	Incomes     OwnedStore[model.Income]
	Lendings    OwnedStore[model.Loan]
	Borrowings  OwnedStore[model.Loan]
	Investments OwnedStore[model.Investment]

	Habits       HabitStore
	HabitRecords HabitRecordStore
	Smoking      SmokingStore

	Diets       DietStore
	DietEntries OwnedStore[model.DietEntry]
	Exercises   OwnedStore[model.Exercise]
	Weights     OwnedStore[model.WeightEntry]
	Goals       GoalStore

	Ping func(ctx context.Context) error
}
