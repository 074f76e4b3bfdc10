// Package memory is an in-process driver for the repository contracts, used
// by tests and by `db.driver: memory`. A single lock spans every table so
// multi-table writes are atomic.
package memory

import (
	"context"
	"sync"
	"time"

	"lifetracker/internal/model"
	"lifetracker/internal/repository"
)

const Driver = "memory"

func New() *repository.Repositories {
	mu := &sync.RWMutex{}

	boards := newTable[model.Board](mu, nil)
	tasks := make(map[string]model.Task)
	habits := newTable[model.Habit](mu, nil)
	records := &habitRecordStore{mu: mu, rows: make(map[string]model.HabitRecord)}

	return &repository.Repositories{
		Driver: Driver,

		Users:  &userStore{mu: mu, rows: make(map[string]model.User)},
		Boards: &boardStore{table: boards, tasks: tasks},
		Tasks:  &taskStore{boards: boards, rows: tasks},

		Expenses:    newTable[model.Expense](mu, func(r *model.Expense) time.Time { return r.Date }),
		Incomes:     newTable[model.Income](mu, func(r *model.Income) time.Time { return r.Date }),
		Lendings:    newTable[model.Loan](mu, func(r *model.Loan) time.Time { return r.Date }),
		Borrowings:  newTable[model.Loan](mu, func(r *model.Loan) time.Time { return r.Date }),
		Investments: newTable[model.Investment](mu, func(r *model.Investment) time.Time { return r.Date }),

		Habits:       &habitStore{table: habits, records: records},
		HabitRecords: records,
		Smoking:      &smokingStore{mu: mu, rows: make(map[string]model.SmokingRecord)},

		Diets:       &dietStore{table: newTable[model.Diet](mu, nil)},
		DietEntries: newTable[model.DietEntry](mu, func(r *model.DietEntry) time.Time { return r.Date }),
		Exercises:   newTable[model.Exercise](mu, func(r *model.Exercise) time.Time { return r.Date }),
		Weights:     newTable[model.WeightEntry](mu, func(r *model.WeightEntry) time.Time { return r.Date }),
		Goals:       &goalStore{mu: mu, rows: make(map[string]model.HealthGoal)},

		Ping: func(context.Context) error { return nil },
	}
}
