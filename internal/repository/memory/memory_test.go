package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"lifetracker/internal/model"
	"lifetracker/internal/repository"
)

type MemoryTestSuite struct {
	suite.Suite
	repos *repository.Repositories
	ctx   context.Context
}

func (s *MemoryTestSuite) SetupTest() {
	s.repos = New()
	s.ctx = context.Background()
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (s *MemoryTestSuite) TestUsernameIsUnique() {
	require.NoError(s.T(), s.repos.Users.Create(s.ctx, &model.User{Username: "alice", PasswordHash: "x"}))
	err := s.repos.Users.Create(s.ctx, &model.User{Username: "alice", PasswordHash: "y"})
	assert.ErrorIs(s.T(), err, repository.ErrDuplicate)

	u, err := s.repos.Users.GetByUsername(s.ctx, "alice")
	require.NoError(s.T(), err)
	assert.NotEmpty(s.T(), u.ID)

	n, err := s.repos.Users.Count(s.ctx)
	require.NoError(s.T(), err)
	assert.EqualValues(s.T(), 1, n)
}

func (s *MemoryTestSuite) TestListIsScopedAndNewestFirst() {
	for i, d := range []time.Time{day(2024, 1, 1), day(2024, 1, 3), day(2024, 1, 2)} {
		e := model.Expense{Owned: model.Owned{UserID: "u1"}, Amount: float64(i + 1), Date: d}
		require.NoError(s.T(), s.repos.Expenses.Create(s.ctx, &e))
	}
	other := model.Expense{Owned: model.Owned{UserID: "u2"}, Amount: 99, Date: day(2024, 1, 5)}
	require.NoError(s.T(), s.repos.Expenses.Create(s.ctx, &other))

	list, err := s.repos.Expenses.List(s.ctx, "u1", repository.ListQuery{})
	require.NoError(s.T(), err)
	require.Len(s.T(), list, 3)
	assert.Equal(s.T(), 2.0, list[0].Amount)
	assert.Equal(s.T(), 3.0, list[1].Amount)
	assert.Equal(s.T(), 1.0, list[2].Amount)

	bounded, err := s.repos.Expenses.List(s.ctx, "u1", repository.ListQuery{From: day(2024, 1, 2), To: day(2024, 1, 3)})
	require.NoError(s.T(), err)
	require.Len(s.T(), bounded, 1)
	assert.Equal(s.T(), 3.0, bounded[0].Amount)
}

func (s *MemoryTestSuite) TestOwnershipIsEnforced() {
	e := model.Expense{Owned: model.Owned{UserID: "u1"}, Amount: 10, Date: day(2024, 1, 1)}
	require.NoError(s.T(), s.repos.Expenses.Create(s.ctx, &e))

	_, err := s.repos.Expenses.Get(s.ctx, e.ID, "u2")
	assert.ErrorIs(s.T(), err, repository.ErrNotFound)

	stolen := e
	stolen.UserID = "u2"
	assert.ErrorIs(s.T(), s.repos.Expenses.Update(s.ctx, &stolen), repository.ErrNotFound)
	assert.ErrorIs(s.T(), s.repos.Expenses.Delete(s.ctx, e.ID, "u2"), repository.ErrNotFound)

	got, err := s.repos.Expenses.Get(s.ctx, e.ID, "u1")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), 10.0, got.Amount)
}

func (s *MemoryTestSuite) TestBoardDeleteCascadesTasks() {
	b := model.Board{Owned: model.Owned{UserID: "u1"}, Name: "Work"}
	require.NoError(s.T(), s.repos.Boards.Create(s.ctx, &b))
	for _, title := range []string{"a", "b"} {
		require.NoError(s.T(), s.repos.Tasks.Append(s.ctx, &model.Task{BoardID: b.ID, Title: title}))
	}

	n, err := s.repos.Boards.DeleteWithTasks(s.ctx, b.ID, "u1")
	require.NoError(s.T(), err)
	assert.EqualValues(s.T(), 2, n)

	tasks, err := s.repos.Tasks.ListByBoard(s.ctx, b.ID)
	require.NoError(s.T(), err)
	assert.Empty(s.T(), tasks)
}

func (s *MemoryTestSuite) TestTaskAppendAndReorder() {
	b := model.Board{Owned: model.Owned{UserID: "u1"}, Name: "Home"}
	require.NoError(s.T(), s.repos.Boards.Create(s.ctx, &b))

	var ids []string
	for i, title := range []string{"first", "second", "third"} {
		t := model.Task{BoardID: b.ID, Title: title}
		require.NoError(s.T(), s.repos.Tasks.Append(s.ctx, &t))
		assert.Equal(s.T(), i, t.Order)
		ids = append(ids, t.ID)
	}

	require.NoError(s.T(), s.repos.Tasks.Reorder(s.ctx, "u1", []string{ids[2], ids[0], ids[1]}))
	tasks, err := s.repos.Tasks.ListByBoard(s.ctx, b.ID)
	require.NoError(s.T(), err)
	require.Len(s.T(), tasks, 3)
	assert.Equal(s.T(), "third", tasks[0].Title)
	assert.Equal(s.T(), "first", tasks[1].Title)
	assert.Equal(s.T(), "second", tasks[2].Title)

	err = s.repos.Tasks.Reorder(s.ctx, "u2", []string{ids[0]})
	assert.ErrorIs(s.T(), err, repository.ErrForbidden)

	err = s.repos.Tasks.Reorder(s.ctx, "u1", []string{ids[1], "missing"})
	assert.ErrorIs(s.T(), err, repository.ErrForbidden)
	tasks, err = s.repos.Tasks.ListByBoard(s.ctx, b.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "third", tasks[0].Title, "failed reorder must not apply partially")
}

func (s *MemoryTestSuite) TestDietActivationIsExclusive() {
	first := model.Diet{Owned: model.Owned{UserID: "u1"}, Name: "Cut", IsActive: true}
	require.NoError(s.T(), s.repos.Diets.Create(s.ctx, &first))
	second := model.Diet{Owned: model.Owned{UserID: "u1"}, Name: "Bulk", IsActive: true}
	require.NoError(s.T(), s.repos.Diets.Create(s.ctx, &second))
	foreign := model.Diet{Owned: model.Owned{UserID: "u2"}, Name: "Keto", IsActive: true}
	require.NoError(s.T(), s.repos.Diets.Create(s.ctx, &foreign))

	active, err := s.repos.Diets.Active(s.ctx, "u1")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), second.ID, active.ID)

	first.IsActive = true
	require.NoError(s.T(), s.repos.Diets.Update(s.ctx, &first))
	active, err = s.repos.Diets.Active(s.ctx, "u1")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), first.ID, active.ID)

	got, err := s.repos.Diets.Get(s.ctx, second.ID, "u1")
	require.NoError(s.T(), err)
	assert.False(s.T(), got.IsActive)

	other, err := s.repos.Diets.Active(s.ctx, "u2")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), foreign.ID, other.ID)
}

func (s *MemoryTestSuite) TestHabitRecordUpsertAndCleanup() {
	h := model.Habit{Owned: model.Owned{UserID: "u1"}, Name: "Read", IsActive: true}
	require.NoError(s.T(), s.repos.Habits.Create(s.ctx, &h))

	rec := model.HabitRecord{Owned: model.Owned{UserID: "u1"}, HabitID: h.ID, Date: model.NewDate(day(2024, 1, 1).Add(15 * time.Hour)), Completed: true, Count: 1}
	require.NoError(s.T(), s.repos.HabitRecords.Upsert(s.ctx, &rec))
	firstID := rec.ID

	again := model.HabitRecord{Owned: model.Owned{UserID: "u1"}, HabitID: h.ID, Date: model.NewDate(day(2024, 1, 1)), Completed: true, Count: 3}
	require.NoError(s.T(), s.repos.HabitRecords.Upsert(s.ctx, &again))
	assert.Equal(s.T(), firstID, again.ID)

	later := model.HabitRecord{Owned: model.Owned{UserID: "u1"}, HabitID: h.ID, Date: model.NewDate(day(2024, 1, 10))}
	require.NoError(s.T(), s.repos.HabitRecords.Upsert(s.ctx, &later))

	rows, err := s.repos.HabitRecords.ListRange(s.ctx, "u1", []string{h.ID}, day(2024, 1, 1), day(2024, 1, 10))
	require.NoError(s.T(), err)
	require.Len(s.T(), rows, 2)
	assert.Equal(s.T(), 3, rows[0].Count)

	n, err := s.repos.HabitRecords.DeleteBefore(s.ctx, "u1", []string{h.ID}, day(2024, 1, 10))
	require.NoError(s.T(), err)
	assert.EqualValues(s.T(), 1, n)
}

func (s *MemoryTestSuite) TestHabitHardDeleteRemovesRecords() {
	h := model.Habit{Owned: model.Owned{UserID: "u1"}, Name: "Run", IsActive: true}
	require.NoError(s.T(), s.repos.Habits.Create(s.ctx, &h))
	for d := 1; d <= 3; d++ {
		r := model.HabitRecord{Owned: model.Owned{UserID: "u1"}, HabitID: h.ID, Date: model.NewDate(day(2024, 2, d))}
		require.NoError(s.T(), s.repos.HabitRecords.Upsert(s.ctx, &r))
	}

	found, err := s.repos.Habits.FindOwned(s.ctx, "u2", []string{h.ID})
	require.NoError(s.T(), err)
	assert.Empty(s.T(), found)

	habits, records, err := s.repos.Habits.DeleteWithRecords(s.ctx, "u1", []string{h.ID})
	require.NoError(s.T(), err)
	assert.EqualValues(s.T(), 1, habits)
	assert.EqualValues(s.T(), 3, records)

	_, err = s.repos.Habits.Get(s.ctx, h.ID, "u1")
	assert.ErrorIs(s.T(), err, repository.ErrNotFound)
}

func (s *MemoryTestSuite) TestHabitDeactivate() {
	h := model.Habit{Owned: model.Owned{UserID: "u1"}, Name: "Meditate", IsActive: true}
	require.NoError(s.T(), s.repos.Habits.Create(s.ctx, &h))

	n, err := s.repos.Habits.Deactivate(s.ctx, "u1", []string{h.ID})
	require.NoError(s.T(), err)
	assert.EqualValues(s.T(), 1, n)

	active, err := s.repos.Habits.ListActive(s.ctx, "u1")
	require.NoError(s.T(), err)
	assert.Empty(s.T(), active)
}

func (s *MemoryTestSuite) TestSmokingAndGoalUpserts() {
	r := model.SmokingRecord{Owned: model.Owned{UserID: "u1"}, Date: model.NewDate(day(2024, 3, 1)), SmokeFree: true}
	require.NoError(s.T(), s.repos.Smoking.Upsert(s.ctx, &r))
	r2 := model.SmokingRecord{Owned: model.Owned{UserID: "u1"}, Date: model.NewDate(day(2024, 3, 1)), CigarettesSmoked: 4}
	require.NoError(s.T(), s.repos.Smoking.Upsert(s.ctx, &r2))
	assert.Equal(s.T(), r.ID, r2.ID)

	rows, err := s.repos.Smoking.ListRange(s.ctx, "u1", day(2024, 2, 1), day(2024, 3, 1))
	require.NoError(s.T(), err)
	require.Len(s.T(), rows, 1)
	assert.Equal(s.T(), 4, rows[0].CigarettesSmoked)

	g := model.HealthGoal{Owned: model.Owned{UserID: "u1"}, Type: "weight", CurrentValue: 80, TargetValue: 75}
	require.NoError(s.T(), s.repos.Goals.Upsert(s.ctx, &g))
	g2 := model.HealthGoal{Owned: model.Owned{UserID: "u1"}, Type: "weight", CurrentValue: 79, TargetValue: 75}
	require.NoError(s.T(), s.repos.Goals.Upsert(s.ctx, &g2))

	goals, err := s.repos.Goals.List(s.ctx, "u1")
	require.NoError(s.T(), err)
	require.Len(s.T(), goals, 1)
	assert.Equal(s.T(), 79.0, goals[0].CurrentValue)
}

func TestMemoryTestSuite(t *testing.T) {
	suite.Run(t, new(MemoryTestSuite))
}
