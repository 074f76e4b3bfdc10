package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"lifetracker/internal/model"
	"lifetracker/internal/repository"
	"lifetracker/pkg/db"
)

// openTestDB connects to TEST_POSTGRES_DSN and applies migrations.
func openTestDB(t *testing.T) *repository.Repositories {
	t.Helper()
	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("TEST_POSTGRES_DSN not set")
	}
	if testing.Short() {
		t.Skip("skipping postgres test in short mode")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	logger := zap.NewNop()
	_, err = db.Migrate(ctx, pool, logger)
	require.NoError(t, err)
	return New(pool, logger)
}

func newUser(t *testing.T, repos *repository.Repositories) string {
	t.Helper()
	u := model.User{Username: "user-" + uuid.NewString()[:8], PasswordHash: "hash"}
	require.NoError(t, repos.Users.Create(context.Background(), &u))
	return u.ID
}

func TestPostgresUsers(t *testing.T) {
	repos := openTestDB(t)
	ctx := context.Background()

	u := model.User{Username: "dup-" + uuid.NewString()[:8], PasswordHash: "hash"}
	require.NoError(t, repos.Users.Create(ctx, &u))
	err := repos.Users.Create(ctx, &model.User{Username: u.Username, PasswordHash: "other"})
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	got, err := repos.Users.GetByUsername(ctx, u.Username)
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, "user", got.Role)
}

func TestPostgresExpenseCRUD(t *testing.T) {
	repos := openTestDB(t)
	ctx := context.Background()
	userID := newUser(t, repos)

	e := model.Expense{
		Owned:       model.Owned{UserID: userID},
		Amount:      12.5,
		Category:    "food",
		Description: "lunch",
		Date:        time.Date(2024, 1, 2, 12, 0, 0, 0, time.UTC),
		Type:        "personal",
	}
	require.NoError(t, repos.Expenses.Create(ctx, &e))

	e.Amount = 50
	e.UpdatedAt = time.Time{}
	require.NoError(t, repos.Expenses.Update(ctx, &e))

	got, err := repos.Expenses.Get(ctx, e.ID, userID)
	require.NoError(t, err)
	assert.Equal(t, 50.0, got.Amount)
	assert.Equal(t, "lunch", got.Description)

	_, err = repos.Expenses.Get(ctx, e.ID, newUser(t, repos))
	assert.ErrorIs(t, err, repository.ErrNotFound)

	require.NoError(t, repos.Expenses.Delete(ctx, e.ID, userID))
	assert.ErrorIs(t, repos.Expenses.Delete(ctx, e.ID, userID), repository.ErrNotFound)
}

func TestPostgresBoardCascadeAndReorder(t *testing.T) {
	repos := openTestDB(t)
	ctx := context.Background()
	userID := newUser(t, repos)

	b := model.Board{Owned: model.Owned{UserID: userID}, Name: "Work"}
	require.NoError(t, repos.Boards.Create(ctx, &b))

	var ids []string
	for _, title := range []string{"a", "b", "c"} {
		task := model.Task{BoardID: b.ID, Title: title, Status: model.TaskStatusPending, Priority: "medium"}
		require.NoError(t, repos.Tasks.Append(ctx, &task))
		ids = append(ids, task.ID)
	}

	require.NoError(t, repos.Tasks.Reorder(ctx, userID, []string{ids[2], ids[1], ids[0]}))
	tasks, err := repos.Tasks.ListByBoard(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, tasks, 3)
	assert.Equal(t, "c", tasks[0].Title)

	assert.ErrorIs(t, repos.Tasks.Reorder(ctx, newUser(t, repos), ids), repository.ErrForbidden)

	n, err := repos.Boards.DeleteWithTasks(ctx, b.ID, userID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)

	tasks, err = repos.Tasks.ListByBoard(ctx, b.ID)
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestPostgresDietExclusiveActivation(t *testing.T) {
	repos := openTestDB(t)
	ctx := context.Background()
	userID := newUser(t, repos)

	first := model.Diet{Owned: model.Owned{UserID: userID}, Name: "Cut", TargetCalories: 1800, TargetFiber: 25, IsActive: true}
	require.NoError(t, repos.Diets.Create(ctx, &first))
	second := model.Diet{Owned: model.Owned{UserID: userID}, Name: "Bulk", TargetCalories: 3000, TargetFiber: 25, IsActive: true}
	require.NoError(t, repos.Diets.Create(ctx, &second))

	active, err := repos.Diets.Active(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, second.ID, active.ID)
}

func TestPostgresHabitTracking(t *testing.T) {
	repos := openTestDB(t)
	ctx := context.Background()
	userID := newUser(t, repos)

	h := model.Habit{Owned: model.Owned{UserID: userID}, Name: "Read", Frequency: "daily", TargetCount: 1, HabitType: "build", IsActive: true}
	require.NoError(t, repos.Habits.Create(ctx, &h))

	d := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rec := model.HabitRecord{Owned: model.Owned{UserID: userID}, HabitID: h.ID, Date: model.NewDate(d), Completed: true, Count: 1}
	require.NoError(t, repos.HabitRecords.Upsert(ctx, &rec))
	again := model.HabitRecord{Owned: model.Owned{UserID: userID}, HabitID: h.ID, Date: model.NewDate(d), Completed: true, Count: 2}
	require.NoError(t, repos.HabitRecords.Upsert(ctx, &again))
	assert.Equal(t, rec.ID, again.ID)

	rows, err := repos.HabitRecords.ListRange(ctx, userID, []string{h.ID}, d, d)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "2024-01-01", rows[0].Date.String())

	habits, records, err := repos.Habits.DeleteWithRecords(ctx, userID, []string{h.ID})
	require.NoError(t, err)
	assert.EqualValues(t, 1, habits)
	assert.EqualValues(t, 1, records)
}
