package board

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"lifetracker/internal/apperr"
	"lifetracker/internal/model"
	"lifetracker/internal/repository/memory"
)

func newService() *Service {
	repos := memory.New()
	return NewService(repos.Boards, repos.Tasks, zap.NewNop())
}

func TestBoardLifecycle(t *testing.T) {
	s := newService()
	ctx := context.Background()

	_, err := s.Create(ctx, "u1", map[string]any{"name": "   "})
	require.Error(t, err)
	assert.Equal(t, "Board name is required", err.Error())

	b, err := s.Create(ctx, "u1", map[string]any{"name": " Home "})
	require.NoError(t, err)
	assert.Equal(t, "Home", b.Name)

	_, err = s.Get(ctx, b.ID, "u2")
	assert.True(t, apperr.Is(err, apperr.KindNotFound))

	renamed, err := s.Rename(ctx, b.ID, "u1", map[string]any{"name": "Work"})
	require.NoError(t, err)
	assert.Equal(t, "Work", renamed.Name)

	_, err = s.CreateTask(ctx, "u1", map[string]any{"boardId": b.ID, "title": "a"})
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, b.ID, "u1"))
	_, err = s.Get(ctx, b.ID, "u1")
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestCreateTaskDefaultsAndOrder(t *testing.T) {
	s := newService()
	ctx := context.Background()
	b, err := s.Create(ctx, "u1", map[string]any{"name": "Home"})
	require.NoError(t, err)

	first, err := s.CreateTask(ctx, "u1", map[string]any{"boardId": b.ID, "title": "one"})
	require.NoError(t, err)
	assert.Equal(t, 0, first.Order)
	assert.Equal(t, "medium", first.Priority)
	assert.Equal(t, model.TaskStatusPending, first.Status)
	assert.Nil(t, first.DueDate)

	second, err := s.CreateTask(ctx, "u1", map[string]any{
		"boardId": b.ID, "title": "two", "priority": "high", "dueDate": "2024-06-01",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, second.Order)
	require.NotNil(t, second.DueDate)
	assert.Equal(t, "2024-06-01", second.DueDate.String())

	tasks, err := s.Tasks(ctx, b.ID, "u1")
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, first.ID, tasks[0].ID)

	_, err = s.Tasks(ctx, b.ID, "u2")
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestCreateTaskValidation(t *testing.T) {
	s := newService()
	ctx := context.Background()
	b, err := s.Create(ctx, "u1", map[string]any{"name": "Home"})
	require.NoError(t, err)

	tests := []struct {
		name string
		body map[string]any
		want string
	}{
		{"missing title", map[string]any{"boardId": b.ID}, "title is required"},
		{"bad priority", map[string]any{"boardId": b.ID, "title": "x", "priority": "urgent"}, "Invalid priority"},
		{"bad due date", map[string]any{"boardId": b.ID, "title": "x", "dueDate": "soon"}, "Invalid dueDate"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.CreateTask(ctx, "u1", tt.body)
			require.Error(t, err)
			assert.Equal(t, tt.want, err.Error())
		})
	}

	_, err = s.CreateTask(ctx, "u2", map[string]any{"boardId": b.ID, "title": "x"})
	assert.Equal(t, "Board not found", err.Error())
}

func TestUpdateTaskOwnership(t *testing.T) {
	s := newService()
	ctx := context.Background()
	b, err := s.Create(ctx, "u1", map[string]any{"name": "Home"})
	require.NoError(t, err)
	task, err := s.CreateTask(ctx, "u1", map[string]any{"boardId": b.ID, "title": "one", "dueDate": "2024-06-01"})
	require.NoError(t, err)

	_, err = s.UpdateTask(ctx, task.ID, "u2", map[string]any{"title": "stolen"})
	assert.True(t, apperr.Is(err, apperr.KindForbidden))

	_, err = s.UpdateTask(ctx, uuid.NewString(), "u1", map[string]any{"title": "x"})
	assert.Equal(t, "Task not found", err.Error())

	_, err = s.UpdateTask(ctx, task.ID, "u1", map[string]any{"status": "done"})
	assert.Equal(t, "Invalid status", err.Error())

	updated, err := s.UpdateTask(ctx, task.ID, "u1", map[string]any{"status": "completed", "dueDate": nil})
	require.NoError(t, err)
	assert.Equal(t, "completed", updated.Status)
	assert.Equal(t, "one", updated.Title)
	assert.Nil(t, updated.DueDate)
	assert.Equal(t, b.ID, updated.BoardID)

	assert.True(t, apperr.Is(s.DeleteTask(ctx, task.ID, "u2"), apperr.KindForbidden))
	require.NoError(t, s.DeleteTask(ctx, task.ID, "u1"))
}

func TestUpdateTaskNullClearsDescription(t *testing.T) {
	s := newService()
	ctx := context.Background()
	b, err := s.Create(ctx, "u1", map[string]any{"name": "Home"})
	require.NoError(t, err)
	task, err := s.CreateTask(ctx, "u1", map[string]any{"boardId": b.ID, "title": "one", "description": "details"})
	require.NoError(t, err)
	assert.Equal(t, "details", task.Description)

	updated, err := s.UpdateTask(ctx, task.ID, "u1", map[string]any{"description": nil})
	require.NoError(t, err)
	assert.Equal(t, "", updated.Description)
	assert.Equal(t, "one", updated.Title)

	_, err = s.UpdateTask(ctx, task.ID, "u1", map[string]any{"title": nil})
	require.Error(t, err)
	assert.Equal(t, "title is required", err.Error())
}

func TestReorder(t *testing.T) {
	s := newService()
	ctx := context.Background()
	b, err := s.Create(ctx, "u1", map[string]any{"name": "Home"})
	require.NoError(t, err)
	a, _ := s.CreateTask(ctx, "u1", map[string]any{"boardId": b.ID, "title": "a"})
	c, _ := s.CreateTask(ctx, "u1", map[string]any{"boardId": b.ID, "title": "c"})

	assert.Equal(t, "ids array is required", s.Reorder(ctx, "u1", nil).Error())
	assert.Equal(t, "Invalid task id in ids", s.Reorder(ctx, "u1", []string{"nope"}).Error())
	assert.True(t, apperr.Is(s.Reorder(ctx, "u2", []string{a.ID, c.ID}), apperr.KindForbidden))

	require.NoError(t, s.Reorder(ctx, "u1", []string{c.ID, a.ID}))
	tasks, err := s.Tasks(ctx, b.ID, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{c.ID, a.ID}, []string{tasks[0].ID, tasks[1].ID})
}
