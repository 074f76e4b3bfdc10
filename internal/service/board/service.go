// Package board manages boards and the ordered tasks on them. Task ownership
// is derived from the board a task sits on.
package board

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"lifetracker/internal/apperr"
	"lifetracker/internal/model"
	"lifetracker/internal/repository"
	"lifetracker/internal/validate"
	"lifetracker/pkg/metrics"
)

var boardSchema = validate.Schema{Entity: "Board", Fields: []validate.Field{
	{Name: "name", Label: "Board name", Kind: validate.String, Required: true, MinLen: 1, Message: "Board name is required"},
}}

var taskFields = []validate.Field{
	{Name: "title", Label: "Title", Kind: validate.String, Required: true, MinLen: 1, Message: "title is required"},
	{Name: "description", Label: "Description", Kind: validate.String, Nullable: true},
	{Name: "status", Label: "Status", Kind: validate.Enum, Values: model.TaskStatuses},
	{Name: "priority", Label: "Priority", Kind: validate.Enum, Values: model.TaskPriorities, Default: "medium"},
	{Name: "dueDate", Label: "Due date", Kind: validate.Date, Nullable: true, Message: "Invalid dueDate"},
}

var (
	taskCreateSchema = validate.Schema{Entity: "Task", Fields: append([]validate.Field{
		{Name: "boardId", Label: "Board id", Kind: validate.String, Required: true, MinLen: 1, Message: "boardId is required"},
	}, taskFields...)}
	taskUpdateSchema = validate.Schema{Entity: "Task", Fields: taskFields}
)

var (
	errBoardNotFound = apperr.NotFound("Board not found")
	errTaskNotFound  = apperr.NotFound("Task not found")
	errForbidden     = apperr.Forbidden("Forbidden")
)

type Service struct {
	boards repository.BoardStore
	tasks  repository.TaskStore
	now    func() time.Time
	logger *zap.Logger
}

func NewService(boards repository.BoardStore, tasks repository.TaskStore, logger *zap.Logger) *Service {
	return &Service{
		boards: boards,
		tasks:  tasks,
		now:    func() time.Time { return time.Now().UTC() },
		logger: logger,
	}
}

func (s *Service) List(ctx context.Context, userID string) ([]model.Board, error) {
	out, err := s.boards.List(ctx, userID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id, userID string) (*model.Board, error) {
	b, err := s.boards.Get(ctx, id, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errBoardNotFound
		}
		return nil, apperr.Internal(err)
	}
	return b, nil
}

func (s *Service) Create(ctx context.Context, userID string, body map[string]any) (*model.Board, error) {
	now := s.now()
	v, err := boardSchema.Create(body, now)
	if err != nil {
		return nil, apperr.Validation(err.Error())
	}

	b := &model.Board{Name: v.String("name")}
	b.UserID = userID
	b.CreatedAt, b.UpdatedAt = now, now
	if err := s.boards.Create(ctx, b); err != nil {
		s.logger.Error("Failed to create board", zap.String("user_id", userID), zap.Error(err))
		return nil, apperr.Internal(err)
	}
	metrics.IncrementEntityMutation("board", "create")
	return b, nil
}

// Rename updates the board name.
func (s *Service) Rename(ctx context.Context, id, userID string, body map[string]any) (*model.Board, error) {
	v, err := boardSchema.Create(body, s.now())
	if err != nil {
		return nil, apperr.Validation(err.Error())
	}
	b, err := s.Get(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	b.Name = v.String("name")
	b.UpdatedAt = s.now()
	if err := s.boards.Update(ctx, b); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errBoardNotFound
		}
		return nil, apperr.Internal(err)
	}
	metrics.IncrementEntityMutation("board", "update")
	return b, nil
}

// Delete removes the board with all of its tasks.
func (s *Service) Delete(ctx context.Context, id, userID string) error {
	n, err := s.boards.DeleteWithTasks(ctx, id, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return errBoardNotFound
		}
		s.logger.Error("Failed to delete board", zap.String("board_id", id), zap.Error(err))
		return apperr.Internal(err)
	}
	metrics.IncrementEntityMutation("board", "delete")
	s.logger.Info("Board deleted", zap.String("board_id", id), zap.Int64("tasks", n))
	return nil
}

// Tasks lists the tasks of an owned board in display order.
func (s *Service) Tasks(ctx context.Context, boardID, userID string) ([]model.Task, error) {
	if _, err := s.Get(ctx, boardID, userID); err != nil {
		return nil, err
	}
	out, err := s.tasks.ListByBoard(ctx, boardID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return out, nil
}

// CreateTask appends a pending task to an owned board.
func (s *Service) CreateTask(ctx context.Context, userID string, body map[string]any) (*model.Task, error) {
	now := s.now()
	v, err := taskCreateSchema.Create(body, now)
	if err != nil {
		return nil, apperr.Validation(err.Error())
	}
	boardID := v.String("boardId")
	if _, err := uuid.Parse(boardID); err != nil {
		return nil, errBoardNotFound
	}
	if _, err := s.Get(ctx, boardID, userID); err != nil {
		return nil, err
	}

	t := &model.Task{}
	if err := validate.Apply(t, v); err != nil {
		return nil, apperr.Internal(err)
	}
	t.Status = model.TaskStatusPending
	t.CreatedAt, t.UpdatedAt = now, now
	if err := s.tasks.Append(ctx, t); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errBoardNotFound
		}
		s.logger.Error("Failed to create task", zap.String("board_id", boardID), zap.Error(err))
		return nil, apperr.Internal(err)
	}
	metrics.IncrementEntityMutation("task", "create")
	return t, nil
}

// ownedTask loads a task and checks that its board belongs to userID.
func (s *Service) ownedTask(ctx context.Context, id, userID string) (*model.Task, error) {
	t, err := s.tasks.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errTaskNotFound
		}
		return nil, apperr.Internal(err)
	}
	if _, err := s.boards.Get(ctx, t.BoardID, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.logger.Warn("Task access denied", zap.String("task_id", id), zap.String("user_id", userID))
			return nil, errForbidden
		}
		return nil, apperr.Internal(err)
	}
	return t, nil
}

// UpdateTask applies a partial update. A null description or dueDate clears it.
func (s *Service) UpdateTask(ctx context.Context, id, userID string, body map[string]any) (*model.Task, error) {
	v, err := taskUpdateSchema.Update(body)
	if err != nil {
		return nil, apperr.Validation(err.Error())
	}
	t, err := s.ownedTask(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	boardID, order, created := t.BoardID, t.Order, t.CreatedAt
	if err := validate.Apply(t, v); err != nil {
		return nil, apperr.Internal(err)
	}
	t.ID, t.BoardID, t.Order, t.CreatedAt = id, boardID, order, created
	t.UpdatedAt = s.now()
	if err := s.tasks.Update(ctx, t); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errTaskNotFound
		}
		return nil, apperr.Internal(err)
	}
	metrics.IncrementEntityMutation("task", "update")
	return t, nil
}

func (s *Service) DeleteTask(ctx context.Context, id, userID string) error {
	if _, err := s.ownedTask(ctx, id, userID); err != nil {
		return err
	}
	if err := s.tasks.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return errTaskNotFound
		}
		return apperr.Internal(err)
	}
	metrics.IncrementEntityMutation("task", "delete")
	return nil
}

// Reorder sets each task's order to its index in ids. Every task must sit on
// a board owned by userID; nothing changes otherwise.
func (s *Service) Reorder(ctx context.Context, userID string, ids []string) error {
	if len(ids) == 0 {
		return apperr.Validation("ids array is required")
	}
	for _, id := range ids {
		if _, err := uuid.Parse(id); err != nil {
			return apperr.Validation("Invalid task id in ids")
		}
	}

	if err := s.tasks.Reorder(ctx, userID, ids); err != nil {
		if errors.Is(err, repository.ErrForbidden) || errors.Is(err, repository.ErrNotFound) {
			return errForbidden
		}
		s.logger.Error("Failed to reorder tasks", zap.String("user_id", userID), zap.Error(err))
		return apperr.Internal(err)
	}
	metrics.IncrementEntityMutation("task", "reorder")
	return nil
}
