package memory

import (
	"cmp"
	"context"
	"slices"
	"time"

	"github.com/google/uuid"

	"lifetracker/internal/model"
	"lifetracker/internal/repository"
)

type boardStore struct {
	*table[model.Board, *model.Board]
	tasks map[string]model.Task
}

func (s *boardStore) List(_ context.Context, userID string) ([]model.Board, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listLocked(userID, repository.ListQuery{}, nil), nil
}

func (s *boardStore) DeleteWithTasks(_ context.Context, id, userID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.getLocked(id, userID); err != nil {
		return 0, err
	}
	var n int64
	for taskID, t := range s.tasks {
		if t.BoardID == id {
			delete(s.tasks, taskID)
			n++
		}
	}
	delete(s.rows, id)
	return n, nil
}

func (s *boardStore) Count(context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.rows)), nil
}

type taskStore struct {
	boards *table[model.Board, *model.Board]
	rows   map[string]model.Task
}

func (s *taskStore) Append(_ context.Context, t *model.Task) error {
	s.boards.mu.Lock()
	defer s.boards.mu.Unlock()

	next := 0
	for _, existing := range s.rows {
		if existing.BoardID == t.BoardID && existing.Order >= next {
			next = existing.Order + 1
		}
	}
	t.Order = next
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}
	if t.UpdatedAt.IsZero() {
		t.UpdatedAt = t.CreatedAt
	}
	s.rows[t.ID] = *t
	return nil
}

func (s *taskStore) ListByBoard(_ context.Context, boardID string) ([]model.Task, error) {
	s.boards.mu.RLock()
	defer s.boards.mu.RUnlock()

	out := make([]model.Task, 0)
	for _, t := range s.rows {
		if t.BoardID == boardID {
			out = append(out, t)
		}
	}
	slices.SortFunc(out, func(a, b model.Task) int {
		if c := cmp.Compare(a.Order, b.Order); c != 0 {
			return c
		}
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	return out, nil
}

func (s *taskStore) Get(_ context.Context, id string) (*model.Task, error) {
	s.boards.mu.RLock()
	defer s.boards.mu.RUnlock()
	t, ok := s.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &t, nil
}

func (s *taskStore) Update(_ context.Context, t *model.Task) error {
	s.boards.mu.Lock()
	defer s.boards.mu.Unlock()
	cur, ok := s.rows[t.ID]
	if !ok {
		return repository.ErrNotFound
	}
	t.CreatedAt = cur.CreatedAt
	if t.UpdatedAt.IsZero() {
		t.UpdatedAt = time.Now().UTC()
	}
	s.rows[t.ID] = *t
	return nil
}

func (s *taskStore) Delete(_ context.Context, id string) error {
	s.boards.mu.Lock()
	defer s.boards.mu.Unlock()
	if _, ok := s.rows[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.rows, id)
	return nil
}

func (s *taskStore) Reorder(_ context.Context, userID string, ids []string) error {
	s.boards.mu.Lock()
	defer s.boards.mu.Unlock()

	for _, id := range ids {
		t, ok := s.rows[id]
		if !ok {
			return repository.ErrForbidden
		}
		if _, err := s.boards.getLocked(t.BoardID, userID); err != nil {
			return repository.ErrForbidden
		}
	}
	now := time.Now().UTC()
	for i, id := range ids {
		t := s.rows[id]
		t.Order = i
		t.UpdatedAt = now
		s.rows[id] = t
	}
	return nil
}

func (s *taskStore) Count(context.Context) (int64, error) {
	s.boards.mu.RLock()
	defer s.boards.mu.RUnlock()
	return int64(len(s.rows)), nil
}
