package memory

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"lifetracker/internal/model"
	"lifetracker/internal/repository"
)

type dietStore struct {
	*table[model.Diet, *model.Diet]
}

func (s *dietStore) Create(_ context.Context, d *model.Diet) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d.IsActive {
		s.deactivateLocked(d.UserID, "")
	}
	s.insertLocked(d)
	return nil
}

func (s *dietStore) Update(_ context.Context, d *model.Diet) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.getLocked(d.ID, d.UserID); err != nil {
		return err
	}
	if d.IsActive {
		s.deactivateLocked(d.UserID, d.ID)
	}
	return s.updateLocked(d)
}

func (s *dietStore) deactivateLocked(userID, keepID string) {
	for id, d := range s.rows {
		if d.UserID == userID && id != keepID && d.IsActive {
			d.IsActive = false
			d.UpdatedAt = time.Now().UTC()
			s.rows[id] = d
		}
	}
}

func (s *dietStore) Active(_ context.Context, userID string) (*model.Diet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	active := s.listLocked(userID, repository.ListQuery{Limit: 1}, func(d *model.Diet) bool { return d.IsActive })
	if len(active) == 0 {
		return nil, repository.ErrNotFound
	}
	return &active[0], nil
}

type goalStore struct {
	mu   *sync.RWMutex
	rows map[string]model.HealthGoal
}

func (s *goalStore) Upsert(_ context.Context, g *model.HealthGoal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	for id, cur := range s.rows {
		if cur.UserID == g.UserID && cur.Type == g.Type {
			g.ID = id
			g.CreatedAt = cur.CreatedAt
			g.UpdatedAt = now
			s.rows[id] = *g
			return nil
		}
	}
	g.ID = uuid.NewString()
	g.CreatedAt, g.UpdatedAt = now, now
	s.rows[g.ID] = *g
	return nil
}

func (s *goalStore) List(_ context.Context, userID string) ([]model.HealthGoal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.HealthGoal, 0)
	for _, g := range s.rows {
		if g.UserID == userID {
			out = append(out, g)
		}
	}
	slices.SortFunc(out, func(a, b model.HealthGoal) int { return cmp.Compare(a.Type, b.Type) })
	return out, nil
}
