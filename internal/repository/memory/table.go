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

// table is a per-user record map guarded by the driver-wide lock.
type table[T any, P model.RecordPtr[T]] struct {
	mu     *sync.RWMutex
	rows   map[string]T
	dateOf func(*T) time.Time // nil: ordered by creation time, bounds ignored
}

func newTable[T any, P model.RecordPtr[T]](mu *sync.RWMutex, dateOf func(*T) time.Time) *table[T, P] {
	return &table[T, P]{mu: mu, rows: make(map[string]T), dateOf: dateOf}
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

func (t *table[T, P]) Create(_ context.Context, rec *T) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.insertLocked(rec)
	return nil
}

func (t *table[T, P]) insertLocked(rec *T) {
	o := P(rec).Owner()
	stamp(o)
	t.rows[o.ID] = *rec
}

func (t *table[T, P]) List(_ context.Context, userID string, q repository.ListQuery) ([]T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.listLocked(userID, q, nil), nil
}

func (t *table[T, P]) listLocked(userID string, q repository.ListQuery, keep func(*T) bool) []T {
	out := make([]T, 0)
	for _, r := range t.rows {
		if P(&r).Owner().UserID != userID {
			continue
		}
		if keep != nil && !keep(&r) {
			continue
		}
		if t.dateOf != nil {
			d := t.dateOf(&r)
			if !q.From.IsZero() && d.Before(q.From) {
				continue
			}
			if !q.To.IsZero() && !d.Before(q.To) {
				continue
			}
		}
		out = append(out, r)
	}
	slices.SortFunc(out, t.compare)
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out
}

// compare orders newest first: by date when the table has one, then creation time.
func (t *table[T, P]) compare(a, b T) int {
	if t.dateOf != nil {
		if c := t.dateOf(&b).Compare(t.dateOf(&a)); c != 0 {
			return c
		}
	}
	oa, ob := P(&a).Owner(), P(&b).Owner()
	if c := ob.CreatedAt.Compare(oa.CreatedAt); c != 0 {
		return c
	}
	return cmp.Compare(oa.ID, ob.ID)
}

func (t *table[T, P]) Get(_ context.Context, id, userID string) (*T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.getLocked(id, userID)
}

func (t *table[T, P]) getLocked(id, userID string) (*T, error) {
	r, ok := t.rows[id]
	if !ok || P(&r).Owner().UserID != userID {
		return nil, repository.ErrNotFound
	}
	return &r, nil
}

func (t *table[T, P]) Update(_ context.Context, rec *T) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.updateLocked(rec)
}

func (t *table[T, P]) updateLocked(rec *T) error {
	o := P(rec).Owner()
	cur, err := t.getLocked(o.ID, o.UserID)
	if err != nil {
		return err
	}
	o.CreatedAt = P(cur).Owner().CreatedAt
	if o.UpdatedAt.IsZero() {
		o.UpdatedAt = time.Now().UTC()
	}
	t.rows[o.ID] = *rec
	return nil
}

func (t *table[T, P]) Delete(_ context.Context, id, userID string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, err := t.getLocked(id, userID); err != nil {
		return err
	}
	delete(t.rows, id)
	return nil
}
