// Package record is the generic per-user CRUD service. Each entity is described
// by a Definition: its field schemas and the transitions applied on write.
package record

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"lifetracker/internal/apperr"
	"lifetracker/internal/model"
	"lifetracker/internal/repository"
	"lifetracker/internal/validate"
	"lifetracker/pkg/metrics"
)

type Definition[T any] struct {
	Entity string          // display name, e.g. "Expense"
	Create validate.Schema // checks for POST bodies
	Update validate.Schema // checks for PUT bodies; empty means Create

	// OnCreate runs after the values are applied to a new record.
	OnCreate func(rec *T, v validate.Values, now time.Time)
	// OnUpdate runs after the values are applied; prev is the stored record.
	OnUpdate func(rec, prev *T, v validate.Values, now time.Time)
}

type Service[T any, P model.RecordPtr[T]] struct {
	store  repository.OwnedStore[T]
	def    Definition[T]
	now    func() time.Time
	logger *zap.Logger
}

func NewService[T any, P model.RecordPtr[T]](store repository.OwnedStore[T], def Definition[T], logger *zap.Logger) *Service[T, P] {
	if len(def.Update.Fields) == 0 {
		def.Update = def.Create
	}
	return &Service[T, P]{
		store:  store,
		def:    def,
		now:    func() time.Time { return time.Now().UTC() },
		logger: logger,
	}
}

// WithClock replaces the time source.
func (s *Service[T, P]) WithClock(now func() time.Time) *Service[T, P] {
	s.now = now
	return s
}

func (s *Service[T, P]) Entity() string { return s.def.Entity }

func (s *Service[T, P]) notFound() error {
	return apperr.NotFound(s.def.Entity + " not found")
}

func (s *Service[T, P]) metricName() string {
	return strings.ToLower(s.def.Entity)
}

// Create validates body, fills defaults and stores a record owned by userID.
func (s *Service[T, P]) Create(ctx context.Context, userID string, body map[string]any) (*T, error) {
	now := s.now()
	v, err := s.def.Create.Create(body, now)
	if err != nil {
		return nil, apperr.Validation(err.Error())
	}

	var rec T
	if err := validate.Apply(&rec, v); err != nil {
		return nil, apperr.Internal(err)
	}
	o := P(&rec).Owner()
	o.ID = ""
	o.UserID = userID
	o.CreatedAt, o.UpdatedAt = now, now
	if s.def.OnCreate != nil {
		s.def.OnCreate(&rec, v, now)
	}

	if err := s.store.Create(ctx, &rec); err != nil {
		s.logger.Error("Failed to create record", zap.String("entity", s.def.Entity), zap.Error(err))
		return nil, apperr.Internal(err)
	}

	metrics.IncrementEntityMutation(s.metricName(), "create")
	return &rec, nil
}

// Insert stores an already built record, used by composite endpoints.
func (s *Service[T, P]) Insert(ctx context.Context, userID string, rec *T) error {
	now := s.now()
	o := P(rec).Owner()
	o.UserID = userID
	o.CreatedAt, o.UpdatedAt = now, now
	if err := s.store.Create(ctx, rec); err != nil {
		s.logger.Error("Failed to insert record", zap.String("entity", s.def.Entity), zap.Error(err))
		return apperr.Internal(err)
	}
	metrics.IncrementEntityMutation(s.metricName(), "create")
	return nil
}

func (s *Service[T, P]) List(ctx context.Context, userID string, q repository.ListQuery) ([]T, error) {
	out, err := s.store.List(ctx, userID, q)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return out, nil
}

func (s *Service[T, P]) Get(ctx context.Context, id, userID string) (*T, error) {
	rec, err := s.store.Get(ctx, id, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, s.notFound()
		}
		return nil, apperr.Internal(err)
	}
	return rec, nil
}

// Update applies only the supplied fields.
func (s *Service[T, P]) Update(ctx context.Context, id, userID string, body map[string]any) (*T, error) {
	v, err := s.def.Update.Update(body)
	if err != nil {
		return nil, apperr.Validation(err.Error())
	}

	rec, err := s.Get(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	prev := *rec

	if err := validate.Apply(rec, v); err != nil {
		return nil, apperr.Internal(err)
	}
	now := s.now()
	o := P(rec).Owner()
	o.ID, o.UserID = id, userID
	o.UpdatedAt = now
	if s.def.OnUpdate != nil {
		s.def.OnUpdate(rec, &prev, v, now)
	}

	if err := s.store.Update(ctx, rec); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, s.notFound()
		}
		s.logger.Error("Failed to update record", zap.String("entity", s.def.Entity), zap.Error(err))
		return nil, apperr.Internal(err)
	}

	metrics.IncrementEntityMutation(s.metricName(), "update")
	return rec, nil
}

func (s *Service[T, P]) Delete(ctx context.Context, id, userID string) error {
	if err := s.store.Delete(ctx, id, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return s.notFound()
		}
		s.logger.Error("Failed to delete record", zap.String("entity", s.def.Entity), zap.Error(err))
		return apperr.Internal(err)
	}

	metrics.IncrementEntityMutation(s.metricName(), "delete")
	return nil
}
