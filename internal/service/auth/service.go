// Package auth registers users, checks credentials and resolves sessions.
package auth

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"lifetracker/internal/apperr"
	"lifetracker/internal/model"
	"lifetracker/internal/repository"
	"lifetracker/pkg/metrics"
	"lifetracker/pkg/rbac"
	"lifetracker/pkg/util"
)

const (
	minUsernameLen = 3
	minPasswordLen = 6
)

var errInvalidCredentials = apperr.Unauthorized("Invalid credentials")

type Service struct {
	users   repository.UserStore
	secret  string
	ttl     time.Duration
	limiter LoginLimiter
	logger  *zap.Logger
}

// NewService builds the auth service. A nil limiter disables login throttling.
func NewService(users repository.UserStore, secret string, ttl time.Duration, limiter LoginLimiter, logger *zap.Logger) *Service {
	if limiter == nil {
		limiter = NoopLimiter{}
	}
	return &Service{
		users:   users,
		secret:  secret,
		ttl:     ttl,
		limiter: limiter,
		logger:  logger,
	}
}

// TTL is the lifetime of issued tokens.
func (s *Service) TTL() time.Duration { return s.ttl }

func checkCredentials(username, password string) (string, string, error) {
	username = strings.TrimSpace(username)
	password = strings.TrimSpace(password)
	if username == "" || password == "" {
		return "", "", apperr.Validation("Username and password are required")
	}
	if utf8.RuneCountInString(username) < minUsernameLen {
		return "", "", apperr.Validation("Username must be at least 3 characters")
	}
	if utf8.RuneCountInString(password) < minPasswordLen {
		return "", "", apperr.Validation("Password must be at least 6 characters")
	}
	return username, password, nil
}

// Register creates a regular user.
func (s *Service) Register(ctx context.Context, username, password string) (*model.User, error) {
	return s.CreateUser(ctx, username, password, rbac.RoleUser)
}

// CreateUser creates a user with the given role.
func (s *Service) CreateUser(ctx context.Context, username, password, role string) (*model.User, error) {
	username, password, err := checkCredentials(username, password)
	if err != nil {
		return nil, err
	}
	if !rbac.ValidRole(role) {
		return nil, apperr.Validation("Invalid role")
	}

	hash, err := util.HashPassword(password)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	u := &model.User{
		Username:     username,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperr.Conflict("Username already exists")
		}
		return nil, apperr.Internal(err)
	}

	metrics.IncrementAuthEvent("register")
	s.logger.Info("User registered", zap.String("user_id", u.ID), zap.String("role", role))
	return u, nil
}

// Login checks credentials and returns a signed token. Unknown users and
// wrong passwords fail identically.
func (s *Service) Login(ctx context.Context, username, password, clientIP string) (string, *model.User, error) {
	username, password, err := checkCredentials(username, password)
	if err != nil {
		return "", nil, err
	}

	key := util.FormatLoginKey(username, clientIP)
	if !s.limiter.Allow(ctx, key) {
		metrics.IncrementAuthEvent("login_throttled")
		s.logger.Warn("Login throttled", zap.String("username", username), zap.String("client_ip", clientIP))
		return "", nil, apperr.TooManyRequests("Too many login attempts")
	}

	u, err := s.users.GetByUsername(ctx, username)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return "", nil, apperr.Internal(err)
	}
	if u == nil || !util.CheckPassword(password, u.PasswordHash) {
		s.limiter.Fail(ctx, key)
		metrics.IncrementAuthEvent("login_failure")
		return "", nil, errInvalidCredentials
	}

	token, err := util.GenerateJWT(u.ID, u.Username, s.secret, s.ttl)
	if err != nil {
		return "", nil, apperr.Internal(err)
	}

	s.limiter.Reset(ctx, key)
	metrics.IncrementAuthEvent("login_success")
	s.logger.Info("User logged in", zap.String("user_id", u.ID))
	return token, u, nil
}

// Authenticate verifies the token and reloads its user.
func (s *Service) Authenticate(ctx context.Context, token string) (*model.User, error) {
	if token == "" {
		return nil, apperr.Unauthorized("Unauthorized")
	}
	claims, err := util.ParseJWT(token, s.secret)
	if err != nil {
		s.logger.Debug("Rejected token", zap.Error(err))
		return nil, apperr.Unauthorized("Unauthorized")
	}

	u, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.Unauthorized("Unauthorized")
		}
		return nil, apperr.Internal(err)
	}
	return u, nil
}
