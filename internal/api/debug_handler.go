package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"lifetracker/internal/repository"
)

// DebugHandler reports runtime diagnostics to admins.
type DebugHandler struct {
	repos        *repository.Repositories
	environment  string
	hasJWTSecret bool
	logger       *zap.Logger
}

func NewDebugHandler(repos *repository.Repositories, environment string, hasJWTSecret bool, logger *zap.Logger) *DebugHandler {
	return &DebugHandler{repos: repos, environment: environment, hasJWTSecret: hasJWTSecret, logger: logger}
}

func (h *DebugHandler) Debug(c *gin.Context) {
	ctx := c.Request.Context()
	users, err := h.repos.Users.Count(ctx)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	boards, err := h.repos.Boards.Count(ctx)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	tasks, err := h.repos.Tasks.Count(ctx)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"timestamp":    time.Now().UTC().Format(time.RFC3339),
		"environment":  h.environment,
		"hasJWTSecret": h.hasJWTSecret,
		"database": gin.H{
			"driver":     h.repos.Driver,
			"userCount":  users,
			"boardCount": boards,
			"taskCount":  tasks,
		},
	})
}
