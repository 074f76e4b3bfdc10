package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"lifetracker/internal/apperr"
	"lifetracker/internal/model"
	"lifetracker/internal/service/tracker"
)

type TrackerHandler struct {
	habits *Resource[model.Habit, *model.Habit]
	svc    *tracker.Service
	logger *zap.Logger
}

func NewTrackerHandler(habits *Resource[model.Habit, *model.Habit], svc *tracker.Service, logger *zap.Logger) *TrackerHandler {
	return &TrackerHandler{habits: habits, svc: svc, logger: logger}
}

func (h *TrackerHandler) Register(g *gin.RouterGroup) {
	g.GET("/habits", h.ListHabits)
	g.POST("/habits", h.habits.Create)
	g.GET("/habits/:id", h.habits.Get)
	g.PUT("/habits/:id", h.habits.Update)
	g.DELETE("/habits/:id", h.DeleteHabit)
	g.POST("/habits/bulk-delete", h.BulkDelete)
	g.POST("/habits/cleanup", h.Cleanup)

	g.GET("/habit-tracker", h.HabitTracking)
	g.POST("/habit-tracker", h.TrackHabit)
	g.GET("/smoking-tracker", h.SmokingTracking)
	g.POST("/smoking-tracker", h.TrackSmoking)
}

func queryDays(c *gin.Context) (int, error) {
	s := c.Query("days")
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, apperr.Validation("days must be a positive number")
	}
	return n, nil
}

// ListHabits returns active habits only.
func (h *TrackerHandler) ListHabits(c *gin.Context) {
	out, err := h.svc.ActiveHabits(c.Request.Context(), userID(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// DeleteHabit deactivates, or removes permanently with ?hard=true.
func (h *TrackerHandler) DeleteHabit(c *gin.Context) {
	id, err := pathID(c, "id", "Habit")
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	res, err := h.svc.DeleteHabit(c.Request.Context(), id, userID(c), c.Query("hard") == "true")
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *TrackerHandler) BulkDelete(c *gin.Context) {
	var req tracker.BulkDeleteRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, h.logger, err)
		return
	}
	res, err := h.svc.BulkDelete(c.Request.Context(), userID(c), req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *TrackerHandler) Cleanup(c *gin.Context) {
	var req tracker.CleanupRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, h.logger, err)
		return
	}
	res, err := h.svc.Cleanup(c.Request.Context(), userID(c), req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *TrackerHandler) HabitTracking(c *gin.Context) {
	days, err := queryDays(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	res, err := h.svc.HabitTracking(c.Request.Context(), userID(c), days, c.Query("habitId"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *TrackerHandler) TrackHabit(c *gin.Context) {
	body, err := bindBody(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	res, err := h.svc.TrackHabit(c.Request.Context(), userID(c), body)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *TrackerHandler) SmokingTracking(c *gin.Context) {
	days, err := queryDays(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	res, err := h.svc.SmokingTracking(c.Request.Context(), userID(c), days)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *TrackerHandler) TrackSmoking(c *gin.Context) {
	body, err := bindBody(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	rec, err := h.svc.TrackSmoking(c.Request.Context(), userID(c), body)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}
