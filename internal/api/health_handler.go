package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"lifetracker/internal/service/health"
)

type HealthHandler struct {
	svc    *health.Service
	logger *zap.Logger
}

func NewHealthHandler(svc *health.Service, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{svc: svc, logger: logger}
}

func (h *HealthHandler) Register(g *gin.RouterGroup) {
	g.GET("/health-tracker", h.Summary)
	g.POST("/health-tracker/weight", h.LogWeight)
	g.POST("/health-tracker/exercise", h.LogExercise)
	g.GET("/health-tracker/goals", h.Goals)
	g.POST("/health-tracker/goals", h.SetGoal)
	g.GET("/health-tracker/meals", h.SearchMeals)
	g.POST("/health-tracker/meals", h.LogMeal)

	g.GET("/diet-entries/summary", h.Nutrition)
	g.GET("/finance/summary", h.Finance)
}

func (h *HealthHandler) Summary(c *gin.Context) {
	res, err := h.svc.Summary(c.Request.Context(), userID(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *HealthHandler) LogWeight(c *gin.Context) {
	body, err := bindBody(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	entry, err := h.svc.LogWeight(c.Request.Context(), userID(c), body)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Weight entry added successfully", "entry": entry})
}

func (h *HealthHandler) LogExercise(c *gin.Context) {
	body, err := bindBody(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	entry, err := h.svc.LogExercise(c.Request.Context(), userID(c), body)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Exercise entry added successfully", "entry": entry})
}

func (h *HealthHandler) Goals(c *gin.Context) {
	goals, err := h.svc.Goals(c.Request.Context(), userID(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"goals": goals})
}

func (h *HealthHandler) SetGoal(c *gin.Context) {
	body, err := bindBody(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	goal, err := h.svc.SetGoal(c.Request.Context(), userID(c), body)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Health goal set successfully", "goal": goal})
}

func (h *HealthHandler) SearchMeals(c *gin.Context) {
	meals, err := h.svc.SearchMeals(c.Request.Context(), c.Query("query"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"meals": meals})
}

func (h *HealthHandler) LogMeal(c *gin.Context) {
	body, err := bindBody(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	entry, err := h.svc.LogMeal(c.Request.Context(), userID(c), body)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Meal entry added successfully", "entry": entry})
}

func (h *HealthHandler) Nutrition(c *gin.Context) {
	res, err := h.svc.Nutrition(c.Request.Context(), userID(c), c.Query("date"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *HealthHandler) Finance(c *gin.Context) {
	res, err := h.svc.Finance(c.Request.Context(), userID(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
