package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"lifetracker/internal/service/board"
)

type BoardHandler struct {
	svc    *board.Service
	logger *zap.Logger
}

func NewBoardHandler(svc *board.Service, logger *zap.Logger) *BoardHandler {
	return &BoardHandler{svc: svc, logger: logger}
}

func (h *BoardHandler) Register(g *gin.RouterGroup) {
	g.GET("/boards", h.ListBoards)
	g.POST("/boards", h.CreateBoard)
	g.GET("/boards/:id", h.GetBoard)
	g.PUT("/boards/:id", h.RenameBoard)
	g.DELETE("/boards/:id", h.DeleteBoard)

	g.GET("/tasks/:boardId", h.ListTasks)
	g.POST("/tasks", h.CreateTask)
	g.PUT("/tasks/:id", h.UpdateTask)
	g.DELETE("/tasks/:id", h.DeleteTask)
	g.PATCH("/tasks/reorder", h.Reorder)
}

func (h *BoardHandler) ListBoards(c *gin.Context) {
	boards, err := h.svc.List(c.Request.Context(), userID(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"boards": boards})
}

func (h *BoardHandler) GetBoard(c *gin.Context) {
	id, err := pathID(c, "id", "Board")
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	b, err := h.svc.Get(c.Request.Context(), id, userID(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"board": b})
}

func (h *BoardHandler) CreateBoard(c *gin.Context) {
	body, err := bindBody(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	b, err := h.svc.Create(c.Request.Context(), userID(c), body)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"board": b})
}

func (h *BoardHandler) RenameBoard(c *gin.Context) {
	id, err := pathID(c, "id", "Board")
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	body, err := bindBody(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	b, err := h.svc.Rename(c.Request.Context(), id, userID(c), body)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"board": b})
}

func (h *BoardHandler) DeleteBoard(c *gin.Context) {
	id, err := pathID(c, "id", "Board")
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id, userID(c)); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Board deleted"})
}

func (h *BoardHandler) ListTasks(c *gin.Context) {
	boardID, err := pathID(c, "boardId", "Board")
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	tasks, err := h.svc.Tasks(c.Request.Context(), boardID, userID(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tasks": tasks})
}

func (h *BoardHandler) CreateTask(c *gin.Context) {
	body, err := bindBody(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	t, err := h.svc.CreateTask(c.Request.Context(), userID(c), body)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"task": t})
}

func (h *BoardHandler) UpdateTask(c *gin.Context) {
	id, err := pathID(c, "id", "Task")
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	body, err := bindBody(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	t, err := h.svc.UpdateTask(c.Request.Context(), id, userID(c), body)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"task": t})
}

func (h *BoardHandler) DeleteTask(c *gin.Context) {
	id, err := pathID(c, "id", "Task")
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if err := h.svc.DeleteTask(c.Request.Context(), id, userID(c)); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Task deleted"})
}

// Reorder handles PATCH /api/tasks/reorder
func (h *BoardHandler) Reorder(c *gin.Context) {
	var req struct {
		IDs []string `json:"ids"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.logger, errIDsRequired)
		return
	}
	if err := h.svc.Reorder(c.Request.Context(), userID(c), req.IDs); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Reordered"})
}
