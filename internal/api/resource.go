package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"lifetracker/internal/apperr"
	"lifetracker/internal/model"
	"lifetracker/internal/repository"
	"lifetracker/internal/service/record"
)

// Resource serves the authenticated CRUD routes of one entity.
type Resource[T any, P model.RecordPtr[T]] struct {
	svc         *record.Service[T, P]
	defaultDays int
	logger      *zap.Logger
}

func NewResource[T any, P model.RecordPtr[T]](svc *record.Service[T, P], logger *zap.Logger) *Resource[T, P] {
	return &Resource[T, P]{svc: svc, logger: logger}
}

// WithDefaultDays limits unfiltered lists to the last n days.
func (h *Resource[T, P]) WithDefaultDays(n int) *Resource[T, P] {
	h.defaultDays = n
	return h
}

// Register mounts list, create, get, update and delete under path.
func (h *Resource[T, P]) Register(g *gin.RouterGroup, path string) {
	g.GET(path, h.List)
	g.POST(path, h.Create)
	g.GET(path+"/:id", h.Get)
	g.PUT(path+"/:id", h.Update)
	g.DELETE(path+"/:id", h.Delete)
}

// listQuery reads date, from, to, days and limit. Dates are YYYY-MM-DD and
// both bounds are inclusive days.
func listQuery(c *gin.Context, defaultDays int) (repository.ListQuery, error) {
	var q repository.ListQuery
	day := func(name string) (time.Time, bool, error) {
		s := c.Query(name)
		if s == "" {
			return time.Time{}, false, nil
		}
		t, err := model.ParseDate(s)
		if err != nil {
			return time.Time{}, false, apperr.Validation("Invalid date format")
		}
		return model.TruncateDay(t), true, nil
	}

	if d, ok, err := day("date"); err != nil {
		return q, err
	} else if ok {
		return repository.ListQuery{From: d, To: d.AddDate(0, 0, 1)}, nil
	}

	from, hasFrom, err := day("from")
	if err != nil {
		return q, err
	}
	to, hasTo, err := day("to")
	if err != nil {
		return q, err
	}
	if hasFrom {
		q.From = from
	}
	if hasTo {
		q.To = to.AddDate(0, 0, 1)
	}

	days := defaultDays
	if s := c.Query("days"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			return q, apperr.Validation("days must be a positive number")
		}
		days = n
	}
	if !hasFrom && !hasTo && days > 0 {
		q.From = model.TruncateDay(time.Now()).AddDate(0, 0, -days+1)
	}

	if s := c.Query("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			return q, apperr.Validation("limit must be a positive number")
		}
		q.Limit = n
	}
	return q, nil
}

func (h *Resource[T, P]) List(c *gin.Context) {
	q, err := listQuery(c, h.defaultDays)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	out, err := h.svc.List(c.Request.Context(), userID(c), q)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Resource[T, P]) Create(c *gin.Context) {
	body, err := bindBody(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	rec, err := h.svc.Create(c.Request.Context(), userID(c), body)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, rec)
}

func (h *Resource[T, P]) Get(c *gin.Context) {
	id, err := pathID(c, "id", h.svc.Entity())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	rec, err := h.svc.Get(c.Request.Context(), id, userID(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (h *Resource[T, P]) Update(c *gin.Context) {
	id, err := pathID(c, "id", h.svc.Entity())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	body, err := bindBody(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	rec, err := h.svc.Update(c.Request.Context(), id, userID(c), body)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (h *Resource[T, P]) Delete(c *gin.Context) {
	id, err := pathID(c, "id", h.svc.Entity())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id, userID(c)); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": h.svc.Entity() + " deleted successfully"})
}
