package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"lifetracker/internal/apperr"
	"lifetracker/pkg/logger"
)

var (
	errInvalidJSON = apperr.Validation("Invalid JSON body")
	errIDsRequired = apperr.Validation("ids array is required")
)

// respondError writes err as {"error": msg}. Internal failures are logged
// with full detail and answered with a generic message.
func respondError(c *gin.Context, log *zap.Logger, err error) {
	ae := apperr.From(err)
	status := ae.HTTPStatus()
	if status >= http.StatusInternalServerError {
		logger.WithTrace(c.Request.Context(), log).Error("Request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
	}
	c.AbortWithStatusJSON(status, gin.H{"error": ae.Message})
}

// bindBody decodes a JSON object body. Numbers stay float64.
func bindBody(c *gin.Context) (map[string]any, error) {
	var body map[string]any
	dec := json.NewDecoder(c.Request.Body)
	if err := dec.Decode(&body); err != nil {
		if errors.Is(err, io.EOF) {
			return map[string]any{}, nil
		}
		return nil, errInvalidJSON
	}
	if body == nil {
		return map[string]any{}, nil
	}
	return body, nil
}

// bindJSON decodes a typed body.
func bindJSON(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return errInvalidJSON
	}
	return nil
}

// pathID reads a UUID path parameter.
func pathID(c *gin.Context, name, entity string) (string, error) {
	id := c.Param(name)
	if _, err := uuid.Parse(id); err != nil {
		return "", apperr.Validation("Invalid " + strings.ToLower(entity) + " id")
	}
	return id, nil
}
