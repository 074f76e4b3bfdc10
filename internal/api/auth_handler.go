package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"lifetracker/internal/model"
	"lifetracker/internal/service/auth"
)

type AuthHandler struct {
	svc          *auth.Service
	secureCookie bool
	logger       *zap.Logger
}

func NewAuthHandler(svc *auth.Service, secureCookie bool, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, secureCookie: secureCookie, logger: logger}
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type publicUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

func toPublic(u *model.User) *publicUser {
	if u == nil {
		return nil
	}
	return &publicUser{ID: u.ID, Username: u.Username}
}

func (h *AuthHandler) setSession(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(sessionCookie, token, maxAge, "/", "", h.secureCookie, true)
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req credentials
	if err := bindJSON(c, &req); err != nil {
		respondError(c, h.logger, err)
		return
	}
	if _, err := h.svc.Register(c.Request.Context(), req.Username, req.Password); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Registration successful"})
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req credentials
	if err := bindJSON(c, &req); err != nil {
		respondError(c, h.logger, err)
		return
	}
	token, u, err := h.svc.Login(c.Request.Context(), req.Username, req.Password, c.ClientIP())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	h.setSession(c, token, int(h.svc.TTL().Seconds()))
	c.JSON(http.StatusOK, gin.H{"user": toPublic(u)})
}

// Logout handles POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	h.setSession(c, "", -1)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// Me answers 200 with the session user or null.
func (h *AuthHandler) Me(c *gin.Context) {
	u, err := h.svc.Authenticate(c.Request.Context(), sessionToken(c.Request))
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"user": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": toPublic(u)})
}
