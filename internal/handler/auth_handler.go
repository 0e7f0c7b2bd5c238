package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yourorg/matchup-bff/internal/backend"
	"github.com/yourorg/matchup-bff/internal/session"
)

// AuthHandler handles authentication requests
type AuthHandler struct {
	backend  *backend.Client
	sessions *session.Store
	logger   *zap.Logger
}

// NewAuthHandler creates a new auth handler. sessions may be nil when Redis
// is disabled.
func NewAuthHandler(client *backend.Client, sessions *session.Store, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		backend:  client,
		sessions: sessions,
		logger:   logger,
	}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login handles member authentication
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "이메일과 비밀번호를 입력해 주세요."})
		return
	}

	result, err := h.backend.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	// The token reference is written once here and read by every later
	// request; last-writer-wins is acceptable within a single session.
	if h.sessions != nil {
		if err := h.sessions.SetAccessToken(c.Request.Context(), result.MemberID, result.AccessToken); err != nil {
			h.logger.Warn("Failed to store access token reference", zap.Error(err))
		}
	}

	respondOK(c, result)
}
