package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/yourorg/matchup-bff/internal/backend"
	"github.com/yourorg/matchup-bff/internal/middleware"
	"github.com/yourorg/matchup-bff/internal/model"
)

var validate = validator.New()

// MemberHandler handles member and partner profile requests
type MemberHandler struct {
	backend *backend.Client
	logger  *zap.Logger
}

// NewMemberHandler creates a new member handler
func NewMemberHandler(client *backend.Client, logger *zap.Logger) *MemberHandler {
	return &MemberHandler{
		backend: client,
		logger:  logger,
	}
}

// Me handles retrieving the signed-in member's profile
// GET /api/v1/members/me
func (h *MemberHandler) Me(c *gin.Context) {
	member, err := h.backend.Member(c.Request.Context(), middleware.Token(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, member)
}

type memberUpdateRequest struct {
	Nickname     string `json:"nickname" validate:"required,min=2,max=20"`
	Introduction string `json:"introduction" validate:"max=500"`
	ProfileImage string `json:"profileImageUrl" validate:"omitempty,url"`
}

// UpdateMe handles editing the signed-in member's profile
// PUT /api/v1/members/me
func (h *MemberHandler) UpdateMe(c *gin.Context) {
	var req memberUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "요청 형식이 올바르지 않습니다."})
		return
	}

	if err := validate.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "프로필 정보가 올바르지 않습니다."})
		return
	}

	update := model.MemberUpdate{
		Nickname:     req.Nickname,
		Introduction: req.Introduction,
		ProfileImage: req.ProfileImage,
	}

	if err := h.backend.UpdateMember(c.Request.Context(), middleware.Token(c), update); err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, nil)
}

// Partner handles retrieving a partner's public profile
// GET /api/v1/partners/:id
func (h *MemberHandler) Partner(c *gin.Context) {
	memberID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "잘못된 파트너 번호입니다."})
		return
	}

	profile, err := h.backend.PartnerProfile(c.Request.Context(), middleware.Token(c), memberID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, profile)
}

// HomeFeed handles retrieving the home screen's project cards
// GET /api/v1/home
func (h *MemberHandler) HomeFeed(c *gin.Context) {
	feed, err := h.backend.HomeFeed(c.Request.Context(), middleware.Token(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, feed)
}

// ChatRooms handles retrieving the member's chat room listing
// GET /api/v1/chats/rooms
func (h *MemberHandler) ChatRooms(c *gin.Context) {
	rooms, err := h.backend.ChatRooms(c.Request.Context(), middleware.Token(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, rooms)
}
