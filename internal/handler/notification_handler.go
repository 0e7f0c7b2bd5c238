package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yourorg/matchup-bff/internal/backend"
	"github.com/yourorg/matchup-bff/internal/middleware"
	"github.com/yourorg/matchup-bff/internal/model"
	"github.com/yourorg/matchup-bff/internal/notify"
)

// NotificationHandler handles notification listing and click dispatch
type NotificationHandler struct {
	backend    *backend.Client
	dispatcher *notify.Dispatcher
	logger     *zap.Logger
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(client *backend.Client, dispatcher *notify.Dispatcher, logger *zap.Logger) *NotificationHandler {
	return &NotificationHandler{
		backend:    client,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// List handles retrieving one page of notifications
// GET /api/v1/notifications?cursor=<lastSeenId>&size=<n>
func (h *NotificationHandler) List(c *gin.Context) {
	cursor, _ := strconv.ParseInt(c.Query("cursor"), 10, 64)
	size, _ := strconv.Atoi(c.DefaultQuery("size", strconv.Itoa(backend.DefaultNotificationPageSize)))

	page, err := h.backend.Notifications(c.Request.Context(), middleware.Token(c), cursor, size)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, page)
}

type clickRequest struct {
	Notification model.Notification `json:"notification" binding:"required"`
	UnreadCount  int                `json:"unReadCount"`
}

// Click handles a tap on a notification: best-effort read marking and the
// navigation decision
// POST /api/v1/notifications/click
func (h *NotificationHandler) Click(c *gin.Context) {
	var req clickRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "알림 정보가 올바르지 않습니다."})
		return
	}

	decision := h.dispatcher.Dispatch(c.Request.Context(), middleware.Token(c), req.Notification, req.UnreadCount)
	respondOK(c, decision)
}

// AcceptInvitation handles accepting a partner invitation
// POST /api/v1/invitations/:id/accept
func (h *NotificationHandler) AcceptInvitation(c *gin.Context) {
	invitationID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "잘못된 초대 번호입니다."})
		return
	}

	applicationID, err := h.backend.AcceptInvitation(c.Request.Context(), middleware.Token(c), invitationID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, gin.H{"applicationId": applicationID})
}
