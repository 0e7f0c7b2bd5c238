package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yourorg/matchup-bff/internal/backend"
	"github.com/yourorg/matchup-bff/internal/middleware"
	"github.com/yourorg/matchup-bff/internal/payment"
)

// PaymentHandler handles the payment flow endpoints
type PaymentHandler struct {
	backend *backend.Client
	cfg     payment.Config
	logger  *zap.Logger
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(client *backend.Client, cfg payment.Config, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		backend: client,
		cfg:     cfg,
		logger:  logger,
	}
}

type startPaymentRequest struct {
	ApplicationID int64 `json:"applicationId" binding:"required,gt=0"`
}

// Start handles entering the payment screen: prepare plus client-key, then
// the widget handoff parameters
// POST /api/v1/payments/start
func (h *PaymentHandler) Start(c *gin.Context) {
	var req startPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "결제 대상 정보가 없습니다."})
		return
	}

	coordinator := payment.New(h.backend, h.cfg, nil, h.logger)
	params, err := coordinator.Start(c.Request.Context(), middleware.Token(c), req.ApplicationID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, params)
}

// ConfirmReturn handles the gateway's success redirect: it confirms the
// payment with the query parameters and tells the client where to go next
// GET /api/v1/payments/confirm
func (h *PaymentHandler) ConfirmReturn(c *gin.Context) {
	confirm, ok := payment.ParseReturnParams(c.Request.URL.Query())

	coordinator := payment.New(h.backend, h.cfg, nil, h.logger)
	state, err := coordinator.ConfirmReturn(c.Request.Context(), middleware.Token(c), confirm, ok)

	if state == payment.StateSucceeded {
		respondOK(c, gin.H{
			"status":         "succeeded",
			"redirect":       "/",
			"redirectDelay":  coordinator.SuccessDelay().Milliseconds(),
			"replaceHistory": true,
		})
		return
	}

	h.logger.Warn("Payment confirmation failed", zap.Error(err))
	c.JSON(http.StatusOK, gin.H{
		"success": false,
		"message": userMessage(err),
		"data": gin.H{
			"status":  "failed",
			"retry":   "/payments",
			"home":    "/",
			"orderId": confirm.OrderID,
		},
	})
}
