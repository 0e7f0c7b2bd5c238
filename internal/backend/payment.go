package backend

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/yourorg/matchup-bff/internal/model"
)

type preparePaymentRequest struct {
	ApplicationID int64 `json:"applicationId"`
}

// PreparePayment asks the backend to compute the authoritative order id and
// amount for an application. The client never alters or re-derives the amount.
func (c *Client) PreparePayment(ctx context.Context, token string, applicationID int64) (model.PaymentOrder, error) {
	var order model.PaymentOrder
	err := c.doPayment(ctx, http.MethodPost, "/prepare", token, preparePaymentRequest{ApplicationID: applicationID}, &order)
	return order, err
}

type clientKeyResponse struct {
	ClientKey string `json:"clientKey"`
}

// PaymentClientKey fetches the payment gateway credential required before
// the widget handoff
func (c *Client) PaymentClientKey(ctx context.Context, token string) (string, error) {
	var result clientKeyResponse
	err := c.doPayment(ctx, http.MethodGet, "/client-key", token, nil, &result)
	return result.ClientKey, err
}

// ConfirmPayment finalizes a payment with the values the gateway handed back
// on its success redirect
func (c *Client) ConfirmPayment(ctx context.Context, token string, confirm model.PaymentConfirm) error {
	return c.doPayment(ctx, http.MethodPost, "/confirm", token, confirm, nil)
}

// doPayment issues a payment request against the primary base path and, only
// when that returns a 404 without a server message, retries exactly once
// against the fallback base path. A 404 carrying a message is a genuine
// application error and surfaces immediately, as does any other 4xx/5xx.
func (c *Client) doPayment(ctx context.Context, method, suffix, token string, body, out interface{}) error {
	primary := c.paymentPrimary + suffix
	err := c.do(ctx, method, primary, token, body, out)
	if err == nil || !isBare404(err) {
		return err
	}

	fallback := c.paymentFallback + suffix
	c.logger.Warn("Payment endpoint not found, trying fallback path",
		zap.String("primary", primary),
		zap.String("fallback", fallback))

	fallbackErr := c.do(ctx, method, fallback, token, body, out)
	if fallbackErr == nil || !isBare404(fallbackErr) {
		return fallbackErr
	}

	return fmt.Errorf("%w: tried %s and %s", ErrNoPaymentEndpoint, primary, fallback)
}
