package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Client handles communication with the platform REST backend. Every
// endpoint returns the common envelope {success, code, message, data}; the
// client unwraps it and translates failures into typed errors.
type Client struct {
	baseURL         string
	httpClient      *http.Client
	logger          *zap.Logger
	paymentPrimary  string
	paymentFallback string
}

// New creates a new backend client
func New(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger:          logger,
		paymentPrimary:  "/api/payments",
		paymentFallback: "/api/v1/payments",
	}
}

// SetPaymentPaths overrides the primary and fallback payment base paths
func (c *Client) SetPaymentPaths(primary, fallback string) {
	c.paymentPrimary = primary
	c.paymentFallback = fallback
}

// Ping checks that the backend is reachable. Any HTTP response counts; only
// transport failures are reported.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.transportError(err)
	}
	resp.Body.Close()
	return nil
}

// envelope is the uniform wrapper every backend response uses
type envelope struct {
	Success bool            `json:"success"`
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// do issues one request and unwraps the envelope into out. A success=false
// envelope becomes an *APIError regardless of HTTP status; a non-envelope
// error body becomes an *APIError with an empty message.
func (c *Client) do(ctx context.Context, method, path, token string, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Backend request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err))
		return c.transportError(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConnectivity, err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrAuthRequired
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		// Not an envelope at all (e.g. a default 404 page). Keep the
		// message empty so callers can tell a route miss from a real
		// application error.
		if resp.StatusCode >= http.StatusBadRequest {
			return &APIError{StatusCode: resp.StatusCode}
		}
		return fmt.Errorf("backend: unexpected response for %s %s: %v", method, path, err)
	}

	if !env.Success {
		c.logger.Warn("Backend returned application error",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.Int("code", env.Code),
			zap.String("message", env.Message))
		return &APIError{StatusCode: resp.StatusCode, Code: env.Code, Message: env.Message}
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("failed to decode response data: %w", err)
		}
	}

	return nil
}

// transportError classifies a no-response failure: timeouts get their own
// sentinel, everything else is a connectivity failure.
func (c *Client) transportError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	return fmt.Errorf("%w: %v", ErrConnectivity, err)
}
