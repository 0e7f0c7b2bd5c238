package backend

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for the failure kinds callers branch on.
var (
	// ErrTimeout means the request was sent but no response arrived in time.
	ErrTimeout = errors.New("backend: request timed out")

	// ErrConnectivity means no HTTP response was received at all.
	ErrConnectivity = errors.New("backend: no response from server")

	// ErrAuthRequired maps a 401 response; the caller should prompt a login.
	ErrAuthRequired = errors.New("backend: authentication required")

	// ErrNoPaymentEndpoint means both the primary and fallback payment paths
	// returned a bare 404.
	ErrNoPaymentEndpoint = errors.New("backend: no payment endpoint found")
)

// Localized user-facing messages for the failure kinds.
const (
	msgDefault      = "요청 처리에 실패했습니다."
	msgTimeout      = "요청 시간이 초과되었습니다. 잠시 후 다시 시도해 주세요."
	msgConnectivity = "네트워크 연결을 확인해 주세요."
	msgAuthRequired = "로그인이 필요합니다."
	msgServerFault  = "서버 오류가 발생했습니다. 잠시 후 다시 시도해 주세요."
)

// APIError is an application-level failure: either an envelope with
// success=false or an HTTP error status. Message holds the server-supplied
// message verbatim; it is empty when the server sent none (which matters for
// the payment 404 fallback decision).
type APIError struct {
	StatusCode int
	Code       int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("backend: request failed with status %d", e.StatusCode)
}

// UserMessage converts any error from this package into the message shown to
// the member. Server-supplied messages win; transport failures get their own
// wording; a 500 is always reported generically.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout):
		return msgTimeout
	case errors.Is(err, ErrConnectivity):
		return msgConnectivity
	case errors.Is(err, ErrAuthRequired):
		return msgAuthRequired
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if apiErr.StatusCode == http.StatusInternalServerError {
			return msgServerFault
		}
		if apiErr.Message != "" {
			return apiErr.Message
		}
	}
	return msgDefault
}

// isBare404 reports whether err is a 404 carrying no server message, the one
// condition that permits the payment path fallback.
func isBare404(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) &&
		apiErr.StatusCode == http.StatusNotFound &&
		apiErr.Message == ""
}
