package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourorg/matchup-bff/internal/backend"
	"github.com/yourorg/matchup-bff/internal/payment"
	"github.com/yourorg/matchup-bff/internal/wizard"
)

// respondOK writes the platform envelope around data
func respondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"code":    0,
		"message": "",
		"data":    data,
	})
}

// respondError writes the platform envelope for a failure, translating the
// error into the message shown inline on the client
func respondError(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{
		"success": false,
		"code":    statusFor(err),
		"message": userMessage(err),
	})
}

// statusFor maps an error to the HTTP status the BFF answers with
func statusFor(err error) int {
	switch {
	case errors.Is(err, backend.ErrAuthRequired):
		return http.StatusUnauthorized
	case errors.Is(err, backend.ErrTimeout):
		return http.StatusGatewayTimeout
	case errors.Is(err, backend.ErrConnectivity):
		return http.StatusBadGateway
	}

	var apiErr *backend.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode >= http.StatusBadRequest {
		return apiErr.StatusCode
	}

	if isValidationError(err) {
		return http.StatusBadRequest
	}

	return http.StatusInternalServerError
}

// Inline messages for local validation failures.
var validationMessages = map[error]string{
	wizard.ErrNameRequired:      "프로젝트 이름을 입력해 주세요.",
	wizard.ErrBadProjectType:    "프로젝트 유형이 올바르지 않습니다.",
	wizard.ErrBadDeadline:       "마감일은 YYYY-MM-DD 형식이어야 합니다.",
	wizard.ErrNoPartnerSelected: "역할별로 최소 한 명의 파트너를 선택해 주세요.",
	wizard.ErrSubmitInFlight:    "요청을 처리하고 있습니다. 잠시만 기다려 주세요.",
	wizard.ErrNotEstimated:      "견적 단계를 먼저 완료해 주세요.",

	payment.ErrMissingApplication:  "결제 대상 정보가 없습니다.",
	payment.ErrReturnParamsMissing: "결제 정보가 누락되었습니다.",
	payment.ErrConfirmTimeout:      "결제 확인이 지연되고 있습니다. 잠시 후 다시 시도해 주세요.",
}

func isValidationError(err error) bool {
	for sentinel := range validationMessages {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

func userMessage(err error) string {
	for sentinel, message := range validationMessages {
		if errors.Is(err, sentinel) {
			return message
		}
	}
	return backend.UserMessage(err)
}
