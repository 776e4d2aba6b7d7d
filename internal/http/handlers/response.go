package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/newmum-companion/internal/http/middleware"
	"github.com/tbourn/newmum-companion/internal/services"
)

// Error codes clients can branch on. Validation failures on a JSON body use
// validation_failed (422); malformed input or query parameters use
// bad_request (400).
const (
	ErrCodeBadRequest       = "bad_request"
	ErrCodeValidation       = "validation_failed"
	ErrCodeNotFound         = "not_found"
	ErrCodeMethodNotAllowed = "method_not_allowed"
	ErrCodeStoreFailed      = "store_failed"
	ErrCodeInternal         = middleware.CodeInternal
	ErrCodeRateLimited      = middleware.CodeRateLimited
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	RequestID string `json:"request_id,omitempty" example:"123e4567-e89b-12d3-a456-426614174000"`
	Code      string `json:"code" example:"bad_request"`
	Message   string `json:"message" example:"Week must be between 1 and 42"`
}

func fail(c *gin.Context, status int, code, msg string) {
	if status >= http.StatusInternalServerError {
		middleware.LoggerFrom(c).Error().
			Int("status", status).
			Str("code", code).
			Str("message", msg).
			Msg("request failed")
	}
	c.AbortWithStatusJSON(status, ErrorResponse{
		RequestID: middleware.RequestIDFrom(c),
		Code:      code,
		Message:   msg,
	})
}

// Fail writes the error envelope for callers outside this package, such as
// the router's 404 and 405 fallbacks.
func Fail(c *gin.Context, status int, code, msg string) { fail(c, status, code, msg) }

func ok(c *gin.Context, status int, body any) { c.JSON(status, body) }

// failFrom maps a service error onto status and code. validationStatus is
// 422 for body validation and 400 for query validation. Errors of unknown
// kind are reported as a generic 500 so internals never reach the client.
func failFrom(c *gin.Context, err error, validationStatus int) {
	switch services.KindOf(err) {
	case services.KindValidation:
		code := ErrCodeBadRequest
		if validationStatus == http.StatusUnprocessableEntity {
			code = ErrCodeValidation
		}
		fail(c, validationStatus, code, services.MessageOf(err))
	case services.KindNotFound:
		fail(c, http.StatusNotFound, ErrCodeNotFound, services.MessageOf(err))
	case services.KindStore:
		_ = c.Error(err)
		fail(c, http.StatusInternalServerError, ErrCodeStoreFailed, services.MessageOf(err))
	default:
		_ = c.Error(err)
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "internal server error")
	}
}
