package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AppError codes, mapped onto HTTP statuses at the handler boundary.
const (
	CodeValidation   = "validation"
	CodeNotFound     = "not_found"
	CodeConflict     = "conflict"
	CodeRateLimited  = "rate_limited"
	CodeUnauthorized = "unauthorized"
	CodeUpstream     = "upstream"
)

// AppError is a typed business-rule rejection. Services return it instead of
// letting failures cross the boundary as generic errors.
type AppError struct {
	Code       string
	Message    string
	RetryAfter int // seconds, only for rate_limited
}

func (e *AppError) Error() string {
	return e.Message
}

func NewValidationError(msg string) *AppError {
	return &AppError{Code: CodeValidation, Message: msg}
}

func NewNotFoundError(msg string) *AppError {
	return &AppError{Code: CodeNotFound, Message: msg}
}

func NewConflictError(msg string) *AppError {
	return &AppError{Code: CodeConflict, Message: msg}
}

func NewRateLimitedError(msg string, retryAfter int) *AppError {
	return &AppError{Code: CodeRateLimited, Message: msg, RetryAfter: retryAfter}
}

func NewUnauthorizedError(msg string) *AppError {
	return &AppError{Code: CodeUnauthorized, Message: msg}
}

func NewUpstreamError(msg string) *AppError {
	return &AppError{Code: CodeUpstream, Message: msg}
}

func statusFor(code string) int {
	switch code {
	case CodeValidation:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConflict:
		return http.StatusConflict
	case CodeRateLimited:
		return http.StatusTooManyRequests
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeUpstream:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// RespondError writes a typed AppError as JSON; anything else becomes a
// generic 500 with detail kept server-side only.
func RespondError(c *gin.Context, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		body := gin.H{"success": false, "message": appErr.Message}
		if appErr.RetryAfter > 0 {
			body["retryAfter"] = appErr.RetryAfter
		}
		c.JSON(statusFor(appErr.Code), body)
		return
	}
	GetLogger().Error("unhandled error", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Something went wrong."})
}

// ErrorHandler is a middleware to catch panics and return structured errors.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				GetLogger().Error("Unhandled panic", zap.Any("error", err))
				c.JSON(http.StatusInternalServerError, gin.H{
					"success": false,
					"message": "Something went wrong.",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}
