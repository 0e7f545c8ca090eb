// Package reply turns domain errors into JSON error responses
package reply

import (
	"errors"
	"net/http"

	"bitwise74/expense-api/internal/ai"
	"bitwise74/expense-api/internal/store"
	"bitwise74/expense-api/pkg/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Fail aborts the request with code and msg
func Fail(c *gin.Context, code int, msg string) {
	c.AbortWithStatusJSON(code, gin.H{
		"error":     msg,
		"requestID": c.GetString("requestID"),
	})
}

// Status maps err onto the HTTP status code it's reported with
func Status(err error) int {
	var (
		up  *ai.UpstreamError
		dec *ai.DecodeError
	)

	switch {
	case validators.IsValidation(err),
		errors.Is(err, store.ErrInvalidResetToken),
		errors.Is(err, ai.ErrInsufficientHistory):
		return http.StatusBadRequest
	case errors.Is(err, store.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, store.ErrConflict):
		return http.StatusConflict
	case errors.As(err, &up), errors.As(err, &dec):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Error reports err to the client. what names the resource in not found
// messages and the failed action in the server log.
func Error(c *gin.Context, err error, what string) {
	requestID := c.GetString("requestID")

	switch code := Status(err); code {
	case http.StatusNotFound:
		Fail(c, code, what+" not found")
	case http.StatusForbidden:
		Fail(c, code, "You don't have access to this "+what)
	case http.StatusBadRequest, http.StatusConflict:
		Fail(c, code, err.Error())
	case http.StatusBadGateway:
		Fail(c, code, err.Error())

		zap.L().Warn("AI request failed", zap.Error(err), zap.String("requestID", requestID))
	default:
		Fail(c, code, "Internal server error")

		zap.L().Error("Request failed", zap.String("resource", what), zap.Error(err), zap.String("requestID", requestID))
	}
}
