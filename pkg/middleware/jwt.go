package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"bitwise74/expense-api/internal/model"
	"bitwise74/expense-api/internal/store"
	"bitwise74/expense-api/pkg/security"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type userLookup interface {
	ByID(ctx context.Context, id string) (*model.User, error)
}

// NewJWTMiddleware checks the bearer token of a request and sets userID. Tokens
// of users that no longer exist are rejected.
func NewJWTMiddleware(secret string, users userLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.MustGet("requestID").(string)

		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":     "Missing authorization header",
				"requestID": requestID,
			})
			return
		}

		tokenStr, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(tokenStr) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":     "Authorization header must use the Bearer scheme",
				"requestID": requestID,
			})
			return
		}

		claims, err := security.ParseAuthToken(secret, strings.TrimSpace(tokenStr))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":     "Authorization token invalid or expired",
				"requestID": requestID,
			})

			zap.L().Debug("Failed to parse token", zap.Error(err), zap.String("requestID", requestID))
			return
		}

		if _, err := users.ByID(c.Request.Context(), claims.UserID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"error":     "User not found",
					"requestID": requestID,
				})
				return
			}

			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error":     "Internal server error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to check if user exists", zap.Error(err), zap.String("requestID", requestID))
			return
		}

		c.Set("userID", claims.UserID)
		c.Next()
	}
}
