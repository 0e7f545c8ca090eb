package auth

import (
	"net/http"

	"bitwise74/expense-api/internal"
	"bitwise74/expense-api/pkg/security"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// issueToken signs a new auth token for userID. On failure the response is
// already written.
func issueToken(c *gin.Context, d *internal.Deps, userID string) (string, bool) {
	token, err := security.MakeAuthToken(d.Settings.JWTSecret, userID, d.Settings.TokenTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": c.GetString("requestID"),
		})

		zap.L().Error("Failed to generate JWT auth token", zap.Error(err), zap.String("requestID", c.GetString("requestID")))
		return "", false
	}

	return token, true
}
