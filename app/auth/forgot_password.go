package auth

import (
	"errors"
	"net/http"
	"strings"

	"bitwise74/expense-api/app/reply"
	"bitwise74/expense-api/internal"
	"bitwise74/expense-api/internal/store"
	"bitwise74/expense-api/pkg/security"
	"bitwise74/expense-api/pkg/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type forgotPasswordBody struct {
	Email string `json:"email"`
}

func ForgotPassword(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	var data forgotPasswordBody
	if err := c.ShouldBindJSON(&data); err != nil || strings.TrimSpace(data.Email) == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Email field can't be empty",
			"requestID": requestID,
		})
		return
	}

	ctx := c.Request.Context()

	user, err := d.Users.ByEmail(ctx, validators.NormalizeEmail(data.Email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error":     "No user with that email",
				"requestID": requestID,
			})
			return
		}

		reply.Error(c, err, "User")
		return
	}

	token, err := security.MakeResetToken(d.Settings.ResetTokenTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to generate reset token", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if err := d.Users.SetResetToken(ctx, user.ID, token.Hash, token.ExpiresAt); err != nil {
		reply.Error(c, err, "User")
		return
	}

	link := strings.TrimSuffix(d.Settings.FrontendURL, "/") + "/reset-password/" + token.Plain

	if err := d.Mailer.SendPasswordReset(user.Email, link); err != nil {
		// The token is useless if the user never gets it
		if err := d.Users.ClearResetToken(ctx, user.ID); err != nil {
			zap.L().Error("Failed to clear reset token", zap.Error(err), zap.String("requestID", requestID))
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Failed to send password reset email",
			"requestID": requestID,
		})

		zap.L().Error("Failed to send password reset email", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Password reset link sent",
	})
}
