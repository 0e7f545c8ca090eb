package auth

import (
	"net/http"
	"strings"
	"time"

	"bitwise74/expense-api/app/reply"
	"bitwise74/expense-api/internal"
	"bitwise74/expense-api/pkg/security"
	"bitwise74/expense-api/pkg/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type resetPasswordBody struct {
	Password string `json:"password"`
}

func ResetPassword(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	plain := strings.TrimSpace(c.Param("token"))
	if plain == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid or expired reset token",
			"requestID": requestID,
		})
		return
	}

	var data resetPasswordBody
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})
		return
	}

	if err := validators.PasswordValidator(data.Password); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     err.Error(),
			"requestID": requestID,
		})
		return
	}

	hash, err := d.Argon.GenerateFromPassword(data.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to hash password", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	user, err := d.Users.ResetPassword(c.Request.Context(), security.HashResetToken(plain), hash, time.Now())
	if err != nil {
		reply.Error(c, err, "User")
		return
	}

	token, ok := issueToken(c, d, user.ID)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Password updated",
		"token":   token,
	})
}
