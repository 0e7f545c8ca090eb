package auth

import (
	"net/http"
	"strings"

	"bitwise74/expense-api/app/reply"
	"bitwise74/expense-api/internal"
	"bitwise74/expense-api/internal/store"
	"bitwise74/expense-api/pkg/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type registerBody struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
}

func Register(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	var data registerBody
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})

		zap.L().Debug("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	data.Username = strings.TrimSpace(data.Username)
	data.Email = validators.NormalizeEmail(data.Email)
	data.Phone = strings.TrimSpace(data.Phone)

	for _, err := range []error{
		validators.UsernameValidator(data.Username),
		validators.EmailValidator(data.Email),
		validators.PasswordValidator(data.Password),
		validators.PhoneValidator(data.Phone),
	} {
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":     err.Error(),
				"requestID": requestID,
			})
			return
		}
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

	user, err := d.Users.Create(c.Request.Context(), store.NewUserInput{
		Username:     data.Username,
		Email:        data.Email,
		PasswordHash: hash,
		Phone:        data.Phone,
	})
	if err != nil {
		reply.Error(c, err, "User")
		return
	}

	token, ok := issueToken(c, d, user.ID)
	if !ok {
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"token": token,
		"user":  user,
	})
}
