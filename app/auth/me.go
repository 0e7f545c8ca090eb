package auth

import (
	"net/http"

	"bitwise74/expense-api/app/reply"
	"bitwise74/expense-api/internal"

	"github.com/gin-gonic/gin"
)

func Me(c *gin.Context, d *internal.Deps) {
	userID := c.MustGet("userID").(string)

	user, err := d.Users.ByID(c.Request.Context(), userID)
	if err != nil {
		reply.Error(c, err, "User")
		return
	}

	c.JSON(http.StatusOK, user)
}
