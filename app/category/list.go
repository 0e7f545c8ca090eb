package category

import (
	"net/http"

	"bitwise74/expense-api/app/reply"
	"bitwise74/expense-api/internal"

	"github.com/gin-gonic/gin"
)

// List returns the default categories followed by the user's own
func List(c *gin.Context, d *internal.Deps) {
	userID := c.MustGet("userID").(string)

	entries, err := d.Categories.List(c.Request.Context(), userID)
	if err != nil {
		reply.Error(c, err, "Category")
		return
	}

	c.JSON(http.StatusOK, entries)
}

// Defaults returns the categories every user has. Doesn't need auth.
func Defaults(c *gin.Context, d *internal.Deps) {
	c.JSON(http.StatusOK, d.Categories.Defaults())
}
