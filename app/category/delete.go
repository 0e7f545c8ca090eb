package category

import (
	"net/http"

	"bitwise74/expense-api/app/reply"
	"bitwise74/expense-api/internal"

	"github.com/gin-gonic/gin"
)

func Delete(c *gin.Context, d *internal.Deps) {
	userID := c.MustGet("userID").(string)

	if err := d.Categories.Delete(c.Request.Context(), userID, c.Param("name")); err != nil {
		reply.Error(c, err, "Category")
		return
	}

	c.Status(http.StatusNoContent)
}
