package expense

import (
	"net/http"

	"bitwise74/expense-api/app/reply"
	"bitwise74/expense-api/internal"

	"github.com/gin-gonic/gin"
)

// Stats returns the total spent per category
func Stats(c *gin.Context, d *internal.Deps) {
	userID := c.MustGet("userID").(string)

	stats, err := d.Expenses.SumByCategory(c.Request.Context(), userID)
	if err != nil {
		reply.Error(c, err, "Expense")
		return
	}

	c.JSON(http.StatusOK, stats)
}
