package expense

import (
	"net/http"
	"strconv"

	"bitwise74/expense-api/app/reply"
	"bitwise74/expense-api/internal"
	"bitwise74/expense-api/internal/store"

	"github.com/gin-gonic/gin"
)

// Trend returns the daily totals of the last ?days days (30 by default).
// Days without expenses are left out unless ?fill=zero is given.
func Trend(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	days, err := strconv.Atoi(c.DefaultQuery("days", strconv.Itoa(store.DefaultWindow)))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid days",
			"requestID": requestID,
		})
		return
	}

	fill := c.Query("fill")
	if fill != "" && fill != "zero" && fill != "none" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "fill must be either zero or none",
			"requestID": requestID,
		})
		return
	}

	trend, err := d.Expenses.DailyTrend(c.Request.Context(), userID, days, fill == "zero")
	if err != nil {
		reply.Error(c, err, "Expense")
		return
	}

	c.JSON(http.StatusOK, trend)
}
