package forecast

import (
	"net/http"

	"bitwise74/expense-api/app/reply"
	"bitwise74/expense-api/internal"

	"github.com/gin-gonic/gin"
)

// Predict forecasts the user's spending over the next 30 days from their most
// recent expenses
func Predict(c *gin.Context, d *internal.Deps) {
	userID := c.MustGet("userID").(string)
	ctx := c.Request.Context()

	history, err := d.Expenses.Recent(ctx, userID, d.Forecaster.MaxHistory)
	if err != nil {
		reply.Error(c, err, "Expense")
		return
	}

	budget, err := d.Users.GetBudget(ctx, userID)
	if err != nil {
		reply.Error(c, err, "User")
		return
	}

	forecast, err := d.Forecaster.Predict(ctx, history, budget)
	if err != nil {
		reply.Error(c, err, "Forecast")
		return
	}

	c.JSON(http.StatusOK, forecast)
}
