package expense

import (
	"net/http"

	"bitwise74/expense-api/app/reply"
	"bitwise74/expense-api/internal"
	"bitwise74/expense-api/internal/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func Update(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	id, ok := expenseID(c)
	if !ok {
		return
	}

	var data expenseBody
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})

		zap.L().Debug("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	patch := store.ExpensePatch{
		Description: data.Description,
		Amount:      data.Amount,
		Category:    data.Category,
	}

	if data.Date != nil {
		date, err := parseDate(*data.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":     "Invalid date, use YYYY-MM-DD",
				"requestID": requestID,
			})
			return
		}
		patch.Date = date
	}

	e, err := d.Expenses.Update(c.Request.Context(), userID, id, patch)
	if err != nil {
		reply.Error(c, err, "Expense")
		return
	}

	c.JSON(http.StatusOK, e)
}
