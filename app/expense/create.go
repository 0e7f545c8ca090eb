package expense

import (
	"net/http"

	"bitwise74/expense-api/app/reply"
	"bitwise74/expense-api/internal"
	"bitwise74/expense-api/internal/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type expenseBody struct {
	Description *string  `json:"description"`
	Amount      *float64 `json:"amount"`
	Category    *string  `json:"category"`
	Date        *string  `json:"date"`
}

func Create(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	var data expenseBody
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})

		zap.L().Debug("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	in := store.ExpenseInput{Amount: data.Amount}
	if data.Description != nil {
		in.Description = *data.Description
	}
	if data.Category != nil {
		in.Category = *data.Category
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
		in.Date = date
	}

	e, err := d.Expenses.Create(c.Request.Context(), userID, in)
	if err != nil {
		reply.Error(c, err, "Expense")
		return
	}

	c.JSON(http.StatusCreated, e)
}
