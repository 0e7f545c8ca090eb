package expense

import (
	"net/http"

	"bitwise74/expense-api/app/reply"
	"bitwise74/expense-api/internal"

	"github.com/gin-gonic/gin"
)

func Fetch(c *gin.Context, d *internal.Deps) {
	userID := c.MustGet("userID").(string)

	id, ok := expenseID(c)
	if !ok {
		return
	}

	e, err := d.Expenses.Get(c.Request.Context(), userID, id)
	if err != nil {
		reply.Error(c, err, "Expense")
		return
	}

	c.JSON(http.StatusOK, e)
}
