package expense

import (
	"net/http"

	"bitwise74/expense-api/app/reply"
	"bitwise74/expense-api/internal"

	"github.com/gin-gonic/gin"
)

func Delete(c *gin.Context, d *internal.Deps) {
	userID := c.MustGet("userID").(string)

	id, ok := expenseID(c)
	if !ok {
		return
	}

	if err := d.Expenses.Delete(c.Request.Context(), userID, id); err != nil {
		reply.Error(c, err, "Expense")
		return
	}

	c.Status(http.StatusNoContent)
}
