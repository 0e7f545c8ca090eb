package budget

import (
	"net/http"

	"bitwise74/expense-api/app/reply"
	"bitwise74/expense-api/internal"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type budgetBody struct {
	Budget *float64 `json:"budget"`
}

func Fetch(c *gin.Context, d *internal.Deps) {
	userID := c.MustGet("userID").(string)

	b, err := d.Users.GetBudget(c.Request.Context(), userID)
	if err != nil {
		reply.Error(c, err, "User")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"budget": b,
	})
}

func Update(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	var data budgetBody
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})

		zap.L().Debug("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if err := d.Users.SetBudget(c.Request.Context(), userID, data.Budget); err != nil {
		reply.Error(c, err, "User")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"budget": *data.Budget,
	})
}
