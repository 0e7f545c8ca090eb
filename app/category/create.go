package category

import (
	"net/http"

	"bitwise74/expense-api/app/reply"
	"bitwise74/expense-api/internal"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type createBody struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

func Create(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	var data createBody
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})

		zap.L().Debug("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	cat, err := d.Categories.Create(c.Request.Context(), userID, data.Name, data.Color)
	if err != nil {
		reply.Error(c, err, "Category")
		return
	}

	c.JSON(http.StatusCreated, cat)
}
