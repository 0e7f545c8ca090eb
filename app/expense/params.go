package expense

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

const dateLayout = "2006-01-02"

// expenseID parses the :id path param. On failure the response is already
// written.
func expenseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid expense ID",
			"requestID": c.GetString("requestID"),
		})
		return 0, false
	}

	return uint(id), true
}

// parseDate accepts either a plain YYYY-MM-DD date or an RFC 3339 timestamp
func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}

	if t, err := time.Parse(dateLayout, s); err == nil {
		return &t, nil
	}

	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, err
	}

	return &t, nil
}
