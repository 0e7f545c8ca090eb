package expense

import (
	"net/http"
	"strconv"

	"bitwise74/expense-api/app/reply"
	"bitwise74/expense-api/internal"
	"bitwise74/expense-api/internal/store"

	"github.com/gin-gonic/gin"
)

// List returns the expenses of a user.
//
// Query params: category, from, to (YYYY-MM-DD, inclusive), page (0 based),
// limit (max 250) and sort (newest, oldest, amount-asc, amount-desc).
func List(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	f := store.ExpenseFilter{
		Category: c.Query("category"),
		Sort:     c.DefaultQuery("sort", "newest"),
	}

	if _, ok := store.ValidSortOpts[f.Sort]; !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid sorting option",
			"requestID": requestID,
		})
		return
	}

	var err error

	if f.Page, err = strconv.Atoi(c.DefaultQuery("page", "0")); err != nil || f.Page < 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid page",
			"requestID": requestID,
		})
		return
	}

	if f.Limit, err = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(store.MaxListLimit))); err != nil || f.Limit < 1 || f.Limit > store.MaxListLimit {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Limit must be between 1 and " + strconv.Itoa(store.MaxListLimit),
			"requestID": requestID,
		})
		return
	}

	if f.From, err = parseDate(c.Query("from")); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid from date, use YYYY-MM-DD",
			"requestID": requestID,
		})
		return
	}

	if f.To, err = parseDate(c.Query("to")); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid to date, use YYYY-MM-DD",
			"requestID": requestID,
		})
		return
	}

	// A plain date means the whole day
	if to := c.Query("to"); f.To != nil && len(to) == len(dateLayout) {
		end := f.To.AddDate(0, 0, 1).Add(-1)
		f.To = &end
	}

	entries, err := d.Expenses.List(c.Request.Context(), userID, f)
	if err != nil {
		reply.Error(c, err, "Expense")
		return
	}

	c.JSON(http.StatusOK, entries)
}
