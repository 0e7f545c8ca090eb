// Package root holds the endpoints that aren't tied to a resource
package root

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func Heartbeat(c *gin.Context) {
	c.Status(http.StatusOK)
}

// Validate only runs after the JWT middleware, reaching it means the token is good
func Validate(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"userID": c.MustGet("userID").(string),
	})
}
