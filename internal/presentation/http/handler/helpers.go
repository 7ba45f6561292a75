package handler

import "github.com/gin-gonic/gin"

// GetUsername extracts the signed-in operator name from the Gin context
func GetUsername(c *gin.Context) string {
	return c.GetString("username")
}
