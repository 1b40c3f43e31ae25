package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	corsAllowHeaders = "Content-Type, X-User-Id"
	corsMaxAge       = "86400"
)

// CORS attaches the permissive browser headers on every response and answers
// OPTIONS preflight directly. The auth endpoint advertises a narrower method
// set than the chat/message endpoints.
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", allowedMethods(c.Request.URL.Path))
		c.Header("Access-Control-Allow-Headers", corsAllowHeaders)
		c.Header("Access-Control-Max-Age", corsMaxAge)

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusOK)
			return
		}
		c.Next()
	}
}

func allowedMethods(path string) string {
	if strings.HasPrefix(path, "/auth") {
		return "GET, POST, OPTIONS"
	}
	return "GET, POST, PUT, OPTIONS"
}
