package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"messenger-service/internal/auth"
)

// IdentityHeader carries the caller credential on every authenticated call.
const IdentityHeader = "X-User-Id"

// Identity resolves the X-User-Id header into a user id via the token
// service. Requests without a resolvable identity are rejected with 401.
func Identity(tokens auth.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(IdentityHeader)
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		userID, err := tokens.Resolve(header)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		c.Set("userID", userID)
		c.Next()
	}
}
