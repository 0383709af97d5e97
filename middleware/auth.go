package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gebrayel/ecommerce-simulator/security"
)

// userIDKey is where RequireAuth leaves the resolved caller id.
const userIDKey = "auth_user_id"

// RequireAuth validates the x-api-key header and resolves the caller's
// user id from the Bearer JWT. Card and payment routes sit behind it.
func RequireAuth(apiKeys *security.APIKeyValidator, jwts *security.JWTVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := apiKeys.Validate(c.GetHeader("x-api-key")); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid API key"})
			return
		}

		userID, err := jwts.ExtractUserID(c.GetHeader("Authorization"))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

// AuthUserID returns the caller id resolved by RequireAuth.
func AuthUserID(c *gin.Context) int64 {
	return c.GetInt64(userIDKey)
}
