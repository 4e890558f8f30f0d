// middleware/auth.go
package middleware

import (
	"net/http"
	"strings"

	"availcal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// OwnerIDKey is the gin context key holding the authenticated calendar owner.
const OwnerIDKey = "ownerID"

// JWTAuthOwnerMiddleware requires a bearer token whose subject is the calendar owner.
func JWTAuthOwnerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		ownerID, err := utils.ExtractIDFromToken(tokenString)
		if err != nil {
			zap.L().Debug("rejected owner token", zap.Error(err), zap.String("ip", getClientIP(c)))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set(OwnerIDKey, ownerID)
		c.Next()
	}
}

// OwnerID returns the owner set by JWTAuthOwnerMiddleware.
func OwnerID(c *gin.Context) (string, bool) {
	v, exists := c.Get(OwnerIDKey)
	if !exists {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}
