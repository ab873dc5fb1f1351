package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const roleAdmin = "admin"

// RequireAdmin gates a route to admin users. It expects Authenticate to
// have stored the token claims; a missing or malformed claim set is
// treated as unauthenticated rather than forbidden.
func RequireAdmin() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		value, exists := ctx.Get("user")
		claims, ok := value.(jwt.MapClaims)
		if !exists || !ok {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Authentication required"})
			return
		}

		if role, _ := claims["role"].(string); role != roleAdmin {
			ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Admin access only"})
			return
		}

		ctx.Next()
	}
}
