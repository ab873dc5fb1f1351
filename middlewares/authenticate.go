package middlewares

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

func parseToken(ctx *gin.Context) (jwt.MapClaims, error) {
	authHeader := ctx.GetHeader("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return nil, fmt.Errorf("missing bearer token")
	}
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}
	return claims, nil
}

// Authenticate rejects requests without a valid bearer token. The 401
// here is deliberately distinct from validation errors so clients can
// prompt for sign-in instead of showing a form error.
func Authenticate() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		claims, err := parseToken(ctx)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}
		ctx.Set("user", claims)
		ctx.Next()
	}
}

// OptionalAuthenticate attaches the user when a valid token is present
// but lets anonymous requests through. Checkout allows guests.
func OptionalAuthenticate() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if claims, err := parseToken(ctx); err == nil {
			ctx.Set("user", claims)
		}
		ctx.Next()
	}
}
