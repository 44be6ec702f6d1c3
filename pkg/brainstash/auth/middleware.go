package auth

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	// ContextKeyUserID is the key for the authenticated user ID in gin context
	ContextKeyUserID = "user_id"
)

// AuthMiddleware validates bearer tokens and sets the caller's user
// ID in the request context. Missing, malformed, invalid and expired
// credentials are all 401; an unexpected verification failure is a
// 500 rather than a silent deny.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		// Expect "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			c.Abort()
			return
		}

		claims, err := ValidateToken(parts[1])
		if err != nil {
			switch {
			case errors.Is(err, ErrExpiredToken):
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Token has expired"})
			case errors.Is(err, ErrInvalidToken):
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			default:
				log.Printf("Unexpected token verification error: %v", err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "An unexpected error occurred during authentication"})
			}
			c.Abort()
			return
		}

		c.Set(ContextKeyUserID, claims.UserID)
		c.Next()
	}
}

// GetUserID returns the authenticated user ID from the gin context
func GetUserID(c *gin.Context) (uint, bool) {
	userID, exists := c.Get(ContextKeyUserID)
	if !exists {
		return 0, false
	}
	return userID.(uint), true
}
