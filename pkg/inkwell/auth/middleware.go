package auth

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/inkwell/inkwell/pkg/inkwell/httperr"
)

const (
	// ContextKeyUserID is the key for the caller's user ID in gin context
	ContextKeyUserID = "user_id"
)

// AuthMiddleware validates bearer tokens and sets the caller's user ID in
// context. A missing or malformed header answers 401; a token that fails
// verification answers 403.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httperr.AbortKind(c, httperr.KindAuthMissing, "Authorization header required")
			return
		}

		// Expect "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			httperr.AbortKind(c, httperr.KindAuthMissing, "Invalid authorization header format")
			return
		}

		claims, err := ValidateToken(parts[1])
		if err != nil {
			if err == ErrExpiredToken {
				httperr.AbortKind(c, httperr.KindAuthInvalid, "Token has expired")
			} else {
				httperr.AbortKind(c, httperr.KindAuthInvalid, "Invalid token")
			}
			return
		}

		c.Set(ContextKeyUserID, claims.UserID)
		c.Next()
	}
}

// GetUserID returns the caller's user ID from the gin context
func GetUserID(c *gin.Context) (uint, bool) {
	userID, exists := c.Get(ContextKeyUserID)
	if !exists {
		return 0, false
	}
	return userID.(uint), true
}
