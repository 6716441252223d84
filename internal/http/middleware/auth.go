package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	userIDKey   = "user_id"
	usernameKey = "username"
)

// TokenParser resolves a bearer token to the user it was issued for.
type TokenParser func(token string) (userID int64, username string, err error)

// RequireAuth rejects requests without a valid "Authorization: Bearer <token>" header.
func RequireAuth(parse TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := strings.TrimSpace(c.GetHeader("Authorization"))
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			abortUnauthorized(c, "Please log in to continue.")
			return
		}
		userID, username, err := parse(strings.TrimSpace(token))
		if err != nil || userID <= 0 {
			abortUnauthorized(c, "Your session has expired. Please log in again.")
			return
		}
		c.Set(userIDKey, userID)
		c.Set(usernameKey, username)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error":      msg,
		"code":       "unauthorized",
		"request_id": GetRequestID(c),
		"message":    msg,
	})
}

// GetUserID returns the authenticated user id, or 0 outside RequireAuth.
func GetUserID(c *gin.Context) int64 {
	if v, ok := c.Get(userIDKey); ok {
		if id, ok := v.(int64); ok {
			return id
		}
	}
	return 0
}

func GetUsername(c *gin.Context) string {
	return c.GetString(usernameKey)
}
