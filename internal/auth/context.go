// Package auth propagates the caller identity from the gateway headers into
// the request context. Authentication itself happens upstream; this service
// only needs to know who is acting.
package auth

import (
	"context"

	"github.com/gin-gonic/gin"
)

type contextKey string

const (
	userIDKey contextKey = "user_id"

	// UserIDHeader is set by the API gateway after it validates the session.
	UserIDHeader = "X-User-ID"
)

// Middleware copies the caller id from the gateway header into the request
// context so usecases can read it without knowing about HTTP.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if id := c.GetHeader(UserIDHeader); id != "" {
			ctx := context.WithValue(c.Request.Context(), userIDKey, id)
			c.Request = c.Request.WithContext(ctx)
		}
		c.Next()
	}
}

// UserID returns the caller id from the context, or "" when anonymous.
func UserID(ctx context.Context) string {
	if id, ok := ctx.Value(userIDKey).(string); ok {
		return id
	}
	return ""
}
