package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

// contextKey is a private type for context keys; it prevents collisions with
// values set by other packages.
type contextKey string

const (
	loggerCtxKey  = contextKey("logger")
	customerIDKey = contextKey("customerID")
)

// GetCustomerIDFromContext retrieves the authenticated customer ID from the
// Gin context. It returns the ID and a boolean indicating if it was found.
func GetCustomerIDFromContext(c *gin.Context) (string, bool) {
	if v := c.Request.Context().Value(customerIDKey); v != nil {
		if id, ok := v.(string); ok {
			return id, true
		}
	}
	return "", false
}

// WithCustomerID returns a context carrying the authenticated customer ID.
// Exposed for tests that bypass the auth middleware.
func WithCustomerID(ctx context.Context, customerID string) context.Context {
	return context.WithValue(ctx, customerIDKey, customerID)
}
