// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for working with context, type-safe keys, password
// hashing, HTTP response writing, HTTP client initialization, JWT token
// generation and validation, and identifier generation.
package utils

import (
	"context"

	"github.com/MKhiriev/post-board/models"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// AuthContextCtxKey is the key used to store the verified request identity
// ([models.AuthContext]) in the context.
var AuthContextCtxKey = contextKey("authContext")

// WithAuthContext returns a copy of ctx carrying authContext.
func WithAuthContext(ctx context.Context, authContext models.AuthContext) context.Context {
	return context.WithValue(ctx, AuthContextCtxKey, authContext)
}

// GetAuthContext retrieves the verified request identity from the context.
//
// ok is false when the value is missing, has an unexpected type, or carries
// an empty user identifier.
func GetAuthContext(ctx context.Context) (models.AuthContext, bool) {
	authContext, ok := ctx.Value(AuthContextCtxKey).(models.AuthContext)
	if !ok || authContext.UserID == "" {
		return models.AuthContext{}, false
	}

	return authContext, true
}

// GetUserIDFromContext retrieves the authenticated user identifier from the
// context.
//
// Example usage:
//
//	userID, ok := utils.GetUserIDFromContext(ctx)
//	if !ok {
//	    // handle missing user in context
//	}
func GetUserIDFromContext(ctx context.Context) (string, bool) {
	authContext, ok := GetAuthContext(ctx)
	return authContext.UserID, ok
}
