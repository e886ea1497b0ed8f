package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token wraps a JWT for authentication flows.
//
// It embeds [jwt.RegisteredClaims] so that a *Token can be passed directly
// to [jwt.ParseWithClaims] as the claims destination.
//
// SignedString holds the compact serialized form of the token
// (header.payload.signature) ready to be sent to the client.
//
// UserID is a cached copy of the "sub" claim.
type Token struct {
	jwt.RegisteredClaims

	// SignedString is the compact JWS representation of the token.
	SignedString string `json:"-"`

	// UserID is the owner identifier extracted from the "sub" claim.
	UserID string `json:"-"`
}

// String returns the compact JWS serialization of the token.
// It implements the [fmt.Stringer] interface.
func (t *Token) String() string {
	return t.SignedString
}

// AuthContext returns the request-scoped identity derived from a verified
// token.
func (t *Token) AuthContext() AuthContext {
	authContext := AuthContext{UserID: t.UserID}
	if t.IssuedAt != nil {
		authContext.IssuedAt = t.IssuedAt.Time
	}
	if t.ExpiresAt != nil {
		authContext.ExpiresAt = t.ExpiresAt.Time
	}

	return authContext
}

// AuthContext is the identity attached to a request after its bearer token
// was verified. It lives only as long as the request.
type AuthContext struct {
	UserID    string    `json:"user_id"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}
