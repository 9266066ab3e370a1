package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// Token wraps a JWT issued to a tenant.
//
// It embeds [jwt.Token] for signing and parsing and [jwt.RegisteredClaims]
// for standard claim access. The tenant identifier travels in the "sub" claim.
type Token struct {
	*jwt.Token `json:"-"`

	jwt.RegisteredClaims

	// SignedString is the compact JWS representation of the token.
	SignedString string `json:"-"`

	// TenantID is the parsed "sub" claim.
	TenantID string `json:"-"`
}

// String returns the compact JWS serialization of the token.
func (t *Token) String() string {
	return t.SignedString
}

// TokenRequest exchanges tenant credentials for a bearer token.
type TokenRequest struct {
	TenantID string `json:"tenantId"`
	APIKey   string `json:"apiKey"`
}

// TokenResponse carries the issued bearer token.
type TokenResponse struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expiresAt"`
}
