// Package jwtx issues and verifies the EdDSA-signed session tokens handed
// to agents after login.
package jwtx

import (
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const DefaultSessionTTL = 12 * time.Hour

// Authentication method references recorded in the "amr" claim.
const (
	AMRPassword = "pwd"
	AMROTP      = "otp"
)

// Claims are the session token claims. The subject is the agent id.
type Claims struct {
	jwt.RegisteredClaims

	// Role at the time of issue. Authorization re-reads the agent record, so
	// this is informational for clients.
	Role string `json:"role"`

	Name string `json:"name,omitempty"`

	AMR []string `json:"amr,omitempty"`
}

// NewSessionClaims builds claims for agentID valid for ttl from now.
func NewSessionClaims(agentID, role, name string, amr []string, issuer string, ttl time.Duration, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   agentID,
			Audience:  jwt.ClaimStrings{issuer},
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        newJTI(),
		},
		Role: role,
		Name: name,
		AMR:  amr,
	}
}

func newJTI() string {
	var b [16]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}
