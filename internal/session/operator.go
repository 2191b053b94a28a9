package session

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Roles the backend issues in access tokens.
const (
	RoleOwner    = "owner"
	RoleManager  = "manager"
	RoleEmployee = "employee"
)

var (
	// ErrNoToken is returned when no access token is configured.
	ErrNoToken = errors.New("session: no access token configured")
	// ErrFinalizeForbidden is returned when the operator's role may not
	// finalize a settlement.
	ErrFinalizeForbidden = errors.New("session: finalizing a settlement requires manager or owner role")
)

// Operator is the identity carried by the configured access token.
type Operator struct {
	Name      string
	Role      string
	ExpiresAt time.Time
}

// FromToken decodes the token's claims without verifying the signature.
// Verification is the backend's job on every request; the client only reads
// the claims to display identity and gate manager-only actions early.
func FromToken(token string) (*Operator, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrNoToken
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("session: decode token: %w", err)
	}

	op := &Operator{}
	for _, key := range []string{"name", "username", "sub"} {
		if v, ok := claims[key].(string); ok && v != "" {
			op.Name = v
			break
		}
	}
	if v, ok := claims["role"].(string); ok {
		op.Role = strings.ToLower(v)
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		op.ExpiresAt = exp.Time
	}
	return op, nil
}

// Expired reports whether the token's expiry has passed. Tokens without an
// exp claim never report expired.
func (o *Operator) Expired(now time.Time) bool {
	return !o.ExpiresAt.IsZero() && now.After(o.ExpiresAt)
}

// CanFinalizeSettlement gates the isFinal flag client-side, mirroring the
// backend's role check.
func (o *Operator) CanFinalizeSettlement() bool {
	return o.Role == RoleManager || o.Role == RoleOwner
}
