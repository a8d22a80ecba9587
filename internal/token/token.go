// Package token issues and validates the signed, role-bearing capability
// tokens used on both surfaces. The operator deployment and each node's
// deployment share this code but never a secret.
package token

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TTL is the fixed validity window for issued tokens.
const TTL = 14 * 24 * time.Hour

// ErrMissing signals an absent Authorization header.
var ErrMissing = errors.New("authorization token missing")

// InvalidError wraps any decode/signature/expiry failure. The message keeps
// the decode-library detail but deliberately does not distinguish expired
// from tampered.
type InvalidError struct {
	Err error
}

func (e *InvalidError) Error() string { return e.Err.Error() }

func (e *InvalidError) Unwrap() error { return e.Err }

// Role is the closed set of capabilities a token can carry.
type Role int

const (
	RoleNormal Role = iota
	RolePrivileged
)

// ParseRole is total: anything other than "privileged" (case-insensitive)
// is Normal, so unknown values fail safe-low.
func ParseRole(role string) Role {
	if strings.ToLower(role) == "privileged" {
		return RolePrivileged
	}
	return RoleNormal
}

func (r Role) String() string {
	if r == RolePrivileged {
		return "privileged"
	}
	return "normal"
}

// Claims is the token payload: a role string and an absolute expiry in
// epoch seconds.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Issuer signs and validates tokens with a process-local secret.
type Issuer struct {
	secret []byte
}

func NewIssuer(secret string) *Issuer {
	return &Issuer{secret: []byte(secret)}
}

// Issue mints a token for the role, valid for the fixed TTL.
func (i *Issuer) Issue(role Role) (string, error) {
	claims := Claims{
		Role: role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(TTL)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Validate checks signature and expiry and returns the embedded role.
// Validity is purely a function of the token itself; there is no
// revocation list.
func (i *Issuer) Validate(tokenString string) (Role, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return i.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return RoleNormal, &InvalidError{Err: err}
	}
	if !parsed.Valid {
		return RoleNormal, &InvalidError{Err: errors.New("token is invalid")}
	}

	return ParseRole(claims.Role), nil
}

// FromHeader strips the Bearer prefix from an Authorization header value.
func FromHeader(header string) (string, error) {
	if header == "" {
		return "", ErrMissing
	}
	return strings.TrimPrefix(header, "Bearer "), nil
}
