// Package auth issues and verifies the signed claim sets that identify
// callers, and resolves login credentials against the local user table or
// an external directory.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
)

// ErrInvalidToken is returned when a token cannot be parsed, carries an
// unexpected signing method, or its signature does not match the secret.
var ErrInvalidToken = errors.New("invalid token")

// ErrTokenExpired is returned when an otherwise valid token has passed its
// expiry. It is distinct from ErrInvalidToken so callers can tell a stale
// session from a forged or mis-signed one.
var ErrTokenExpired = errors.New("token is expired")

// Claims is the signed payload embedded in every issued token. The display
// name and contact travel inside the token so booking operations can stamp
// them into occupancy rows without a user lookup per request.
type Claims struct {
	Name        string `json:"name"`         // display name of the subject
	ContactInfo string `json:"contact_info"` // contact string of the subject
	jwt.RegisteredClaims
}

// IssueToken builds and HS256-signs a claim set for the given subject.
// ttlMin controls the expiry: a positive value expires the token that many
// minutes from now, zero issues a token without an expiry claim that never
// expires. The zero option is deliberate and security-relevant; it exists
// for closed deployments where sessions should survive indefinitely.
func IssueToken(secret, subject, name, contact string, ttlMin int) (string, error) {
	claims := Claims{
		Name:        name,
		ContactInfo: contact,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: subject,
		},
	}
	if ttlMin > 0 {
		exp := time.Now().UTC().Add(time.Duration(ttlMin) * time.Minute)
		claims.ExpiresAt = jwt.NewNumericDate(exp)
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}

// VerifyToken parses and verifies a token against the secret and returns
// its claims. Expired tokens yield ErrTokenExpired; every other failure
// yields ErrInvalidToken.
func VerifyToken(secret, token string) (*Claims, error) {
	var claims Claims
	tok, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		// Reject any signing method other than HMAC.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}
	if !tok.Valid {
		return nil, ErrInvalidToken
	}
	return &claims, nil
}
