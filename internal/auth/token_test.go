package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret"

func TestTokenRoundTrip(t *testing.T) {
	token, err := IssueToken(testSecret, "alice", "Alice Example", "alice@example.org", 30)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	claims, err := VerifyToken(testSecret, token)
	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}
	if claims.Subject != "alice" || claims.Name != "Alice Example" || claims.ContactInfo != "alice@example.org" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if claims.ExpiresAt == nil {
		t.Fatal("expected expiry claim for positive TTL")
	}
}

func TestTokenWithoutTTLNeverExpires(t *testing.T) {
	token, err := IssueToken(testSecret, "alice", "Alice", "a@example.org", 0)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}
	claims, err := VerifyToken(testSecret, token)
	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}
	if claims.ExpiresAt != nil {
		t.Fatalf("expected no expiry claim, got %v", claims.ExpiresAt)
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	token, err := IssueToken(testSecret, "alice", "Alice", "a@example.org", 30)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}
	if _, err := VerifyToken("another-secret", token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	if _, err := VerifyToken(testSecret, "not.a.token"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerifyDistinguishesExpiry(t *testing.T) {
	// Handcraft an already expired token; IssueToken never produces one.
	claims := Claims{
		Name:        "Alice",
		ContactInfo: "a@example.org",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "alice",
			ExpiresAt: jwt.NewNumericDate(time.Now().UTC().Add(-time.Minute)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	_, err = VerifyToken(testSecret, token)
	if !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
	if errors.Is(err, ErrInvalidToken) {
		t.Fatal("expired must be distinguishable from invalid")
	}
}
