package auth

import (
	"errors"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/sprintstackagency/airtime-niger-simplicity/internal/domain/enums"
)

func signTestToken(t *testing.T, secret string, claims tokenClaims) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign test token: %v", err)
	}
	return signed
}

func baseClaims(sub string, expiresIn time.Duration) tokenClaims {
	now := time.Now().UTC()
	return tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sub,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiresIn)),
		},
	}
}

func TestVerifyAcceptsPlatformToken(t *testing.T) {
	claims := baseClaims("user-1", time.Hour)
	claims.Email = "ada@example.com"
	claims.Role = "admin"

	verifier := NewVerifier("shared-secret")
	identity, err := verifier.Verify(signTestToken(t, "shared-secret", claims))
	if err != nil {
		t.Fatalf("verify: %v", err)
	}

	if identity.UserID != "user-1" {
		t.Fatalf("unexpected user id: %s", identity.UserID)
	}
	if identity.Role != enums.RoleAdmin {
		t.Fatalf("unexpected role: %s", identity.Role)
	}
	if identity.Email != "ada@example.com" {
		t.Fatalf("unexpected email: %s", identity.Email)
	}
}

func TestVerifyDefaultsUnknownRoleToCustomer(t *testing.T) {
	claims := baseClaims("user-1", time.Hour)
	claims.Role = "superuser"

	verifier := NewVerifier("shared-secret")
	identity, err := verifier.Verify(signTestToken(t, "shared-secret", claims))
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if identity.Role != enums.RoleCustomer {
		t.Fatalf("unexpected role: %s", identity.Role)
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	claims := baseClaims("user-1", time.Hour)

	verifier := NewVerifier("shared-secret")
	if _, err := verifier.Verify(signTestToken(t, "other-secret", claims)); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	claims := baseClaims("user-1", -time.Minute)

	verifier := NewVerifier("shared-secret")
	if _, err := verifier.Verify(signTestToken(t, "shared-secret", claims)); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestVerifyRejectsMissingSubject(t *testing.T) {
	claims := baseClaims("", time.Hour)

	verifier := NewVerifier("shared-secret")
	if _, err := verifier.Verify(signTestToken(t, "shared-secret", claims)); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}
