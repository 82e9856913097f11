package auth

import (
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/sprintstackagency/airtime-niger-simplicity/internal/domain/enums"
)

// Verifier checks access tokens issued by the platform's auth service. The
// portal never mints tokens; it only verifies with the shared HS256 secret.
type Verifier struct {
	secret []byte
	now    func() time.Time
}

type tokenClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

func NewVerifier(secret string) *Verifier {
	return &Verifier{
		secret: []byte(secret),
		now:    time.Now,
	}
}

func (v *Verifier) Verify(raw string) (Identity, error) {
	if strings.TrimSpace(raw) == "" || len(v.secret) == 0 {
		return Identity{}, ErrUnauthorized
	}

	claims := &tokenClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(_ *jwt.Token) (interface{}, error) {
		return v.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithTimeFunc(v.now),
	)
	if err != nil || token == nil || !token.Valid {
		return Identity{}, ErrUnauthorized
	}

	userID := strings.TrimSpace(claims.Subject)
	if userID == "" {
		return Identity{}, ErrUnauthorized
	}
	if claims.ExpiresAt == nil {
		return Identity{}, ErrUnauthorized
	}

	// Tokens minted before a role existed carry no role claim; those callers
	// are customers.
	role, ok := enums.ParseRole(claims.Role)
	if !ok {
		role = enums.RoleCustomer
	}

	return Identity{
		UserID:    userID,
		Email:     strings.TrimSpace(claims.Email),
		Role:      role,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
