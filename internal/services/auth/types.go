package auth

import (
	"errors"
	"time"

	"github.com/sprintstackagency/airtime-niger-simplicity/internal/domain/enums"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
)

// Identity is what a verified platform access token asserts about the caller.
type Identity struct {
	UserID    string
	Email     string
	Role      enums.Role
	ExpiresAt time.Time
}
