package model

import (
	"time"

	"github.com/sprintstackagency/airtime-niger-simplicity/internal/domain/enums"
)

// User mirrors the platform's user row. The portal reads it; balance changes
// go through the adjust_balance procedure, never a direct write.
type User struct {
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	Name      string     `json:"name"`
	Role      enums.Role `json:"role"`
	Balance   int64      `json:"balance"`
	CreatedAt time.Time  `json:"created_at"`
}
