package model

import (
	"time"

	"github.com/sprintstackagency/airtime-niger-simplicity/internal/domain/enums"
)

// Transaction is one row of the platform ledger table, appended once per
// purchase attempt and never mutated afterwards.
type Transaction struct {
	ID        string                  `json:"id"`
	UserID    string                  `json:"user_id"`
	Type      enums.TransactionType   `json:"type"`
	Amount    int64                   `json:"amount"`
	Status    enums.TransactionStatus `json:"status"`
	Reference string                  `json:"reference"`
	Details   map[string]any          `json:"details,omitempty"`
	CreatedAt time.Time               `json:"created_at"`
}
