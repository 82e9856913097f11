package dto

import (
	"time"

	"github.com/sprintstackagency/airtime-niger-simplicity/internal/domain/model"
)

type TransactionResponse struct {
	ID        string         `json:"id"`
	UserID    string         `json:"user_id"`
	Type      string         `json:"type"`
	Amount    int64          `json:"amount"`
	Status    string         `json:"status"`
	Reference string         `json:"reference"`
	Details   map[string]any `json:"details,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

func TransactionResponseFrom(tx model.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:        tx.ID,
		UserID:    tx.UserID,
		Type:      string(tx.Type),
		Amount:    tx.Amount,
		Status:    string(tx.Status),
		Reference: tx.Reference,
		Details:   tx.Details,
		CreatedAt: tx.CreatedAt,
	}
}

type TransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
}

func TransactionsResponseFrom(rows []model.Transaction) TransactionsResponse {
	out := TransactionsResponse{Transactions: make([]TransactionResponse, 0, len(rows))}
	for _, tx := range rows {
		out.Transactions = append(out.Transactions, TransactionResponseFrom(tx))
	}
	return out
}
