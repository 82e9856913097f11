package platform

import (
	"context"
	"net/http"
)

type adjustBalanceResponse struct {
	Balance int64 `json:"balance"`
}

// AdjustBalance calls the adjust_balance stored procedure with a signed delta
// and returns the new balance. Each call applies atomically on the platform
// side, but callers that check first and debit second get no protection
// between the two round trips.
func (c *Client) AdjustBalance(ctx context.Context, userID string, delta int64) (int64, error) {
	body := map[string]any{
		"p_user_id": userID,
		"p_amount":  delta,
	}

	var result adjustBalanceResponse
	if err := c.do(ctx, "rpc.adjust_balance", http.MethodPost, "/rest/v1/rpc/adjust_balance", nil, c.serviceHeaders(), body, &result); err != nil {
		return 0, err
	}
	return result.Balance, nil
}
