package handlers

import (
	"net/http"

	"go.uber.org/zap"

	authsvc "github.com/sprintstackagency/airtime-niger-simplicity/internal/services/auth"
	billingsvc "github.com/sprintstackagency/airtime-niger-simplicity/internal/services/billing"
	"github.com/sprintstackagency/airtime-niger-simplicity/internal/transport/http/dto"
)

type TransactionsHandler struct {
	billing *billingsvc.Service
	logger  *zap.Logger
}

func NewTransactionsHandler(billing *billingsvc.Service, logger *zap.Logger) *TransactionsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TransactionsHandler{billing: billing, logger: logger}
}

// History lists the caller's own ledger rows, newest first.
func (h *TransactionsHandler) History(w http.ResponseWriter, r *http.Request) {
	if h.billing == nil {
		writeInternal(w, "INTERNAL", "billing is not configured")
		return
	}

	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "missing or invalid token")
		return
	}

	limit, offset := pagination(r)
	rows, err := h.billing.History(r.Context(), identity.UserID, limit, offset)
	if err != nil {
		h.logger.Error("list transactions failed", zap.String("user_id", identity.UserID), zap.Error(err))
		writeInternal(w, "INTERNAL", "something went wrong")
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionsResponseFrom(rows))
}
