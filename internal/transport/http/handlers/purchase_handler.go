package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	authsvc "github.com/sprintstackagency/airtime-niger-simplicity/internal/services/auth"
	billingsvc "github.com/sprintstackagency/airtime-niger-simplicity/internal/services/billing"
	"github.com/sprintstackagency/airtime-niger-simplicity/internal/transport/http/dto"
)

type PurchaseHandler struct {
	billing *billingsvc.Service
	logger  *zap.Logger
}

func NewPurchaseHandler(billing *billingsvc.Service, logger *zap.Logger) *PurchaseHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PurchaseHandler{billing: billing, logger: logger}
}

func (h *PurchaseHandler) Purchase(w http.ResponseWriter, r *http.Request) {
	if h.billing == nil {
		writeInternal(w, "INTERNAL", "billing is not configured")
		return
	}

	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "missing or invalid token")
		return
	}

	var req dto.PurchaseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "BAD_JSON", "invalid request body")
		return
	}

	result, err := h.billing.Purchase(r.Context(), identity.UserID, billingsvc.PurchaseInput{
		PackageID:       req.PackageID,
		SmartCardNumber: req.SmartCardNumber,
		CustomerName:    req.CustomerName,
		Reference:       req.Reference,
	})
	if err != nil {
		switch {
		case errors.Is(err, billingsvc.ErrValidation):
			writeBadRequest(w, "VALIDATION_ERROR", "packageId and a valid smartCardNumber are required")
		case errors.Is(err, billingsvc.ErrUserNotFound):
			writeUnauthorized(w, "UNAUTHORIZED", "account not found")
		case errors.Is(err, billingsvc.ErrPackageNotFound):
			writeNotFound(w, "PACKAGE_NOT_FOUND", "package not found")
		case errors.Is(err, billingsvc.ErrInsufficientBalance):
			writeBadRequest(w, "INSUFFICIENT_BALANCE", "balance is too low for this package")
		default:
			h.logger.Error("purchase failed",
				zap.String("user_id", identity.UserID),
				zap.String("package_id", req.PackageID),
				zap.Error(err),
			)
			writeInternal(w, "INTERNAL", "something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, dto.PurchaseResponse{
		Transaction: dto.TransactionResponseFrom(result.Transaction),
		Balance:     result.Balance,
	})
}
