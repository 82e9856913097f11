package handlers

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/sprintstackagency/airtime-niger-simplicity/internal/domain/model"
	billingsvc "github.com/sprintstackagency/airtime-niger-simplicity/internal/services/billing"
	"github.com/sprintstackagency/airtime-niger-simplicity/internal/transport/http/dto"
)

type UserLister interface {
	ListUsers(ctx context.Context, limit, offset int) ([]model.User, error)
}

type AdminHandler struct {
	users   UserLister
	billing *billingsvc.Service
	logger  *zap.Logger
}

func NewAdminHandler(users UserLister, billing *billingsvc.Service, logger *zap.Logger) *AdminHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdminHandler{users: users, billing: billing, logger: logger}
}

func (h *AdminHandler) Users(w http.ResponseWriter, r *http.Request) {
	if h.users == nil {
		writeInternal(w, "INTERNAL", "user listing is not configured")
		return
	}

	limit, offset := pagination(r)
	users, err := h.users.ListUsers(r.Context(), limit, offset)
	if err != nil {
		h.logger.Error("list users failed", zap.Error(err))
		writeInternal(w, "INTERNAL", "something went wrong")
		return
	}

	out := dto.UsersResponse{Users: make([]dto.UserResponse, 0, len(users))}
	for _, user := range users {
		out.Users = append(out.Users, dto.UserResponseFrom(user))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *AdminHandler) Transactions(w http.ResponseWriter, r *http.Request) {
	if h.billing == nil {
		writeInternal(w, "INTERNAL", "billing is not configured")
		return
	}

	limit, offset := pagination(r)
	rows, err := h.billing.All(r.Context(), limit, offset)
	if err != nil {
		h.logger.Error("list all transactions failed", zap.Error(err))
		writeInternal(w, "INTERNAL", "something went wrong")
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionsResponseFrom(rows))
}
