package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	authsvc "github.com/sprintstackagency/airtime-niger-simplicity/internal/services/auth"
	sessionsvc "github.com/sprintstackagency/airtime-niger-simplicity/internal/services/session"
	"github.com/sprintstackagency/airtime-niger-simplicity/internal/transport/http/dto"
)

type MeHandler struct {
	sessions *sessionsvc.Service
	logger   *zap.Logger
}

func NewMeHandler(sessions *sessionsvc.Service, logger *zap.Logger) *MeHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MeHandler{sessions: sessions, logger: logger}
}

func (h *MeHandler) Me(w http.ResponseWriter, r *http.Request) {
	if h.sessions == nil {
		writeInternal(w, "INTERNAL", "session service is not configured")
		return
	}

	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "missing or invalid token")
		return
	}

	snapshot, err := h.sessions.Current(r.Context(), identity.UserID)
	if err != nil {
		if errors.Is(err, sessionsvc.ErrUnauthorized) {
			writeUnauthorized(w, "UNAUTHORIZED", "session is no longer valid")
			return
		}
		h.logger.Error("load profile failed", zap.String("user_id", identity.UserID), zap.Error(err))
		writeInternal(w, "INTERNAL", "something went wrong")
		return
	}

	writeJSON(w, http.StatusOK, dto.UserResponseFrom(snapshot.User))
}
