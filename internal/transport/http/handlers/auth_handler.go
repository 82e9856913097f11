package handlers

import (
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	authsvc "github.com/sprintstackagency/airtime-niger-simplicity/internal/services/auth"
	sessionsvc "github.com/sprintstackagency/airtime-niger-simplicity/internal/services/session"
	"github.com/sprintstackagency/airtime-niger-simplicity/internal/transport/http/dto"
)

type AuthHandler struct {
	sessions *sessionsvc.Service
	logger   *zap.Logger
}

func NewAuthHandler(sessions *sessionsvc.Service, logger *zap.Logger) *AuthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthHandler{sessions: sessions, logger: logger}
}

func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	if h.sessions == nil {
		writeInternal(w, "INTERNAL", "auth is not configured")
		return
	}

	var req dto.SignUpRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "BAD_JSON", "invalid request body")
		return
	}

	session, err := h.sessions.SignUp(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		h.handleSessionError(w, err, "sign up")
		return
	}

	writeJSON(w, http.StatusOK, tokensResponse(session))
}

func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	if h.sessions == nil {
		writeInternal(w, "INTERNAL", "auth is not configured")
		return
	}

	var req dto.SignInRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "BAD_JSON", "invalid request body")
		return
	}

	session, err := h.sessions.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		h.handleSessionError(w, err, "sign in")
		return
	}

	writeJSON(w, http.StatusOK, tokensResponse(session))
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	if h.sessions == nil {
		writeInternal(w, "INTERNAL", "auth is not configured")
		return
	}

	var req dto.RefreshRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "BAD_JSON", "invalid request body")
		return
	}

	session, err := h.sessions.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		h.handleSessionError(w, err, "refresh")
		return
	}

	writeJSON(w, http.StatusOK, tokensResponse(session))
}

func (h *AuthHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	if h.sessions == nil {
		writeInternal(w, "INTERNAL", "auth is not configured")
		return
	}

	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "missing or invalid token")
		return
	}

	token := bearerToken(r)
	if err := h.sessions.SignOut(r.Context(), token, identity.UserID); err != nil {
		h.handleSessionError(w, err, "sign out")
		return
	}

	writeJSON(w, http.StatusOK, dto.SignOutResponse{OK: true})
}

func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	if h.sessions == nil {
		writeInternal(w, "INTERNAL", "auth is not configured")
		return
	}

	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "missing or invalid token")
		return
	}

	snapshot, err := h.sessions.Current(r.Context(), identity.UserID)
	if err != nil {
		h.handleSessionError(w, err, "load session")
		return
	}

	writeJSON(w, http.StatusOK, dto.SessionResponse{
		User:  dto.UserResponseFrom(snapshot.User),
		Stale: snapshot.Stale,
	})
}

func (h *AuthHandler) handleSessionError(w http.ResponseWriter, err error, action string) {
	switch {
	case errors.Is(err, sessionsvc.ErrInvalidInput):
		writeBadRequest(w, "VALIDATION_ERROR", "email and password are required")
	case errors.Is(err, sessionsvc.ErrUnauthorized):
		writeUnauthorized(w, "UNAUTHORIZED", "invalid credentials")
	default:
		h.logger.Error(action+" failed", zap.Error(err))
		writeInternal(w, "INTERNAL", "something went wrong")
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func tokensResponse(session sessionsvc.Session) dto.SessionTokensResponse {
	return dto.SessionTokensResponse{
		AccessToken:  session.AccessToken,
		RefreshToken: session.RefreshToken,
		ExpiresInSec: session.ExpiresIn,
		User:         dto.UserResponseFrom(session.User),
	}
}
