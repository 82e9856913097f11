package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sprintstackagency/airtime-niger-simplicity/internal/domain/enums"
	"github.com/sprintstackagency/airtime-niger-simplicity/internal/domain/model"
	"github.com/sprintstackagency/airtime-niger-simplicity/internal/platform"
	authsvc "github.com/sprintstackagency/airtime-niger-simplicity/internal/services/auth"
	sessionsvc "github.com/sprintstackagency/airtime-niger-simplicity/internal/services/session"
	"github.com/sprintstackagency/airtime-niger-simplicity/internal/transport/http/dto"
)

func TestSignInReturnsTokensAndUser(t *testing.T) {
	stub := &sessionPlatformStub{
		email:    "ada@example.com",
		password: "secret",
		user:     model.User{ID: "u-1", Email: "ada@example.com", Name: "Ada", Role: enums.RoleCustomer, Balance: 250_000},
	}
	handler := NewAuthHandler(sessionsvc.NewService(stub, nil, sessionsvc.Config{}, nil), nil)

	req := httptest.NewRequest(http.MethodPost, "/auth/signin", strings.NewReader(`{"email":"Ada@Example.com","password":"secret"}`))
	rr := httptest.NewRecorder()
	handler.SignIn(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status: got %d want %d (body %s)", rr.Code, http.StatusOK, rr.Body.String())
	}

	var payload dto.SessionTokensResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.AccessToken == "" || payload.RefreshToken == "" {
		t.Fatalf("tokens are missing: %+v", payload)
	}
	if payload.User.ID != "u-1" || payload.User.Balance != 250_000 {
		t.Fatalf("unexpected user: %+v", payload.User)
	}
}

func TestSignInWrongPasswordIsUnauthorized(t *testing.T) {
	stub := &sessionPlatformStub{email: "ada@example.com", password: "secret"}
	handler := NewAuthHandler(sessionsvc.NewService(stub, nil, sessionsvc.Config{}, nil), nil)

	req := httptest.NewRequest(http.MethodPost, "/auth/signin", strings.NewReader(`{"email":"ada@example.com","password":"wrong"}`))
	rr := httptest.NewRecorder()
	handler.SignIn(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("unexpected status: got %d want %d", rr.Code, http.StatusUnauthorized)
	}
}

func TestSignInRejectsUnknownBodyKeys(t *testing.T) {
	handler := NewAuthHandler(sessionsvc.NewService(&sessionPlatformStub{}, nil, sessionsvc.Config{}, nil), nil)

	req := httptest.NewRequest(http.MethodPost, "/auth/signin", strings.NewReader(`{"email":"a@b.c","password":"x","extra":true}`))
	rr := httptest.NewRecorder()
	handler.SignIn(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: got %d want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestSessionRequiresIdentity(t *testing.T) {
	handler := NewAuthHandler(sessionsvc.NewService(&sessionPlatformStub{}, nil, sessionsvc.Config{}, nil), nil)

	req := httptest.NewRequest(http.MethodGet, "/auth/session", nil)
	rr := httptest.NewRecorder()
	handler.Session(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("unexpected status: got %d want %d", rr.Code, http.StatusUnauthorized)
	}
}

func TestSessionReturnsCurrentUser(t *testing.T) {
	stub := &sessionPlatformStub{
		user: model.User{ID: "u-1", Email: "ada@example.com", Role: enums.RoleCustomer, Balance: 120_000},
	}
	handler := NewAuthHandler(sessionsvc.NewService(stub, nil, sessionsvc.Config{}, nil), nil)

	req := httptest.NewRequest(http.MethodGet, "/auth/session", nil)
	req = req.WithContext(authsvc.WithIdentity(req.Context(), authsvc.Identity{UserID: "u-1", Role: enums.RoleCustomer}))

	rr := httptest.NewRecorder()
	handler.Session(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status: got %d want %d (body %s)", rr.Code, http.StatusOK, rr.Body.String())
	}

	var payload dto.SessionResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.User.ID != "u-1" || payload.Stale {
		t.Fatalf("unexpected session payload: %+v", payload)
	}
}

type sessionPlatformStub struct {
	email    string
	password string
	user     model.User
}

func (s *sessionPlatformStub) SignUp(_ context.Context, email, _, name string) (platform.TokenGrant, error) {
	user := s.user
	user.Email = email
	user.Name = name
	return platform.TokenGrant{AccessToken: "access", RefreshToken: "refresh", ExpiresIn: 3600, User: user}, nil
}

func (s *sessionPlatformStub) SignIn(_ context.Context, email, password string) (platform.TokenGrant, error) {
	if email != s.email || password != s.password {
		return platform.TokenGrant{}, platform.ErrUnauthorized
	}
	return platform.TokenGrant{AccessToken: "access", RefreshToken: "refresh", ExpiresIn: 3600, User: s.user}, nil
}

func (s *sessionPlatformStub) RefreshToken(context.Context, string) (platform.TokenGrant, error) {
	return platform.TokenGrant{AccessToken: "access-2", RefreshToken: "refresh-2", ExpiresIn: 3600, User: s.user}, nil
}

func (s *sessionPlatformStub) SignOut(context.Context, string) error {
	return nil
}

func (s *sessionPlatformStub) GetUser(_ context.Context, userID string) (model.User, error) {
	if userID != s.user.ID {
		return model.User{}, platform.ErrNotFound
	}
	return s.user, nil
}
