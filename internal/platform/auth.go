package platform

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sprintstackagency/airtime-niger-simplicity/internal/domain/model"
)

// TokenGrant is the platform's session credential bundle.
type TokenGrant struct {
	AccessToken  string     `json:"access_token"`
	RefreshToken string     `json:"refresh_token"`
	ExpiresIn    int64      `json:"expires_in"`
	User         model.User `json:"user"`
}

type authUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// SignUp registers a new account. The platform creates the user row with role
// customer and zero balance; the grant it returns is immediately usable.
func (c *Client) SignUp(ctx context.Context, email, password, name string) (TokenGrant, error) {
	body := map[string]any{
		"email":    email,
		"password": password,
		"data":     map[string]any{"name": name},
	}

	var grant TokenGrant
	if err := c.do(ctx, "auth.signup", http.MethodPost, "/auth/v1/signup", nil, nil, body, &grant); err != nil {
		return TokenGrant{}, err
	}
	return c.hydrateGrant(ctx, grant)
}

func (c *Client) SignIn(ctx context.Context, email, password string) (TokenGrant, error) {
	query := url.Values{"grant_type": []string{"password"}}
	body := map[string]string{"email": email, "password": password}

	var grant TokenGrant
	if err := c.do(ctx, "auth.signin", http.MethodPost, "/auth/v1/token", query, nil, body, &grant); err != nil {
		return TokenGrant{}, err
	}
	return c.hydrateGrant(ctx, grant)
}

func (c *Client) RefreshToken(ctx context.Context, refreshToken string) (TokenGrant, error) {
	query := url.Values{"grant_type": []string{"refresh_token"}}
	body := map[string]string{"refresh_token": refreshToken}

	var grant TokenGrant
	if err := c.do(ctx, "auth.refresh", http.MethodPost, "/auth/v1/token", query, nil, body, &grant); err != nil {
		return TokenGrant{}, err
	}
	return c.hydrateGrant(ctx, grant)
}

func (c *Client) SignOut(ctx context.Context, accessToken string) error {
	return c.do(ctx, "auth.signout", http.MethodPost, "/auth/v1/logout", nil, bearerHeaders(accessToken), nil, nil)
}

// UserByToken resolves a bearer token to the full user row: the auth endpoint
// verifies the token and yields the identity, the user table supplies the
// role/balance mirror.
func (c *Client) UserByToken(ctx context.Context, accessToken string) (model.User, error) {
	var identity authUser
	if err := c.do(ctx, "auth.user", http.MethodGet, "/auth/v1/user", nil, bearerHeaders(accessToken), nil, &identity); err != nil {
		return model.User{}, err
	}
	if strings.TrimSpace(identity.ID) == "" {
		return model.User{}, ErrUnauthorized
	}

	user, err := c.GetUser(ctx, identity.ID)
	if err != nil {
		return model.User{}, fmt.Errorf("load user row for token: %w", err)
	}
	return user, nil
}

// hydrateGrant replaces the thin auth-payload user with the full table row.
// A grant without a row (signup trigger lag) keeps what the platform sent.
func (c *Client) hydrateGrant(ctx context.Context, grant TokenGrant) (TokenGrant, error) {
	if strings.TrimSpace(grant.User.ID) == "" {
		return grant, nil
	}

	hydrateCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	user, err := c.GetUser(hydrateCtx, grant.User.ID)
	if err != nil {
		c.logger.Debug("grant hydration skipped", withUserField(grant.User.ID, err)...)
		return grant, nil
	}
	grant.User = user
	return grant, nil
}
