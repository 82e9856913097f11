package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/sprintstackagency/airtime-niger-simplicity/internal/domain/model"
	"github.com/sprintstackagency/airtime-niger-simplicity/internal/platform"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
)

type PlatformClient interface {
	SignUp(ctx context.Context, email, password, name string) (platform.TokenGrant, error)
	SignIn(ctx context.Context, email, password string) (platform.TokenGrant, error)
	RefreshToken(ctx context.Context, refreshToken string) (platform.TokenGrant, error)
	SignOut(ctx context.Context, accessToken string) error
	GetUser(ctx context.Context, userID string) (model.User, error)
}

type SnapshotStore interface {
	Put(ctx context.Context, user model.User) error
	Get(ctx context.Context, userID string) (model.User, bool, error)
	Delete(ctx context.Context, userID string) error
}

// Session is the credential bundle plus the mirrored user row, the same shape
// the browser keeps in its auth context.
type Session struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
	User         model.User
}

// Snapshot is a session read. Stale means the platform did not answer within
// the soft deadline and the cached mirror was served instead.
type Snapshot struct {
	User  model.User
	Stale bool
}

type Service struct {
	platform    PlatformClient
	cache       SnapshotStore
	softTimeout time.Duration
	logger      *zap.Logger
	broker      *eventBroker
	now         func() time.Time
}

type Config struct {
	SoftTimeout time.Duration
}

func NewService(client PlatformClient, cache SnapshotStore, cfg Config, logger *zap.Logger) *Service {
	if cfg.SoftTimeout <= 0 {
		cfg.SoftTimeout = 3 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Service{
		platform:    client,
		cache:       cache,
		softTimeout: cfg.SoftTimeout,
		logger:      logger,
		broker:      newEventBroker(),
		now:         time.Now,
	}
}

func (s *Service) SignUp(ctx context.Context, email, password, name string) (Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return Session{}, ErrInvalidInput
	}

	grant, err := s.platform.SignUp(ctx, email, password, strings.TrimSpace(name))
	if err != nil {
		return Session{}, mapAuthError(err, "sign up")
	}

	s.mirror(ctx, grant.User)
	s.broker.publish(Event{Kind: EventSignedIn, UserID: grant.User.ID, At: s.now().UTC()})
	return sessionFromGrant(grant), nil
}

func (s *Service) SignIn(ctx context.Context, email, password string) (Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return Session{}, ErrInvalidInput
	}

	grant, err := s.platform.SignIn(ctx, email, password)
	if err != nil {
		return Session{}, mapAuthError(err, "sign in")
	}

	s.mirror(ctx, grant.User)
	s.broker.publish(Event{Kind: EventSignedIn, UserID: grant.User.ID, At: s.now().UTC()})
	return sessionFromGrant(grant), nil
}

func (s *Service) Refresh(ctx context.Context, refreshToken string) (Session, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return Session{}, ErrInvalidInput
	}

	grant, err := s.platform.RefreshToken(ctx, refreshToken)
	if err != nil {
		return Session{}, mapAuthError(err, "refresh token")
	}

	s.mirror(ctx, grant.User)
	s.broker.publish(Event{Kind: EventTokenRefreshed, UserID: grant.User.ID, At: s.now().UTC()})
	return sessionFromGrant(grant), nil
}

func (s *Service) SignOut(ctx context.Context, accessToken, userID string) error {
	if strings.TrimSpace(accessToken) == "" {
		return ErrInvalidInput
	}

	if err := s.platform.SignOut(ctx, accessToken); err != nil {
		return mapAuthError(err, "sign out")
	}

	if s.cache != nil && userID != "" {
		if err := s.cache.Delete(ctx, userID); err != nil {
			s.logger.Warn("drop session mirror", zap.String("user_id", userID), zap.Error(err))
		}
	}
	s.broker.publish(Event{Kind: EventSignedOut, UserID: userID, At: s.now().UTC()})
	return nil
}

// Current loads the caller's user row. The platform round trip races the soft
// deadline; losing the race serves the cached mirror flagged stale while the
// fetch keeps running and updates the cache. The upstream request is never
// cancelled by the deadline.
func (s *Service) Current(ctx context.Context, userID string) (Snapshot, error) {
	if strings.TrimSpace(userID) == "" {
		return Snapshot{}, ErrInvalidInput
	}

	type fetchResult struct {
		user model.User
		err  error
	}

	resultCh := make(chan fetchResult, 1)
	fetchCtx := context.WithoutCancel(ctx)
	go func() {
		user, err := s.platform.GetUser(fetchCtx, userID)
		if err == nil {
			s.mirror(fetchCtx, user)
		}
		resultCh <- fetchResult{user: user, err: err}
	}()

	timer := time.NewTimer(s.softTimeout)
	defer timer.Stop()

	select {
	case result := <-resultCh:
		if result.err != nil {
			return Snapshot{}, mapAuthError(result.err, "load session user")
		}
		return Snapshot{User: result.user}, nil
	case <-timer.C:
	case <-ctx.Done():
		return Snapshot{}, ctx.Err()
	}

	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx, userID)
		if err != nil {
			s.logger.Warn("read session mirror", zap.String("user_id", userID), zap.Error(err))
		}
		if ok {
			return Snapshot{User: cached, Stale: true}, nil
		}
	}

	// Nothing cached: block for the in-flight fetch.
	select {
	case result := <-resultCh:
		if result.err != nil {
			return Snapshot{}, mapAuthError(result.err, "load session user")
		}
		return Snapshot{User: result.user}, nil
	case <-ctx.Done():
		return Snapshot{}, ctx.Err()
	}
}

// Subscribe registers an auth-change listener. The returned cancel func must
// be called when the listener goes away.
func (s *Service) Subscribe() (<-chan Event, func()) {
	return s.broker.subscribe()
}

func (s *Service) mirror(ctx context.Context, user model.User) {
	if s.cache == nil || strings.TrimSpace(user.ID) == "" {
		return
	}
	if err := s.cache.Put(ctx, user); err != nil {
		s.logger.Warn("store session mirror", zap.String("user_id", user.ID), zap.Error(err))
	}
}

func sessionFromGrant(grant platform.TokenGrant) Session {
	return Session{
		AccessToken:  grant.AccessToken,
		RefreshToken: grant.RefreshToken,
		ExpiresIn:    grant.ExpiresIn,
		User:         grant.User,
	}
}

func mapAuthError(err error, action string) error {
	if errors.Is(err, platform.ErrUnauthorized) || errors.Is(err, platform.ErrNotFound) {
		return ErrUnauthorized
	}
	return fmt.Errorf("%s: %w", action, err)
}
