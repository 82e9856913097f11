package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/sprintstackagency/airtime-niger-simplicity/internal/domain/model"
)

const sessionUserPrefix = "session_user:"

// SessionCacheRepo keeps the last user snapshot seen per account so session
// reads can fall back to it when the platform is slow.
type SessionCacheRepo struct {
	client *goredis.Client
	ttl    time.Duration
}

func NewSessionCacheRepo(client *goredis.Client, ttl time.Duration) *SessionCacheRepo {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &SessionCacheRepo{client: client, ttl: ttl}
}

func (r *SessionCacheRepo) Put(ctx context.Context, user model.User) error {
	if r.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	if strings.TrimSpace(user.ID) == "" {
		return fmt.Errorf("user id is required")
	}

	payload, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("marshal session user: %w", err)
	}
	if err := r.client.Set(ctx, sessionUserKey(user.ID), payload, r.ttl).Err(); err != nil {
		return fmt.Errorf("set session user: %w", err)
	}
	return nil
}

func (r *SessionCacheRepo) Get(ctx context.Context, userID string) (model.User, bool, error) {
	if r.client == nil {
		return model.User{}, false, fmt.Errorf("redis client is nil")
	}

	payload, err := r.client.Get(ctx, sessionUserKey(userID)).Bytes()
	if err == goredis.Nil {
		return model.User{}, false, nil
	}
	if err != nil {
		return model.User{}, false, fmt.Errorf("get session user: %w", err)
	}

	var user model.User
	if err := json.Unmarshal(payload, &user); err != nil {
		return model.User{}, false, fmt.Errorf("unmarshal session user: %w", err)
	}
	return user, true, nil
}

func (r *SessionCacheRepo) Delete(ctx context.Context, userID string) error {
	if r.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	if err := r.client.Del(ctx, sessionUserKey(userID)).Err(); err != nil {
		return fmt.Errorf("delete session user: %w", err)
	}
	return nil
}

func sessionUserKey(userID string) string {
	return sessionUserPrefix + userID
}
