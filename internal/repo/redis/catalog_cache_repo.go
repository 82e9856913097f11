package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/sprintstackagency/airtime-niger-simplicity/internal/domain/model"
)

const catalogKey = "catalog:packages"

type CatalogCacheRepo struct {
	client *goredis.Client
	ttl    time.Duration
}

func NewCatalogCacheRepo(client *goredis.Client, ttl time.Duration) *CatalogCacheRepo {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &CatalogCacheRepo{client: client, ttl: ttl}
}

func (r *CatalogCacheRepo) Put(ctx context.Context, packages []model.Package) error {
	if r.client == nil {
		return fmt.Errorf("redis client is nil")
	}

	payload, err := json.Marshal(packages)
	if err != nil {
		return fmt.Errorf("marshal catalog: %w", err)
	}
	if err := r.client.Set(ctx, catalogKey, payload, r.ttl).Err(); err != nil {
		return fmt.Errorf("set catalog: %w", err)
	}
	return nil
}

func (r *CatalogCacheRepo) Get(ctx context.Context) ([]model.Package, bool, error) {
	if r.client == nil {
		return nil, false, fmt.Errorf("redis client is nil")
	}

	payload, err := r.client.Get(ctx, catalogKey).Bytes()
	if err == goredis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get catalog: %w", err)
	}

	var packages []model.Package
	if err := json.Unmarshal(payload, &packages); err != nil {
		return nil, false, fmt.Errorf("unmarshal catalog: %w", err)
	}
	return packages, true, nil
}

func (r *CatalogCacheRepo) Invalidate(ctx context.Context) error {
	if r.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	if err := r.client.Del(ctx, catalogKey).Err(); err != nil {
		return fmt.Errorf("invalidate catalog: %w", err)
	}
	return nil
}
