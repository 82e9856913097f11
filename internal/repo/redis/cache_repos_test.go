package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"

	"github.com/sprintstackagency/airtime-niger-simplicity/internal/domain/enums"
	"github.com/sprintstackagency/airtime-niger-simplicity/internal/domain/model"
)

func newTestRedis(t *testing.T) *goredis.Client {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestSessionCacheRoundTrip(t *testing.T) {
	repo := NewSessionCacheRepo(newTestRedis(t), time.Minute)
	ctx := context.Background()

	user := model.User{
		ID:      "user-1",
		Email:   "ada@example.com",
		Name:    "Ada",
		Role:    enums.RoleCustomer,
		Balance: 90000,
	}
	if err := repo.Put(ctx, user); err != nil {
		t.Fatalf("put session user: %v", err)
	}

	got, ok, err := repo.Get(ctx, "user-1")
	if err != nil {
		t.Fatalf("get session user: %v", err)
	}
	if !ok {
		t.Fatalf("expected cached snapshot")
	}
	if got.Balance != 90000 || got.Role != enums.RoleCustomer {
		t.Fatalf("unexpected snapshot: %+v", got)
	}

	if err := repo.Delete(ctx, "user-1"); err != nil {
		t.Fatalf("delete session user: %v", err)
	}
	if _, ok, _ := repo.Get(ctx, "user-1"); ok {
		t.Fatalf("snapshot survived delete")
	}
}

func TestCatalogCacheMissThenHit(t *testing.T) {
	repo := NewCatalogCacheRepo(newTestRedis(t), time.Minute)
	ctx := context.Background()

	if _, ok, err := repo.Get(ctx); err != nil || ok {
		t.Fatalf("expected clean miss, ok=%v err=%v", ok, err)
	}

	packages := []model.Package{
		{ID: "pkg-1", Provider: "gotv", Name: "GOtv Max", Amount: 570000, DurationDays: 30},
		{ID: "pkg-2", Provider: "dstv", Name: "DStv Yanga", Amount: 600000, DurationDays: 30},
	}
	if err := repo.Put(ctx, packages); err != nil {
		t.Fatalf("put catalog: %v", err)
	}

	got, ok, err := repo.Get(ctx)
	if err != nil {
		t.Fatalf("get catalog: %v", err)
	}
	if !ok || len(got) != 2 {
		t.Fatalf("unexpected catalog read: ok=%v len=%d", ok, len(got))
	}
	if got[0].Provider != "gotv" {
		t.Fatalf("unexpected first package: %+v", got[0])
	}
}
