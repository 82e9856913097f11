package rate

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"

	redrepo "github.com/sprintstackagency/airtime-niger-simplicity/internal/repo/redis"
)

func newMiniRedisClient(t *testing.T) (*miniredis.Miniredis, *goredis.Client) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	return mr, client
}

func TestLimiterBlocksOn10SecondWindow(t *testing.T) {
	mr, client := newMiniRedisClient(t)
	defer mr.Close()
	defer func() { _ = client.Close() }()

	limiter := NewLimiter(redrepo.NewRateRepo(client), 100, 2)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		retryAfter, allowed, err := limiter.AllowPurchase(ctx, "user-1")
		if err != nil {
			t.Fatalf("allow purchase #%d: %v", i+1, err)
		}
		if !allowed || retryAfter != 0 {
			t.Fatalf("purchase #%d should be allowed", i+1)
		}
	}

	retryAfter, allowed, err := limiter.AllowPurchase(ctx, "user-1")
	if err != nil {
		t.Fatalf("allow purchase #3: %v", err)
	}
	if allowed {
		t.Fatalf("third purchase in 10s window should be blocked")
	}
	if retryAfter <= 0 {
		t.Fatalf("expected positive retry_after, got %d", retryAfter)
	}
}

func TestLimiterWindowsArePerUser(t *testing.T) {
	mr, client := newMiniRedisClient(t)
	defer mr.Close()
	defer func() { _ = client.Close() }()

	limiter := NewLimiter(redrepo.NewRateRepo(client), 100, 1)
	ctx := context.Background()

	if _, allowed, err := limiter.AllowPurchase(ctx, "user-1"); err != nil || !allowed {
		t.Fatalf("first purchase for user-1 blocked: allowed=%v err=%v", allowed, err)
	}
	if _, allowed, err := limiter.AllowPurchase(ctx, "user-2"); err != nil || !allowed {
		t.Fatalf("first purchase for user-2 blocked: allowed=%v err=%v", allowed, err)
	}
	if _, allowed, _ := limiter.AllowPurchase(ctx, "user-1"); allowed {
		t.Fatalf("second purchase for user-1 should be blocked")
	}
}

func TestLimiterDisabledWindows(t *testing.T) {
	mr, client := newMiniRedisClient(t)
	defer mr.Close()
	defer func() { _ = client.Close() }()

	limiter := NewLimiter(redrepo.NewRateRepo(client), 0, 0)

	for i := 0; i < 5; i++ {
		if _, allowed, err := limiter.AllowPurchase(context.Background(), "user-1"); err != nil || !allowed {
			t.Fatalf("purchase #%d blocked with limits disabled", i+1)
		}
	}
}
