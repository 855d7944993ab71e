package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestLimiter(t *testing.T, max int, window time.Duration) (*LoginLimiter, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewLoginLimiter(client, max, window), mr
}

func TestLoginLimiter_AllowsUnderLimit(t *testing.T) {
	limiter, _ := newTestLimiter(t, 3, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		ok, err := limiter.Allow(ctx, "alice", "10.0.0.1")
		if err != nil {
			t.Fatalf("Allow: %v", err)
		}
		if !ok {
			t.Fatalf("attempt %d throttled under limit", i+1)
		}
	}
}

func TestLoginLimiter_ThrottlesOverLimit(t *testing.T) {
	limiter, _ := newTestLimiter(t, 2, time.Minute)
	ctx := context.Background()

	_, _ = limiter.Allow(ctx, "bob", "10.0.0.2")
	_, _ = limiter.Allow(ctx, "bob", "10.0.0.2")

	ok, err := limiter.Allow(ctx, "bob", "10.0.0.2")
	if err != nil {
		t.Fatalf("Allow: %v", err)
	}
	if ok {
		t.Fatalf("third attempt should be throttled")
	}
}

func TestLoginLimiter_KeysAreScoped(t *testing.T) {
	limiter, _ := newTestLimiter(t, 1, time.Minute)
	ctx := context.Background()

	if ok, _ := limiter.Allow(ctx, "carol", "10.0.0.3"); !ok {
		t.Fatalf("first attempt throttled")
	}
	if ok, _ := limiter.Allow(ctx, "carol", "10.0.0.3"); ok {
		t.Fatalf("second attempt from same pair should be throttled")
	}

	// Different IP and different username each get their own budget.
	if ok, _ := limiter.Allow(ctx, "carol", "10.0.0.4"); !ok {
		t.Fatalf("different IP should not share the counter")
	}
	if ok, _ := limiter.Allow(ctx, "dave", "10.0.0.3"); !ok {
		t.Fatalf("different username should not share the counter")
	}
}

func TestLoginLimiter_WindowExpires(t *testing.T) {
	limiter, mr := newTestLimiter(t, 1, time.Minute)
	ctx := context.Background()

	_, _ = limiter.Allow(ctx, "erin", "10.0.0.5")
	if ok, _ := limiter.Allow(ctx, "erin", "10.0.0.5"); ok {
		t.Fatalf("should be throttled before window expires")
	}

	mr.FastForward(2 * time.Minute)

	ok, err := limiter.Allow(ctx, "erin", "10.0.0.5")
	if err != nil {
		t.Fatalf("Allow: %v", err)
	}
	if !ok {
		t.Fatalf("counter should reset after the window")
	}
}

func TestLoginLimiter_Reset(t *testing.T) {
	limiter, _ := newTestLimiter(t, 1, time.Minute)
	ctx := context.Background()

	_, _ = limiter.Allow(ctx, "frank", "10.0.0.6")
	if err := limiter.Reset(ctx, "frank", "10.0.0.6"); err != nil {
		t.Fatalf("Reset: %v", err)
	}

	if ok, _ := limiter.Allow(ctx, "frank", "10.0.0.6"); !ok {
		t.Fatalf("attempt after reset should be allowed")
	}
}
