package redis

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func setupLimiter(t *testing.T, max int, window time.Duration) (*LoginLimiter, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})
	return NewLoginLimiter(client, max, window), mr
}

func TestLoginLimiter_BlocksAfterMaxAttempts(t *testing.T) {
	l, _ := setupLimiter(t, 3, time.Minute)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		ok, err := l.Hit(ctx, "1.2.3.4:jane@example.com")
		if err != nil {
			t.Fatalf("hit %d: %v", i, err)
		}
		if !ok {
			t.Fatalf("hit %d should be allowed", i)
		}
	}

	ok, err := l.Hit(ctx, "1.2.3.4:jane@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("4th attempt should be blocked")
	}

	ok, _ = l.Hit(ctx, "1.2.3.4:other@example.com")
	if !ok {
		t.Fatal("other keys must not be affected")
	}
}

func TestLoginLimiter_WindowExpires(t *testing.T) {
	l, mr := setupLimiter(t, 1, time.Minute)
	ctx := context.Background()

	_, _ = l.Hit(ctx, "k")
	if ok, _ := l.Hit(ctx, "k"); ok {
		t.Fatal("second attempt should be blocked")
	}

	if ttl := mr.TTL("rl:login:k"); ttl != time.Minute {
		t.Fatalf("expected 1m ttl, got %v", ttl)
	}

	mr.FastForward(time.Minute + time.Second)
	if ok, _ := l.Hit(ctx, "k"); !ok {
		t.Fatal("attempt after window should be allowed")
	}
}

func TestLoginLimiter_Reset(t *testing.T) {
	l, mr := setupLimiter(t, 1, time.Minute)
	ctx := context.Background()

	_, _ = l.Hit(ctx, "k")
	if err := l.Reset(ctx, "k"); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if mr.Exists("rl:login:k") {
		t.Fatal("counter should be cleared")
	}
	if ok, _ := l.Hit(ctx, "k"); !ok {
		t.Fatal("attempt after reset should be allowed")
	}
}

func TestLoginLimiter_Defaults(t *testing.T) {
	l := NewLoginLimiter(nil, 0, 0)
	if l.maxAttempts != 5 || l.window != 15*time.Minute {
		t.Fatalf("unexpected defaults: %d %v", l.maxAttempts, l.window)
	}
}

func TestLoginLimiter_FailsOpenOnError(t *testing.T) {
	l, mr := setupLimiter(t, 1, time.Minute)
	mr.Close()

	ok, err := l.Hit(context.Background(), "k")
	if err == nil {
		t.Fatal("expected error when redis is down")
	}
	if !ok {
		t.Fatal("limiter must allow the attempt when redis is unavailable")
	}
}
