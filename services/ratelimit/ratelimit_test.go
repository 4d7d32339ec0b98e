package ratelimit

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

func newRedisLimiter(t *testing.T, server *miniredis.Miniredis, limit int) *RedisLimiter {
	t.Helper()
	l, err := NewRedisLimiter(RedisOptions{Addr: server.Addr(), Prefix: "test:ratelimit", Limit: limit, Window: time.Minute})
	if err != nil {
		t.Fatalf("new redis limiter: %v", err)
	}
	t.Cleanup(func() { _ = l.Close() })
	return l
}

func TestRedisLimiter(t *testing.T) {
	server := miniredis.RunT(t)
	l := newRedisLimiter(t, server, 2)
	now := time.Date(2025, 1, 1, 10, 0, 5, 0, time.UTC)
	l.now = func() time.Time { return now }

	if !l.Allow("ip-1") || !l.Allow("ip-1") {
		t.Fatal("first two requests should pass")
	}
	if l.Allow("ip-1") {
		t.Fatal("third request should be blocked")
	}
	if !l.Allow("ip-2") {
		t.Fatal("other keys have their own quota")
	}

	now = now.Add(time.Minute)
	if !l.Allow("ip-1") {
		t.Fatal("next window starts a fresh count")
	}
}

func TestRedisLimiterSharesQuotaAcrossInstances(t *testing.T) {
	server := miniredis.RunT(t)
	a, b := newRedisLimiter(t, server, 1), newRedisLimiter(t, server, 1)

	if !a.Allow("ip-1") {
		t.Fatal("first request should pass")
	}
	if b.Allow("ip-1") {
		t.Fatal("second instance must see the first instance's hit")
	}
}

func TestRedisLimiterExpiresWindows(t *testing.T) {
	server := miniredis.RunT(t)
	l := newRedisLimiter(t, server, 1)
	now := time.Date(2025, 1, 1, 10, 0, 30, 0, time.UTC)
	l.now = func() time.Time { return now }
	l.Allow("ip-1")

	key := l.windowKey("ip-1", now)
	if ttl := server.TTL(key); ttl <= 0 || ttl > time.Minute {
		t.Fatalf("expected window ttl of at most a minute, got %s", ttl)
	}
}

func TestRedisLimiterFailsClosed(t *testing.T) {
	server := miniredis.RunT(t)
	l := newRedisLimiter(t, server, 1)
	server.Close()
	if l.Allow("ip-1") {
		t.Fatal("limiter should deny requests when redis is down")
	}
}

func TestNewRedisLimiterValidates(t *testing.T) {
	if l, err := NewRedisLimiter(RedisOptions{Limit: 1, Window: time.Second}); err == nil || l != nil {
		t.Fatal("expected an error for an empty redis address")
	}
	if _, err := NewRedisLimiter(RedisOptions{Addr: "localhost:6379", Window: time.Second}); err == nil {
		t.Fatal("expected an error for a zero limit")
	}
}

func TestLocalLimiter(t *testing.T) {
	now := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	l := NewLocalLimiter(3, time.Minute)
	l.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		if !l.Allow("ip-1") {
			t.Fatalf("request %d should pass", i+1)
		}
	}
	if l.Allow("ip-1") {
		t.Fatal("fourth request should be blocked")
	}
	if !l.Allow("ip-2") {
		t.Fatal("other keys have their own bucket")
	}

	now = now.Add(20 * time.Second)
	if !l.Allow("ip-1") {
		t.Fatal("one token refills every 20s")
	}
}

func TestLocalLimiterForgetsIdleKeys(t *testing.T) {
	now := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	l := NewLocalLimiter(1, time.Minute)
	l.now = func() time.Time { return now }

	l.Allow("ip-1")
	now = now.Add(11 * time.Minute)
	l.Allow("ip-2")
	if _, ok := l.visitors["ip-1"]; ok {
		t.Fatal("idle visitor not swept")
	}
}
