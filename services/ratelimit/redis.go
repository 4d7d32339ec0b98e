package ratelimit

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"travel-agency/logger"

	"github.com/redis/go-redis/v9"
)

// incrWindow bumps the counter of one window and arms its expiry on first use.
var incrWindow = redis.NewScript(`
local hits = redis.call("INCR", KEYS[1])
if hits == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return hits
`)

// RedisOptions configures a RedisLimiter. Prefix defaults to "travel:ratelimit".
type RedisOptions struct {
	Addr     string
	Password string
	Prefix   string
	Limit    int
	Window   time.Duration
}

// RedisLimiter counts hits per key in fixed windows kept in Redis, so every
// API instance shares one quota. Redis errors deny the request.
type RedisLimiter struct {
	client  *redis.Client
	prefix  string
	limit   int64
	window  time.Duration
	timeout time.Duration
	now     func() time.Time
}

func NewRedisLimiter(opts RedisOptions) (*RedisLimiter, error) {
	if opts.Limit <= 0 || opts.Window < time.Millisecond {
		return nil, errors.New("rate limit and window must be positive")
	}
	addr := strings.TrimSpace(opts.Addr)
	if addr == "" {
		return nil, errors.New("redis address is required")
	}
	prefix := strings.TrimSpace(opts.Prefix)
	if prefix == "" {
		prefix = "travel:ratelimit"
	}
	return &RedisLimiter{
		client:  redis.NewClient(&redis.Options{Addr: addr, Password: opts.Password}),
		prefix:  prefix,
		limit:   int64(opts.Limit),
		window:  opts.Window,
		timeout: 2 * time.Second,
		now:     time.Now,
	}, nil
}

func (l *RedisLimiter) Ping(ctx context.Context) error {
	return l.client.Ping(ctx).Err()
}

// windowKey names the counter of key for the window containing t.
func (l *RedisLimiter) windowKey(key string, t time.Time) string {
	slot := t.UnixMilli() / l.window.Milliseconds()
	return l.prefix + ":" + key + ":" + strconv.FormatInt(slot, 10)
}

func (l *RedisLimiter) Allow(key string) bool {
	if key = strings.TrimSpace(key); key == "" {
		key = "anonymous"
	}
	ctx, cancel := context.WithTimeout(context.Background(), l.timeout)
	defer cancel()

	hits, err := incrWindow.Run(ctx, l.client, []string{l.windowKey(key, l.now())}, l.window.Milliseconds()).Int64()
	if err != nil {
		logger.Warning("Rate limiter unavailable, denying " + key + ": " + err.Error())
		return false
	}
	return hits <= l.limit
}

func (l *RedisLimiter) Close() error {
	return l.client.Close()
}
