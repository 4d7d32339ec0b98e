// Package ratelimit throttles public form submissions per client.
package ratelimit

// Limiter reports whether one more request for key is within quota.
type Limiter interface {
	Allow(key string) bool
}
