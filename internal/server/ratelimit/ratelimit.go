// Package ratelimit provides per-client rate limiting using a token bucket.
package ratelimit

import (
	"sync"
	"time"
)

// tokenBucket refills at a steady rate up to its capacity.
type tokenBucket struct {
	tokens     float64
	lastRefill time.Time
	lastAccess time.Time
}

// Limiter manages one token bucket per client.
type Limiter struct {
	config *Config

	mu      sync.Mutex
	buckets map[string]*tokenBucket

	cleanupTicker *time.Ticker
	cleanupStop   chan struct{}
}

// NewLimiter creates a rate limiter with the given configuration. A cleanup
// goroutine periodically drops buckets for clients that have gone quiet.
func NewLimiter(config *Config) *Limiter {
	if config == nil {
		config = DefaultConfig()
	}

	l := &Limiter{
		config:  config,
		buckets: make(map[string]*tokenBucket),
	}

	if config.Enabled && config.CleanupInterval > 0 {
		l.cleanupTicker = time.NewTicker(config.CleanupInterval)
		l.cleanupStop = make(chan struct{})
		go l.cleanupLoop()
	}

	return l
}

// Allow reports whether a request from the given client may proceed, and
// consumes a token if so.
func (l *Limiter) Allow(clientID string) bool {
	if !l.config.Enabled {
		return true
	}

	refillRate := float64(l.config.Limit) / l.config.Window.Seconds()
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	bucket, ok := l.buckets[clientID]
	if !ok {
		bucket = &tokenBucket{tokens: float64(l.config.Limit), lastRefill: now}
		l.buckets[clientID] = bucket
	}

	elapsed := now.Sub(bucket.lastRefill)
	bucket.tokens = min(float64(l.config.Limit), bucket.tokens+elapsed.Seconds()*refillRate)
	bucket.lastRefill = now
	bucket.lastAccess = now

	if bucket.tokens >= 1.0 {
		bucket.tokens -= 1.0
		return true
	}
	return false
}

// Stop terminates the cleanup goroutine.
func (l *Limiter) Stop() {
	if l.cleanupTicker != nil {
		l.cleanupTicker.Stop()
		close(l.cleanupStop)
	}
}

func (l *Limiter) cleanupLoop() {
	for {
		select {
		case <-l.cleanupTicker.C:
			l.removeStale()
		case <-l.cleanupStop:
			return
		}
	}
}

// removeStale drops buckets idle longer than two cleanup intervals.
func (l *Limiter) removeStale() {
	cutoff := time.Now().Add(-2 * l.config.CleanupInterval)

	l.mu.Lock()
	defer l.mu.Unlock()

	for clientID, bucket := range l.buckets {
		if bucket.lastAccess.Before(cutoff) {
			delete(l.buckets, clientID)
		}
	}
}
