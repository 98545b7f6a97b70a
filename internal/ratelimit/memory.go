package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// InMemoryStorage implements Storage using in-process token buckets. Suitable
// for single-instance deployments; use RedisStorage when running replicas.
type InMemoryStorage struct {
	mu          sync.RWMutex
	buckets     map[string]*tokenBucket
	cleanup     *time.Ticker
	stopCleanup chan struct{}
}

// NewInMemoryStorage creates a new in-memory rate limiter storage.
// It includes a background cleanup goroutine to remove unused buckets.
func NewInMemoryStorage() *InMemoryStorage {
	storage := &InMemoryStorage{
		buckets:     make(map[string]*tokenBucket),
		cleanup:     time.NewTicker(5 * time.Minute),
		stopCleanup: make(chan struct{}),
	}

	go storage.cleanupUnusedBuckets()

	return storage
}

// Stop stops the background cleanup goroutine. Call this when shutting down.
func (s *InMemoryStorage) Stop() {
	s.cleanup.Stop()
	close(s.stopCleanup)
}

// Allow checks if a request is allowed and consumes a token if available.
func (s *InMemoryStorage) Allow(ctx context.Context, key string, limit Limit) (bool, error) {
	bucketKey := s.getBucketKey(key, limit)

	s.mu.Lock()
	bucket, exists := s.buckets[bucketKey]
	if !exists {
		bucket = s.newTokenBucket(float64(limit.Requests), limit.Per)
		s.buckets[bucketKey] = bucket
	}
	s.mu.Unlock()

	return bucket.consume(1), nil
}

// getBucketKey generates a unique key for a route + window combination.
func (s *InMemoryStorage) getBucketKey(key string, limit Limit) string {
	return fmt.Sprintf("%s:%s", key, limit.Per)
}

// newTokenBucket creates a new token bucket with the given capacity and window duration.
func (s *InMemoryStorage) newTokenBucket(capacity float64, windowDuration time.Duration) *tokenBucket {
	now := time.Now()
	// Refill rate is capacity / window duration in seconds
	refillRate := capacity / windowDuration.Seconds()

	return &tokenBucket{
		tokens:         capacity,
		lastRefill:     now,
		capacity:       capacity,
		refillRate:     refillRate,
		windowDuration: windowDuration,
	}
}

// cleanupUnusedBuckets periodically removes buckets that haven't been used recently.
func (s *InMemoryStorage) cleanupUnusedBuckets() {
	for {
		select {
		case <-s.cleanup.C:
			s.mu.Lock()
			now := time.Now()
			for key, bucket := range s.buckets {
				bucket.mu.Lock()
				// Remove buckets that haven't been used in 2x their window duration
				unusedDuration := now.Sub(bucket.lastRefill)
				if unusedDuration > bucket.windowDuration*2 {
					delete(s.buckets, key)
				}
				bucket.mu.Unlock()
			}
			s.mu.Unlock()
		case <-s.stopCleanup:
			return
		}
	}
}
