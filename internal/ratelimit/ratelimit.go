package ratelimit

import (
	"context"
	"time"
)

// Limit caps requests to Requests per Per window.
type Limit struct {
	Requests int
	Per      time.Duration
}

// Policy maps a route to its limit tiers. A route missing from the policy is
// unlimited. Every tier must pass for a request to be allowed.
type Policy map[string][]Limit

// DefaultPolicy returns the tiered caps for the auth surface.
func DefaultPolicy() Policy {
	return Policy{
		"/auth/register": {
			{Requests: 1, Per: time.Second},
			{Requests: 3, Per: 10 * time.Second},
			{Requests: 5, Per: time.Minute},
		},
		"/auth/login": {
			{Requests: 5, Per: time.Minute},
		},
		"/auth/forgot-password": {
			{Requests: 3, Per: time.Minute},
		},
	}
}

// Storage tracks consumption for a key/limit pair. Implementations exist for
// in-process and Redis-backed buckets.
type Storage interface {
	Allow(ctx context.Context, key string, limit Limit) (bool, error)
}

// Limiter applies a Policy through a Storage backend.
type Limiter struct {
	policy  Policy
	storage Storage
}

// NewLimiter constructs a limiter
func NewLimiter(policy Policy, storage Storage) *Limiter {
	return &Limiter{policy: policy, storage: storage}
}

// Allow reports whether a request for the route fits within every tier of its
// policy. Buckets are tracked per route and client, so one caller exhausting a
// tier does not lock out others. Routes without a policy are always allowed.
func (l *Limiter) Allow(ctx context.Context, route, client string) (bool, error) {
	limits, ok := l.policy[route]
	if !ok {
		return true, nil
	}

	key := route + "|" + client
	for _, limit := range limits {
		allowed, err := l.storage.Allow(ctx, key, limit)
		if err != nil {
			return false, err
		}
		if !allowed {
			return false, nil
		}
	}

	return true, nil
}
