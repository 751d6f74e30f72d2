// Package cache provides single-entry TTL cache slots. Each slot holds one
// immutable value that is replaced whole on refresh, so a reader always
// sees either the fully-old or fully-new entry.
package cache

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Slot caches one value with get-or-refresh semantics. A value older than
// the TTL is refreshed before being returned; Invalidate forces the next
// Get to refresh regardless of age. A failed refresh discards any previous
// value rather than silently serving stale data.
type Slot[T any] struct {
	mu        sync.Mutex
	ttl       time.Duration
	value     T
	fetchedAt time.Time
	valid     bool

	group singleflight.Group
	now   func() time.Time
}

// NewSlot creates an empty slot with the given freshness window.
func NewSlot[T any](ttl time.Duration) *Slot[T] {
	return &Slot[T]{ttl: ttl, now: time.Now}
}

// Get returns the cached value, refreshing it first when absent or stale.
// Concurrent callers share a single refresh.
func (s *Slot[T]) Get(ctx context.Context, refresh func(context.Context) (T, error)) (T, error) {
	if v, ok := s.fresh(); ok {
		return v, nil
	}

	v, err, _ := s.group.Do("slot", func() (any, error) {
		// Another caller may have refreshed while we waited on the group.
		if v, ok := s.fresh(); ok {
			return v, nil
		}
		value, err := refresh(ctx)
		s.mu.Lock()
		defer s.mu.Unlock()
		if err != nil {
			var zero T
			s.value = zero
			s.valid = false
			return zero, err
		}
		s.value = value
		s.fetchedAt = s.now()
		s.valid = true
		return value, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}

// Peek returns the cached value without refreshing, and whether it is
// present and fresh.
func (s *Slot[T]) Peek() (T, bool) {
	return s.fresh()
}

// Invalidate marks the slot expired so the next Get refreshes.
func (s *Slot[T]) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	var zero T
	s.value = zero
	s.valid = false
}

func (s *Slot[T]) fresh() (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.valid || s.now().Sub(s.fetchedAt) > s.ttl {
		var zero T
		return zero, false
	}
	return s.value, true
}
