package utils

import (
	"context"
	"sync"
)

// RunLock lets at most one job run at a time. Callers queue behind the
// running job until it finishes or their context is cancelled.
type RunLock struct {
	slot chan struct{}
}

// NewRunLock creates an unlocked RunLock.
func NewRunLock() *RunLock {
	return &RunLock{slot: make(chan struct{}, 1)}
}

// Run waits for the lock, then executes job while holding it.
func (l *RunLock) Run(ctx context.Context, job func(ctx context.Context) error) error {
	select {
	case l.slot <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}
	defer func() { <-l.slot }()

	return job(ctx)
}

// Set is a thread-safe set of comparable values.
type Set[T comparable] struct {
	mu   sync.RWMutex
	seen map[T]struct{}
}

// NewSet creates a Set holding vals.
func NewSet[T comparable](vals ...T) *Set[T] {
	s := &Set[T]{seen: make(map[T]struct{}, len(vals))}
	for _, v := range vals {
		s.seen[v] = struct{}{}
	}
	return s
}

// Add returns true if v was newly added, false if already present.
func (s *Set[T]) Add(v T) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.seen[v]; exists {
		return false
	}
	s.seen[v] = struct{}{}
	return true
}

// Contains returns true if v is in the set.
func (s *Set[T]) Contains(v T) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, exists := s.seen[v]
	return exists
}

// Size returns the number of unique values tracked.
func (s *Set[T]) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.seen)
}
