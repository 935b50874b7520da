package utils

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestSetNoDuplicates(t *testing.T) {
	s := NewSet[int]()

	if !s.Add(76916) {
		t.Error("first Add should return true")
	}
	if s.Add(76916) {
		t.Error("second Add of same code should return false")
	}
	if s.Size() != 1 {
		t.Errorf("size: got %d, want 1", s.Size())
	}
	if !s.Contains(76916) || s.Contains(1) {
		t.Error("Contains reports wrong membership")
	}
}

func TestSetConcurrency(t *testing.T) {
	s := NewSet[string]()
	var added int64

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if s.Add("same") {
				atomic.AddInt64(&added, 1)
			}
		}()
	}
	wg.Wait()

	if added != 1 {
		t.Errorf("expected exactly 1 successful add, got %d", added)
	}
}

func TestRunLockSerializesJobs(t *testing.T) {
	lock := NewRunLock()
	var running, maxRunning int32

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = lock.Run(context.Background(), func(context.Context) error {
				n := atomic.AddInt32(&running, 1)
				for {
					m := atomic.LoadInt32(&maxRunning)
					if n <= m || atomic.CompareAndSwapInt32(&maxRunning, m, n) {
						break
					}
				}
				time.Sleep(10 * time.Millisecond)
				atomic.AddInt32(&running, -1)
				return nil
			})
		}()
	}
	wg.Wait()

	if maxRunning != 1 {
		t.Errorf("max concurrent jobs: got %d, want 1", maxRunning)
	}
}

func TestRunLockHonoursContext(t *testing.T) {
	lock := NewRunLock()
	release := make(chan struct{})
	started := make(chan struct{})
	go lock.Run(context.Background(), func(context.Context) error {
		close(started)
		<-release
		return nil
	})
	<-started
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := lock.Run(ctx, func(context.Context) error {
		t.Error("job should not run while lock is held")
		return nil
	})
	if err != context.DeadlineExceeded {
		t.Errorf("got %v, want context.DeadlineExceeded", err)
	}
}
