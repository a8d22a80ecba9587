package workers

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
)

func TestDoRunsFunc(t *testing.T) {
	p := New(2)

	ran := false
	err := p.Do(context.Background(), func() error {
		ran = true
		return nil
	})
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	if !ran {
		t.Error("Do did not run the function")
	}
}

func TestDoPropagatesError(t *testing.T) {
	p := New(1)

	want := errors.New("boom")
	if err := p.Do(context.Background(), func() error { return want }); !errors.Is(err, want) {
		t.Errorf("Do error = %v, want %v", err, want)
	}
}

func TestDoBoundsConcurrency(t *testing.T) {
	const size = 3
	p := New(size)

	var current, peak int64
	var wg sync.WaitGroup
	gate := make(chan struct{})

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = p.Do(context.Background(), func() error {
				n := atomic.AddInt64(&current, 1)
				for {
					old := atomic.LoadInt64(&peak)
					if n <= old || atomic.CompareAndSwapInt64(&peak, old, n) {
						break
					}
				}
				<-gate
				atomic.AddInt64(&current, -1)
				return nil
			})
		}()
	}

	close(gate)
	wg.Wait()

	if got := atomic.LoadInt64(&peak); got > size {
		t.Errorf("peak concurrency = %d, want at most %d", got, size)
	}
}

func TestDoHonorsCancelledContext(t *testing.T) {
	p := New(1)

	// Occupy the only slot.
	hold := make(chan struct{})
	holding := make(chan struct{})
	done := make(chan struct{})
	go func() {
		_ = p.Do(context.Background(), func() error {
			close(holding)
			<-hold
			return nil
		})
		close(done)
	}()
	<-holding

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := p.Do(ctx, func() error {
		t.Error("function ran despite cancelled context")
		return nil
	})
	if err == nil {
		t.Error("Do with cancelled context returned nil")
	}

	close(hold)
	<-done
}
