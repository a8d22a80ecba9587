// Package workers bounds the concurrency of blocking work (OS process
// spawns, trace reads and remote RPCs) so the serving loop can never be
// saturated by them.
package workers

import (
	"context"

	"golang.org/x/sync/semaphore"
)

// Pool is a bounded slot pool. Do blocks until a slot frees up or the
// context is done, so callers keep their natural synchronous shape.
type Pool struct {
	sem *semaphore.Weighted
}

func New(size int64) *Pool {
	if size <= 0 {
		size = 1
	}
	return &Pool{sem: semaphore.NewWeighted(size)}
}

// Do runs fn inside a pool slot and returns its error, or the context error
// if no slot could be acquired.
func (p *Pool) Do(ctx context.Context, fn func() error) error {
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	defer p.sem.Release(1)

	return fn()
}
