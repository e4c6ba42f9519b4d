// Package loader implements per-request batch loaders. A loader coalesces
// single-key lookups issued within a short window into one multi-key store
// query and hands each caller its own result. Loaders are scoped to one unit
// of work and must never be shared across requests.
package loader

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// BatchFunc fetches values for a set of distinct keys in one store query.
// The result slice must align positionally with keys; missing keys are
// represented by zero values, never by shortening the slice.
type BatchFunc[K comparable, V any] func(ctx context.Context, keys []K) ([]V, error)

// Loader batches and caches lookups for the lifetime of one request.
type Loader[K comparable, V any] struct {
	fetch    BatchFunc[K, V]
	wait     time.Duration
	maxBatch int

	mu      sync.Mutex
	cache   map[K]*thunk[V]
	pending *batch[K, V]
}

type thunk[V any] struct {
	done  chan struct{}
	value V
	err   error
}

type batch[K comparable, V any] struct {
	keys   []K
	thunks []*thunk[V]
	timer  *time.Timer
}

// Options tunes loader batching behaviour.
type Options struct {
	Wait     time.Duration
	MaxBatch int
}

// New constructs a loader around a batch function.
func New[K comparable, V any](fetch BatchFunc[K, V], opts Options) *Loader[K, V] {
	wait := opts.Wait
	if wait <= 0 {
		wait = 2 * time.Millisecond
	}
	maxBatch := opts.MaxBatch
	if maxBatch <= 0 {
		maxBatch = 100
	}
	return &Loader[K, V]{
		fetch:    fetch,
		wait:     wait,
		maxBatch: maxBatch,
		cache:    make(map[K]*thunk[V]),
	}
}

// Load returns the value for key, coalescing concurrent calls into one batch
// and serving repeats from the per-request cache.
func (l *Loader[K, V]) Load(ctx context.Context, key K) (V, error) {
	l.mu.Lock()
	if t, ok := l.cache[key]; ok {
		l.mu.Unlock()
		return t.await(ctx)
	}

	t := &thunk[V]{done: make(chan struct{})}
	l.cache[key] = t

	if l.pending == nil {
		b := &batch[K, V]{}
		b.timer = time.AfterFunc(l.wait, func() {
			l.dispatch(context.WithoutCancel(ctx), b)
		})
		l.pending = b
	}

	b := l.pending
	b.keys = append(b.keys, key)
	b.thunks = append(b.thunks, t)

	if len(b.keys) >= l.maxBatch {
		b.timer.Stop()
		l.pending = nil
		l.mu.Unlock()
		l.run(ctx, b)
		return t.await(ctx)
	}

	l.mu.Unlock()
	return t.await(ctx)
}

// Clear drops one cached key so the next Load refetches it. Used after a
// write invalidates data already loaded in the same request.
func (l *Loader[K, V]) Clear(key K) {
	l.mu.Lock()
	delete(l.cache, key)
	l.mu.Unlock()
}

// Prime seeds the cache with a known value, overwriting any existing entry.
func (l *Loader[K, V]) Prime(key K, value V) {
	t := &thunk[V]{done: make(chan struct{}), value: value}
	close(t.done)
	l.mu.Lock()
	l.cache[key] = t
	l.mu.Unlock()
}

func (l *Loader[K, V]) dispatch(ctx context.Context, b *batch[K, V]) {
	l.mu.Lock()
	if l.pending != b {
		// the max-batch path already took this batch; running it again
		// would complete its thunks twice
		l.mu.Unlock()
		return
	}
	l.pending = nil
	l.mu.Unlock()
	l.run(ctx, b)
}

func (l *Loader[K, V]) run(ctx context.Context, b *batch[K, V]) {
	values, err := l.fetch(ctx, b.keys)
	if err == nil && len(values) != len(b.keys) {
		err = fmt.Errorf("loader: batch returned %d results for %d keys", len(values), len(b.keys))
	}
	for i, t := range b.thunks {
		if err != nil {
			t.err = err
		} else {
			t.value = values[i]
		}
		close(t.done)
	}
}

func (t *thunk[V]) await(ctx context.Context) (V, error) {
	select {
	case <-t.done:
		return t.value, t.err
	case <-ctx.Done():
		var zero V
		return zero, ctx.Err()
	}
}
