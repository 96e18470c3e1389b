// Package cache keeps API reference data (countries, airports, ticket types,
// admin hotel and airline lists) for a short while so repeated form loads do
// not hit the API.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"
)

// ErrMiss is returned by Get when the key is absent or expired.
var ErrMiss = errors.New("cache: miss")

// Store is a byte cache with per-entry TTL.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Loader reads through a Store and collapses concurrent misses for the same
// key into one fetch.
type Loader struct {
	store Store
	ttl   time.Duration

	mu       sync.Mutex
	inflight map[string]*inflightRequest
}

type inflightRequest struct {
	done  chan struct{}
	value []byte
	err   error
}

func NewLoader(store Store, ttl time.Duration) *Loader {
	return &Loader{
		store:    store,
		ttl:      ttl,
		inflight: make(map[string]*inflightRequest),
	}
}

// Invalidate drops key so the next Fetch goes to the source.
func (l *Loader) Invalidate(ctx context.Context, key string) error {
	return l.store.Delete(ctx, key)
}

// Fetch returns the cached value for key, or runs fetch and stores its
// JSON encoding. The boolean reports a cache hit. Store failures fall
// through to fetch. A nil Loader always fetches.
func Fetch[T any](ctx context.Context, l *Loader, key string, fetch func(context.Context) (T, error)) (T, bool, error) {
	var zero T
	if l == nil {
		v, err := fetch(ctx)
		return v, false, err
	}

	if v, ok := lookup[T](ctx, l.store, key); ok {
		return v, true, nil
	}

	l.mu.Lock()
	// a fetch may have finished between the lookup and the lock
	if v, ok := lookup[T](ctx, l.store, key); ok {
		l.mu.Unlock()
		return v, true, nil
	}
	if req, ok := l.inflight[key]; ok {
		l.mu.Unlock()
		select {
		case <-req.done:
			if req.err != nil {
				return zero, false, req.err
			}
			var v T
			if err := json.Unmarshal(req.value, &v); err != nil {
				return zero, false, fmt.Errorf("cache: decode %s: %w", key, err)
			}
			return v, false, nil
		case <-ctx.Done():
			return zero, false, context.Cause(ctx)
		}
	}
	req := &inflightRequest{done: make(chan struct{})}
	l.inflight[key] = req
	l.mu.Unlock()

	v, err := fetch(ctx)
	if err == nil {
		req.value, err = json.Marshal(v)
	}
	req.err = err
	if err == nil {
		// a failed write only costs a refetch later
		_ = l.store.Set(ctx, key, req.value, l.ttl)
	}

	l.mu.Lock()
	delete(l.inflight, key)
	l.mu.Unlock()
	close(req.done)

	if err != nil {
		return zero, false, err
	}
	return v, false, nil
}

func lookup[T any](ctx context.Context, store Store, key string) (T, bool) {
	var v T
	b, err := store.Get(ctx, key)
	if err != nil {
		return v, false
	}
	if err := json.Unmarshal(b, &v); err != nil {
		return v, false
	}
	return v, true
}
