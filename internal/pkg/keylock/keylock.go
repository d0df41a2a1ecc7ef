// Package keylock provides in-process mutual exclusion keyed by an arbitrary
// string, with timeout-bounded acquisition. Command handlers take the order
// key before mutating an order and additionally the partner key before
// committing partner-availability changes, so that concurrent operations on
// the same aggregate are serialized instead of corrupting each other.
package keylock

import (
	"context"
	"sync"
	"time"

	"dispatch/internal/pkg/errs"
)

// DefaultAcquireTimeout bounds lock acquisition when the caller's context
// carries no earlier deadline.
const DefaultAcquireTimeout = 3 * time.Second

// entry is a single-slot semaphore with a reference count. The count covers
// both the holder and all waiters so the entry is only evicted when idle.
type entry struct {
	sem  chan struct{}
	refs int
}

// Manager hands out scoped, guaranteed-released locks by key.
// The zero value is not usable; create instances via NewManager.
type Manager struct {
	mu      sync.Mutex
	entries map[string]*entry
	timeout time.Duration
}

// NewManager creates a lock manager. A non-positive timeout falls back to
// DefaultAcquireTimeout.
func NewManager(timeout time.Duration) *Manager {
	if timeout <= 0 {
		timeout = DefaultAcquireTimeout
	}
	return &Manager{
		entries: make(map[string]*entry),
		timeout: timeout,
	}
}

// Acquire takes the lock for key, blocking until it is granted, the context
// is cancelled, or the acquisition timeout elapses. On success it returns a
// release function that must be called exactly once, typically deferred.
// On timeout or cancellation it returns a ContentionError, which callers may
// treat as transient and retry.
func (m *Manager) Acquire(ctx context.Context, key string) (release func(), err error) {
	e := m.retain(key)

	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	select {
	case e.sem <- struct{}{}:
		var once sync.Once
		return func() {
			once.Do(func() {
				<-e.sem
				m.put(key)
			})
		}, nil
	case <-ctx.Done():
		m.put(key)
		return nil, errs.NewContentionErrorWithCause(key, ctx.Err())
	}
}

func (m *Manager) retain(key string) *entry {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		e = &entry{sem: make(chan struct{}, 1)}
		m.entries[key] = e
	}
	e.refs++
	return e
}

func (m *Manager) put(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		return
	}
	e.refs--
	if e.refs <= 0 {
		delete(m.entries, key)
	}
}
