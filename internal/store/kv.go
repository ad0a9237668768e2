// internal/store/kv.go
//
// Key-value persistence for game state.
// The core treats storage as an opaque KV interface; implementations may
// be backed by memory (this file), SQLite (sqlite.go), Redis, etc.
//
// Keys in use:
//   <namespace>_<year>_<month>_<day>  → serialized day session
//   <namespace>_stats                 → serialized stats record

package store

import (
	"context"
	"sync"
)

// KV is the persistence interface consumed by the game core.
type KV interface {
	// Get returns the value for key, with found=false when absent.
	Get(ctx context.Context, key string) (value []byte, found bool, err error)

	// Set writes or replaces the value for key.
	Set(ctx context.Context, key string, value []byte) error
}

// Claimer is optionally implemented by stores that can move all state
// from one namespace to another (anonymous → account on login).
type Claimer interface {
	Claim(ctx context.Context, fromNS, toNS string) error
}

// StoreError marks a persistence failure. In-memory game state stays
// authoritative when one is returned; callers log and carry on.
type StoreError struct {
	Key string
	Err error
}

func (e *StoreError) Error() string {
	return "store: write " + e.Key + ": " + e.Err.Error()
}

func (e *StoreError) Unwrap() error { return e.Err }

// memory is an in-memory map-based KV implementation.
// State is lost when the process restarts; used in development and tests.
type memory struct {
	mu   sync.RWMutex // guards data
	data map[string][]byte
}

// NewMemory constructs an in-memory KV store.
func NewMemory() KV {
	return &memory{data: make(map[string][]byte)}
}

func (m *memory) Get(ctx context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, true, nil
}

func (m *memory) Set(ctx context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	v := make([]byte, len(value))
	copy(v, value)
	m.data[key] = v
	return nil
}
