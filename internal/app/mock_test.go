package app_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"healthlog/internal/app"
)

var errBackend = errors.New("backend unavailable")

// mockKV is a map-backed KeyValueStore whose calls can be intercepted.
type mockKV struct {
	mu     sync.Mutex
	values map[string]string
	writes int

	getFn func(ctx context.Context, key string) (string, bool, error)
	setFn func(ctx context.Context, key, value string) error
}

func newMockKV(seed map[string]string) *mockKV {
	values := make(map[string]string, len(seed))
	for k, v := range seed {
		values[k] = v
	}
	return &mockKV{values: values}
}

func (m *mockKV) Get(ctx context.Context, key string) (string, bool, error) {
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *mockKV) Set(ctx context.Context, key, value string) error {
	if m.setFn != nil {
		return m.setFn(ctx, key, value)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writes++
	m.values[key] = value
	return nil
}

func (m *mockKV) value(key string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.values[key]
}

func (m *mockKV) writeCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

// loadedStore returns a RecordStore over kv after a successful Load.
func loadedStore(t *testing.T, kv *mockKV) *app.RecordStore {
	t.Helper()
	store := app.NewRecordStore(kv, nil)
	if _, err := store.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return store
}

func f(v float64) *float64 { return &v }
