// Package memory implements in-memory adapters for development and testing.
package memory

import (
	"context"
	"sync"
	"time"

	"healthlog/internal/domain"
)

// KV is a map-backed key-value store. Nothing survives the process.
type KV struct {
	mu     sync.Mutex
	values map[string]string
}

// New creates an empty in-memory key-value store.
func New() *KV {
	return &KV{values: make(map[string]string)}
}

// Ensure interfaces are met.
var _ domain.KeyValueStore = (*KV)(nil)
var _ domain.SessionRepository = (*SessionRepo)(nil)

// Get returns the value stored under key.
func (kv *KV) Get(_ context.Context, key string) (string, bool, error) {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	v, ok := kv.values[key]
	return v, ok, nil
}

// Set stores value under key.
func (kv *KV) Set(_ context.Context, key, value string) error {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	kv.values[key] = value
	return nil
}

// --- SessionRepository ---

// SessionRepo keeps owner sessions in memory; a restart signs the owner out.
type SessionRepo struct {
	mu       sync.Mutex
	sessions map[string]domain.Session
	now      func() time.Time
}

// NewSessionRepo creates a new session repository.
func NewSessionRepo() *SessionRepo {
	return &SessionRepo{sessions: make(map[string]domain.Session), now: time.Now}
}

// Create stores a new session.
func (r *SessionRepo) Create(_ context.Context, s domain.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.Token] = s
	return nil
}

// GetByToken retrieves a session by token.
func (r *SessionRepo) GetByToken(_ context.Context, token string) (*domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[token]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

// Delete deletes a session.
func (r *SessionRepo) Delete(_ context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, token)
	return nil
}

// DeleteExpired deletes all expired sessions.
func (r *SessionRepo) DeleteExpired(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	for k, v := range r.sessions {
		if now.After(v.ExpiresAt) {
			delete(r.sessions, k)
		}
	}
	return nil
}
