// Package app holds the application services and business logic.
package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"

	"go.uber.org/zap"

	"healthlog/internal/domain"
)

// Keys under which state is persisted.
const (
	KeyProfile        = "profile"
	KeyGlucoseRecords = "glucoseRecords"
	KeyWeightRecords  = "weightRecords"
)

// errUnchanged tells Collection.Update to skip the write.
var errUnchanged = errors.New("unchanged")

// Snapshot is a copy of the whole application state.
type Snapshot struct {
	Profile       domain.UserProfile
	SetupComplete bool
	Glucose       []domain.GlucoseRecord
	Weight        []domain.WeightRecord
}

// RecordStore owns the profile and both record collections. The key-value
// store is the source of truth; the in-memory copy is only replaced after a
// write succeeds. One mutex serializes every action.
type RecordStore struct {
	mu      sync.Mutex
	kv      domain.KeyValueStore
	log     *zap.Logger
	profile *domain.UserProfile

	Glucose *Collection[domain.GlucoseRecord]
	Weight  *Collection[domain.WeightRecord]
}

// NewRecordStore creates an empty RecordStore backed by kv. Call Load to
// read persisted state.
func NewRecordStore(kv domain.KeyValueStore, log *zap.Logger) *RecordStore {
	if log == nil {
		log = zap.NewNop()
	}
	s := &RecordStore{kv: kv, log: log}
	s.Glucose = &Collection[domain.GlucoseRecord]{
		key:   KeyGlucoseRecords,
		store: s,
		idOf:  func(r domain.GlucoseRecord) domain.RecordID { return r.ID },
	}
	s.Weight = &Collection[domain.WeightRecord]{
		key:   KeyWeightRecords,
		store: s,
		idOf:  func(r domain.WeightRecord) domain.RecordID { return r.ID },
		dup:   copyWeight,
	}
	return s
}

// Load reads every key from the backing store. A missing or malformed value
// yields the empty default for that key; only a backend failure is an error.
func (s *RecordStore) Load(ctx context.Context) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var profile *domain.UserProfile
	if ok, err := s.read(ctx, KeyProfile, &profile); err != nil {
		return Snapshot{}, err
	} else if !ok {
		profile = nil
	}

	var glucose []domain.GlucoseRecord
	if ok, err := s.read(ctx, KeyGlucoseRecords, &glucose); err != nil {
		return Snapshot{}, err
	} else if !ok {
		glucose = nil
	}

	var weight []domain.WeightRecord
	if ok, err := s.read(ctx, KeyWeightRecords, &weight); err != nil {
		return Snapshot{}, err
	} else if !ok {
		weight = nil
	}

	s.profile = profile
	s.Glucose.items = glucose
	s.Weight.items = weight
	s.log.Debug("state loaded",
		zap.Bool("setupComplete", profile != nil),
		zap.Int("glucoseRecords", len(glucose)),
		zap.Int("weightRecords", len(weight)),
	)
	return s.snapshotLocked(), nil
}

// Snapshot returns a copy of the current state.
func (s *RecordStore) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Profile returns the stored profile and whether setup has been completed.
func (s *RecordStore) Profile() (domain.UserProfile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.profile == nil {
		return domain.UserProfile{}, false
	}
	return *s.profile, true
}

// SaveProfile persists p and marks setup as complete.
func (s *RecordStore) SaveProfile(ctx context.Context, p domain.UserProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.write(ctx, KeyProfile, p); err != nil {
		return err
	}
	s.profile = &p
	return nil
}

func (s *RecordStore) snapshotLocked() Snapshot {
	snap := Snapshot{
		Glucose: s.Glucose.clone(),
		Weight:  s.Weight.clone(),
	}
	if s.profile != nil {
		snap.Profile = *s.profile
		snap.SetupComplete = true
	}
	return snap
}

func (s *RecordStore) read(ctx context.Context, key string, dst any) (bool, error) {
	raw, found, err := s.kv.Get(ctx, key)
	if err != nil {
		return false, fmt.Errorf("load %s: %w", key, err)
	}
	if !found {
		return false, nil
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		s.log.Warn("discarding malformed persisted value", zap.String("key", key), zap.Error(err))
		return false, nil
	}
	return true, nil
}

func (s *RecordStore) write(ctx context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.kv.Set(ctx, key, string(b)); err != nil {
		return fmt.Errorf("persist %s: %w", key, err)
	}
	return nil
}

// Collection is one insertion-ordered record list inside a RecordStore.
type Collection[T any] struct {
	key   string
	store *RecordStore
	idOf  func(T) domain.RecordID
	dup   func(T) T
	items []T
}

// All returns a copy of the records in stored order.
func (c *Collection[T]) All() []T {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()
	return c.clone()
}

// Find returns the record with the given id.
func (c *Collection[T]) Find(id domain.RecordID) (T, bool) {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()
	for _, r := range c.items {
		if c.idOf(r) == id {
			return c.copy(r), true
		}
	}
	var zero T
	return zero, false
}

// Last returns the most recently appended record.
func (c *Collection[T]) Last() (T, bool) {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()
	if len(c.items) == 0 {
		var zero T
		return zero, false
	}
	return c.copy(c.items[len(c.items)-1]), true
}

// Append adds rec at the end and persists the collection.
func (c *Collection[T]) Append(ctx context.Context, rec T) error {
	return c.Update(ctx, func(items []T) ([]T, error) {
		return append(items, rec), nil
	})
}

// ReplaceAll swaps the whole collection for recs and persists it.
func (c *Collection[T]) ReplaceAll(ctx context.Context, recs []T) error {
	return c.Update(ctx, func([]T) ([]T, error) {
		return slices.Clone(recs), nil
	})
}

// RemoveByID deletes the record with id. removed is false if no record had
// that id, in which case nothing is written.
func (c *Collection[T]) RemoveByID(ctx context.Context, id domain.RecordID) (removed bool, err error) {
	err = c.Update(ctx, func(items []T) ([]T, error) {
		i := slices.IndexFunc(items, func(r T) bool { return c.idOf(r) == id })
		if i < 0 {
			return nil, errUnchanged
		}
		removed = true
		return slices.Delete(items, i, i+1), nil
	})
	return removed, err
}

// Update runs fn over a copy of the records and persists the result before
// making it visible. If fn or the write fails, the collection is unchanged.
func (c *Collection[T]) Update(ctx context.Context, fn func([]T) ([]T, error)) error {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	next, err := fn(c.clone())
	if errors.Is(err, errUnchanged) {
		return nil
	}
	if err != nil {
		return err
	}
	if next == nil {
		next = []T{}
	}
	if err := c.store.write(ctx, c.key, next); err != nil {
		return err
	}
	// The cache owns its records; fn's result may still be referenced by
	// the caller.
	for i := range next {
		next[i] = c.copy(next[i])
	}
	c.items = next
	return nil
}

func (c *Collection[T]) clone() []T {
	if c.items == nil {
		return nil
	}
	out := make([]T, len(c.items))
	for i, r := range c.items {
		out[i] = c.copy(r)
	}
	return out
}

func (c *Collection[T]) copy(r T) T {
	if c.dup == nil {
		return r
	}
	return c.dup(r)
}

// copyWeight deep-copies the nullable fields so callers never share pointers
// with the cache.
func copyWeight(r domain.WeightRecord) domain.WeightRecord {
	if r.Morning != nil {
		m := *r.Morning
		r.Morning = &m
	}
	if r.Evening != nil {
		e := *r.Evening
		r.Evening = &e
	}
	return r
}
