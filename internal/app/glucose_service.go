package app

import (
	"context"
	"time"

	"healthlog/internal/domain"
)

// DeletePrompt is the question put to the Confirmer before a record is removed.
const DeletePrompt = "Delete this record?"

// GlucoseService encapsulates blood-glucose use cases.
type GlucoseService struct {
	store *RecordStore
	now   func() time.Time
	newID func() domain.RecordID
}

// NewGlucoseService creates a GlucoseService backed by the given store.
func NewGlucoseService(store *RecordStore) *GlucoseService {
	return &GlucoseService{store: store, now: time.Now, newID: domain.NewRecordID}
}

// Create validates the form and appends a reading dated today, in the unit
// currently selected in the profile.
func (s *GlucoseService) Create(ctx context.Context, form domain.GlucoseForm) (*domain.GlucoseRecord, error) {
	in, err := domain.ParseGlucoseForm(form)
	if err != nil {
		return nil, err
	}
	unit := domain.GlucoseUnitMmol
	if p, ok := s.store.Profile(); ok && p.GlucoseUnit != "" {
		unit = p.GlucoseUnit
	}
	rec := domain.NewGlucoseRecord(s.newID(), in, localDayString(s.now()), unit)
	if err := s.store.Glucose.Append(ctx, rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// Update rewrites value, time, type and notes of an existing reading.
func (s *GlucoseService) Update(ctx context.Context, id domain.RecordID, form domain.GlucoseForm) (*domain.GlucoseRecord, error) {
	in, err := domain.ParseGlucoseForm(form)
	if err != nil {
		return nil, err
	}
	var edited domain.GlucoseRecord
	err = s.store.Glucose.Update(ctx, func(items []domain.GlucoseRecord) ([]domain.GlucoseRecord, error) {
		out, rec, err := domain.ApplyGlucoseEdit(items, id, in)
		edited = rec
		return out, err
	})
	if err != nil {
		return nil, err
	}
	return &edited, nil
}

// Delete removes a reading once confirm approves. It reports whether a
// record was removed; a declined prompt is not an error.
func (s *GlucoseService) Delete(ctx context.Context, id domain.RecordID, confirm domain.Confirmer) (bool, error) {
	if confirm == nil || !confirm.Confirm(DeletePrompt) {
		return false, nil
	}
	return s.store.Glucose.RemoveByID(ctx, id)
}

// Get returns the reading with the given id.
func (s *GlucoseService) Get(_ context.Context, id domain.RecordID) (*domain.GlucoseRecord, error) {
	rec, ok := s.store.Glucose.Find(id)
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &rec, nil
}

// List returns every reading in entry order.
func (s *GlucoseService) List(_ context.Context) []domain.GlucoseRecord {
	return s.store.Glucose.All()
}

// Latest returns the most recently entered reading, or nil.
func (s *GlucoseService) Latest(_ context.Context) *domain.GlucoseRecord {
	rec, ok := s.store.Glucose.Last()
	if !ok {
		return nil
	}
	return &rec
}

func localDayString(t time.Time) string {
	return t.In(time.Local).Format("2006-01-02")
}
