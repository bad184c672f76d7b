package app

import (
	"context"
	"time"

	"healthlog/internal/domain"
)

// WeightService encapsulates weight-tracking use cases.
type WeightService struct {
	store *RecordStore
	now   func() time.Time
	newID func() domain.RecordID
}

// NewWeightService creates a WeightService backed by the given store.
func NewWeightService(store *RecordStore) *WeightService {
	return &WeightService{store: store, now: time.Now, newID: domain.NewRecordID}
}

// Create records a weigh-in. If the date already has a record the entered
// fields are merged into it and merged is true.
func (s *WeightService) Create(ctx context.Context, form domain.WeightForm) (rec *domain.WeightRecord, merged bool, err error) {
	in, err := domain.ParseWeightForm(form)
	if err != nil {
		return nil, false, err
	}
	id := s.newID()
	var out domain.WeightRecord
	err = s.store.Weight.Update(ctx, func(items []domain.WeightRecord) ([]domain.WeightRecord, error) {
		var next []domain.WeightRecord
		next, out, merged = domain.MergeWeight(items, id, in)
		return next, nil
	})
	if err != nil {
		return nil, false, err
	}
	out = copyWeight(out)
	return &out, merged, nil
}

// Update overwrites date, morning and evening of an existing record. Empty
// fields clear the stored value.
func (s *WeightService) Update(ctx context.Context, id domain.RecordID, form domain.WeightForm) (*domain.WeightRecord, error) {
	in, err := domain.ParseWeightForm(form)
	if err != nil {
		return nil, err
	}
	var edited domain.WeightRecord
	err = s.store.Weight.Update(ctx, func(items []domain.WeightRecord) ([]domain.WeightRecord, error) {
		out, rec, err := domain.ApplyWeightEdit(items, id, in)
		edited = rec
		return out, err
	})
	if err != nil {
		return nil, err
	}
	edited = copyWeight(edited)
	return &edited, nil
}

// Delete removes a record once confirm approves.
func (s *WeightService) Delete(ctx context.Context, id domain.RecordID, confirm domain.Confirmer) (bool, error) {
	if confirm == nil || !confirm.Confirm(DeletePrompt) {
		return false, nil
	}
	return s.store.Weight.RemoveByID(ctx, id)
}

// Get returns the record with the given id.
func (s *WeightService) Get(_ context.Context, id domain.RecordID) (*domain.WeightRecord, error) {
	rec, ok := s.store.Weight.Find(id)
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &rec, nil
}

// List returns every record in stored order.
func (s *WeightService) List(_ context.Context) []domain.WeightRecord {
	return s.store.Weight.All()
}

// Latest returns the last stored record, or nil.
func (s *WeightService) Latest(_ context.Context) *domain.WeightRecord {
	rec, ok := s.store.Weight.Last()
	if !ok {
		return nil
	}
	return &rec
}

// CurrentWeight is the latest record's morning weight, else its evening
// weight, else the weight entered in the profile.
func (s *WeightService) CurrentWeight(ctx context.Context) (float64, bool) {
	if rec := s.Latest(ctx); rec != nil {
		if v, ok := rec.Current(); ok {
			return v, true
		}
	}
	if p, ok := s.store.Profile(); ok && p.WeightKg > 0 {
		return float64(p.WeightKg), true
	}
	return 0, false
}

// Today returns today's local date, the default for new weigh-ins.
func (s *WeightService) Today() string {
	return localDayString(s.now())
}
