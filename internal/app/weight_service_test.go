package app_test

import (
	"context"
	"errors"
	"testing"

	"healthlog/internal/app"
	"healthlog/internal/domain"
)

func TestWeightCreate_Validation(t *testing.T) {
	svc := app.NewWeightService(loadedStore(t, newMockKV(nil)))

	tests := []struct {
		name string
		form domain.WeightForm
	}{
		{"no date", domain.WeightForm{Morning: "80"}},
		{"no weights", domain.WeightForm{Date: "2026-01-15"}},
		{"bad morning", domain.WeightForm{Date: "2026-01-15", Morning: "heavy"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := svc.Create(context.Background(), tc.form)
			if !domain.IsValidation(err) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestWeightCreate_MergesSameDate(t *testing.T) {
	store := loadedStore(t, newMockKV(nil))
	svc := app.NewWeightService(store)
	ctx := context.Background()

	first, merged, err := svc.Create(ctx, domain.WeightForm{Date: "2026-01-15", Morning: "80.2"})
	if err != nil || merged {
		t.Fatalf("first create: merged=%v err=%v", merged, err)
	}
	second, merged, err := svc.Create(ctx, domain.WeightForm{Date: "2026-01-15", Evening: "81"})
	if err != nil || !merged {
		t.Fatalf("second create: merged=%v err=%v", merged, err)
	}
	if second.ID != first.ID {
		t.Errorf("merge should keep id %s, got %s", first.ID, second.ID)
	}

	all := svc.List(ctx)
	if len(all) != 1 {
		t.Fatalf("expected one record for the date, got %d", len(all))
	}
	if all[0].Morning == nil || *all[0].Morning != 80.2 || all[0].Evening == nil || *all[0].Evening != 81 {
		t.Errorf("merge lost a field: %+v", all[0])
	}
}

func TestWeightUpdate_ExplicitClear(t *testing.T) {
	svc := app.NewWeightService(loadedStore(t, newMockKV(nil)))
	ctx := context.Background()

	rec, _, err := svc.Create(ctx, domain.WeightForm{Date: "2026-01-15", Morning: "80", Evening: "81"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	edited, err := svc.Update(ctx, rec.ID, domain.WeightForm{Date: "2026-01-16", Evening: "80.5"})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if edited.Morning != nil {
		t.Errorf("morning should be cleared, got %v", *edited.Morning)
	}
	if edited.Date != "2026-01-16" || edited.Evening == nil || *edited.Evening != 80.5 {
		t.Errorf("unexpected edit: %+v", edited)
	}
}

func TestWeightUpdate_UnknownID(t *testing.T) {
	svc := app.NewWeightService(loadedStore(t, newMockKV(nil)))
	_, err := svc.Update(context.Background(), "nope", domain.WeightForm{Date: "2026-01-15", Morning: "80"})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestWeightCreate_RepoError(t *testing.T) {
	kv := newMockKV(nil)
	svc := app.NewWeightService(loadedStore(t, kv))
	kv.setFn = func(context.Context, string, string) error { return errBackend }

	_, _, err := svc.Create(context.Background(), domain.WeightForm{Date: "2026-01-15", Morning: "80"})
	if !errors.Is(err, errBackend) {
		t.Fatalf("expected backend error, got %v", err)
	}
	if len(svc.List(context.Background())) != 0 {
		t.Error("failed create must not be visible")
	}
}

func TestCurrentWeight(t *testing.T) {
	store := loadedStore(t, newMockKV(nil))
	svc := app.NewWeightService(store)
	ctx := context.Background()

	if _, ok := svc.CurrentWeight(ctx); ok {
		t.Fatal("no data yet")
	}

	if err := store.SaveProfile(ctx, domain.UserProfile{HeightCm: 175, WeightKg: 82}); err != nil {
		t.Fatalf("SaveProfile: %v", err)
	}
	if w, ok := svc.CurrentWeight(ctx); !ok || w != 82 {
		t.Errorf("profile fallback = %v, %v; want 82", w, ok)
	}

	if _, _, err := svc.Create(ctx, domain.WeightForm{Date: "2026-01-15", Evening: "81.4"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if w, _ := svc.CurrentWeight(ctx); w != 81.4 {
		t.Errorf("evening fallback = %v; want 81.4", w)
	}

	if _, _, err := svc.Create(ctx, domain.WeightForm{Date: "2026-01-15", Morning: "80.9"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if w, _ := svc.CurrentWeight(ctx); w != 80.9 {
		t.Errorf("morning = %v; want 80.9", w)
	}
}

func TestWeightDelete_Declined(t *testing.T) {
	kv := newMockKV(nil)
	svc := app.NewWeightService(loadedStore(t, kv))
	ctx := context.Background()

	rec, _, err := svc.Create(ctx, domain.WeightForm{Date: "2026-01-15", Morning: "80"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	before := kv.value(app.KeyWeightRecords)

	removed, err := svc.Delete(ctx, rec.ID, nil)
	if err != nil || removed {
		t.Fatalf("nil confirmer: removed=%v err=%v", removed, err)
	}
	if kv.value(app.KeyWeightRecords) != before {
		t.Error("persisted state changed")
	}

	removed, err = svc.Delete(ctx, rec.ID, domain.AlwaysConfirm)
	if err != nil || !removed {
		t.Fatalf("confirmed delete: removed=%v err=%v", removed, err)
	}
	if kv.value(app.KeyWeightRecords) != "[]" {
		t.Errorf("persisted %q; want []", kv.value(app.KeyWeightRecords))
	}
}
