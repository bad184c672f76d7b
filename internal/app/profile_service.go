package app

import (
	"context"

	"healthlog/internal/domain"
)

// ProfileService handles first-run setup, settings and the home summary.
type ProfileService struct {
	store  *RecordStore
	weight *WeightService
}

// NewProfileService creates a ProfileService. weight supplies the current
// weight for the summary.
func NewProfileService(store *RecordStore, weight *WeightService) *ProfileService {
	return &ProfileService{store: store, weight: weight}
}

// Get returns the profile and whether setup has been completed.
func (s *ProfileService) Get(_ context.Context) (domain.UserProfile, bool) {
	return s.store.Profile()
}

// Save validates and persists the profile. The first save completes setup.
func (s *ProfileService) Save(ctx context.Context, form domain.ProfileForm) (*domain.UserProfile, error) {
	p, err := domain.ParseProfileForm(form)
	if err != nil {
		return nil, err
	}
	if err := s.store.SaveProfile(ctx, p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Summary holds the home screen figures. Nil fields mean "no data".
type Summary struct {
	SetupComplete   bool                  `json:"setupComplete"`
	CurrentWeightKg *float64              `json:"currentWeightKg"`
	BMI             *float64              `json:"bmi"`
	WaterLiters     *float64              `json:"waterLiters"`
	GlucoseUnit     string                `json:"glucoseUnit"`
	LatestGlucose   *domain.GlucoseRecord `json:"latestGlucose"`
	LatestWeight    *domain.WeightRecord  `json:"latestWeight"`
}

// Summary derives BMI and recommended water intake from the current weight
// and returns the latest readings.
func (s *ProfileService) Summary(ctx context.Context) Summary {
	p, setup := s.store.Profile()
	sum := Summary{
		SetupComplete: setup,
		GlucoseUnit:   domain.DisplayGlucoseUnit(p.GlucoseUnit),
		LatestWeight:  s.weight.Latest(ctx),
	}
	if rec, ok := s.store.Glucose.Last(); ok {
		sum.LatestGlucose = &rec
	}
	w, ok := s.weight.CurrentWeight(ctx)
	if !ok {
		return sum
	}
	sum.CurrentWeightKg = &w
	if bmi, ok := domain.ComputeBMI(w, float64(p.HeightCm)); ok {
		sum.BMI = &bmi
	}
	if liters, ok := domain.ComputeWaterIntakeLiters(w); ok {
		sum.WaterLiters = &liters
	}
	return sum
}
