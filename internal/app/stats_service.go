package app

import (
	"context"
	"slices"

	"healthlog/internal/domain"
)

// Default window sizes for the statistics views.
const (
	DefaultGlucoseWindow = 5
	DefaultWeightWindow  = 7
)

// StatsService serves windowed, most-recent-first views of the records.
type StatsService struct {
	store *RecordStore
}

// NewStatsService creates a StatsService backed by the given store.
func NewStatsService(store *RecordStore) *StatsService {
	return &StatsService{store: store}
}

// RecentWeight computes differentials over the full weight history and
// returns the last n entries, newest first. n <= 0 returns everything.
func (s *StatsService) RecentWeight(_ context.Context, n int) []domain.WeightStat {
	stats := domain.WeightDifferentials(s.store.Weight.All())
	return newestFirst(stats, n)
}

// RecentGlucose returns the last n readings, newest first.
func (s *StatsService) RecentGlucose(_ context.Context, n int) []domain.GlucoseRecord {
	return newestFirst(s.store.Glucose.All(), n)
}

func newestFirst[T any](items []T, n int) []T {
	if n > 0 && n < len(items) {
		items = items[len(items)-n:]
	}
	out := slices.Clone(items)
	slices.Reverse(out)
	if out == nil {
		out = []T{}
	}
	return out
}
