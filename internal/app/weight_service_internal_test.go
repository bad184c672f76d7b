package app

import (
	"testing"
	"time"
)

func TestWeightToday_UsesClock(t *testing.T) {
	svc := NewWeightService(nil)
	svc.now = func() time.Time { return time.Date(2026, 1, 15, 23, 30, 0, 0, time.Local) }

	if got := svc.Today(); got != "2026-01-15" {
		t.Errorf("Today() = %q, want 2026-01-15", got)
	}
}
