package domain_test

import (
	"math"
	"testing"

	"healthlog/internal/domain"
)

func almostEqual(a, b, epsilon float64) bool {
	return math.Abs(a-b) < epsilon
}

func TestComputeBMI(t *testing.T) {
	tests := []struct {
		name           string
		weight, height float64
		want           float64
		wantOK         bool
	}{
		{"typical", 75.5, 170, 26.1, true},
		{"round number", 80, 200, 20.0, true},
		{"zero height", 75.5, 0, 0, false},
		{"negative height", 75.5, -170, 0, false},
		{"NaN height", 75.5, math.NaN(), 0, false},
		{"missing weight", 0, 170, 0, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := domain.ComputeBMI(tc.weight, tc.height)
			if ok != tc.wantOK {
				t.Fatalf("ComputeBMI(%v, %v) ok = %v; want %v", tc.weight, tc.height, ok, tc.wantOK)
			}
			if !almostEqual(got, tc.want, 0.0001) {
				t.Errorf("ComputeBMI(%v, %v) = %v; want %v", tc.weight, tc.height, got, tc.want)
			}
		})
	}
}

func TestComputeWaterIntakeLiters(t *testing.T) {
	tests := []struct {
		weight float64
		want   float64
		wantOK bool
	}{
		{75.5, 3.0, true},
		{100, 4.0, true},
		{62, 2.5, true},
		{0, 0, false},
	}
	for _, tc := range tests {
		got, ok := domain.ComputeWaterIntakeLiters(tc.weight)
		if ok != tc.wantOK || !almostEqual(got, tc.want, 0.0001) {
			t.Errorf("ComputeWaterIntakeLiters(%v) = %v, %v; want %v, %v", tc.weight, got, ok, tc.want, tc.wantOK)
		}
	}
}

func TestDisplayGlucoseUnit(t *testing.T) {
	if got := domain.DisplayGlucoseUnit(domain.GlucoseUnitMmol); got != "mmol/L" {
		t.Errorf("mmol label = %q", got)
	}
	if got := domain.DisplayGlucoseUnit(domain.GlucoseUnitMgdl); got != "mg/dL" {
		t.Errorf("mgdl label = %q", got)
	}
}

func TestRound1(t *testing.T) {
	tests := []struct{ in, want float64 }{
		{-1.0000001, -1.0},
		{26.1245, 26.1},
		{3.02, 3.0},
	}
	for _, tc := range tests {
		if got := domain.Round1(tc.in); !almostEqual(got, tc.want, 1e-9) {
			t.Errorf("Round1(%v) = %v; want %v", tc.in, got, tc.want)
		}
	}
}
