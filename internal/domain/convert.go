package domain

import "math"

const waterLitersPerKg = 0.04

// Round1 rounds v to one decimal place, half away from zero.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// ComputeBMI returns weightKg / (heightCm/100)^2 rounded to one decimal.
// ok is false when either input is missing (zero), negative or not a number,
// so callers can show "no data" instead of a bogus figure.
func ComputeBMI(weightKg, heightCm float64) (bmi float64, ok bool) {
	if !usable(heightCm) || !usable(weightKg) {
		return 0, false
	}
	m := heightCm / 100
	return Round1(weightKg / (m * m)), true
}

// ComputeWaterIntakeLiters returns the recommended daily water intake for
// the given body weight, rounded to one decimal.
func ComputeWaterIntakeLiters(weightKg float64) (liters float64, ok bool) {
	if !usable(weightKg) {
		return 0, false
	}
	return Round1(weightKg * waterLitersPerKg), true
}

// DisplayGlucoseUnit returns the label for a glucose unit. Values are always
// shown in the unit they were recorded in; nothing converts between scales.
func DisplayGlucoseUnit(u GlucoseUnit) string {
	switch u {
	case GlucoseUnitMgdl:
		return "mg/dL"
	default:
		return "mmol/L"
	}
}

func usable(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
