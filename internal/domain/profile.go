package domain

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// GlucoseUnit is the unit glucose readings are entered in.
type GlucoseUnit string

const (
	GlucoseUnitMmol GlucoseUnit = "mmol"
	GlucoseUnitMgdl GlucoseUnit = "mgdl"
)

// ParseGlucoseUnit maps form input to a unit; empty input selects mmol.
func ParseGlucoseUnit(s string) (GlucoseUnit, error) {
	switch GlucoseUnit(strings.TrimSpace(s)) {
	case "", GlucoseUnitMmol:
		return GlucoseUnitMmol, nil
	case GlucoseUnitMgdl:
		return GlucoseUnitMgdl, nil
	}
	return "", invalid("glucoseUnit", "must be \"mmol\" or \"mgdl\"")
}

// Decimal is a number persisted as a decimal string, the way profile fields
// have always been stored. Unmarshalling accepts strings or numbers; an empty
// or non-numeric string decodes to zero, which the converters treat as
// missing.
type Decimal float64

// MarshalJSON writes the value as a string; zero is written as "".
func (d Decimal) MarshalJSON() ([]byte, error) {
	if d == 0 {
		return []byte(`""`), nil
	}
	return json.Marshal(strconv.FormatFloat(float64(d), 'f', -1, 64))
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Decimal) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*d = 0
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			f = 0
		}
		*d = Decimal(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*d = Decimal(f)
	return nil
}

// UserProfile is the single owner's body measurements and preferred unit.
type UserProfile struct {
	HeightCm    Decimal     `json:"height"`
	WeightKg    Decimal     `json:"weight"`
	GlucoseUnit GlucoseUnit `json:"glucoseUnit"`
}

// ProfileForm is the raw setup/settings input.
type ProfileForm struct {
	Height      string `json:"height"`
	Weight      string `json:"weight"`
	GlucoseUnit string `json:"glucoseUnit"`
}

// ParseProfileForm validates setup/settings input. Height and weight are
// required.
func ParseProfileForm(f ProfileForm) (UserProfile, error) {
	height, err := requiredDecimal("height", f.Height)
	if err != nil {
		return UserProfile{}, err
	}
	weight, err := requiredDecimal("weight", f.Weight)
	if err != nil {
		return UserProfile{}, err
	}
	unit, err := ParseGlucoseUnit(f.GlucoseUnit)
	if err != nil {
		return UserProfile{}, err
	}
	return UserProfile{HeightCm: Decimal(height), WeightKg: Decimal(weight), GlucoseUnit: unit}, nil
}

func requiredDecimal(field, s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, invalid(field, "is required")
	}
	v, err := parseDecimal(field, s)
	if err != nil {
		return 0, err
	}
	return *v, nil
}

// optionalDecimal returns nil for empty input.
func optionalDecimal(field, s string) (*float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	return parseDecimal(field, s)
}

func parseDecimal(field, s string) (*float64, error) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, invalid(field, "must be a number")
	}
	return &v, nil
}
