package domain

import "strings"

// GlucoseType says when, relative to a meal, a reading was taken.
type GlucoseType string

const (
	GlucoseFasting    GlucoseType = "fasting"
	GlucoseAfterMeal  GlucoseType = "after-meal"
	GlucoseBeforeMeal GlucoseType = "before-meal"
)

// ParseGlucoseType maps form input to a type; empty input selects fasting.
func ParseGlucoseType(s string) (GlucoseType, error) {
	switch t := GlucoseType(strings.TrimSpace(s)); t {
	case "":
		return GlucoseFasting, nil
	case GlucoseFasting, GlucoseAfterMeal, GlucoseBeforeMeal:
		return t, nil
	}
	return "", invalid("type", "must be one of fasting, after-meal, before-meal")
}

// Label returns a human readable name.
func (t GlucoseType) Label() string {
	switch t {
	case GlucoseAfterMeal:
		return "After meal"
	case GlucoseBeforeMeal:
		return "Before meal"
	default:
		return "Fasting"
	}
}

// GlucoseRecord is a single blood-glucose reading. Unit is the profile unit
// at the time the reading was created and never changes afterwards.
type GlucoseRecord struct {
	ID    RecordID    `json:"id"`
	Value float64     `json:"value"`
	Date  string      `json:"date"`
	Time  string      `json:"time"`
	Type  GlucoseType `json:"type"`
	Notes string      `json:"notes"`
	Unit  GlucoseUnit `json:"unit"`
}

// GlucoseForm is raw glucose input as typed by the user.
type GlucoseForm struct {
	Value string `json:"value"`
	Time  string `json:"time"`
	Type  string `json:"type"`
	Notes string `json:"notes"`
}

// GlucoseInput is a validated GlucoseForm.
type GlucoseInput struct {
	Value float64
	Time  string
	Type  GlucoseType
	Notes string
}

// ParseGlucoseForm requires a numeric value and a time.
func ParseGlucoseForm(f GlucoseForm) (GlucoseInput, error) {
	value, err := requiredDecimal("value", f.Value)
	if err != nil {
		return GlucoseInput{}, err
	}
	tm := strings.TrimSpace(f.Time)
	if tm == "" {
		return GlucoseInput{}, invalid("time", "is required")
	}
	typ, err := ParseGlucoseType(f.Type)
	if err != nil {
		return GlucoseInput{}, err
	}
	return GlucoseInput{Value: value, Time: tm, Type: typ, Notes: strings.TrimSpace(f.Notes)}, nil
}

// NewGlucoseRecord builds a record for a freshly entered reading.
func NewGlucoseRecord(id RecordID, in GlucoseInput, date string, unit GlucoseUnit) GlucoseRecord {
	return GlucoseRecord{
		ID:    id,
		Value: in.Value,
		Date:  date,
		Time:  in.Time,
		Type:  in.Type,
		Notes: in.Notes,
		Unit:  unit,
	}
}

// ApplyGlucoseEdit rewrites value, time, type and notes of the record with
// the given id in place. Id, date and unit are kept. records is modified and
// returned along with the edited record.
func ApplyGlucoseEdit(records []GlucoseRecord, id RecordID, in GlucoseInput) ([]GlucoseRecord, GlucoseRecord, error) {
	for i := range records {
		if records[i].ID != id {
			continue
		}
		r := &records[i]
		r.Value = in.Value
		r.Time = in.Time
		r.Type = in.Type
		r.Notes = in.Notes
		return records, *r, nil
	}
	return records, GlucoseRecord{}, ErrNotFound
}
