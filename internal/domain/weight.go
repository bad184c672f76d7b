package domain

import "strings"

// WeightRecord holds the morning and evening weigh-ins (kg) for one date.
// Date is unique among records created through MergeWeight.
type WeightRecord struct {
	ID      RecordID `json:"id"`
	Date    string   `json:"date"`
	Morning *float64 `json:"morning"`
	Evening *float64 `json:"evening"`
}

// Current returns the morning weight, falling back to the evening one.
func (r WeightRecord) Current() (float64, bool) {
	if r.Morning != nil {
		return *r.Morning, true
	}
	if r.Evening != nil {
		return *r.Evening, true
	}
	return 0, false
}

// WeightForm is raw weight input as typed by the user.
type WeightForm struct {
	Date    string `json:"date"`
	Morning string `json:"morning"`
	Evening string `json:"evening"`
}

// WeightInput is a validated WeightForm; nil means the field was left empty.
type WeightInput struct {
	Date    string
	Morning *float64
	Evening *float64
}

// ParseWeightForm requires a date and at least one of morning/evening.
func ParseWeightForm(f WeightForm) (WeightInput, error) {
	date := strings.TrimSpace(f.Date)
	if date == "" {
		return WeightInput{}, invalid("date", "is required")
	}
	morning, err := optionalDecimal("morning", f.Morning)
	if err != nil {
		return WeightInput{}, err
	}
	evening, err := optionalDecimal("evening", f.Evening)
	if err != nil {
		return WeightInput{}, err
	}
	if morning == nil && evening == nil {
		return WeightInput{}, invalid("", "morning or evening weight is required")
	}
	return WeightInput{Date: date, Morning: morning, Evening: evening}, nil
}

// MergeWeight applies a newly entered weight. If a record for the same date
// exists, non-empty fields overwrite it and empty ones keep what was there;
// otherwise a record with id is appended. merged reports which happened.
func MergeWeight(records []WeightRecord, id RecordID, in WeightInput) (out []WeightRecord, rec WeightRecord, merged bool) {
	for i := range records {
		if records[i].Date != in.Date {
			continue
		}
		r := &records[i]
		if in.Morning != nil {
			r.Morning = ptr(*in.Morning)
		}
		if in.Evening != nil {
			r.Evening = ptr(*in.Evening)
		}
		return records, *r, true
	}
	rec = WeightRecord{ID: id, Date: in.Date, Morning: in.Morning, Evening: in.Evening}
	return append(records, rec), rec, false
}

// ApplyWeightEdit overwrites date, morning and evening of the record with the
// given id. Empty fields clear the stored value. Other records are not
// consulted, so an edit may leave two records on the same date.
func ApplyWeightEdit(records []WeightRecord, id RecordID, in WeightInput) ([]WeightRecord, WeightRecord, error) {
	for i := range records {
		if records[i].ID != id {
			continue
		}
		r := &records[i]
		r.Date = in.Date
		r.Morning = in.Morning
		r.Evening = in.Evening
		return records, *r, nil
	}
	return records, WeightRecord{}, ErrNotFound
}

func ptr(v float64) *float64 { return &v }
