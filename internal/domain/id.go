package domain

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// RecordID identifies a glucose or weight record. New ids are UUIDv7 and so
// sort by creation time; ids written by older clients are epoch-millisecond
// numbers and are kept as their decimal string.
type RecordID string

// NewRecordID returns a fresh time-ordered id.
func NewRecordID() RecordID {
	return RecordID(uuid.Must(uuid.NewV7()).String())
}

// UnmarshalJSON accepts both string and numeric ids.
func (id *RecordID) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return fmt.Errorf("record id: %w", err)
		}
		*id = RecordID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("record id: %w", err)
	}
	*id = RecordID(n.String())
	return nil
}
