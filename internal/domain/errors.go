package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when an edit or lookup targets an unknown record id.
var ErrNotFound = errors.New("record not found")

// ValidationError reports missing or unparsable form input. Operations that
// return it have not mutated anything.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Msg
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

func invalid(field, msg string) error {
	return &ValidationError{Field: field, Msg: msg}
}

// IsValidation reports whether err is (or wraps) a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
