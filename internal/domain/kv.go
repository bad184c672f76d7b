package domain

import "context"

// KeyValueStore is the port for the persistent document store. Values are
// opaque strings; found is false when the key has never been set.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
}

// Confirmer asks the user to confirm a destructive action.
type Confirmer interface {
	Confirm(message string) bool
}

// ConfirmFunc adapts a function to the Confirmer interface.
type ConfirmFunc func(message string) bool

// Confirm calls f(message).
func (f ConfirmFunc) Confirm(message string) bool { return f(message) }

// AlwaysConfirm approves every prompt.
var AlwaysConfirm Confirmer = ConfirmFunc(func(string) bool { return true })
