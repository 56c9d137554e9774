package storage

import "fmt"

// AuthError signals that the store rejected a listing or signing call (bad
// service key, unknown bucket or path). It is surfaced to the caller, never
// swallowed.
type AuthError struct {
	Op  string // "list" or "sign"
	Err error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("storage %s failed: %v", e.Op, e.Err)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}
