package models

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrConflict           = errors.New("resource already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrForbidden          = errors.New("access denied")
	ErrProfileNotFound    = errors.New("no profile linked to this account")
)

// PersistenceError wraps any backend failure that is not part of the
// taxonomy above (network failure, malformed request, server error).
type PersistenceError struct {
	Op     string
	Status int
	Err    error
}

func (e *PersistenceError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: status=%d: %v", e.Op, e.Status, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// PostgREST reports zero rows in single-object mode with this code
// instead of an empty body.
const pgrstNoRowsCode = "PGRST116"

// IsSingleRowNotFound reports whether err is the PostgREST "no row for
// a single-row query" signal. Repos translate this into a nil row so
// callers can write plain presence checks.
func IsSingleRowNotFound(err error) bool {
	return err != nil && strings.Contains(err.Error(), pgrstNoRowsCode)
}

// TranslateRestError maps a PostgREST failure onto the error taxonomy.
// Supabase surfaces Postgres constraint violations as message text, so
// classification is by substring match on the known shapes.
func TranslateRestError(op string, status int, err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, pgrstNoRowsCode):
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	case strings.Contains(msg, "duplicate key value"),
		strings.Contains(msg, "unique constraint"),
		strings.Contains(msg, "23505"):
		return fmt.Errorf("%s: %w", op, ErrConflict)
	case strings.Contains(msg, "null value in column"),
		strings.Contains(msg, "violates not-null"):
		return fmt.Errorf("%s: required field is missing: %w", op, err)
	}
	return &PersistenceError{Op: op, Status: status, Err: err}
}

// TranslateAuthError maps a GoTrue failure onto the error taxonomy.
// The credentials case is matched on the service's message text; the
// contract callers depend on is only that a wrong email/password pair
// is distinguishable from every other failure.
func TranslateAuthError(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "Invalid login credentials"),
		strings.Contains(msg, "invalid_grant"),
		strings.Contains(msg, "invalid_credentials"):
		return ErrInvalidCredentials
	case strings.Contains(msg, "already registered"),
		strings.Contains(msg, "already Registered"):
		return fmt.Errorf("signup: %w", ErrConflict)
	}
	return &PersistenceError{Op: "auth", Err: err}
}
