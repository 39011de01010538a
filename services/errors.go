package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"techtrek/utils"

	"gorm.io/gorm"
)

var (
	// ErrConflict is returned when an email is already registered.
	ErrConflict = errors.New("email already registered")
	// ErrAuth is returned for an unknown email or a wrong password.
	ErrAuth = errors.New("invalid email or password")
	// ErrNotFound is returned when a requested row does not exist.
	ErrNotFound = errors.New("not found")

	ErrFieldsRequired   = errors.New("all fields are required")
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrWeakPassword     = errors.New("password does not meet the strength policy")
	ErrInvalidInput     = errors.New("invalid input")
)

// ValidationError reports bad or missing input. Reason is one of the
// sentinel errors above so callers can branch with errors.Is.
type ValidationError struct {
	Reason error
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Reason.Error()
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return fmt.Sprintf("%s (%s)", e.Reason, strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error { return e.Reason }

func invalid(reason error, fields map[string]string) *ValidationError {
	return &ValidationError{Reason: reason, Fields: fields}
}

// PersistenceError wraps any database failure. Its message is never shown to users.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *PersistenceError) Unwrap() error { return e.Err }

// persistence logs err and wraps it. Record-not-found becomes ErrNotFound.
func persistence(op string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	utils.Log.Error().Err(err).Str("op", op).Msg("database operation failed")
	return &PersistenceError{Op: op, Err: err}
}
