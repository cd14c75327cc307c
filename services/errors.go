package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound means no matching row exists for the caller's identifiers.
	ErrNotFound = errors.New("record not found")

	// ErrProfileNotFound means the user row itself does not exist.
	ErrProfileNotFound = errors.New("user profile not found")
)

// ValidationError reports bad or missing caller input. Fields holds every
// offending field name, not just the first one found.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "invalid or missing input: " + strings.Join(e.Fields, ", ")
}

// IncompleteProfileError means a budget recalculation could not run because a
// required value has never been recorded for the user (e.g. no weight entry
// yet). It is reported, never allowed to fail the mutation that triggered the
// recalculation.
type IncompleteProfileError struct {
	Missing []string
}

func (e *IncompleteProfileError) Error() string {
	return "profile incomplete for budget calculation, missing: " + strings.Join(e.Missing, ", ")
}

// ProviderError is a failed call to the food-data provider: transport error,
// non-success status, or an error payload inside a 200 response.
type ProviderError struct {
	Op         string
	StatusCode int
	Body       string
	Err        error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fatsecret %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("fatsecret %s: status %d: %s", e.Op, e.StatusCode, e.Body)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// StoreError wraps an underlying database failure.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }
