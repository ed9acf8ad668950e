package store

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes store failures so callers can choose recovery
// guidance (reload vs. retry vs. report).
type ErrorCode string

const (
	// CodeNotFound indicates the operation targeted a record id that
	// does not exist.
	CodeNotFound ErrorCode = "NOT_FOUND"

	// CodePersistence indicates the storage engine was unavailable, a
	// write did not durably commit, or a read failed.
	CodePersistence ErrorCode = "PERSISTENCE"
)

// StoreError wraps a storage failure with the operation and record it
// concerned. The underlying engine error is never swallowed; it remains
// reachable through Unwrap for errors.Is/As chains.
type StoreError struct {
	// Code identifies the error category.
	Code ErrorCode

	// Op names the store operation that failed ("create", "update", ...).
	Op string

	// PatientID identifies the affected record, when the operation
	// targeted one.
	PatientID string

	// Err is the underlying cause (may be nil for not-found).
	Err error
}

// Error implements the error interface.
func (e *StoreError) Error() string {
	switch {
	case e.PatientID != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s patient %s: %v", e.Code, e.Op, e.PatientID, e.Err)
	case e.PatientID != "":
		return fmt.Sprintf("%s: %s patient %s", e.Code, e.Op, e.PatientID)
	case e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Op, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Op)
}

// Unwrap exposes the underlying engine error.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// IsNotFound returns true if the error is a not-found store error.
// Uses errors.As to handle wrapped errors.
func IsNotFound(err error) bool {
	var se *StoreError
	if errors.As(err, &se) {
		return se.Code == CodeNotFound
	}
	return false
}

// IsPersistence returns true if the error is a persistence store error.
// Uses errors.As to handle wrapped errors.
func IsPersistence(err error) bool {
	var se *StoreError
	if errors.As(err, &se) {
		return se.Code == CodePersistence
	}
	return false
}

func notFound(op, patientID string) *StoreError {
	return &StoreError{Code: CodeNotFound, Op: op, PatientID: patientID}
}

func persistence(op, patientID string, err error) *StoreError {
	return &StoreError{Code: CodePersistence, Op: op, PatientID: patientID, Err: err}
}
