package domain

import (
	"errors"
	"fmt"
)

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Engine state errors
	ErrMsgNotInitialized = "store not initialized"

	// Validation errors
	ErrMsgValidation         = "validation failed"
	ErrMsgAlreadyOwned       = "already owned"
	ErrMsgNotOwned           = "not owned"
	ErrMsgSelectionOverQuota = "selection exceeds maximum"
	ErrMsgUnknownOrdinal     = "unknown ordinal"
	ErrMsgRuleNotFound       = "unlock rule not found"
	ErrMsgLocked             = "cannot unlock"
	ErrMsgInvalidInput       = "invalid input"

	// Remote store errors
	ErrMsgRemote = "remote store failure"
)

// Common domain errors
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	ErrNotInitialized = errors.New(ErrMsgNotInitialized)

	ErrValidation   = errors.New(ErrMsgValidation)
	ErrRuleNotFound = fmt.Errorf("%w: %s", ErrValidation, ErrMsgRuleNotFound)
	ErrInvalidInput = fmt.Errorf("%w: %s", ErrValidation, ErrMsgInvalidInput)

	ErrRemote = errors.New(ErrMsgRemote)
)

// ValidationKind classifies a local rejection
type ValidationKind string

const (
	ValidationAlreadyOwned       ValidationKind = "already_owned"
	ValidationNotOwned           ValidationKind = "not_owned"
	ValidationSelectionOverQuota ValidationKind = "selection_over_quota"
	ValidationUnknownOrdinal     ValidationKind = "unknown_ordinal"
	ValidationLocked             ValidationKind = "locked"
)

// ValidationError is a caller-input rejection. It never reaches the network.
type ValidationError struct {
	Kind   ValidationKind
	Key    string
	Detail string
}

func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("%s: %s", ErrMsgValidation, e.Kind)
	if e.Key != "" {
		msg += fmt.Sprintf(" (%s)", e.Key)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

// Is lets errors.Is(err, ErrValidation) match any ValidationError
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NewValidationError builds a ValidationError
func NewValidationError(kind ValidationKind, key, detail string) *ValidationError {
	return &ValidationError{Kind: kind, Key: key, Detail: detail}
}

// RemoteKind distinguishes permission problems from connectivity problems
type RemoteKind string

const (
	RemotePermission   RemoteKind = "permission"
	RemoteConnectivity RemoteKind = "connectivity"
	RemoteUnknown      RemoteKind = "unknown"
)

// RemoteError is a transport or permission failure reported by the store
type RemoteError struct {
	Op         string
	Collection string
	Key        string
	Kind       RemoteKind
	Err        error
}

func (e *RemoteError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("%s: %s %s/%s (%s): %v", ErrMsgRemote, e.Op, e.Collection, e.Key, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s %s (%s): %v", ErrMsgRemote, e.Op, e.Collection, e.Kind, e.Err)
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrRemote) match any RemoteError
func (e *RemoteError) Is(target error) bool {
	return target == ErrRemote
}

// ConsistencyWarning is a non-fatal mismatch found during resolution or migration
type ConsistencyWarning struct {
	Source string
	Detail string
}

func (w *ConsistencyWarning) Error() string {
	return fmt.Sprintf("consistency warning [%s]: %s", w.Source, w.Detail)
}

// ErrorClass names which part of the taxonomy an error belongs to
type ErrorClass string

const (
	ClassNone           ErrorClass = ""
	ClassNotInitialized ErrorClass = "not_initialized"
	ClassValidation     ErrorClass = "validation"
	ClassRemote         ErrorClass = "remote"
	ClassConsistency    ErrorClass = "consistency"
	ClassUnknown        ErrorClass = "unknown"
)

// Classify maps an error onto the taxonomy
func Classify(err error) ErrorClass {
	var warn *ConsistencyWarning
	switch {
	case err == nil:
		return ClassNone
	case errors.Is(err, ErrNotInitialized):
		return ClassNotInitialized
	case errors.Is(err, ErrValidation):
		return ClassValidation
	case errors.Is(err, ErrRemote):
		return ClassRemote
	case errors.As(err, &warn):
		return ClassConsistency
	default:
		return ClassUnknown
	}
}
