// Package errors provides error handling for coref.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - Assertion failures for broken internal invariants
//
// Usage:
//
//	// Wrap with context
//	if err := store.Save(ctx, snap); err != nil {
//	    return errors.Wrap(err, "failed to save model")
//	}
//
//	// Check sentinels
//	if errors.Is(err, errors.ErrMissingGold) {
//	    // corpus is broken, abort training
//	}
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
)

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Error inspection
var (
	Is            = crdb.Is
	As            = crdb.As
	Unwrap        = crdb.Unwrap
	UnwrapAll     = crdb.UnwrapAll
	GetAllHints   = crdb.GetAllHints
	GetAllDetails = crdb.GetAllDetails
	FlattenHints  = crdb.FlattenHints
)

// GetStack returns the reportable stack trace attached to err, if any.
var GetStack = crdb.GetReportableStackTrace

// Assertions. Use these for programming errors that must never happen on
// valid input: they are meant to be raised with panic().
var (
	AssertionFailedf    = crdb.AssertionFailedf
	HasAssertionFailure = crdb.HasAssertionFailure
)

// Sentinel errors for use across coref.
// Wrap these with errors.Wrap() to add context while preserving the type.
var (
	// ErrNotFound indicates the requested resource does not exist
	ErrNotFound = New("not found")

	// ErrMissingGold indicates a training mention that belongs to no gold entity
	ErrMissingGold = New("mention has no gold entity")

	// ErrInvalidGold indicates a gold partition that references unknown or duplicated mentions
	ErrInvalidGold = New("invalid gold partition")

	// ErrBucketRange indicates bucketing arithmetic produced an out-of-range bucket
	ErrBucketRange = New("bucket out of range")

	// ErrUnknownFeature indicates a feature kind the extractor does not implement
	ErrUnknownFeature = New("unregistered feature")

	// ErrUnknownAlgorithm indicates an unsupported clustering algorithm name
	ErrUnknownAlgorithm = New("unknown algorithm")

	// ErrUnknownPass indicates an unsupported sieve pass name
	ErrUnknownPass = New("unknown sieve pass")

	// ErrNotTrained indicates inference was requested before training
	ErrNotTrained = New("system is not trained")

	// ErrIncompatibleModel indicates a stored model built by an incompatible version
	ErrIncompatibleModel = New("incompatible model")

	// ErrInvalidDocument indicates a document whose spans do not fit its sentences
	ErrInvalidDocument = New("invalid document")
)

// IsNotFoundError checks if an error is or wraps ErrNotFound.
func IsNotFoundError(err error) bool {
	return err != nil && Is(err, ErrNotFound)
}

// NewNotFoundError creates a not-found error with a formatted message
func NewNotFoundError(format string, args ...interface{}) error {
	return Wrap(ErrNotFound, Newf(format, args...).Error())
}
