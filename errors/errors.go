// Package errors provides error handling for gendefaults.
//
// This package re-exports github.com/cockroachdb/errors so every package
// gets stack traces, wrapping, hints and details from one import.
//
// Usage:
//
//	if err := load(path); err != nil {
//	    return errors.Wrapf(err, "failed to load %s", path)
//	}
//
//	// Hints are printed by the CLI under the error
//	return errors.WithHint(err, "only \"seconds\" is supported")
//
//	// Classify with the sentinels below
//	if errors.Is(err, errors.ErrUnknownUnit) { ... }
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
	Mark         = crdb.Mark
)

// User-facing messages and details
var (
	WithHint           = crdb.WithHint
	WithHintf          = crdb.WithHintf
	WithDetail         = crdb.WithDetail
	WithDetailf        = crdb.WithDetailf
	WithSecondaryError = crdb.WithSecondaryError
	CombineErrors      = crdb.CombineErrors
)

// Error inspection
var (
	Is             = crdb.Is
	IsAny          = crdb.IsAny
	As             = crdb.As
	Unwrap         = crdb.Unwrap
	UnwrapOnce     = crdb.UnwrapOnce
	UnwrapAll      = crdb.UnwrapAll
	GetAllHints    = crdb.GetAllHints
	GetAllDetails  = crdb.GetAllDetails
	FlattenHints   = crdb.FlattenHints
	FlattenDetails = crdb.FlattenDetails
)

// Assertions
var (
	AssertionFailedf = crdb.AssertionFailedf
)

// Sentinel errors for the generator pipeline.
// Attach them with Mark (or NewLoadError and friends) so callers can classify
// failures with Is while keeping the detailed message.
var (
	// ErrLoad indicates the definitions file could not be read, parsed or validated
	ErrLoad = New("invalid definitions")

	// ErrUnknownUnit indicates a duration value with a unit other than seconds
	ErrUnknownUnit = New("unknown unit")

	// ErrInvalidValue indicates a scalar that does not fit its declared type
	ErrInvalidValue = New("invalid value")

	// ErrUnmappedType indicates a strict type table has no entry for a type
	ErrUnmappedType = New("unmapped type")

	// ErrDuplicateGenerator indicates two generators registered for one platform
	ErrDuplicateGenerator = New("duplicate generator")

	// ErrUnknownPlatform indicates a platform with no registered generator
	ErrUnknownPlatform = New("unknown platform")

	// ErrIO indicates output could not be written
	ErrIO = New("output error")

	// ErrOutOfDate indicates generated files on disk differ from fresh output
	ErrOutOfDate = New("generated files out of date")

	// ErrVersionConstraint indicates the tool version does not satisfy the configured constraint
	ErrVersionConstraint = New("version constraint not satisfied")
)

// NewLoadError creates a load error with a formatted message
func NewLoadError(format string, args ...interface{}) error {
	return Mark(Newf(format, args...), ErrLoad)
}

// WrapLoad marks err as a load error and adds context
func WrapLoad(err error, context string) error {
	if err == nil {
		return nil
	}
	return Mark(Wrap(err, context), ErrLoad)
}

// WrapIO marks err as an output error and adds context
func WrapIO(err error, context string) error {
	if err == nil {
		return nil
	}
	return Mark(Wrap(err, context), ErrIO)
}

// IsLoadError checks if an error is or wraps ErrLoad
func IsLoadError(err error) bool {
	return err != nil && Is(err, ErrLoad)
}

// IsUnknownUnitError checks if an error is or wraps ErrUnknownUnit
func IsUnknownUnitError(err error) bool {
	return err != nil && Is(err, ErrUnknownUnit)
}

// IsOutOfDateError checks if an error is or wraps ErrOutOfDate
func IsOutOfDateError(err error) bool {
	return err != nil && Is(err, ErrOutOfDate)
}
