// Package specerrors provides structured error types for oasdoc.
//
// These error types enable programmatic error handling via errors.Is() and
// errors.As(), allowing callers to distinguish between different categories
// of errors and implement appropriate recovery strategies.
//
// # Error Categories
//
//   - MalformedError: the document tree does not match any expected shape at
//     a given path
//   - UnsupportedVersionError: the version tag is missing or not recognized
//   - UpgradeError: a 2.0 document violates a structural precondition the
//     upgrade requires
//   - MergeError: two schemas cannot be combined during allOf flattening
//
// # Usage with errors.Is
//
//	doc, err := model.ParseDocument(tree)
//	if err != nil {
//	    var malformed *specerrors.MalformedError
//	    if errors.As(err, &malformed) {
//	        // malformed.Path locates the offending node
//	    }
//	}
package specerrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
// These allow quick checks without type assertions.
var (
	// ErrMalformed indicates a tree shape mismatch during parsing.
	ErrMalformed = errors.New("malformed document")

	// ErrUnsupportedVersion indicates a missing or unrecognized version tag.
	ErrUnsupportedVersion = errors.New("unsupported or missing version")

	// ErrUpgrade indicates a structural precondition violation during upgrade.
	ErrUpgrade = errors.New("upgrade error")

	// ErrMerge indicates two schemas could not be merged.
	ErrMerge = errors.New("merge error")
)

// MalformedError represents a tree node that does not match any expected
// variant. The Path field locates the node relative to the document root
// using dotted segments (e.g., "paths./pets.get.responses.200").
type MalformedError struct {
	// Path is the dotted tree path to the offending node
	Path string
	// Field is the specific key with the issue, if narrower than Path
	Field string
	// Message describes the mismatch
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *MalformedError) Error() string {
	msg := "malformed document"
	if e.Path != "" {
		msg += " at " + e.Path
	}
	if e.Field != "" {
		msg += "." + e.Field
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *MalformedError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *MalformedError) Is(target error) bool {
	return target == ErrMalformed
}

// UnsupportedVersionError reports a document whose top-level version tag is
// absent or names a specification version this module does not model.
type UnsupportedVersionError struct {
	// Value is the raw version string found in the document ("" if absent)
	Value string
}

// Error returns a human-readable error message.
func (e *UnsupportedVersionError) Error() string {
	if e.Value == "" {
		return "unsupported or missing version: no swagger or openapi key found"
	}
	return fmt.Sprintf("unsupported or missing version: %q (only 2.0 and 3.0.x are supported)", e.Value)
}

// Is reports whether target matches this error type.
func (e *UnsupportedVersionError) Is(target error) bool {
	return target == ErrUnsupportedVersion
}

// UpgradeError represents a hard failure during 2.0 to 3.0 upgrade. It is
// reserved for structural violations; best-effort degradations are reported
// as notes, never as errors.
type UpgradeError struct {
	// Path is the dotted tree path where the precondition was violated
	Path string
	// Message describes the violated precondition
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *UpgradeError) Error() string {
	msg := "upgrade error"
	if e.Path != "" {
		msg += " at " + e.Path
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *UpgradeError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *UpgradeError) Is(target error) bool {
	return target == ErrUpgrade
}

// MergeError represents a conflict encountered while collapsing schemas.
type MergeError struct {
	// Property is the conflicting property name, if the conflict is a
	// duplicate property definition
	Property string
	// Message describes the conflict
	Message string
}

// Error returns a human-readable error message.
func (e *MergeError) Error() string {
	msg := "merge error"
	if e.Property != "" {
		msg += " on property " + e.Property
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Is reports whether target matches this error type.
func (e *MergeError) Is(target error) bool {
	return target == ErrMerge
}
