package record

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes record errors.
type ErrorCode string

const (
	// ErrCodeTypeMismatch indicates a declared-type validation failure on
	// construction, set, or update.
	ErrCodeTypeMismatch ErrorCode = "TYPE_MISMATCH"

	// ErrCodeAttributeMissing indicates a read or delete of an attribute
	// that was never set.
	ErrCodeAttributeMissing ErrorCode = "ATTRIBUTE_MISSING"

	// ErrCodeImmutableViolation indicates an attempted in-place mutation of
	// a frozen record.
	ErrCodeImmutableViolation ErrorCode = "IMMUTABLE_VIOLATION"

	// ErrCodeSerialization indicates a value the JSON serializer cannot
	// represent.
	ErrCodeSerialization ErrorCode = "SERIALIZATION_ERROR"
)

// Error is the structured error type for all record operations.
// It carries the offending attribute, the operation attempted, and (for
// type mismatches) the expected constraint and actual type.
type Error struct {
	Code     ErrorCode
	Attr     string
	Op       string
	Expected Constraint
	Actual   Type
	Message  string
	Err      error
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case e.Attr != "" && e.Op != "":
		return fmt.Sprintf("%s: %s (attr=%s, op=%s)", e.Code, e.Message, e.Attr, e.Op)
	case e.Attr != "":
		return fmt.Sprintf("%s: %s (attr=%s)", e.Code, e.Message, e.Attr)
	default:
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newTypeMismatch(attr, op string, expected Constraint, actual Type) *Error {
	return &Error{
		Code:     ErrCodeTypeMismatch,
		Attr:     attr,
		Op:       op,
		Expected: expected,
		Actual:   actual,
		Message:  fmt.Sprintf("expected %s, got %s", expected, actual),
	}
}

func newAttributeMissing(attr, op string) *Error {
	return &Error{
		Code:    ErrCodeAttributeMissing,
		Attr:    attr,
		Op:      op,
		Message: "attribute not set",
	}
}

func newImmutableViolation(attr, op string) *Error {
	return &Error{
		Code:    ErrCodeImmutableViolation,
		Attr:    attr,
		Op:      op,
		Message: "record is frozen",
	}
}

func newSerializationError(attr, op string, err error) *Error {
	return &Error{
		Code:    ErrCodeSerialization,
		Attr:    attr,
		Op:      op,
		Message: fmt.Sprintf("value not representable: %v", err),
		Err:     err,
	}
}

func isCode(err error, code ErrorCode) bool {
	var re *Error
	if errors.As(err, &re) {
		return re.Code == code
	}
	return false
}

// IsTypeMismatch reports whether err is a TYPE_MISMATCH error.
// Uses errors.As to handle wrapped errors.
func IsTypeMismatch(err error) bool {
	return isCode(err, ErrCodeTypeMismatch)
}

// IsAttributeMissing reports whether err is an ATTRIBUTE_MISSING error.
func IsAttributeMissing(err error) bool {
	return isCode(err, ErrCodeAttributeMissing)
}

// IsImmutableViolation reports whether err is an IMMUTABLE_VIOLATION error.
func IsImmutableViolation(err error) bool {
	return isCode(err, ErrCodeImmutableViolation)
}

// IsSerializationError reports whether err is a SERIALIZATION_ERROR.
func IsSerializationError(err error) bool {
	return isCode(err, ErrCodeSerialization)
}
