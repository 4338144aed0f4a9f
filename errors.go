package nistitl

import (
	"fmt"

	pkgerrors "github.com/pkg/errors"
)

// Kind tags the structural reason a NistError was raised. It mirrors the
// fixed set of conditions the standard's reference implementation
// distinguishes between; callers branch on Kind, not on error text.
type Kind int

const (
	_ Kind = iota
	BadRecord
	BadTagName
	BadTagFormat
	BadRecordNumber
	BadContent
	CannotAddType1
	CannotDeleteType1
	RecordNotFound
	RecordNotTerminated
	NistTooShort
	NistTooLong
	BadTagDuplicate
	BadAliasDuplicate
	UnknownAttribute
	BadFieldValue
	BadSubFieldValue
)

var kindNames = [...]string{
	"",
	"BadRecord",
	"BadTagName",
	"BadTagFormat",
	"BadRecordNumber",
	"BadContent",
	"CannotAddType1",
	"CannotDeleteType1",
	"RecordNotFound",
	"RecordNotTerminated",
	"NistTooShort",
	"NistTooLong",
	"BadTagDuplicate",
	"BadAliasDuplicate",
	"UnknownAttribute",
	"BadFieldValue",
	"BadSubFieldValue",
}

// String renders the Kind's name, or "Kind(n)" for an out-of-range value.
func (k Kind) String() string {
	if k <= 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// NistError is the single error type this package raises. A deferred
// NistTooShort/NistTooLong wraps the structural error that was found while
// parsing the clamped/extended slice, if any; Unwrap exposes it so
// errors.Is/errors.As see through the chain. NistError has no Cause
// method, so pkgerrors.Cause stops at the outer NistError.
type NistError struct {
	Kind  Kind
	msg   string
	cause error
}

func newErr(k Kind, format string, v ...interface{}) *NistError {
	return &NistError{Kind: k, msg: fmt.Sprintf(format, v...)}
}

// wrap chains cause under a new error of the given kind, the way a deferred
// NIST_TOO_SHORT/NIST_TOO_LONG chains whatever structural error parsing the
// clamped or extended buffer produced.
func wrap(cause error, k Kind, format string, v ...interface{}) *NistError {
	return &NistError{Kind: k, msg: fmt.Sprintf(format, v...), cause: pkgerrors.WithStack(cause)}
}

func (e *NistError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s (%s)", e.Kind, e.msg, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.msg)
}

// Unwrap exposes the chained structural cause, if any.
func (e *NistError) Unwrap() error {
	return e.cause
}

// KindOf reports the Kind carried by err, if err is (or wraps) a *NistError.
func KindOf(err error) (Kind, bool) {
	var ne *NistError
	if pkgerrors.As(err, &ne) {
		return ne.Kind, true
	}
	return 0, false
}
