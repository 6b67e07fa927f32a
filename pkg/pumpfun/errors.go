package pumpfun

import (
	"fmt"
)

// ErrorKind identifies which precondition a pump.fun operation rejected
type ErrorKind string

// Error kinds
const (
	KindInvalidDiscriminator   ErrorKind = "INVALID_DISCRIMINATOR"
	KindMalformedLayout        ErrorKind = "MALFORMED_LAYOUT"
	KindInvalidReserves        ErrorKind = "INVALID_RESERVES"
	KindInvalidTransactionData ErrorKind = "INVALID_TRANSACTION_DATA"
	KindInvalidAmount          ErrorKind = "INVALID_AMOUNT"
	KindInvalidPubkey          ErrorKind = "INVALID_PUBKEY"
	KindCurveComplete          ErrorKind = "CURVE_COMPLETE"
)

// Error is returned by every decoding, pricing and building operation.
// Kind selects the failure class, Field names the offending input when there is one.
type Error struct {
	Kind    ErrorKind
	Field   string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := string(e.Kind)
	if e.Field != "" {
		msg += " (" + e.Field + ")"
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches any *Error of the same kind, so the sentinels below work with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

func newError(kind ErrorKind, field, format string, args ...interface{}) *Error {
	return &Error{
		Kind:    kind,
		Field:   field,
		Message: fmt.Sprintf(format, args...),
	}
}

func wrapError(kind ErrorKind, field string, cause error, format string, args ...interface{}) *Error {
	e := newError(kind, field, format, args...)
	e.Cause = cause
	return e
}

// Sentinels for errors.Is
var (
	ErrInvalidDiscriminator   = &Error{Kind: KindInvalidDiscriminator}
	ErrMalformedLayout        = &Error{Kind: KindMalformedLayout}
	ErrInvalidReserves        = &Error{Kind: KindInvalidReserves}
	ErrInvalidTransactionData = &Error{Kind: KindInvalidTransactionData}
	ErrInvalidAmount          = &Error{Kind: KindInvalidAmount}
	ErrInvalidPubkey          = &Error{Kind: KindInvalidPubkey}
	ErrCurveComplete          = &Error{Kind: KindCurveComplete}
)
