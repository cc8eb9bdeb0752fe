package domain

import (
	"errors"
	"fmt"
)

// ErrorKind is the normalized failure taxonomy reported to callers.
type ErrorKind string

const (
	// KindInvalidDate is a malformed or calendar-impossible civil date (Feb 30, 1900-02-29)
	KindInvalidDate ErrorKind = "invalid_date"
	// KindInvalidTime is a malformed or impossible clock time (24:10, 08:61)
	KindInvalidTime ErrorKind = "invalid_time"
	// KindInvalidCoordinate is a latitude or longitude outside its range
	KindInvalidCoordinate ErrorKind = "invalid_coordinate"
	// KindInvalidTimezone is an unknown IANA zone identifier
	KindInvalidTimezone ErrorKind = "invalid_timezone"
	// KindAmbiguousLocalTime is a local time that cannot be mapped to exactly one instant
	KindAmbiguousLocalTime ErrorKind = "ambiguous_local_time"
	// KindDateOutOfRange is a date outside the lunar table span
	KindDateOutOfRange ErrorKind = "date_out_of_range"
	// KindDegenerateAscendant is a latitude where the ascendant is undefined
	KindDegenerateAscendant ErrorKind = "degenerate_ascendant"
	// KindEphemerisUnavailable is a body the ephemeris does not model
	KindEphemerisUnavailable ErrorKind = "ephemeris_unavailable"
	// KindInternal is anything outside the taxonomy
	KindInternal ErrorKind = "internal"
)

// Sentinel errors, one per kind. A *CalcError matches its kind's sentinel with errors.Is.
var (
	ErrInvalidDate          = errors.New("invalid date")
	ErrInvalidTime          = errors.New("invalid time")
	ErrInvalidCoordinate    = errors.New("invalid coordinate")
	ErrInvalidTimezone      = errors.New("invalid timezone")
	ErrAmbiguousLocalTime   = errors.New("ambiguous local time")
	ErrDateOutOfRange       = errors.New("date out of range")
	ErrDegenerateAscendant  = errors.New("degenerate ascendant")
	ErrEphemerisUnavailable = errors.New("ephemeris unavailable")
)

var kindSentinels = map[ErrorKind]error{
	KindInvalidDate:          ErrInvalidDate,
	KindInvalidTime:          ErrInvalidTime,
	KindInvalidCoordinate:    ErrInvalidCoordinate,
	KindInvalidTimezone:      ErrInvalidTimezone,
	KindAmbiguousLocalTime:   ErrAmbiguousLocalTime,
	KindDateOutOfRange:       ErrDateOutOfRange,
	KindDegenerateAscendant:  ErrDegenerateAscendant,
	KindEphemerisUnavailable: ErrEphemerisUnavailable,
}

// CalcError is a structured calculation failure that names the offending input field.
type CalcError struct {
	Kind       ErrorKind
	Field      string // input field that caused the failure, e.g. "date", "latitude"
	Value      string // offending value as supplied
	Message    string
	Underlying error
}

// NewError creates a CalcError for the given kind and field.
func NewError(kind ErrorKind, field, value, message string) *CalcError {
	return &CalcError{
		Kind:    kind,
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// Wrap attaches an underlying cause to the error and returns it.
func (e *CalcError) Wrap(err error) *CalcError {
	e.Underlying = err
	return e
}

// Error implements the error interface
func (e *CalcError) Error() string {
	msg := fmt.Sprintf("%s [%s=%q]: %s", e.Kind, e.Field, e.Value, e.Message)
	if e.Underlying != nil {
		return msg + ": " + e.Underlying.Error()
	}
	return msg
}

// Unwrap supports error unwrapping
func (e *CalcError) Unwrap() error {
	return e.Underlying
}

// Is reports whether target is the sentinel for this error's kind.
func (e *CalcError) Is(target error) bool {
	if s, ok := kindSentinels[e.Kind]; ok && s == target {
		return true
	}
	if t, ok := target.(*CalcError); ok {
		return t.Kind == e.Kind && (t.Field == "" || t.Field == e.Field)
	}
	return false
}

// KindOf extracts the error kind from an error chain. Errors outside the taxonomy are internal.
func KindOf(err error) ErrorKind {
	var ce *CalcError
	if errors.As(err, &ce) {
		return ce.Kind
	}
	for kind, s := range kindSentinels {
		if errors.Is(err, s) {
			return kind
		}
	}
	return KindInternal
}

// FieldOf returns the offending input field recorded in err, or "".
func FieldOf(err error) string {
	var ce *CalcError
	if errors.As(err, &ce) {
		return ce.Field
	}
	return ""
}
