package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors used for classification with errors.Is.
var (
	ErrValueIsRequired   = errors.New("value is required")
	ErrValueIsInvalid    = errors.New("value is invalid")
	ErrValueIsOutOfRange = errors.New("value is out of range")
	ErrObjectNotFound    = errors.New("object not found")
	ErrUnmappedStatus    = errors.New("status is not mapped")
	ErrTerminalState     = errors.New("state is terminal")
	ErrRetryable         = errors.New("retryable error")
)

// sanitize strips newlines from values before they are embedded in messages.
func sanitize(v any) string {
	return strings.ReplaceAll(strings.ReplaceAll(fmt.Sprintf("%s", v), "\n", " "), "\r", " ")
}

// ValueIsRequiredError indicates a required value is missing.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("value is required: %s (cause: %s)", e.ParamName, sanitize(e.Cause))
	}
	return fmt.Sprintf("value is required: %s", e.ParamName)
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// ValueIsInvalidError indicates a value failed validation.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("value is invalid: %s (cause: %s)", e.ParamName, sanitize(e.Cause))
	}
	return fmt.Sprintf("value is invalid: %s", e.ParamName)
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsOutOfRangeError indicates a numeric value fell outside its allowed bounds.
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue}
}

func NewValueIsOutOfRangeErrorWithCause(
	paramName string, value, minValue, maxValue any, cause error,
) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue, Cause: cause}
}

func (e *ValueIsOutOfRangeError) Error() string {
	msg := fmt.Sprintf("value is invalid: %v is %s, min value is %v, max value is %v",
		sanitizeAny(e.Value), e.ParamName, e.Min, e.Max)
	if e.Cause != nil {
		msg += fmt.Sprintf(" (cause: %s)", sanitize(e.Cause))
	}
	return msg
}

func sanitizeAny(v any) any {
	if s, ok := v.(string); ok {
		return sanitize(s)
	}
	return v
}

func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

// ObjectNotFoundError indicates an entity could not be located by its identifier.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("object not found: param is: %s, ID is: %s (cause: %s)",
			e.ParamName, sanitize(e.ID), sanitize(e.Cause))
	}
	return fmt.Sprintf("object not found: %s", e.ID)
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// UnmappedStatusError indicates an event carried a status with no entry in the
// fulfillment mapping tables. Such events are logged and acknowledged, never retried.
type UnmappedStatusError struct {
	Status string
}

func NewUnmappedStatusError(status string) *UnmappedStatusError {
	return &UnmappedStatusError{Status: status}
}

func (e *UnmappedStatusError) Error() string {
	return fmt.Sprintf("status is not mapped: %s", sanitize(e.Status))
}

func (e *UnmappedStatusError) Unwrap() error {
	return ErrUnmappedStatus
}

// TerminalStateError indicates a transition was attempted on an entity whose
// current state is final. Handlers treat this as a logged no-op and acknowledge.
type TerminalStateError struct {
	Entity    string
	Current   string
	Attempted string
}

func NewTerminalStateError(entity, current, attempted string) *TerminalStateError {
	return &TerminalStateError{Entity: entity, Current: current, Attempted: attempted}
}

func (e *TerminalStateError) Error() string {
	return fmt.Sprintf("state is terminal: %s is %s, cannot apply %s", e.Entity, e.Current, e.Attempted)
}

func (e *TerminalStateError) Unwrap() error {
	return ErrTerminalState
}

// RetryableError marks a failure as transient. The transport adapter translates
// it into a reject-and-requeue so the message is redelivered.
type RetryableError struct {
	Op    string
	Cause error
}

func NewRetryableError(op string, cause error) *RetryableError {
	return &RetryableError{Op: op, Cause: cause}
}

func (e *RetryableError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("retryable: %s (cause: %s)", e.Op, sanitize(e.Cause))
	}
	return fmt.Sprintf("retryable: %s", e.Op)
}

func (e *RetryableError) Unwrap() error {
	return ErrRetryable
}

// IsTerminal reports whether err must be acknowledged without redelivery:
// business-rule violations and malformed input cannot be fixed by retrying.
// Anything else (including explicit RetryableError wrapping) is requeued.
func IsTerminal(err error) bool {
	return errors.Is(err, ErrTerminalState) ||
		errors.Is(err, ErrUnmappedStatus) ||
		errors.Is(err, ErrValueIsInvalid) ||
		errors.Is(err, ErrValueIsRequired) ||
		errors.Is(err, ErrValueIsOutOfRange)
}
