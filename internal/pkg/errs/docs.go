// Package errs provides standardized error types for the fulfillment core.
// It implements a consistent pattern for error creation, formatting, and
// unwrapping used throughout the application.
//
// Each error type follows the same shape:
//   - A sentinel error variable (e.g. ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() for formatting and Unwrap() for errors.Is classification
//
// Beyond the validation errors, the package carries the two classifications
// the event transport relies on: RetryableError (message is rejected and
// requeued for redelivery) and TerminalStateError/UnmappedStatusError
// (message is acknowledged and logged, never retried). IsTerminal implements
// that split for consumers.
package errs
