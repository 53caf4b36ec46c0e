// Package errs provides the standardized error types used across the
// application.
//
// Each error type follows the same pattern: a sentinel error variable
// (e.g. ErrValueIsRequired), a struct carrying the error details, constructor
// functions with and without a cause, and an Unwrap method so callers can
// classify errors with errors.Is.
package errs
