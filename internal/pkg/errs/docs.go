// Package errs provides the standardized error types used across the dispatch
// application.
//
// Each error kind follows the same pattern: a sentinel error variable (e.g.
// ErrObjectNotFound), a struct type carrying details, constructors with and
// without a cause, an Error() method for formatting, and Unwrap() returning
// the sentinel so callers can classify errors with errors.Is.
//
// The kinds map directly onto the coordinator's error taxonomy:
//   - ValueIsRequiredError / ValueIsInvalidError: malformed or missing input
//   - ValueIsOutOfRangeError: numeric input outside allowed bounds
//   - ObjectNotFoundError: referenced order or partner absent
//   - ConflictError: business-rule violation, not retryable as-is
//   - ContentionError: lock could not be acquired in time, retryable
package errs
