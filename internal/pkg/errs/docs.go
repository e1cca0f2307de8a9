// Package errs provides standardized error types for the portal application.
// It implements a consistent pattern for error creation, formatting, and
// unwrapping that is used throughout the application.
//
// The package includes error types for the recurring failure scenarios:
//   - ValueIsRequiredError: a required value is missing
//   - ValueIsInvalidError: a value failed validation
//   - ValueIsOutOfRangeError: a value is outside its permitted bounds
//   - ObjectNotFoundError: an object cannot be found
//   - VersionIsInvalidError: an aggregate version is malformed
//   - VersionConflictError: an optimistic compare-and-swap lost to a
//     concurrent writer
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g. ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() for formatting and Unwrap() for errors.Is classification
//
// Domain-rule failures (invalid transitions, protected items) live as
// sentinels in their domain packages; errs covers the cross-cutting cases.
package errs
