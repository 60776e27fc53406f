// Package errs provides standardized error types for the fulfillment application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package covers two groups of errors:
//
// Validation errors raised before any state is written:
//   - ValueIsRequiredError: a required value is missing
//   - ValueIsInvalidError: a value fails a business validation rule
//   - ObjectNotFoundError: an order or vendor cannot be found
//   - StateConflictError: the order's persisted status differs from what the caller expected
//   - InvalidTransitionError: the requested status change is not in the transition table
//
// Post-commit errors:
//   - SideEffectError: a notification, webhook, or event publish attempt failed after the
//     status change already committed; it is logged and never returned to callers
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrObjectNotFound)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// This standardized approach makes error classification mechanical: HTTP handlers map
// sentinel errors to response codes with errors.Is, and tests assert on concrete types.
package errs
