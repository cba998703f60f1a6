// Package errs defines the error taxonomy of the data-access layer.
//
// Every repository failure reaches the caller as an *Error carrying a
// Kind, so callers can branch on the category without knowing anything
// about pgx or PostgreSQL:
//
//   - KindConstraintViolation: the database rejected a write
//     (unique email, unknown owner id, missing required column).
//   - KindQuery: anything else that went wrong while executing a statement
//     (syntax, type mismatch, lost connection, cancelled context).
//   - KindInvalidInput: the payload failed validation; no statement was sent.
//
// "No row found" is deliberately not an error: single-row lookups return
// (nil, nil) in that case.
//
// Errors play nicely with the standard errors package:
//
//	errors.Is(err, errs.ErrConstraintViolation) // matches by Kind
//	errors.As(err, &target)                    // *errs.Error
//	errors.Unwrap(err)                         // the underlying driver error
package errs
