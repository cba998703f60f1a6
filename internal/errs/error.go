package errs

import (
	"fmt"
	"strings"
)

// Kind is the category of a data-layer failure.
type Kind string

const (
	KindConstraintViolation Kind = "constraint_violation"
	KindQuery               Kind = "query"
	KindInvalidInput        Kind = "invalid_input"
)

// FieldError represents a field-level validation error.
// Example:
//
//	{ "field": "email", "error": "must be a valid email address" }
type FieldError struct {
	// Field is the field name/key the error relates to (e.g. "email").
	Field string `json:"field"`

	// Error is the human-readable error message.
	Error string `json:"error"`
}

// Error is the single error type returned by repositories.
//
// Fields:
//   - Kind: failure category, see the package doc.
//   - Code: machine-friendly code (e.g. "USER_ALREADY_EXISTS").
//   - Message: human-friendly message, safe to show to an end user.
//   - Op: the repository operation that failed (e.g. "UserRepository.Create").
//   - Errors: per-field errors, set for invalid input and not-null violations.
//   - Err: the underlying cause, reachable through errors.Unwrap.
type Error struct {
	Kind    Kind         `json:"kind"`
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Op      string       `json:"op,omitempty"`
	Errors  []FieldError `json:"errors,omitempty"`
	Err     error        `json:"-"`
}

// Error formats as "<op>: <message>: <cause>", leaving out empty parts.
func (e *Error) Error() string {
	var b strings.Builder

	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(": ")
	}

	b.WriteString(e.Message)

	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}

	return b.String()
}

// Unwrap exposes the cause to errors.Is / errors.As.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same Kind.
//
// A target with an empty Kind matches any *Error, which keeps
// errors.Is(err, &errs.Error{}) usable as a plain type check.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}

	return t.Kind == "" || t.Kind == e.Kind
}

// Sentinels for errors.Is checks.
var (
	ErrConstraintViolation = &Error{Kind: KindConstraintViolation}
	ErrQuery               = &Error{Kind: KindQuery}
	ErrInvalidInput        = &Error{Kind: KindInvalidInput}
)

// MakeUpperCaseWithUnderscores converts a string into an UPPER_CASE_WITH_UNDERSCORES format.
//
// Example:
//
//	"query failed" -> "QUERY_FAILED"
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
