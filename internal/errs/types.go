package errs

import "errors"

// NewConstraintViolationError builds a KindConstraintViolation error.
//
// code is expected to be pre-formatted (e.g. "USER_ALREADY_EXISTS");
// fieldErrors may be nil.
func NewConstraintViolationError(op, code, message string, fieldErrors []FieldError, cause error) *Error {
	return &Error{
		Kind:    KindConstraintViolation,
		Code:    code,
		Message: message,
		Op:      op,
		Errors:  fieldErrors,
		Err:     cause,
	}
}

// NewQueryError builds a KindQuery error wrapping the driver error.
//
// The message stays generic; the cause keeps the details for logs.
func NewQueryError(op string, cause error) *Error {
	return &Error{
		Kind:    KindQuery,
		Code:    MakeUpperCaseWithUnderscores("query failed"),
		Message: "query failed",
		Op:      op,
		Err:     cause,
	}
}

// NewInvalidInputError builds a KindInvalidInput error from validation results.
func NewInvalidInputError(op, message string, fieldErrors []FieldError) *Error {
	return &Error{
		Kind:    KindInvalidInput,
		Code:    MakeUpperCaseWithUnderscores("invalid input"),
		Message: message,
		Op:      op,
		Errors:  fieldErrors,
	}
}

// KindOf returns the Kind of the first *Error in err's chain,
// or "" when there is none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}

	return ""
}

// IsConstraintViolation is shorthand for errors.Is(err, ErrConstraintViolation).
func IsConstraintViolation(err error) bool {
	return errors.Is(err, ErrConstraintViolation)
}
