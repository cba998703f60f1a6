package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_Error(t *testing.T) {
	cause := errors.New("connection refused")

	err := NewQueryError("UserRepository.GetByID", cause)

	assert.Equal(t, "UserRepository.GetByID: query failed: connection refused", err.Error())
	assert.Equal(t, "QUERY_FAILED", err.Code)
}

func TestError_ErrorWithoutOpOrCause(t *testing.T) {
	err := &Error{Kind: KindInvalidInput, Message: "Validation failed"}

	assert.Equal(t, "Validation failed", err.Error())
}

func TestError_IsMatchesKind(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", NewConstraintViolationError("op", "USER_ALREADY_EXISTS", "exists", nil, nil))

	assert.True(t, errors.Is(err, ErrConstraintViolation))
	assert.False(t, errors.Is(err, ErrQuery))
	assert.False(t, errors.Is(err, ErrInvalidInput))
	assert.True(t, errors.Is(err, &Error{}))
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("boom")

	err := NewQueryError("op", cause)

	assert.Same(t, cause, errors.Unwrap(err))
	assert.True(t, errors.Is(err, cause))
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindInvalidInput, KindOf(NewInvalidInputError("op", "bad", nil)))
	assert.Equal(t, Kind(""), KindOf(errors.New("plain")))
	assert.Equal(t, Kind(""), KindOf(nil))
}

func TestMakeUpperCaseWithUnderscores(t *testing.T) {
	assert.Equal(t, "INVALID_INPUT", MakeUpperCaseWithUnderscores("invalid input"))
}
