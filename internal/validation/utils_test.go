package validation

import (
	"errors"
	"testing"

	"github.com/dialop/LightBnB/internal/errs"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signupPayload struct {
	Email string `validate:"required,email"`
	Name  string `validate:"required,min=2"`
	Age   int    `validate:"gte=18"`
}

func (p *signupPayload) Validate() error {
	return validator.New().Struct(p)
}

type customPayload struct {
	startsBeforeEnds bool
}

func (p *customPayload) Validate() error {
	if !p.startsBeforeEnds {
		return CustomValidationErrors{{Field: "end_date", Message: "must be after start_date"}}
	}
	return nil
}

func TestValidate_Valid(t *testing.T) {
	assert.NoError(t, Validate("op", &signupPayload{Email: "a@b.co", Name: "Al", Age: 30}))
}

func TestValidate_TagErrors(t *testing.T) {
	err := Validate("UserRepository.Create", &signupPayload{Email: "nope", Name: "A", Age: 12})
	require.Error(t, err)

	var appErr *errs.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, errs.KindInvalidInput, appErr.Kind)
	assert.Equal(t, "UserRepository.Create", appErr.Op)
	assert.Equal(t, "Validation failed", appErr.Message)
	assert.ElementsMatch(t, []errs.FieldError{
		{Field: "email", Error: "must be a valid email address"},
		{Field: "name", Error: "must be at least 2 characters"},
		{Field: "age", Error: "must be at least 18"},
	}, appErr.Errors)
}

func TestValidate_CustomErrors(t *testing.T) {
	err := Validate("op", &customPayload{})

	var appErr *errs.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, []errs.FieldError{{Field: "end_date", Error: "must be after start_date"}}, appErr.Errors)
	assert.True(t, errors.Is(err, errs.ErrInvalidInput))
}
