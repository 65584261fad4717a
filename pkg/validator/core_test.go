package validator_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/storefront/pkg/validator"
)

func TestValidationErrors_Error(t *testing.T) {
	t.Parallel()

	t.Run("returns default message when no errors", func(t *testing.T) {
		var errs validator.ValidationErrors
		assert.Equal(t, "validation failed", errs.Error())
	})

	t.Run("returns formatted message with multiple errors", func(t *testing.T) {
		errs := validator.ValidationErrors{
			{Field: "email", Message: "is required"},
			{Field: "password", Message: "too short"},
		}

		assert.Equal(t, "validation failed: email: is required; password: too short", errs.Error())
	})
}

func TestValidationErrors_Accessors(t *testing.T) {
	t.Parallel()

	errs := validator.ValidationErrors{
		{Field: "password", Message: "too short", Key: "a"},
		{Field: "password", Message: "no digit", Key: "b"},
	}

	assert.True(t, errs.Has("password"))
	assert.False(t, errs.Has("email"))
	assert.Equal(t, []string{"too short", "no digit"}, errs.Messages("password"))
	assert.Equal(t, []string{"a", "b"}, errs.Keys())
	assert.Equal(t, "password: no digit", errs[1].Error())
}

func TestApply(t *testing.T) {
	t.Parallel()

	pass := validator.Rule{Check: func() bool { return true }}
	fail := func(key string) validator.Rule {
		return validator.Rule{
			Check: func() bool { return false },
			Error: validator.ValidationError{Field: "f", Key: key},
		}
	}

	t.Run("nil when every rule passes", func(t *testing.T) {
		assert.NoError(t, validator.Apply(pass, pass))
	})

	t.Run("collects every failure in order", func(t *testing.T) {
		err := validator.Apply(fail("one"), pass, fail("two"))
		require.Error(t, err)

		verrs, ok := validator.AsValidationErrors(err)
		require.True(t, ok)
		require.Len(t, verrs, 2)
		assert.Equal(t, []string{"one", "two"}, verrs.Keys())
	})

	t.Run("extracts through wrapping", func(t *testing.T) {
		err := fmt.Errorf("signup: %w", validator.Apply(fail("x")))
		verrs, ok := validator.AsValidationErrors(err)
		assert.True(t, ok)
		assert.Len(t, verrs, 1)
	})

	t.Run("plain errors are not validation errors", func(t *testing.T) {
		err := errors.New("boom")
		_, ok := validator.AsValidationErrors(err)
		assert.False(t, ok)
		verrs, ok := validator.AsValidationErrors(nil)
		assert.False(t, ok)
		assert.Nil(t, verrs)
	})
}
