package validator_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/onboarding/pkg/validator"
)

func TestValidationErrors_Error(t *testing.T) {
	t.Parallel()

	t.Run("returns default message when no errors", func(t *testing.T) {
		var errs validator.ValidationErrors
		assert.Equal(t, "validation failed", errs.Error())
	})

	t.Run("joins field messages", func(t *testing.T) {
		var errs validator.ValidationErrors
		errs.Add(validator.ValidationError{Field: "key", Message: "is required"})
		errs.Add(validator.ValidationError{Field: "name", Message: "too long"})
		assert.Equal(t, "validation failed: key: is required; name: too long", errs.Error())
	})
}

func TestValidationErrors_Accessors(t *testing.T) {
	t.Parallel()

	var errs validator.ValidationErrors
	errs.Add(validator.ValidationError{Field: "key", Message: "too long"})
	errs.Add(validator.ValidationError{Field: "key", Message: "bad pattern"})
	errs.Add(validator.ValidationError{Field: "name", Message: "is required"})

	assert.True(t, errs.Has("key"))
	assert.False(t, errs.Has("email"))
	assert.Equal(t, []string{"too long", "bad pattern"}, errs.Get("key"))
	assert.Equal(t, []string{"key", "name"}, errs.Fields())

	first, ok := errs.First("key")
	require.True(t, ok)
	assert.Equal(t, "too long", first.Message)

	_, ok = errs.First("email")
	assert.False(t, ok)
}

func TestApply(t *testing.T) {
	t.Parallel()

	t.Run("returns nil when all rules pass", func(t *testing.T) {
		err := validator.Apply(
			validator.RequiredString("name", "Acme"),
			validator.MaxLenString("name", "Acme", 10),
		)
		assert.NoError(t, err)
	})

	t.Run("collects every failed rule", func(t *testing.T) {
		err := validator.Apply(
			validator.RequiredString("name", " "),
			validator.MaxLenString("key", "abcdef", 3),
		)
		require.Error(t, err)

		verrs := validator.ExtractValidationErrors(err)
		require.Len(t, verrs, 2)
		assert.Equal(t, "name", verrs[0].Field)
		assert.Equal(t, "key", verrs[1].Field)
	})

	t.Run("survives wrapping", func(t *testing.T) {
		err := validator.Apply(validator.RequiredString("name", ""))
		wrapped := fmt.Errorf("create organization: %w", err)

		assert.True(t, validator.IsValidationError(wrapped))
		assert.True(t, errors.Is(wrapped, validator.ErrValidationFailed))
		assert.Len(t, validator.ExtractValidationErrors(wrapped), 1)
	})

	t.Run("extract returns nil for other errors", func(t *testing.T) {
		assert.Nil(t, validator.ExtractValidationErrors(errors.New("boom")))
		assert.Nil(t, validator.ExtractValidationErrors(nil))
		assert.False(t, validator.IsValidationError(nil))
	})
}
