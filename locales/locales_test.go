package locales_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/onboarding/handler"
	"github.com/dmitrymomot/onboarding/locales"
	"github.com/dmitrymomot/onboarding/modules/organization/views"
	"github.com/dmitrymomot/onboarding/pkg/orgkey"
	"github.com/dmitrymomot/onboarding/svc/organization"
)

func TestTranslator_CoversApplicationKeys(t *testing.T) {
	t.Parallel()

	tr, err := locales.NewTranslator(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"en", "fr"}, tr.Languages())

	keys := []string{
		orgkey.MessageLabel,
		orgkey.MessageInvalidFormat,
		orgkey.MessageTaken,
		organization.MessageNameRequired,
		organization.MessageNameTooLong,
		views.MessageNewTitle,
		views.MessageNameLabel,
		views.MessageSubmit,
		views.MessageCreatedAt,
		views.MessageErrorTitle,
		views.MessageRetry,
		views.MessageRequestID,
		handler.ErrBadRequest.Key,
		handler.ErrNotFound.Key,
		handler.ErrUnprocessableEntity.Key,
		handler.ErrInternalServerError.Key,
		"errors.sse_required",
		"errors.field_not_found",
		"errors.field_exists",
		handler.ErrTooManyRequests.Key,
	}
	for _, lang := range tr.Languages() {
		for _, key := range keys {
			assert.True(t, tr.Has(lang, key), "%s: missing %s", lang, key)
		}
	}
}

func TestTranslator_Substitution(t *testing.T) {
	t.Parallel()

	tr, err := locales.NewTranslator(context.Background())
	require.NoError(t, err)

	assert.Equal(t,
		"The organization name must be at most 255 characters long.",
		tr.T("en", organization.MessageNameTooLong, "max", "255"),
	)
	assert.Equal(t, "Clé de l'organisation", tr.T("fr", orgkey.MessageLabel))
}
