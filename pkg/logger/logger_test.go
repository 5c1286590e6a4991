package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/onboarding/pkg/environment"
	"github.com/dmitrymomot/onboarding/pkg/logger"
)

type ctxKey struct{}

func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestNew(t *testing.T) {
	t.Run("json by default", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf))
		log.Info("hello")

		entry := decode(t, buf)
		assert.Equal(t, "INFO", entry["level"])
		assert.Equal(t, "hello", entry["msg"])
	})

	t.Run("debug filtered at info level", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf))
		log.Debug("hidden")
		assert.Empty(t, buf.String())
	})

	t.Run("text format", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithFormat(logger.FormatText))
		log.Info("hello", logger.OrgKey("acme"))
		assert.Contains(t, buf.String(), "org_key=acme")
	})

	t.Run("invalid format panics", func(t *testing.T) {
		assert.Panics(t, func() { logger.New(logger.WithFormat("xml")) })
	})

	t.Run("static attributes", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithAttr(slog.String("svc", "onboarding")))
		log.Info("hello")
		assert.Equal(t, "onboarding", decode(t, buf)["svc"])
	})

	t.Run("context extractors", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(
			logger.WithOutput(buf),
			logger.WithContextExtractors(nil, func(ctx context.Context) (slog.Attr, bool) {
				v, ok := ctx.Value(ctxKey{}).(string)
				return slog.String("request_id", v), ok
			}),
		)

		ctx := context.WithValue(context.Background(), ctxKey{}, "req-1")
		log.With(slog.String("a", "b")).InfoContext(ctx, "hello")
		entry := decode(t, buf)
		assert.Equal(t, "req-1", entry["request_id"])
		assert.Equal(t, "b", entry["a"])
	})
}

func TestWithEnvironment(t *testing.T) {
	t.Run("development", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithEnvironment(environment.Development, "svc"), logger.WithOutput(buf))
		log.Debug("msg")
		out := buf.String()
		assert.Contains(t, out, "DEBUG")
		assert.Contains(t, out, "service=svc")
		assert.Contains(t, out, "env=development")
	})

	t.Run("production", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithEnvironment(environment.Production, "svc"), logger.WithOutput(buf))
		log.Debug("hidden")
		log.Info("msg")
		entry := decode(t, buf)
		assert.Equal(t, "svc", entry["service"])
		assert.Equal(t, "production", entry["env"])
	})
}

func TestAttrs(t *testing.T) {
	t.Parallel()

	err := errors.New("boom")
	assert.Equal(t, "error", logger.Error(err).Key)
	assert.True(t, logger.Error(nil).Equal(slog.Attr{}))
	assert.True(t, logger.RequestID("").Equal(slog.Attr{}))
	assert.True(t, logger.OrgID(nil).Equal(slog.Attr{}))
	assert.Equal(t, "org_key", logger.OrgKey("acme").Key)
	assert.Equal(t, "component", logger.Component("orgkey").Key)

	errs := logger.Errors(err, nil, err)
	require.Equal(t, slog.KindGroup, errs.Value.Kind())
	assert.Len(t, errs.Value.Group(), 2)
	assert.True(t, logger.Errors(nil).Equal(slog.Attr{}))

	g := logger.Group("field", logger.FieldID("f1"), logger.Locale("en"))
	assert.Len(t, g.Value.Group(), 2)
}

func TestDiscard(t *testing.T) {
	t.Parallel()
	assert.NotPanics(t, func() { logger.Discard().Error("nothing") })
}
