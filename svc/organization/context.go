package organization

import (
	"context"
	"log/slog"
)

type contextKey struct{}

func WithOrganization(ctx context.Context, org *Organization) context.Context {
	return context.WithValue(ctx, contextKey{}, org)
}

func FromContext(ctx context.Context) (*Organization, bool) {
	org, ok := ctx.Value(contextKey{}).(*Organization)
	return org, ok && org != nil
}

// LoggerExtractor adds "org_id" to records logged with a context that
// carries an organization.
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		if org, ok := FromContext(ctx); ok {
			return slog.String("org_id", org.ID.String()), true
		}
		return slog.Attr{}, false
	}
}
