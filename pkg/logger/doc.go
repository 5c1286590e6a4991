// Package logger builds slog loggers for the onboarding service.
//
// New applies functional options (format, level, static attributes) and wraps
// the handler with LogHandlerDecorator, which appends attributes pulled from
// the request context, such as the request id or environment, to each record.
//
//	log := logger.New(
//	    logger.WithEnvironment(environment.Production, "onboarding"),
//	    logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	log.WarnContext(ctx, "organization key lookup failed",
//	    logger.OrgKey(key),
//	    logger.Error(err),
//	)
//
// The attribute helpers in attr.go keep key names consistent. Error and
// Errors return an empty Attr for nil errors, so callers need no nil check.
package logger
