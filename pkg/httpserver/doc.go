// Package httpserver runs the onboarding HTTP handler with graceful shutdown
// on context cancellation or SIGINT/SIGTERM, and provides liveness and
// readiness probe handlers.
package httpserver
