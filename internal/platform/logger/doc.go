// Package logger configures the application's structured JSON logger and
// carries request-scoped loggers through a context.Context.
package logger
