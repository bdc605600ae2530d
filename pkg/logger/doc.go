// Package logger builds slog loggers suitable as jobtrace sinks.
//
// It provides JSON logging to stdout, optional Sentry shipping for error
// severities, a no-op logger for tests and unconfigured deployments, and a
// handler decorator that injects context-extracted attributes (such as the
// lifecycle event ID a worker is currently processing) into every record.
//
// # Basic usage
//
//	log := logger.New(logger.EventIDExtractor())
//	sub := jobtrace.New(jobtrace.WithLogger(log))
//
// # Sentry
//
//	log := logger.NewWithSentry(logger.SentryConfig{
//	    DSN:         os.Getenv("SENTRY_DSN"),
//	    Environment: "production",
//	})
//
// With an empty DSN the Sentry destination is skipped and logging degrades to
// stdout only, so the same code path works locally and in production.
package logger
