// Package logger builds the service-wide slog.Logger.
//
// Production gets JSON output at INFO for log aggregation; development gets
// text output at DEBUG. The environment switch is driven by APP_ENV through
// NewFromEnv so main stays declarative.
package logger
