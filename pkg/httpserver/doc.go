// Package httpserver wraps net/http with graceful shutdown and a health
// check handler. Run blocks until SIGTERM, context cancellation, or a
// listener error; in-flight requests get ShutdownTimeout to finish.
package httpserver
