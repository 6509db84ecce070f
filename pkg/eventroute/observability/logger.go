// Package observability provides logging, metrics and tracing for the event
// router.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// All features are opt-in and have no-op implementations when disabled.
// Helpers accept a nil logger and do nothing in that case.
package observability

import (
	"log/slog"
)

// EnrichLogger adds consumer context to a logger.
//
// Example:
//
//	enriched := EnrichLogger(logger, "analytics", "production")
//	enriched.Info("flushing") // includes consumer_id, environment
func EnrichLogger(logger *slog.Logger, consumerID, environment string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(
		slog.String("consumer_id", consumerID),
		slog.String("environment", environment),
	)
}

// LogRegister logs a consumer registration.
func LogRegister(logger *slog.Logger, consumerID string, levels, tags []string) {
	if logger == nil {
		return
	}
	logger.Debug("consumer registered",
		slog.String("consumer_id", consumerID),
		slog.Any("levels", levels),
		slog.Any("tags", tags),
	)
}

// LogRegisterSkipped logs a registration ignored by the environment gate.
func LogRegisterSkipped(logger *slog.Logger, consumerID, environment string, allowed []string) {
	if logger == nil {
		return
	}
	logger.Debug("consumer not active in environment",
		slog.String("consumer_id", consumerID),
		slog.String("environment", environment),
		slog.Any("environments", allowed),
	)
}

// LogUnregister logs a consumer removal.
func LogUnregister(logger *slog.Logger, consumerID string) {
	if logger == nil {
		return
	}
	logger.Debug("consumer unregistered",
		slog.String("consumer_id", consumerID),
	)
}

// LogDispatch logs the outcome of a non-empty dispatch.
func LogDispatch(logger *slog.Logger, level, tag, name string, delivered int, err error) {
	if logger == nil {
		return
	}
	if err != nil {
		logger.Warn("event dispatch failed",
			slog.String("level", level),
			slog.String("tag", tag),
			slog.String("event", name),
			slog.Int("delivered", delivered),
			slog.String("error", err.Error()),
		)
		return
	}
	logger.Debug("event dispatched",
		slog.String("level", level),
		slog.String("tag", tag),
		slog.String("event", name),
		slog.Int("delivered", delivered),
	)
}

// LogReportedError logs an application error loudly. The error monitor uses
// this outside production so failures are never silent during development.
func LogReportedError(logger *slog.Logger, message string, status int, errorID string) {
	if logger == nil {
		return
	}
	attrs := []any{
		slog.String("error", message),
		slog.String("error_id", errorID),
	}
	if status != 0 {
		attrs = append(attrs, slog.Int("status", status))
	}
	logger.Error("uncaught error", attrs...)
}
