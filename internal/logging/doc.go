// Package logging provides structured logging using uber/zap.
//
// This package offers production-ready logging with two modes:
//   - Production: JSON output for machine parsing
//   - Development: Colored console output for human readability
//
// The level and the mode are independent, so LOG_LEVEL=debug with JSON
// output is a valid combination for debugging in production.
//
// Example Usage:
//
//	logger := logging.Build("info", false)
//	logger.Info("Server starting", zap.String("port", "8000"))
//	logger.Error("Snapshot failed", zap.Error(err))
package logging
