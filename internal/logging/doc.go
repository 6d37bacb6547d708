// Package logging provides structured logging using uber/zap.
//
// Two modes are supported:
//   - Production: JSON output for machine parsing
//   - Development: Colored console output for human readability
//
// Components receive a *Logger and scope it with Named, so filesystem
// diagnostics appear under "fs" and bundle fetches under "resource".
//
// Example Usage:
//
//	logger := logging.NewDefault().Named("fs")
//	logger.Warn("copy failed", zap.String("path", dst), zap.Error(err))
package logging
