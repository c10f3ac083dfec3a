// Package logger provides a structured logging facility based on Zap.
//
// Commands build one logger from the loaded configuration and hand it to every
// service. The scan pipeline reports skipped records through it, and the HTTP
// API tags request logs with the RayID assigned by the rayid middleware.
//
// # Configuration
//
//   - Level: debug, info, warn, error
//   - Format: json (machine readable) or console (colored, for operators)
//   - Output: stderr (default), stdout or a file path
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info", Format: "console"})
//	log.Info("Summary written", zap.Int("rows", n))
//
//	// In a request handler:
//	l := logger.WithRayID(log, c)
//	l.Error("Handler failed", zap.Error(err))
package logger
