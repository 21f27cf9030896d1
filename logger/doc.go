// Package logger provides structured logging on top of zerolog.
//
// It supports JSON and console output, level configuration, component-scoped
// loggers and trace correlation through OpenTelemetry span contexts.
//
// # Configuration
//
//	logger:
//	  level: "info"
//	  format: "json"
//	  output: "stderr"
//
// # Usage
//
//	log := logger.Get("process")
//	log.Info("process exited", logger.Fields(logger.FieldExitCode, 0))
package logger
