// Package logging constructs the shared logrus logger.
package logging

import (
	"github.com/sirupsen/logrus"

	"github.com/pastforward-labs/pastforward/internal/config"
)

// Fields aliases logrus.Fields for call sites.
type Fields = logrus.Fields

// NewLogger creates a configured logger instance with JSON output and
// the level taken from the LOG_LEVEL environment variable.
func NewLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetLevel(config.GetLogLevel())
	return logger
}

// NewCLILogger creates a logger tuned for interactive terminal use:
// plain text output, warnings and up only, so log lines do not fight
// with the styled command output.
func NewCLILogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	logger.SetLevel(logrus.WarnLevel)
	return logger
}
