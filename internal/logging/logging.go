// Package logging configures the application-wide logrus logger.
package logging

import (
	"strings"

	"github.com/sirupsen/logrus"
)

// Configure builds a logger with the given level and format and sets the
// global logrus level so package-level loggers created before configuration
// pick it up too.
func Configure(level, format string) *logrus.Logger {
	logger := logrus.New()

	parsed, err := logrus.ParseLevel(strings.ToLower(level))
	if err != nil {
		logger.Warnf("Invalid log level '%s', using 'info'", level)
		parsed = logrus.InfoLevel
	}
	logger.SetLevel(parsed)
	logrus.SetLevel(parsed)

	if strings.ToLower(format) == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	return logger
}
