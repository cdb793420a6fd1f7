package logging_test

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"mcoudert/budget-engine/internal/logging"
)

func TestConfigureLevels(t *testing.T) {
	tests := []struct {
		level    string
		expected logrus.Level
	}{
		{"debug", logrus.DebugLevel},
		{"INFO", logrus.InfoLevel},
		{"warn", logrus.WarnLevel},
		{"nonsense", logrus.InfoLevel},
		{"", logrus.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logger := logging.Configure(tt.level, "text")
			assert.Equal(t, tt.expected, logger.GetLevel())
		})
	}
}

func TestConfigureFormats(t *testing.T) {
	logger := logging.Configure("info", "json")
	assert.IsType(t, &logrus.JSONFormatter{}, logger.Formatter)

	logger = logging.Configure("info", "text")
	assert.IsType(t, &logrus.TextFormatter{}, logger.Formatter)
}
