package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mcoudert/budget-engine/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "db/transactions.db", cfg.Database.Path)
	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, 2000, cfg.Splitwise.Limit)
	assert.Equal(t, "A1:Z", cfg.Sheets.ReadRange)
	assert.Empty(t, cfg.Categorizer.RulesFile)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("BUDGET_LOG_LEVEL", "debug")
	t.Setenv("BUDGET_SERVER_PORT", "9090")
	t.Setenv("SPLITWISE_API_KEY", "secret-key")
	t.Setenv("SPLITWISE_USER_ID", "51056312")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "secret-key", cfg.Splitwise.APIKey)
	assert.Equal(t, int64(51056312), cfg.Splitwise.UserID)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"bad log level", "BUDGET_LOG_LEVEL", "shouting"},
		{"bad log format", "BUDGET_LOG_FORMAT", "xml"},
		{"bad port", "BUDGET_SERVER_PORT", "99999"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := config.Load()
			assert.Error(t, err)
		})
	}
}
