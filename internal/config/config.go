// Package config provides Viper-based hierarchical configuration:
// defaults, then an optional config.yaml, then environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config is the complete application configuration.
type Config struct {
	Log struct {
		Level  string `mapstructure:"level"`
		Format string `mapstructure:"format"`
	} `mapstructure:"log"`

	Database struct {
		Path string `mapstructure:"path"`
	} `mapstructure:"database"`

	Server struct {
		Port int `mapstructure:"port"`
	} `mapstructure:"server"`

	Splitwise struct {
		APIKey string `mapstructure:"api_key"`
		UserID int64  `mapstructure:"user_id"`
		Limit  int    `mapstructure:"limit"`
	} `mapstructure:"splitwise"`

	Sheets struct {
		CredentialsFile string `mapstructure:"credentials_file"`
		SpreadsheetID   string `mapstructure:"spreadsheet_id"`
		ReadRange       string `mapstructure:"read_range"`
	} `mapstructure:"sheets"`

	Categorizer struct {
		RulesFile string `mapstructure:"rules_file"`
	} `mapstructure:"categorizer"`
}

// LoadEnv loads a .env file if one exists in the working directory or the
// parent, silently. Called before anything logs.
func LoadEnv() {
	envFile := ".env"
	if _, err := os.Stat(envFile); os.IsNotExist(err) {
		envFile = filepath.Join("..", ".env")
		if _, err := os.Stat(envFile); os.IsNotExist(err) {
			return
		}
	}
	_ = godotenv.Load(envFile)
}

// Load initializes configuration with hierarchical loading.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.budget-engine")
	v.AddConfigPath(".budget-engine")
	v.AddConfigPath(".")

	v.SetEnvPrefix("BUDGET")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file %s: %w", v.ConfigFileUsed(), err)
		}
		// No config file is fine; defaults and env vars carry it.
	}

	// Secrets always bind straight from unprefixed env vars.
	if err := v.BindEnv("splitwise.api_key", "SPLITWISE_API_KEY"); err != nil {
		return nil, fmt.Errorf("binding SPLITWISE_API_KEY: %w", err)
	}
	if err := v.BindEnv("splitwise.user_id", "SPLITWISE_USER_ID"); err != nil {
		return nil, fmt.Errorf("binding SPLITWISE_USER_ID: %w", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("database.path", "db/transactions.db")

	v.SetDefault("server.port", 8000)

	v.SetDefault("splitwise.limit", 2000)

	v.SetDefault("sheets.read_range", "A1:Z")

	v.SetDefault("categorizer.rules_file", "")
}

func validate(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}
	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}
	if config.Server.Port < 1 || config.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", config.Server.Port)
	}
	if config.Database.Path == "" {
		return fmt.Errorf("database.path must not be empty")
	}
	return nil
}
