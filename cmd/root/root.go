// Package root contains the root command for the application
package root

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"mcoudert/budget-engine/internal/api"
	"mcoudert/budget-engine/internal/categorizer"
	"mcoudert/budget-engine/internal/config"
	"mcoudert/budget-engine/internal/connectors/amex"
	"mcoudert/budget-engine/internal/connectors/monzo"
	"mcoudert/budget-engine/internal/connectors/splitwise"
	"mcoudert/budget-engine/internal/logging"
	"mcoudert/budget-engine/internal/models"
	"mcoudert/budget-engine/internal/service"
	"mcoudert/budget-engine/internal/storage"
	"mcoudert/budget-engine/internal/unify"
)

var (
	// Log is the shared logger instance for commands
	Log = logrus.New()

	// Cfg is the loaded configuration, populated in PersistentPreRunE
	Cfg *config.Config

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "budget-engine",
		Short: "Unify card, banking and shared-expense transactions and categorize them.",
		Long: `budget-engine ingests transactions from an Amex statement export, a Monzo
spreadsheet and the Splitwise API into one store, unifies them into a single
stream and categorizes them with ordered keyword rules and user overrides.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to budget-engine!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config.LoadEnv()

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			Cfg = cfg

			Log = logging.Configure(cfg.Log.Level, cfg.Log.Format)

			storage.SetLogger(Log)
			unify.SetLogger(Log)
			categorizer.SetLogger(Log)
			service.SetLogger(Log)
			api.SetLogger(Log)
			amex.SetLogger(Log)
			monzo.SetLogger(Log)
			splitwise.SetLogger(Log)
			return nil
		},
	}
)

// App bundles the open store and the service built over it. Close releases
// the underlying database.
type App struct {
	Store   *storage.Storage
	Service *service.Service
}

// Close releases the database handle.
func (a *App) Close() {
	if err := a.Store.Close(); err != nil {
		Log.WithError(err).Warn("Failed to close database")
	}
}

// OpenApp opens the configured database and wires the service over it.
// Callers must Close the returned App.
func OpenApp() (*App, error) {
	classifier, err := buildClassifier()
	if err != nil {
		return nil, err
	}

	store, err := storage.Open(Cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("opening database %s: %w", Cfg.Database.Path, err)
	}

	return &App{
		Store:   store,
		Service: service.NewService(store, classifier, Cfg.Splitwise.UserID),
	}, nil
}

func buildClassifier() (*categorizer.Classifier, error) {
	if Cfg.Categorizer.RulesFile == "" {
		return categorizer.New(nil), nil
	}
	classifier, err := categorizer.NewFromFile(Cfg.Categorizer.RulesFile)
	if err != nil {
		return nil, fmt.Errorf("loading categorizer rules from %s: %w", Cfg.Categorizer.RulesFile, err)
	}
	return classifier, nil
}

// Connectors builds the fetch functions for every configured source.
// Sources without configuration are left nil and skipped by a full load.
func Connectors(amexFile string) service.Connectors {
	var c service.Connectors

	if amexFile != "" {
		c.Amex = func(ctx context.Context) ([]models.AmexRecord, error) {
			return amex.ReadFile(amexFile)
		}
	}

	if Cfg.Sheets.CredentialsFile != "" && Cfg.Sheets.SpreadsheetID != "" {
		c.Monzo = func(ctx context.Context) ([]models.MonzoRecord, error) {
			client, err := monzo.NewClient(ctx, Cfg.Sheets.CredentialsFile, Cfg.Sheets.SpreadsheetID, Cfg.Sheets.ReadRange)
			if err != nil {
				return nil, err
			}
			return client.Fetch(ctx)
		}
	}

	if Cfg.Splitwise.APIKey != "" {
		c.Splitwise = func(ctx context.Context) ([]models.SplitwiseRecord, error) {
			client := splitwise.NewClient(Cfg.Splitwise.APIKey, "")
			return client.GetExpenses(ctx, Cfg.Splitwise.Limit, 0)
		}
	}

	return c
}
