// Package ingest handles the per-source ingestion commands
package ingest

import (
	"fmt"

	"github.com/spf13/cobra"

	"mcoudert/budget-engine/cmd/root"
	"mcoudert/budget-engine/internal/connectors/amex"
	"mcoudert/budget-engine/internal/service"
)

var (
	amexFile string
)

// Cmd represents the ingest command
var Cmd = &cobra.Command{
	Use:   "ingest",
	Short: "Fetch and upsert transactions from the configured sources",
	Long: `Fetch transactions from a source and upsert them into the raw store.
Re-running an ingest is safe: records are keyed by their source-native
identifier and overwrite in place.`,
}

var amexCmd = &cobra.Command{
	Use:   "amex",
	Short: "Ingest an Amex statement CSV export",
	RunE:  ingestAmexFunc,
}

var monzoCmd = &cobra.Command{
	Use:   "monzo",
	Short: "Ingest the Monzo spreadsheet export",
	RunE:  ingestMonzoFunc,
}

var splitwiseCmd = &cobra.Command{
	Use:   "splitwise",
	Short: "Ingest shared expenses from the Splitwise API",
	RunE:  ingestSplitwiseFunc,
}

var allCmd = &cobra.Command{
	Use:   "all",
	Short: "Fetch and ingest every configured source",
	RunE:  ingestAllFunc,
}

func init() {
	amexCmd.Flags().StringVarP(&amexFile, "file", "f", "", "Path to the statement CSV export")
	_ = amexCmd.MarkFlagRequired("file")
	allCmd.Flags().StringVarP(&amexFile, "amex-file", "f", "", "Path to the statement CSV export (optional)")

	Cmd.AddCommand(amexCmd)
	Cmd.AddCommand(monzoCmd)
	Cmd.AddCommand(splitwiseCmd)
	Cmd.AddCommand(allCmd)
}

func reportBatch(source string, result service.BatchResult) {
	root.Log.Infof("%s: upserted %d record(s)", source, result.Upserted)
	for _, failure := range result.Failures {
		root.Log.Warnf("%s: record %s skipped: %s", source, failure.RecordID, failure.Reason)
	}
}

func ingestAmexFunc(cmd *cobra.Command, args []string) error {
	app, err := root.OpenApp()
	if err != nil {
		return err
	}
	defer app.Close()

	recs, err := amex.ReadFile(amexFile)
	if err != nil {
		return err
	}

	result, err := app.Service.IngestAmex(cmd.Context(), recs)
	if err != nil {
		return err
	}
	reportBatch("amex", result)
	return nil
}

func ingestMonzoFunc(cmd *cobra.Command, args []string) error {
	connectors := root.Connectors("")
	if connectors.Monzo == nil {
		return fmt.Errorf("monzo is not configured: set sheets.credentials_file and sheets.spreadsheet_id")
	}

	app, err := root.OpenApp()
	if err != nil {
		return err
	}
	defer app.Close()

	recs, err := connectors.Monzo(cmd.Context())
	if err != nil {
		return err
	}

	result, err := app.Service.IngestMonzo(cmd.Context(), recs)
	if err != nil {
		return err
	}
	reportBatch("monzo", result)
	return nil
}

func ingestSplitwiseFunc(cmd *cobra.Command, args []string) error {
	connectors := root.Connectors("")
	if connectors.Splitwise == nil {
		return fmt.Errorf("splitwise is not configured: set SPLITWISE_API_KEY")
	}

	app, err := root.OpenApp()
	if err != nil {
		return err
	}
	defer app.Close()

	recs, err := connectors.Splitwise(cmd.Context())
	if err != nil {
		return err
	}

	result, err := app.Service.IngestSplitwise(cmd.Context(), recs)
	if err != nil {
		return err
	}
	reportBatch("splitwise", result)
	return nil
}

func ingestAllFunc(cmd *cobra.Command, args []string) error {
	app, err := root.OpenApp()
	if err != nil {
		return err
	}
	defer app.Close()

	results := app.Service.FullLoad(cmd.Context(), root.Connectors(amexFile))
	if len(results) == 0 {
		return fmt.Errorf("no sources configured")
	}

	failed := 0
	for _, result := range results {
		if result.Error != "" {
			root.Log.Errorf("%s: load failed: %s", result.Account, result.Error)
			failed++
			continue
		}
		reportBatch(string(result.Account), service.BatchResult{Upserted: result.Upserted, Failures: result.Failures})
	}
	if failed == len(results) {
		return fmt.Errorf("all sources failed")
	}
	return nil
}
