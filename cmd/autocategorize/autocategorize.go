// Package autocategorize runs the keyword classifier over the stream
package autocategorize

import (
	"github.com/spf13/cobra"

	"mcoudert/budget-engine/cmd/root"
)

// Cmd represents the auto-categorize command
var Cmd = &cobra.Command{
	Use:   "auto-categorize",
	Short: "Categorize every unclassified transaction with the keyword rules",
	Long: `Run the ordered keyword rules over every transaction whose effective
category is still UNKNOWN. Existing user and model categories are never
overwritten; transactions no rule matches are left for manual review.`,
	RunE: autoCategorizeFunc,
}

func autoCategorizeFunc(cmd *cobra.Command, args []string) error {
	app, err := root.OpenApp()
	if err != nil {
		return err
	}
	defer app.Close()

	result, err := app.Service.AutoCategorize(cmd.Context())
	if err != nil {
		return err
	}

	root.Log.Infof("Categorized %d transaction(s), %d left uncategorized", result.Categorized, result.Uncategorized)
	return nil
}
