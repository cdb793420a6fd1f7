// Package categorize handles explicit user categorization commands
package categorize

import (
	"github.com/spf13/cobra"

	"mcoudert/budget-engine/cmd/root"
	"mcoudert/budget-engine/internal/errs"
	"mcoudert/budget-engine/internal/models"
)

var (
	transactionIDs []string
	categoryName   string
)

// Cmd represents the categorize command
var Cmd = &cobra.Command{
	Use:   "categorize",
	Short: "Set a user category on one or more transactions",
	Long: `Record an explicit user categorization. A user category always wins over
anything the classifier assigned, now or later.`,
	RunE: categorizeFunc,
}

func init() {
	Cmd.Flags().StringSliceVarP(&transactionIDs, "ids", "i", nil, "Transaction IDs to categorize")
	Cmd.Flags().StringVarP(&categoryName, "category", "c", "", "Category to assign")
	_ = Cmd.MarkFlagRequired("ids")
	_ = Cmd.MarkFlagRequired("category")
}

func categorizeFunc(cmd *cobra.Command, args []string) error {
	category := models.ParseCategory(categoryName)
	if category == models.CategoryUnknown {
		return errs.NewInvalidArgument("category %q is not in the enumeration", categoryName)
	}

	app, err := root.OpenApp()
	if err != nil {
		return err
	}
	defer app.Close()

	affected, err := app.Service.SetUserCategories(cmd.Context(), transactionIDs, category)
	if err != nil {
		return err
	}

	root.Log.Infof("Set %s on %d transaction(s)", category, affected)
	return nil
}
