// Package review provides an interactive loop over uncategorized transactions
package review

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"mcoudert/budget-engine/cmd/root"
	"mcoudert/budget-engine/internal/models"
)

var month string

// Cmd represents the review command
var Cmd = &cobra.Command{
	Use:   "review",
	Short: "Interactively categorize transactions no rule matched",
	Long: `Walk through every uncategorized transaction and assign a category by
hand. The classifier's guess is shown when it has one. Enter a category
name, press enter to skip, or type 'quit' to stop.`,
	RunE: reviewFunc,
}

func init() {
	Cmd.Flags().StringVarP(&month, "month", "m", "", "Restrict to one month (YYYY-MM)")
}

func reviewFunc(cmd *cobra.Command, args []string) error {
	app, err := root.OpenApp()
	if err != nil {
		return err
	}
	defer app.Close()

	rows, err := app.Service.Transactions(cmd.Context(), month, true)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		root.Log.Info("Nothing to review")
		return nil
	}

	fmt.Printf("%d transaction(s) to review. Categories: %s\n\n",
		len(rows), strings.Join(categoryNames(), ", "))

	reader := bufio.NewReader(os.Stdin)
	reviewed := 0
	for i, row := range rows {
		fmt.Printf("[%d/%d] %s  %s  %s  %s\n", i+1, len(rows), row.Date, row.Account, row.Amount.StringFixed(2), row.Description)
		if guess, _ := app.Service.Classifier().Classify(row.Description); guess != models.CategoryUnknown {
			fmt.Printf("  suggestion: %s\n", guess)
		}
		fmt.Print("  category> ")

		line, err := reader.ReadString('\n')
		if err != nil {
			break
		}
		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}
		if strings.EqualFold(input, "quit") || strings.EqualFold(input, "q") {
			break
		}

		category := models.ParseCategory(input)
		if category == models.CategoryUnknown {
			fmt.Printf("  %q is not a category, skipping\n", input)
			continue
		}

		if err := app.Service.SetUserCategory(cmd.Context(), row.TransactionID, category); err != nil {
			return err
		}
		reviewed++
	}

	root.Log.Infof("Reviewed %d transaction(s)", reviewed)
	return nil
}

func categoryNames() []string {
	categories := models.Categories()
	names := make([]string, 0, len(categories))
	for _, category := range categories {
		if category == models.CategoryUnknown {
			continue
		}
		names = append(names, string(category))
	}
	return names
}
