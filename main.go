package main

import (
	"fmt"
	"os"

	"mcoudert/budget-engine/cmd/autocategorize"
	"mcoudert/budget-engine/cmd/categorize"
	"mcoudert/budget-engine/cmd/ingest"
	"mcoudert/budget-engine/cmd/review"
	"mcoudert/budget-engine/cmd/root"
	"mcoudert/budget-engine/cmd/serve"
)

func init() {
	root.Cmd.AddCommand(ingest.Cmd)
	root.Cmd.AddCommand(autocategorize.Cmd)
	root.Cmd.AddCommand(categorize.Cmd)
	root.Cmd.AddCommand(review.Cmd)
	root.Cmd.AddCommand(serve.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
