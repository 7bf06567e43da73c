package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "findocgpt",
	Short: "A CLI for managing the FinDocGPT services",
	Long:  `FinDocGPT is a financial document analysis backend with heuristic sentiment, anomaly, forecasting and strategy engines.`,
}

func main() {

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Whoops. There was an error while executing your CLI '%s'", err)
		os.Exit(1)
	}
}
