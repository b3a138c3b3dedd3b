package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/quantive/confluence/internal/logger"
)

var analyzeJSON bool

var analyzeCmd = &cobra.Command{
	Use:   "analyze SYMBOL [SYMBOL...]",
	Short: "Run a one-off analysis and print the result",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "print the full analysis record as JSON")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	log := logger.Must(debug)
	defer log.Sync()

	cfg, err := loadConfig(log)
	if err != nil {
		return err
	}

	a, _, err := buildApp(cfg, log)
	if err != nil {
		return err
	}

	for _, symbol := range args {
		result, err := a.Analyze(context.Background(), symbol)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", symbol, err)
			continue
		}

		if analyzeJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(result); err != nil {
				return err
			}
			continue
		}
		fmt.Println(result.Summary)
	}
	return nil
}
