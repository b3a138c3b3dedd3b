package main

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "confluence",
	Short: "Confluence - multi-timeframe technical signal engine",
	Long: `Confluence analyzes stocks across daily, weekly and monthly timeframes,
detects candlestick and chart patterns, scores confidence, and reconciles
the technical picture against fundamentals.`,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug mode")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
