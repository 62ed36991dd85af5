package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sahadev/jyotish/cmd/jyotish/commands"
	"github.com/sahadev/jyotish/logger"
)

var jsonLogs bool

var rootCmd = &cobra.Command{
	Use:   "jyotish",
	Short: "Jyotish - Vedic horoscope computation and readings",
	Long: `Jyotish computes Vedic birth charts and narrative readings.

Given a birth date, time and place it computes sidereal planetary
longitudes, derives rasi and navamsa charts, detects heuristic yogas,
builds a Vimshottari dasa timeline, renders SVG chart diagrams and asks
an LLM for a narrative reading (with a deterministic local fallback).

Examples:
  jyotish server                                  # Start the web server
  jyotish chart --date 1996-10-15 --time 17:55 \
      --place "Chennai, India" --tz Asia/Kolkata  # One-shot chart
  jyotish config show                             # Show configuration
  jyotish version                                 # Show version info`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := logger.Initialize(jsonLogs); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonLogs, "json-logs", false, "Emit logs as JSON")

	rootCmd.AddCommand(commands.ServerCmd)
	rootCmd.AddCommand(commands.ChartCmd)
	rootCmd.AddCommand(commands.ConfigCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	defer logger.Cleanup()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
