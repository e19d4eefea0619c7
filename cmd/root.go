// Package cmd implements the CLI commands for FlyerPipe using Cobra.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Flag variables.
var (
	flagConfig  string
	flagOutput  string
	flagReport  string
	flagTimeout int
	flagDebug   bool
	flagLogFile string
)

var rootCmd = &cobra.Command{
	Use:   "flyerpipe",
	Short: "FlyerPipe: collect currently valid hypermarket flyers into JSON",
	Long: `FlyerPipe crawls the hypermarket category of prospektmaschine.de, extracts
every shop's flyers (title, thumbnail, validity window), keeps the ones valid
today and writes them to a JSON file.

Usage:
  flyerpipe [flags]
  flyerpipe shops`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runCollect,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "flyerpipe.json5", "Config file (json5); a .local.json5 sibling overrides it")
	rootCmd.PersistentFlags().IntVar(&flagTimeout, "timeout", 0, "Fetch timeout in seconds (default from config: 30)")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Append logs to this file (default from config: logs/app.log)")

	rootCmd.Flags().StringVar(&flagOutput, "output", "", "JSON output path (default from config: assets/flyers.json)")
	rootCmd.Flags().StringVar(&flagReport, "report", "", "Also write a report; format from extension (.md or .pdf)")
}

// ExecuteContext runs the root command with ctx.
func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
