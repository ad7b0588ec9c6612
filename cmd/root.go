// Package cmd implements the CLI commands for linkimport using Cobra.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "linkimport",
	Short: "linkimport — turn product links into structured previews",
	Long: `linkimport fetches a product page, extracts its metadata (Open Graph,
JSON-LD, heuristics), and assembles a confidence-scored preview.

Usage:
  linkimport import <url> [flags]
  linkimport check <url>`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
