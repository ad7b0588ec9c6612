// Package cmd — check command.
// Runs only the URL validator, so callers can test input without
// touching the network.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mediatrove/linkimport/core/validate"
)

var checkCmd = &cobra.Command{
	Use:   "check <url>",
	Short: "Validate and normalize a URL without fetching it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		normalized, err := validate.URL(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, normalized)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
