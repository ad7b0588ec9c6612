// Package cmd — import command.
// This is the main command that orchestrates the pipeline:
// validate → fetch → extract → resolve → preview → render → write.
//
// It handles flag validation, renderer selection, and batch imports from
// multiple URLs or pasted free text.
package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mediatrove/linkimport/core"
	"github.com/mediatrove/linkimport/core/config"
	"github.com/mediatrove/linkimport/core/output"
	"github.com/mediatrove/linkimport/core/pipeline"
	"github.com/mediatrove/linkimport/core/render"
	"github.com/mediatrove/linkimport/core/urltext"
)

// Flag variables.
var (
	flagJSON      bool
	flagMarkdown  bool
	flagPDF       bool
	flagFromText  bool
	flagDebug     bool
	flagVerbose   bool
	flagOutputDir string
)

var importCmd = &cobra.Command{
	Use:   "import <url>...",
	Short: "Import product links into structured previews",
	Long: `Import fetches each product page, extracts metadata, and renders a
confidence-scored preview in the chosen format (JSON by default).

Examples:
  linkimport import https://store.example/dp/123
  linkimport import https://store.example/dp/123 --markdown --output_dir ./out
  linkimport import --from-text "check these: store.example/a and store.example/b"
  linkimport import https://store.example/dp/123 --debug`,
	Args: cobra.MinimumNArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)

	// Output format flags (mutually exclusive; JSON is the default).
	importCmd.Flags().BoolVar(&flagJSON, "json", false, "Output JSON (default)")
	importCmd.Flags().BoolVar(&flagMarkdown, "markdown", false, "Output a Markdown card")
	importCmd.Flags().BoolVar(&flagPDF, "pdf", false, "Output a PDF card")

	importCmd.Flags().BoolVar(&flagFromText, "from-text", false, "Treat arguments as free text and import every URL found in it")
	importCmd.Flags().BoolVar(&flagDebug, "debug", false, "Include the raw extraction trace in the output")
	importCmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Log pipeline stages to stderr")
	importCmd.Flags().StringVar(&flagOutputDir, "output_dir", "", "Write output files here instead of printing to stdout")
}

func runImport(cmd *cobra.Command, args []string) error {
	renderer, err := selectRenderer()
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	if flagOutputDir != "" {
		cfg.OutputDir = flagOutputDir
	}

	logger, err := buildLogger()
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck // stderr sync failure is harmless

	targets := args
	if flagFromText {
		targets = urltext.FindURLs(strings.Join(args, " "))
		if len(targets) == 0 {
			return fmt.Errorf("no URLs found in the given text")
		}
		fmt.Fprintf(os.Stdout, "Found %d URLs to import\n", len(targets))
	}

	var writer *output.Writer
	if cfg.OutputDir != "" {
		writer, err = output.New(cfg.OutputDir)
		if err != nil {
			return fmt.Errorf("initializing output writer: %w", err)
		}
	}

	importer := pipeline.New(cfg, logger)
	ctx := context.Background()

	var errCount int
	for i, target := range targets {
		if len(targets) > 1 {
			fmt.Fprintf(os.Stdout, "[%d/%d] Importing %s\n", i+1, len(targets), target)
		}

		result, err := importer.ImportFromURL(ctx, target)
		if err != nil {
			fmt.Fprintf(os.Stderr, "  ✗ %v\n", err)
			errCount++
			continue
		}

		preview := result.Preview
		if !flagDebug {
			preview.Debug = nil
		}

		data, err := renderer.Render(preview)
		if err != nil {
			fmt.Fprintf(os.Stderr, "  ✗ Render error: %v\n", err)
			errCount++
			continue
		}

		if writer != nil {
			path, err := writer.Write(preview.CanonicalURL, data, renderer.Extension())
			if err != nil {
				fmt.Fprintf(os.Stderr, "  ✗ Write error: %v\n", err)
				errCount++
				continue
			}
			fmt.Fprintf(os.Stdout, "  ✓ Written: %s\n", path)
		} else {
			fmt.Fprintln(os.Stdout, string(data))
		}
	}

	if errCount == len(targets) {
		return fmt.Errorf("all %d imports failed", len(targets))
	}
	if errCount > 0 {
		fmt.Fprintf(os.Stderr, "\n%d/%d imports failed\n", errCount, len(targets))
	}
	return nil
}

// selectRenderer creates the appropriate Renderer based on flags.
// Exactly one format is allowed; JSON is the default.
func selectRenderer() (core.Renderer, error) {
	formatCount := 0
	for _, set := range []bool{flagJSON, flagMarkdown, flagPDF} {
		if set {
			formatCount++
		}
	}
	if formatCount > 1 {
		return nil, fmt.Errorf("only one output format allowed per run (got %d)", formatCount)
	}

	switch {
	case flagMarkdown:
		return render.NewMarkdownRenderer(), nil
	case flagPDF:
		return render.NewPDFRenderer(), nil
	default:
		return render.NewJSONRenderer(), nil
	}
}

// buildLogger returns a nop logger unless --verbose is set.
func buildLogger() (*zap.Logger, error) {
	if !flagVerbose {
		return zap.NewNop(), nil
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return nil, fmt.Errorf("initializing logger: %w", err)
	}
	return logger, nil
}
