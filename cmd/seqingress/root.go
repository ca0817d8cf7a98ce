// SPDX-License-Identifier: MPL-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"seqingress/internal/config"
	"seqingress/internal/issue"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// verbose enables debug logging
	verbose bool
	// cfgFile allows specifying a custom config file
	cfgFile string

	// cfg is the loaded configuration; subcommands read their flag
	// defaults from it.
	cfg = config.DefaultConfig()

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "seqingress",
		Short: "Discover sequencing input and catalogue its metadata",
		Long: TitleStyle.Render("seqingress") + SubtitleStyle.Render(" - Discover sequencing input and catalogue its metadata") + `

seqingress takes a path holding FASTQ or (u)BAM data - a single file,
a flat directory, or a directory of per-barcode sub-directories - and
emits one metadata record per sample: read counts, run IDs, basecall
provenance, and alignment status, optionally reconciled against a CSV
sample sheet.

` + SubtitleStyle.Render("Examples:") + `
  seqingress discover --kind fastq run1/fastq_pass
  seqingress discover --kind bam --sample-sheet sheet.csv run1/bam_pass
  seqingress check --kind fastq run1/fastq_pass`,
	}
)

func init() {
	cobra.OnInitialize(initRootConfig)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/seqingress/config.cue)")

	rootCmd.AddCommand(discoverCmd)
	rootCmd.AddCommand(checkCmd)
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the root command. Called by main.main().
func Execute() {
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(1)
	}
}

// initRootConfig loads the config file and wires up logging.
func initRootConfig() {
	if cfgFile != "" {
		config.SetConfigFilePathOverride(cfgFile)
	}

	loaded, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, verbose))
	}
	if loaded != nil {
		cfg = loaded
		if !verbose {
			verbose = cfg.UI.Verbose
		}
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		Prefix: "seqingress",
	})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	slog.SetDefault(slog.New(logger))
}

// formatErrorForDisplay prefers the ActionableError rendering when the
// error carries one; in verbose mode that includes the error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}

// reportIssue prints the error headline and, when a guidance page
// exists for err, the rendered page below it.
func reportIssue(w io.Writer, err error) {
	iss := issue.FromError(err)
	if iss == nil {
		return
	}
	fmt.Fprintln(w, ErrorStyle.Render("Error: ")+err.Error())
	rendered, renderErr := iss.Render("dark")
	if renderErr != nil {
		slog.Debug("rendering issue page", "error", renderErr)
		return
	}
	fmt.Fprintln(w, rendered)
}
