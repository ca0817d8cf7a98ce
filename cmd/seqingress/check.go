// SPDX-License-Identifier: MPL-2.0

package main

import (
	"fmt"
	"io"

	"seqingress/internal/ingress"
	"seqingress/internal/issue"

	"github.com/spf13/cobra"
)

var (
	checkKind string

	checkCmd = &cobra.Command{
		Use:   "check <input-path>",
		Short: "Validate input layout without reading file contents",
		Long: `Check classifies the input path as a single file, a flat directory, or
a directory of per-barcode sub-directories, and reports layout
violations: mixed layouts, empty directories, and nesting deeper than
one barcode level. No sequencing file is opened.`,
		Args: cobra.ExactArgs(1),
		RunE: runCheck,
	}
)

func init() {
	checkCmd.Flags().StringVarP(&checkKind, "kind", "k", "fastq", "input kind: fastq or bam")
}

func runCheck(cmd *cobra.Command, args []string) error {
	kind, err := ingress.ParseKind(checkKind)
	if err != nil {
		reportIssue(cmd.ErrOrStderr(), err)
		return err
	}

	report, err := ingress.Classify(args[0], kind)
	if err != nil {
		reportIssue(cmd.ErrOrStderr(), err)
		return issue.Wrap(err, "check input layout", args[0]).
			WithSuggestions("Check that the path and --kind match the files actually present")
	}

	printLayoutReport(cmd.OutOrStdout(), args[0], report)
	return nil
}

func printLayoutReport(w io.Writer, path string, report *ingress.LayoutReport) {
	fmt.Fprintf(w, "%s %s\n", SuccessStyle.Render("valid"), PathStyle.Render(path))
	switch report.Form {
	case ingress.LayoutSingleFile:
		fmt.Fprintln(w, "layout: single file")
	case ingress.LayoutFlat:
		fmt.Fprintf(w, "layout: flat directory (%d files)\n", len(report.Files))
	case ingress.LayoutBarcoded:
		fmt.Fprintf(w, "layout: barcoded (%d sub-directories)\n", len(report.Subdirs))
		for _, sub := range report.Subdirs {
			fmt.Fprintf(w, "  %s\n", PathStyle.Render(sub))
		}
	}
}
