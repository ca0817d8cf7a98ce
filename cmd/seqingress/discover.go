// SPDX-License-Identifier: MPL-2.0

package main

import (
	"encoding/json"
	"fmt"
	"io"

	"seqingress/internal/ingress"
	"seqingress/internal/issue"

	"github.com/spf13/cobra"
)

var (
	discoverKind        string
	discoverSample      string
	discoverSheet       string
	discoverUnclass     bool
	discoverKeepUnal    bool
	discoverReturnFastq bool
	discoverChunkSize   int
	discoverResultsDir  string

	discoverCmd = &cobra.Command{
		Use:   "discover <input-path>",
		Short: "Catalogue sequencing input as JSON metadata records",
		Long: `Discover inspects the input path, validates its layout, reads every
sequencing file in it, and prints one JSON record per sample with read
counts, run IDs, basecall provenance, and alignment status.

With --sample-sheet, barcoded input is reconciled against the sheet:
output follows sheet row order, and rows without a matching barcode
directory produce a record with a null path.

With --results-dir, each record is amended for output: counts are
chunked according to --chunk-size, and samples without a stats
directory under the results dir have their counts nulled out.`,
		Args: cobra.ExactArgs(1),
		RunE: runDiscover,
	}
)

func init() {
	flags := discoverCmd.Flags()
	flags.StringVarP(&discoverKind, "kind", "k", "fastq", "input kind: fastq or bam")
	flags.StringVarP(&discoverSample, "sample", "s", "", "sample name override for single-file and flat-directory input")
	flags.StringVar(&discoverSheet, "sample-sheet", "", "CSV sample sheet to reconcile barcoded input against")
	flags.BoolVar(&discoverUnclass, "analyse-unclassified", false, "include the unclassified barcode directory")
	flags.BoolVar(&discoverKeepUnal, "keep-unaligned", false, "keep unaligned (u)BAM input instead of dropping its path")
	flags.BoolVar(&discoverReturnFastq, "return-fastq", false, "treat downstream output as FASTQ even for BAM input")
	flags.IntVar(&discoverChunkSize, "chunk-size", 0, "reads per output file when amending; 0 disables chunking")
	flags.StringVar(&discoverResultsDir, "results-dir", "", "results directory holding per-sample stats; enables output amendment")
}

// catalogEntry is one line of the JSON catalogue: the metadata record
// plus its input path, null when the unit has no usable input.
type catalogEntry struct {
	*ingress.Meta
	Path *string `json:"path"`
}

// applyDiscoverDefaults backfills flags the user did not set from the
// loaded configuration.
func applyDiscoverDefaults(cmd *cobra.Command) {
	flags := cmd.Flags()
	if !flags.Changed("sample") && cfg.Ingress.Sample != "" {
		discoverSample = cfg.Ingress.Sample
	}
	if !flags.Changed("sample-sheet") && cfg.Ingress.SampleSheet != "" {
		discoverSheet = cfg.Ingress.SampleSheet
	}
	if !flags.Changed("analyse-unclassified") {
		discoverUnclass = cfg.Ingress.AnalyseUnclassified
	}
	if !flags.Changed("keep-unaligned") {
		discoverKeepUnal = cfg.Ingress.KeepUnaligned
	}
	if !flags.Changed("return-fastq") {
		discoverReturnFastq = cfg.Ingress.ReturnFastq
	}
	if !flags.Changed("chunk-size") {
		discoverChunkSize = cfg.Ingress.ChunkSize
	}
	if !flags.Changed("results-dir") && cfg.Ingress.ResultsDir != "" {
		discoverResultsDir = cfg.Ingress.ResultsDir
	}
}

func runDiscover(cmd *cobra.Command, args []string) error {
	applyDiscoverDefaults(cmd)

	kind, err := ingress.ParseKind(discoverKind)
	if err != nil {
		reportIssue(cmd.ErrOrStderr(), err)
		return err
	}

	policy := ingress.Policy{
		SampleName:          discoverSample,
		AnalyseUnclassified: discoverUnclass,
		ReturnFastq:         discoverReturnFastq,
		KeepUnaligned:       discoverKeepUnal,
	}
	inputs, err := ingress.Discover(args[0], kind, discoverSheet, policy)
	if err != nil {
		reportIssue(cmd.ErrOrStderr(), err)
		return issue.Wrap(err, "discover input", args[0]).
			WithSuggestions("Run 'seqingress check' on the same path to validate its layout")
	}

	if discoverResultsDir != "" {
		if inputs, err = amendCatalog(inputs, kind); err != nil {
			reportIssue(cmd.ErrOrStderr(), err)
			return issue.Wrap(err, "amend catalogue", discoverResultsDir).
				WithSuggestions("Check that --results-dir points at the pipeline output directory")
		}
	}

	return writeCatalog(cmd.OutOrStdout(), inputs)
}

// amendCatalog rewrites each record for output: chunked counts for
// FASTQ-like output, nulled counts for samples without stats.
func amendCatalog(inputs []ingress.ResolvedInput, kind ingress.Kind) ([]ingress.ResolvedInput, error) {
	outputKind := kind
	if discoverReturnFastq {
		outputKind = ingress.KindFastq
	}
	var chunk *int
	if discoverChunkSize > 0 {
		chunk = &discoverChunkSize
	}
	amended := make([]ingress.ResolvedInput, 0, len(inputs))
	for _, unit := range inputs {
		meta, err := ingress.AmendForOutput(unit.Meta, outputKind, chunk, discoverResultsDir)
		if err != nil {
			return nil, err
		}
		amended = append(amended, ingress.ResolvedInput{Meta: meta, Path: unit.Path})
	}
	return amended, nil
}

func writeCatalog(w io.Writer, inputs []ingress.ResolvedInput) error {
	entries := make([]catalogEntry, 0, len(inputs))
	for _, unit := range inputs {
		entry := catalogEntry{Meta: unit.Meta}
		if unit.Path != "" {
			path := unit.Path
			entry.Path = &path
		}
		entries = append(entries, entry)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(entries); err != nil {
		return fmt.Errorf("encoding catalogue: %w", err)
	}
	return nil
}
