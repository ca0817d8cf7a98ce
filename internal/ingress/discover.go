// SPDX-License-Identifier: MPL-2.0

package ingress

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"seqingress/internal/samplesheet"
)

type (
	// Policy carries the caller-supplied discovery settings.
	Policy struct {
		// SampleName overrides the derived alias for single-file and
		// flat-directory inputs. Empty means "derive from the path".
		SampleName string
		// AnalyseUnclassified includes the `unclassified` barcode
		// sub-directory, which is skipped by default.
		AnalyseUnclassified bool
		// ReturnFastq marks alignment input whose content will be handled
		// as FASTQ-like output downstream; record counts are then reported
		// as n_seqs instead of n_primary/n_unmapped, and FASTQ run
		// identifiers are read from carried-through RD tags.
		ReturnFastq bool
		// KeepUnaligned keeps the input path of units whose alignment
		// content turns out to be unaligned. When false, such units keep
		// their metadata but lose their path and run identifiers.
		KeepUnaligned bool
	}

	// ResolvedInput pairs a metadata record with its input path. Path is
	// empty exactly when the unit has no usable input: a sample-sheet row
	// with no matching directory, or unaligned content dropped by policy.
	ResolvedInput struct {
		Meta *Meta
		Path string
	}
)

// Discover catalogs the sequencing input at inputPath.
//
// A single file becomes one resolved unit. A directory is classified as
// either a flat directory of target files (one unit) or a directory of
// per-barcode sub-directories (one unit each, sub-directory names used
// verbatim as barcodes); sheetPath, when non-empty, reconciles the barcoded
// set against the sample sheet. For alignment input a final pass detects
// unaligned content and applies the KeepUnaligned policy.
//
// Discovery is all-or-nothing: any layout violation, header inconsistency,
// or file that fails to parse fails the whole call.
func Discover(inputPath string, kind Kind, sheetPath string, policy Policy) ([]ResolvedInput, error) {
	if !kind.valid() {
		return nil, &UnsupportedKindError{Value: string(kind)}
	}

	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, err
	}

	var inputs []ResolvedInput
	switch {
	case info.Mode().IsRegular():
		unit, err := singleFileUnit(inputPath, kind, policy)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, unit)

	case info.IsDir():
		inputs, err = discoverDir(inputPath, kind, sheetPath, policy)
		if err != nil {
			return nil, err
		}

	default:
		return nil, &PathKindError{Path: inputPath}
	}

	if kind == KindBAM {
		if err := applyUnalignedPolicy(inputs, policy); err != nil {
			return nil, err
		}
	}
	return inputs, nil
}

func singleFileUnit(path string, kind Kind, policy Policy) (ResolvedInput, error) {
	res, err := Scan([]string{path}, kind, policy.ReturnFastq)
	if err != nil {
		return ResolvedInput{}, err
	}
	alias := policy.SampleName
	if alias == "" {
		// Base name up to the first extension segment.
		alias, _, _ = strings.Cut(filepath.Base(path), ".")
	}
	meta, err := buildMeta(alias, "", res, kind, policy.ReturnFastq)
	if err != nil {
		return ResolvedInput{}, err
	}
	return ResolvedInput{Meta: meta, Path: path}, nil
}

func discoverDir(dir string, kind Kind, sheetPath string, policy Policy) ([]ResolvedInput, error) {
	lay, err := classifyLayout(dir, kind)
	if err != nil {
		return nil, err
	}

	if len(lay.TopFiles) > 0 {
		res, err := Scan(lay.TopFiles, kind, policy.ReturnFastq)
		if err != nil {
			return nil, err
		}
		alias := policy.SampleName
		if alias == "" {
			alias = filepath.Base(dir)
		}
		meta, err := buildMeta(alias, "", res, kind, policy.ReturnFastq)
		if err != nil {
			return nil, err
		}
		return []ResolvedInput{{Meta: meta, Path: dir}}, nil
	}

	var inputs []ResolvedInput
	for _, sub := range lay.Subdirs {
		barcode := filepath.Base(sub)
		if barcode == UnclassifiedDir && !policy.AnalyseUnclassified {
			slog.Warn("skipping unclassified reads", "dir", sub)
			continue
		}
		files, err := TargetFiles(sub, kind)
		if err != nil {
			return nil, err
		}
		res, err := Scan(files, kind, policy.ReturnFastq)
		if err != nil {
			return nil, err
		}
		meta, err := buildMeta(barcode, barcode, res, kind, policy.ReturnFastq)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, ResolvedInput{Meta: meta, Path: sub})
	}

	if sheetPath != "" {
		sheet, err := samplesheet.Read(sheetPath)
		if err != nil {
			return nil, err
		}
		return reconcile(inputs, sheet)
	}
	return inputs, nil
}

// reconcile merges the sample sheet with the discovered per-barcode units.
// Output follows sheet row order; rows with no matching directory produce an
// entry with an absent path, built solely from sheet fields plus defaults.
func reconcile(discovered []ResolvedInput, sheet *samplesheet.Sheet) ([]ResolvedInput, error) {
	byBarcode := make(map[string]ResolvedInput, len(discovered))
	for _, unit := range discovered {
		byBarcode[filepath.Base(unit.Path)] = unit
	}

	inputs := make([]ResolvedInput, 0, len(sheet.Rows))
	for _, row := range sheet.Rows {
		unit, found := byBarcode[row.Barcode()]
		if !found {
			unit = ResolvedInput{}
		}
		meta, err := Merge(unit.Meta, sheet.Columns, row)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, ResolvedInput{Meta: meta, Path: unit.Path})
	}
	return inputs, nil
}

// applyUnalignedPolicy annotates every unit that still has a path with its
// alignment status. Unaligned units are stripped of their path and run
// identifiers unless KeepUnaligned is set; the rest of the metadata stays
// for observability.
func applyUnalignedPolicy(inputs []ResolvedInput, policy Policy) error {
	for i := range inputs {
		if inputs[i].Path == "" {
			continue
		}
		unaligned, err := IsUnaligned(inputs[i].Path)
		if err != nil {
			return err
		}
		inputs[i].Meta.IsUnaligned = ptr(unaligned)
		if unaligned && !policy.KeepUnaligned {
			inputs[i].Path = ""
			inputs[i].Meta.RunIDs = []string{}
		}
	}
	return nil
}
