// SPDX-License-Identifier: MPL-2.0

package ingress

import (
	"os"
	"path/filepath"
)

// UnclassifiedDir is the barcode sub-directory basecallers use for reads
// they could not demultiplex. It is skipped during discovery unless the
// policy asks for it.
const UnclassifiedDir = "unclassified"

// LayoutForm names the shape an input path resolves to.
type LayoutForm string

const (
	// LayoutSingleFile is one target file passed directly.
	LayoutSingleFile LayoutForm = "single-file"
	// LayoutFlat is a directory holding target files at the top level.
	LayoutFlat LayoutForm = "flat"
	// LayoutBarcoded is a directory of per-barcode sub-directories.
	LayoutBarcoded LayoutForm = "barcoded"
)

type (
	// LayoutReport describes the validated shape of an input path
	// without reading any file contents.
	LayoutReport struct {
		Form LayoutForm
		// Files are the target files, for single-file and flat layouts.
		Files []string
		// Subdirs are the qualifying barcode sub-directories, for the
		// barcoded layout.
		Subdirs []string
	}

	// layout is the validated classification of an input directory:
	// either TopFiles is non-empty (flat layout) or Subdirs is (one level
	// of per-barcode sub-directories), never both.
	layout struct {
		// TopFiles are target files directly inside the input directory.
		TopFiles []string
		// Subdirs are immediate sub-directories that contain target files,
		// in enumeration order.
		Subdirs []string
	}
)

// Classify validates the shape of inputPath for kind and reports it.
// It enforces the same layout rules as Discover but stops before any
// file contents are read.
func Classify(inputPath string, kind Kind) (*LayoutReport, error) {
	if !kind.valid() {
		return nil, &UnsupportedKindError{Value: string(kind)}
	}

	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, err
	}
	switch {
	case info.Mode().IsRegular():
		return &LayoutReport{Form: LayoutSingleFile, Files: []string{inputPath}}, nil
	case info.IsDir():
		lay, err := classifyLayout(inputPath, kind)
		if err != nil {
			return nil, err
		}
		if len(lay.TopFiles) > 0 {
			return &LayoutReport{Form: LayoutFlat, Files: lay.TopFiles}, nil
		}
		return &LayoutReport{Form: LayoutBarcoded, Subdirs: lay.Subdirs}, nil
	default:
		return nil, &PathKindError{Path: inputPath}
	}
}

// classifyLayout inspects dir and enforces the mutually-exclusive-layout
// rules: flat target files and barcode sub-directories must not be mixed,
// at least one of the two must be present, and barcode sub-directories must
// not nest further. Each violation is a LayoutError.
func classifyLayout(dir string, kind Kind) (*layout, error) {
	top, err := TargetFiles(dir, kind)
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var subdirs []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		sub := filepath.Join(dir, entry.Name())
		files, err := TargetFiles(sub, kind)
		if err != nil {
			return nil, err
		}
		if len(files) > 0 {
			subdirs = append(subdirs, sub)
		}
	}

	switch {
	case len(top) > 0 && len(subdirs) > 0:
		return nil, &LayoutError{Dir: dir, Kind: kind, Problem: LayoutMixed}
	case len(top) == 0 && len(subdirs) == 0:
		return nil, &LayoutError{Dir: dir, Kind: kind, Problem: LayoutEmpty}
	}

	// One level of barcode nesting is the limit; check every qualifying
	// sub-directory (including unclassified) before any of them is skipped.
	for _, sub := range subdirs {
		deep, err := hasNestedTargetFiles(sub, kind)
		if err != nil {
			return nil, err
		}
		if deep {
			return nil, &LayoutError{Dir: dir, Kind: kind, Problem: LayoutTooDeep}
		}
	}

	return &layout{TopFiles: top, Subdirs: subdirs}, nil
}

// hasNestedTargetFiles reports whether any immediate sub-directory of dir
// contains target files.
func hasNestedTargetFiles(dir string, kind Kind) (bool, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false, err
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		files, err := TargetFiles(filepath.Join(dir, entry.Name()), kind)
		if err != nil {
			return false, err
		}
		if len(files) > 0 {
			return true, nil
		}
	}
	return false, nil
}
