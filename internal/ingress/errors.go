// SPDX-License-Identifier: MPL-2.0

package ingress

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedKind is the sentinel error wrapped by UnsupportedKindError.
	ErrUnsupportedKind = errors.New("unsupported input kind")
	// ErrMissingAlias is the sentinel error wrapped by MissingAliasError.
	ErrMissingAlias = errors.New("metadata needs an alias")
	// ErrLayout is the sentinel error wrapped by LayoutError.
	ErrLayout = errors.New("invalid input directory layout")
	// ErrInconsistentHeader is the sentinel error wrapped by InconsistentHeaderError.
	ErrInconsistentHeader = errors.New("alignment files have mixed headers")
	// ErrPathKind is the sentinel error wrapped by PathKindError.
	ErrPathKind = errors.New("path is neither a file nor a directory")
	// ErrChunkSize is the sentinel error wrapped by ChunkSizeError.
	ErrChunkSize = errors.New("chunk size must be positive")
)

const (
	// LayoutMixed means the directory holds both top-level target files and
	// sub-directories with target files.
	LayoutMixed LayoutProblem = iota
	// LayoutEmpty means neither top-level target files nor sub-directories
	// with target files were found.
	LayoutEmpty
	// LayoutTooDeep means a barcode sub-directory contains a deeper
	// sub-directory with target files.
	LayoutTooDeep
)

type (
	// UnsupportedKindError is returned when an input kind value is not
	// recognized. It wraps ErrUnsupportedKind for errors.Is() compatibility.
	UnsupportedKindError struct {
		Value string
	}

	// MissingAliasError is returned when a metadata record would be built
	// without an alias. It wraps ErrMissingAlias for errors.Is().
	MissingAliasError struct {
		// Barcode identifies the offending unit when known (sample-sheet
		// reconciliation); empty otherwise.
		Barcode string
	}

	// LayoutProblem enumerates the mutually-exclusive-layout violations.
	LayoutProblem int

	// LayoutError is returned when an input directory violates the layout
	// rules. It wraps ErrLayout for errors.Is() compatibility.
	LayoutError struct {
		Dir     string
		Kind    Kind
		Problem LayoutProblem
	}

	// InconsistentHeaderError is returned when alignment files in one input
	// unit disagree on their reference-sequence declarations. It wraps
	// ErrInconsistentHeader for errors.Is() compatibility.
	InconsistentHeaderError struct {
		Path string
	}

	// PathKindError is returned when a supplied path is neither a regular
	// file nor a directory. It wraps ErrPathKind for errors.Is().
	PathKindError struct {
		Path string
	}

	// ChunkSizeError is returned when output amendment is asked to chunk
	// with a non-positive size. It wraps ErrChunkSize for errors.Is().
	ChunkSizeError struct {
		Value int
	}
)

// Error implements the error interface.
func (e *UnsupportedKindError) Error() string {
	return fmt.Sprintf("input kind %q is not supported (needs to be one of: %s, %s)",
		e.Value, KindFastq, KindBAM)
}

// Is reports whether target is ErrUnsupportedKind.
func (e *UnsupportedKindError) Is(target error) bool {
	return target == ErrUnsupportedKind
}

// Error implements the error interface.
func (e *MissingAliasError) Error() string {
	if e.Barcode != "" {
		return fmt.Sprintf("metadata for barcode %q needs an alias", e.Barcode)
	}
	return "metadata needs an alias"
}

// Is reports whether target is ErrMissingAlias.
func (e *MissingAliasError) Is(target error) bool {
	return target == ErrMissingAlias
}

// Error implements the error interface.
func (e *LayoutError) Error() string {
	switch e.Problem {
	case LayoutMixed:
		return fmt.Sprintf("input directory %q cannot contain %s files and sub-directories with %s files",
			e.Dir, e.Kind.upper(), e.Kind.upper())
	case LayoutEmpty:
		return fmt.Sprintf("input directory %q contains neither sub-directories nor %s files",
			e.Dir, e.Kind.upper())
	case LayoutTooDeep:
		return fmt.Sprintf("input directory %q cannot contain more than one level of sub-directories with %s files",
			e.Dir, e.Kind.upper())
	default:
		return fmt.Sprintf("input directory %q has an invalid layout", e.Dir)
	}
}

// Is reports whether target is ErrLayout.
func (e *LayoutError) Is(target error) bool {
	return target == ErrLayout
}

// Error implements the error interface.
func (e *InconsistentHeaderError) Error() string {
	return fmt.Sprintf("%q contains (u)BAM files with mixed headers", e.Path)
}

// Is reports whether target is ErrInconsistentHeader.
func (e *InconsistentHeaderError) Is(target error) bool {
	return target == ErrInconsistentHeader
}

// Error implements the error interface.
func (e *PathKindError) Error() string {
	return fmt.Sprintf("path %q is neither a file nor a directory", e.Path)
}

// Is reports whether target is ErrPathKind.
func (e *PathKindError) Is(target error) bool {
	return target == ErrPathKind
}

// Error implements the error interface.
func (e *ChunkSizeError) Error() string {
	return fmt.Sprintf("chunk size %d is not positive", e.Value)
}

// Is reports whether target is ErrChunkSize.
func (e *ChunkSizeError) Is(target error) bool {
	return target == ErrChunkSize
}
