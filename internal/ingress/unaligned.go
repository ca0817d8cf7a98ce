// SPDX-License-Identifier: MPL-2.0

package ingress

import (
	"os"
	"slices"

	"seqingress/internal/xam"
)

// IsUnaligned reports whether path holds unaligned (uBAM-style) content.
//
// For a single file, the answer is derived from its reference-sequence
// declarations: no @SQ lines means unaligned. For a directory, every target
// alignment file is inspected and the reference lists must be structurally
// identical to the first file's; the first mismatch fails with an
// InconsistentHeaderError. The result is then derived from the first file.
func IsUnaligned(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}

	var files []string
	switch {
	case info.Mode().IsRegular():
		files = []string{path}
	case info.IsDir():
		files, err = TargetFiles(path, KindBAM)
		if err != nil {
			return false, err
		}
	default:
		return false, &PathKindError{Path: path}
	}

	var first []string
	seen := false
	for _, file := range files {
		lines, err := refLines(file)
		if err != nil {
			return false, err
		}
		if !seen {
			first = lines
			seen = true
			continue
		}
		if !slices.Equal(first, lines) {
			return false, &InconsistentHeaderError{Path: path}
		}
	}
	return len(first) == 0, nil
}

func refLines(path string) ([]string, error) {
	f, err := xam.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return xam.RefLines(f.Header()), nil
}
