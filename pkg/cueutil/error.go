// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"fmt"
	"strings"

	"cuelang.org/go/cue/errors"
)

// ValidationError carries every individual CUE error produced while
// validating a document, rather than just the first one.
type ValidationError struct {
	// Filename is the document that failed validation, for display.
	Filename string
	// Problems holds one formatted message per CUE error.
	Problems []string
}

func (e *ValidationError) Error() string {
	if len(e.Problems) == 1 {
		return fmt.Sprintf("%s: %s", e.Filename, e.Problems[0])
	}
	return fmt.Sprintf("%s: %d problems:\n  - %s",
		e.Filename, len(e.Problems), strings.Join(e.Problems, "\n  - "))
}

// NewValidationError expands a CUE error value into a ValidationError,
// flattening the internal error list and rewriting field paths into
// dotted form.
func NewValidationError(filename string, err error) *ValidationError {
	ve := &ValidationError{Filename: filename}
	for _, e := range errors.Errors(err) {
		msg := e.Error()
		if p := formatPath(e.Path()); p != "" {
			msg = fmt.Sprintf("%s: %s", p, msg)
		}
		ve.Problems = append(ve.Problems, msg)
	}
	if len(ve.Problems) == 0 {
		ve.Problems = append(ve.Problems, err.Error())
	}
	return ve
}

// formatPath renders a CUE selector path as a dotted string. Selectors
// that already quote themselves (string labels with spaces and the
// like) are kept verbatim.
func formatPath(parts []string) string {
	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, ".")
}
