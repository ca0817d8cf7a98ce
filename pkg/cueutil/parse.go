// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// DefaultMaxFileSize bounds how large a document this package will
// parse. CUE evaluation cost grows with input size, and documents this
// package handles are hand-written config files.
const DefaultMaxFileSize int64 = 1 << 20 // 1 MiB

// FileSizeError reports a document that exceeds the parse limit.
type FileSizeError struct {
	Path  string
	Size  int64
	Limit int64
}

func (e *FileSizeError) Error() string {
	return fmt.Sprintf("%s: file is %d bytes, limit is %d", e.Path, e.Size, e.Limit)
}

// CheckFileSize stats path and fails if it exceeds limit. A limit of
// zero means DefaultMaxFileSize.
func CheckFileSize(path string, limit int64) error {
	if limit <= 0 {
		limit = DefaultMaxFileSize
	}
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.Size() > limit {
		return &FileSizeError{Path: path, Size: info.Size(), Limit: limit}
	}
	return nil
}

// ValidateMap compiles schema, looks up the definition at defPath
// (for example "#Config"), unifies data against it and decodes the
// result into a generic map. Validation errors come back as a
// *ValidationError naming filename.
func ValidateMap(schema, defPath, filename string, data []byte) (map[string]any, error) {
	ctx := cuecontext.New()

	schemaVal := ctx.CompileString(schema, cue.Filename("schema.cue"))
	if err := schemaVal.Err(); err != nil {
		return nil, fmt.Errorf("compiling schema: %w", err)
	}
	def := schemaVal.LookupPath(cue.ParsePath(defPath))
	if err := def.Err(); err != nil {
		return nil, fmt.Errorf("looking up %s: %w", defPath, err)
	}

	doc := ctx.CompileBytes(data, cue.Filename(filename))
	if err := doc.Err(); err != nil {
		return nil, NewValidationError(filename, err)
	}

	unified := def.Unify(doc)
	if err := unified.Validate(cue.Concrete(false)); err != nil {
		return nil, NewValidationError(filename, err)
	}

	var out map[string]any
	if err := unified.Decode(&out); err != nil {
		return nil, NewValidationError(filename, err)
	}
	return out, nil
}
