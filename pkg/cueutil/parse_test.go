// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"seqingress/internal/testutil"
)

const testSchema = `
#Config: {
	name?:  string
	count?: int & >=0
	nested?: {
		flag?: bool
	}
}
`

func TestValidateMapAccepts(t *testing.T) {
	doc := []byte(`name: "sample_a"
count: 3
nested: flag: true
`)
	out, err := ValidateMap(testSchema, "#Config", "config.cue", doc)
	if err != nil {
		t.Fatalf("ValidateMap: %v", err)
	}
	if out["name"] != "sample_a" {
		t.Errorf("name = %v, want sample_a", out["name"])
	}
	nested, ok := out["nested"].(map[string]any)
	if !ok {
		t.Fatalf("nested = %T, want map", out["nested"])
	}
	if nested["flag"] != true {
		t.Errorf("nested.flag = %v, want true", nested["flag"])
	}
}

func TestValidateMapRejectsWrongType(t *testing.T) {
	doc := []byte(`count: "three"`)
	_, err := ValidateMap(testSchema, "#Config", "config.cue", doc)
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("error = %v, want *ValidationError", err)
	}
	if ve.Filename != "config.cue" {
		t.Errorf("Filename = %q, want config.cue", ve.Filename)
	}
	if !strings.Contains(ve.Error(), "count") {
		t.Errorf("message %q does not mention the failing field", ve.Error())
	}
}

func TestValidateMapRejectsConstraintViolation(t *testing.T) {
	doc := []byte(`count: -1`)
	_, err := ValidateMap(testSchema, "#Config", "config.cue", doc)
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("error = %v, want *ValidationError", err)
	}
}

func TestValidateMapRejectsMalformedDocument(t *testing.T) {
	doc := []byte(`name: "unterminated`)
	if _, err := ValidateMap(testSchema, "#Config", "config.cue", doc); err == nil {
		t.Fatal("expected error for malformed document")
	}
}

func TestCheckFileSize(t *testing.T) {
	dir := t.TempDir()
	small := filepath.Join(dir, "small.cue")
	testutil.MustWriteFile(t, small, []byte("name: \"x\"\n"))

	if err := CheckFileSize(small, 0); err != nil {
		t.Errorf("CheckFileSize(small): %v", err)
	}
	var fse *FileSizeError
	err := CheckFileSize(small, 1)
	if !errors.As(err, &fse) {
		t.Fatalf("error = %v, want *FileSizeError", err)
	}
	if fse.Limit != 1 {
		t.Errorf("Limit = %d, want 1", fse.Limit)
	}
	if err := CheckFileSize(filepath.Join(dir, "absent.cue"), 0); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestFormatPath(t *testing.T) {
	if got := formatPath(nil); got != "" {
		t.Errorf("formatPath(nil) = %q, want empty", got)
	}
	if got := formatPath([]string{"ingress", "chunk_size"}); got != "ingress.chunk_size" {
		t.Errorf("formatPath = %q", got)
	}
}
