// SPDX-License-Identifier: MPL-2.0

// Package xam wraps BAM/uBAM access for the ingress engine. It narrows the
// biogo/hts surface to what discovery needs: record iteration, alignment
// flags, the per-record RD tag, reference declarations, and read-group
// description fields.
package xam

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/biogo/hts/bam"
	"github.com/biogo/hts/sam"
)

type (
	// File is an opened BAM/uBAM file. Opening never requires reference
	// declarations to be present, so unaligned files read fine.
	File struct {
		r  *bam.Reader
		fh *os.File
	}
)

var rdTag = sam.NewTag("RD")

// Open opens a BAM or uBAM file for reading.
func Open(path string) (*File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	r, err := bam.NewReader(fh, 1)
	if err != nil {
		fh.Close()
		return nil, fmt.Errorf("open %s as BAM: %w", path, err)
	}
	return &File{r: r, fh: fh}, nil
}

// Header returns the SAM header of the file.
func (f *File) Header() *sam.Header {
	return f.r.Header()
}

// Read returns the next alignment record, or io.EOF when exhausted.
func (f *File) Read() (*sam.Record, error) {
	return f.r.Read()
}

// Close closes the reader and the underlying file.
func (f *File) Close() error {
	err := f.r.Close()
	if cerr := f.fh.Close(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}

// IsUnmapped reports whether the record has no mapping position.
func IsUnmapped(r *sam.Record) bool {
	return r.Flags&sam.Unmapped != 0
}

// IsPrimary reports whether the record is neither a secondary nor a
// supplementary alignment.
func IsPrimary(r *sam.Record) bool {
	return r.Flags&(sam.Secondary|sam.Supplementary) == 0
}

// RunID returns the value of the record's RD tag, if present.
func RunID(r *sam.Record) (string, bool) {
	aux := r.AuxFields.Get(rdTag)
	if aux == nil {
		return "", false
	}
	v, ok := aux.Value().(string)
	return v, ok
}

// RefLines returns the header's reference declarations rendered as @SQ
// lines. An unaligned file yields an empty slice. The rendered form is used
// for structural comparison across files of one input unit.
func RefLines(h *sam.Header) []string {
	refs := h.Refs()
	lines := make([]string, 0, len(refs))
	for _, ref := range refs {
		lines = append(lines, ref.String())
	}
	return lines
}

// GroupDescriptions returns the DS field of every @RG header line, in
// declaration order. Read groups without a DS field contribute nothing.
func GroupDescriptions(h *sam.Header) ([]string, error) {
	text, err := h.MarshalText()
	if err != nil {
		return nil, fmt.Errorf("marshal header: %w", err)
	}

	var descs []string
	sc := bufio.NewScanner(bytes.NewReader(text))
	for sc.Scan() {
		line := sc.Text()
		if !strings.HasPrefix(line, "@RG") {
			continue
		}
		// Header fields are tab-separated; DS values may contain spaces.
		for _, field := range strings.Split(line, "\t")[1:] {
			if strings.HasPrefix(field, "DS:") {
				descs = append(descs, field[len("DS:"):])
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return descs, nil
}
