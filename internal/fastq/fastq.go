// SPDX-License-Identifier: MPL-2.0

// Package fastq provides a minimal streaming FASTQ reader for plain and
// gzip-compressed files. It exposes record names and the free-text comment
// portion of the header line; sequence and quality lines are carried along
// but not interpreted.
package fastq

import (
	"bufio"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

var (
	// ErrMalformedRecord is returned when a record does not follow the
	// four-line FASTQ layout.
	ErrMalformedRecord = errors.New("malformed fastq record")
)

type (
	// Record is a single FASTQ entry. Name is the first whitespace-separated
	// token of the header line (without the leading '@'); Comment is the
	// remainder of the header line, which basecallers use for key=value and
	// SAM-style tag annotations.
	Record struct {
		Name    string
		Comment string
		Seq     string
		Qual    string
	}

	// Reader streams records from an underlying reader.
	Reader struct {
		sc   *bufio.Scanner
		line int
	}

	// File is a Reader bound to an opened (possibly gzip-compressed) file.
	File struct {
		*Reader
		closers []io.Closer
	}
)

// maxLineBytes allows very long single-line sequences.
const maxLineBytes = 64 * 1024 * 1024

// NewReader wraps r in a FASTQ record reader.
func NewReader(r io.Reader) *Reader {
	sc := bufio.NewScanner(r)
	buf := make([]byte, 64*1024)
	sc.Buffer(buf, maxLineBytes)
	return &Reader{sc: sc}
}

// Read returns the next record, or io.EOF when the input is exhausted.
func (r *Reader) Read() (*Record, error) {
	header, err := r.nextLine()
	if err != nil {
		return nil, err
	}
	if !strings.HasPrefix(header, "@") {
		return nil, fmt.Errorf("line %d: header %q does not start with '@': %w", r.line, header, ErrMalformedRecord)
	}
	seq, err := r.requireLine("sequence")
	if err != nil {
		return nil, err
	}
	sep, err := r.requireLine("separator")
	if err != nil {
		return nil, err
	}
	if !strings.HasPrefix(sep, "+") {
		return nil, fmt.Errorf("line %d: separator %q does not start with '+': %w", r.line, sep, ErrMalformedRecord)
	}
	qual, err := r.requireLine("quality")
	if err != nil {
		return nil, err
	}

	name, comment := splitHeader(header[1:])
	return &Record{Name: name, Comment: comment, Seq: seq, Qual: qual}, nil
}

// nextLine returns the next non-empty line or io.EOF.
func (r *Reader) nextLine() (string, error) {
	for r.sc.Scan() {
		r.line++
		line := r.sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		return line, nil
	}
	if err := r.sc.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

// requireLine is nextLine but treats EOF mid-record as a format error.
func (r *Reader) requireLine(what string) (string, error) {
	line, err := r.nextLine()
	if errors.Is(err, io.EOF) {
		return "", fmt.Errorf("line %d: truncated record, missing %s line: %w", r.line, what, ErrMalformedRecord)
	}
	return line, err
}

// splitHeader separates the record name from the trailing comment.
func splitHeader(header string) (name, comment string) {
	if i := strings.IndexAny(header, " \t"); i >= 0 {
		return header[:i], strings.TrimSpace(header[i+1:])
	}
	return header, ""
}

// Open opens path for reading, transparently decompressing gzip input.
// Compression is detected by the gzip magic bytes rather than the file
// extension, so mislabeled files still read correctly.
func Open(path string) (*File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	var sig [2]byte
	n, _ := io.ReadFull(fh, sig[:])
	if _, err := fh.Seek(0, io.SeekStart); err != nil {
		fh.Close()
		return nil, err
	}
	if n == 2 && sig[0] == 0x1f && sig[1] == 0x8b {
		gr, err := gzip.NewReader(fh)
		if err != nil {
			fh.Close()
			return nil, fmt.Errorf("open %s: %w", path, err)
		}
		return &File{Reader: NewReader(gr), closers: []io.Closer{gr, fh}}, nil
	}
	return &File{Reader: NewReader(fh), closers: []io.Closer{fh}}, nil
}

// Close closes the underlying file (and decompressor, if any).
func (f *File) Close() error {
	var err error
	for _, c := range f.closers {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}
