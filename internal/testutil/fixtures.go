// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"compress/gzip"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/biogo/hts/bam"
	"github.com/biogo/hts/sam"
)

type (
	// FastqRead describes one FASTQ record for WriteFastq.
	FastqRead struct {
		Name    string
		Comment string
		Seq     string
	}

	// BAMRef describes one reference declaration for WriteBAM.
	BAMRef struct {
		Name   string
		Length int
	}

	// BAMRead describes one alignment record for WriteBAM. A read with no
	// flag set becomes a mapped primary alignment against the first
	// reference.
	BAMRead struct {
		Name          string
		RunID         string
		Unmapped      bool
		Secondary     bool
		Supplementary bool
	}

	// BAMSpec describes a BAM file fixture: reference declarations (empty
	// for a uBAM-style header), read-group DS description strings (one @RG
	// line each), and alignment records.
	BAMSpec struct {
		Refs       []BAMRef
		GroupDescs []string
		Reads      []BAMRead
	}
)

// FastqText renders reads as FASTQ text with dummy quality lines.
func FastqText(reads ...FastqRead) []byte {
	var sb strings.Builder
	for _, r := range reads {
		sb.WriteString("@" + r.Name)
		if r.Comment != "" {
			sb.WriteString(" " + r.Comment)
		}
		sb.WriteString("\n" + r.Seq + "\n+\n")
		sb.WriteString(strings.Repeat("#", len(r.Seq)) + "\n")
	}
	return []byte(sb.String())
}

// WriteFastq writes reads to path as plain FASTQ.
func WriteFastq(t testing.TB, path string, reads ...FastqRead) {
	t.Helper()
	MustWriteFile(t, path, FastqText(reads...))
}

// WriteFastqGz writes reads to path as gzip-compressed FASTQ.
func WriteFastqGz(t testing.TB, path string, reads ...FastqRead) {
	t.Helper()
	fh, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create %s: %v", path, err)
	}
	gw := gzip.NewWriter(fh)
	if _, err := gw.Write(FastqText(reads...)); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	MustClose(t, gw)
	MustClose(t, fh)
}

// WriteBAM writes a BAM file described by spec to path.
func WriteBAM(t testing.TB, path string, spec BAMSpec) {
	t.Helper()

	refs := make([]*sam.Reference, 0, len(spec.Refs))
	for _, r := range spec.Refs {
		ref, err := sam.NewReference(r.Name, "", "", r.Length, nil, nil)
		if err != nil {
			t.Fatalf("failed to build reference %s: %v", r.Name, err)
		}
		refs = append(refs, ref)
	}

	var text strings.Builder
	for i, ds := range spec.GroupDescs {
		fmt.Fprintf(&text, "@RG\tID:group_%d\tDS:%s\n", i, ds)
	}
	h, err := sam.NewHeader([]byte(text.String()), refs)
	if err != nil {
		t.Fatalf("failed to build header: %v", err)
	}

	fh, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create %s: %v", path, err)
	}
	bw, err := bam.NewWriter(fh, h, 1)
	if err != nil {
		t.Fatalf("failed to create BAM writer: %v", err)
	}

	for _, read := range spec.Reads {
		var aux []sam.Aux
		if read.RunID != "" {
			a, err := sam.NewAux(sam.NewTag("RD"), read.RunID)
			if err != nil {
				t.Fatalf("failed to build RD aux field: %v", err)
			}
			aux = append(aux, a)
		}

		seq := []byte("ACGT")
		qual := []byte{30, 30, 30, 30}

		var rec *sam.Record
		if read.Unmapped || len(refs) == 0 {
			rec, err = sam.NewRecord(read.Name, nil, nil, -1, -1, 0, 0xff, nil, seq, qual, aux)
			if err == nil {
				rec.Flags |= sam.Unmapped
			}
		} else {
			cigar := []sam.CigarOp{sam.NewCigarOp(sam.CigarMatch, len(seq))}
			rec, err = sam.NewRecord(read.Name, refs[0], nil, 0, -1, 0, 60, cigar, seq, qual, aux)
		}
		if err != nil {
			t.Fatalf("failed to build record %s: %v", read.Name, err)
		}
		if read.Secondary {
			rec.Flags |= sam.Secondary
		}
		if read.Supplementary {
			rec.Flags |= sam.Supplementary
		}
		if err := bw.Write(rec); err != nil {
			t.Fatalf("failed to write record %s: %v", read.Name, err)
		}
	}

	MustClose(t, bw)
	MustClose(t, fh)
}
