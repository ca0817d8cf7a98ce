// SPDX-License-Identifier: MPL-2.0

package xam

import (
	"errors"
	"io"
	"path/filepath"
	"testing"

	"seqingress/internal/testutil"
)

func TestOpen_ReadsRecordsAndFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aligned.bam")
	testutil.WriteBAM(t, path, testutil.BAMSpec{
		Refs:       []testutil.BAMRef{{Name: "chr1", Length: 1000}},
		GroupDescs: []string{"runid=runA basecall_model=model@v1"},
		Reads: []testutil.BAMRead{
			{Name: "r1", RunID: "runA"},
			{Name: "r2", Secondary: true},
			{Name: "r3", Supplementary: true},
			{Name: "r4", Unmapped: true},
		},
	})

	f, err := Open(path)
	if err != nil {
		t.Fatalf("Open() returned error: %v", err)
	}
	defer f.Close()

	var primary, unmapped int
	var runIDs []string
	for {
		rec, err := f.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatalf("Read() returned error: %v", err)
		}
		if IsUnmapped(rec) {
			unmapped++
		} else if IsPrimary(rec) {
			primary++
		}
		if id, ok := RunID(rec); ok {
			runIDs = append(runIDs, id)
		}
	}

	if primary != 1 {
		t.Errorf("primary count = %d, want 1", primary)
	}
	if unmapped != 1 {
		t.Errorf("unmapped count = %d, want 1", unmapped)
	}
	if len(runIDs) != 1 || runIDs[0] != "runA" {
		t.Errorf("run IDs = %v, want [runA]", runIDs)
	}
}

func TestRefLines(t *testing.T) {
	dir := t.TempDir()

	aligned := filepath.Join(dir, "aligned.bam")
	testutil.WriteBAM(t, aligned, testutil.BAMSpec{
		Refs:  []testutil.BAMRef{{Name: "chr1", Length: 1000}, {Name: "chr2", Length: 500}},
		Reads: []testutil.BAMRead{{Name: "r1"}},
	})
	unaligned := filepath.Join(dir, "unaligned.ubam")
	testutil.WriteBAM(t, unaligned, testutil.BAMSpec{
		Reads: []testutil.BAMRead{{Name: "r1"}},
	})

	fa, err := Open(aligned)
	if err != nil {
		t.Fatalf("Open(aligned) returned error: %v", err)
	}
	defer fa.Close()
	if got := RefLines(fa.Header()); len(got) != 2 {
		t.Errorf("aligned RefLines = %v, want 2 entries", got)
	}

	fu, err := Open(unaligned)
	if err != nil {
		t.Fatalf("Open(unaligned) returned error: %v", err)
	}
	defer fu.Close()
	if got := RefLines(fu.Header()); len(got) != 0 {
		t.Errorf("unaligned RefLines = %v, want empty", got)
	}
}

func TestGroupDescriptions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grouped.ubam")
	testutil.WriteBAM(t, path, testutil.BAMSpec{
		GroupDescs: []string{
			"runid=runA basecall_model=model@v1",
			"runid=runB",
		},
		Reads: []testutil.BAMRead{{Name: "r1", Unmapped: true}},
	})

	f, err := Open(path)
	if err != nil {
		t.Fatalf("Open() returned error: %v", err)
	}
	defer f.Close()

	descs, err := GroupDescriptions(f.Header())
	if err != nil {
		t.Fatalf("GroupDescriptions() returned error: %v", err)
	}
	want := []string{"runid=runA basecall_model=model@v1", "runid=runB"}
	if len(descs) != len(want) {
		t.Fatalf("got %d descriptions, want %d", len(descs), len(want))
	}
	for i := range want {
		if descs[i] != want[i] {
			t.Errorf("description %d = %q, want %q", i, descs[i], want[i])
		}
	}
}

func TestOpen_NotBAM(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bogus.bam")
	testutil.MustWriteFile(t, path, []byte("this is not a BAM file"))

	if _, err := Open(path); err == nil {
		t.Error("Open() on non-BAM content returned nil error")
	}
}
