// SPDX-License-Identifier: MPL-2.0

package ingress

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"seqingress/internal/fastq"
	"seqingress/internal/xam"
)

type (
	// ScanResult aggregates content-derived metadata across all files of one
	// input unit. Names keeps every record name in scan order (duplicates
	// included); the identifier sets stay unordered until a metadata record
	// is built from them, which canonicalizes them into sorted lists.
	ScanResult struct {
		// Names lists every record name encountered, in scan order.
		Names []string
		// NPrimary counts alignment records that are neither secondary nor
		// supplementary. BAM input only.
		NPrimary int
		// NUnmapped counts alignment records without a mapping position.
		// BAM input only.
		NUnmapped int

		runIDs           map[string]struct{}
		dsRunIDs         map[string]struct{}
		dsBasecallModels map[string]struct{}
	}
)

// TargetFiles returns every regular file directly inside dir whose name
// carries one of the kind's extensions. The scan is non-recursive and the
// order follows directory enumeration; callers must not rely on it beyond
// set membership.
func TargetFiles(dir string, kind Kind) ([]string, error) {
	if !kind.valid() {
		return nil, &UnsupportedKindError{Value: string(kind)}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if !kind.Matches(entry.Name()) {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		// Follow symlinks so linked-in run folders behave like real files.
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		files = append(files, path)
	}
	return files, nil
}

// Scan extracts content metadata from files of one kind, accumulating names,
// run identifiers, counters, and header provenance across the whole list.
// With bamHeadersInFastq set, FASTQ run identifiers are taken from the RD
// tag carried through by `samtools fastq -T "*"` instead of the usual
// `runid=` comment token.
//
// A file that cannot be opened or decoded as the declared kind fails the
// whole scan; malformed inputs are never skipped.
func Scan(files []string, kind Kind, bamHeadersInFastq bool) (*ScanResult, error) {
	if !kind.valid() {
		return nil, &UnsupportedKindError{Value: string(kind)}
	}

	res := &ScanResult{
		runIDs:           make(map[string]struct{}),
		dsRunIDs:         make(map[string]struct{}),
		dsBasecallModels: make(map[string]struct{}),
	}
	for _, file := range files {
		var err error
		switch kind {
		case KindFastq:
			err = res.scanFastq(file, bamHeadersInFastq)
		case KindBAM:
			err = res.scanBAM(file)
		}
		if err != nil {
			return nil, err
		}
	}
	return res, nil
}

func (s *ScanResult) scanFastq(path string, bamHeadersInFastq bool) error {
	f, err := fastq.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	runIDKey := "runid"
	if bamHeadersInFastq {
		runIDKey = "RD"
	}

	for {
		rec, err := f.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("scan %s: %w", path, err)
		}
		s.Names = append(s.Names, rec.Name)
		if id, ok := parseTokens(rec.Comment)[runIDKey]; ok {
			s.runIDs[id] = struct{}{}
		}
	}
}

func (s *ScanResult) scanBAM(path string) error {
	f, err := xam.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	descs, err := xam.GroupDescriptions(f.Header())
	if err != nil {
		return fmt.Errorf("scan %s: %w", path, err)
	}
	for _, desc := range descs {
		pairs := parseTokens(desc)
		if v, ok := pairs["runid"]; ok {
			s.dsRunIDs[v] = struct{}{}
		}
		if v, ok := pairs["basecall_model"]; ok {
			s.dsBasecallModels[v] = struct{}{}
		}
	}

	for {
		rec, err := f.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("scan %s: %w", path, err)
		}
		if xam.IsUnmapped(rec) {
			s.NUnmapped++
		} else if xam.IsPrimary(rec) {
			s.NPrimary++
		}
		s.Names = append(s.Names, rec.Name)
		if id, ok := xam.RunID(rec); ok {
			s.runIDs[id] = struct{}{}
		}
	}
}

// sortedRunIDs canonicalizes the accumulated run-identifier set.
func (s *ScanResult) sortedRunIDs() []string {
	return sortedKeys(s.runIDs)
}

func (s *ScanResult) sortedDSRunIDs() []string {
	return sortedKeys(s.dsRunIDs)
}

func (s *ScanResult) sortedDSBasecallModels() []string {
	return sortedKeys(s.dsBasecallModels)
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
