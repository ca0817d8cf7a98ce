// SPDX-License-Identifier: MPL-2.0

package ingress

import (
	"fmt"
	"path/filepath"
)

// AmendForOutput adapts a metadata record to the *output* kind of a pipeline
// run. Discovery metadata does double duty for input and output files; this
// step adds the output-side fields and returns an amended copy, leaving meta
// untouched.
//
// For FASTQ output, the expected chunk count n_fastq is
// ceil(n_seqs/chunkSize) (1 when chunkSize is nil), with the grouping key
// and the ordered per-chunk labels "<alias>_<i>" derived from it. A
// non-positive chunkSize is a ChunkSizeError.
//
// Independently, a sample whose results directory has no run-id marker file
// (`<alias>/*stats*/run_ids`) had no statistics computed: its run_ids are
// cleared and the output kind's count fields are nulled.
func AmendForOutput(meta *Meta, outputKind Kind, chunkSize *int, resultsDir string) (*Meta, error) {
	if !outputKind.valid() {
		return nil, &UnsupportedKindError{Value: string(outputKind)}
	}
	if chunkSize != nil && *chunkSize <= 0 {
		return nil, &ChunkSizeError{Value: *chunkSize}
	}

	m := meta.clone()

	if outputKind == KindFastq {
		nFastq := 1
		if chunkSize != nil && m.NSeqs != nil {
			nFastq = (*m.NSeqs + *chunkSize - 1) / *chunkSize
		}
		m.NFastq = ptr(nFastq)
		m.GroupKey = &GroupKey{GroupSize: nFastq, GroupTarget: m.Alias}
		m.GroupIndex = make([]string, 0, nFastq)
		for i := 0; i < nFastq; i++ {
			m.GroupIndex = append(m.GroupIndex, fmt.Sprintf("%s_%d", m.Alias, i))
		}
	}

	markers, err := filepath.Glob(filepath.Join(resultsDir, m.Alias, "*stats*", "run_ids"))
	if err != nil {
		return nil, fmt.Errorf("check run-id marker for %s: %w", m.Alias, err)
	}
	if len(markers) == 0 {
		m.RunIDs = []string{}
		switch outputKind {
		case KindFastq:
			m.NSeqs = nil
		case KindBAM:
			m.NPrimary = nil
			m.NUnmapped = nil
		}
	}

	return m, nil
}
