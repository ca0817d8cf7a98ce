// SPDX-License-Identifier: MPL-2.0

package ingress

import (
	"maps"
	"slices"
	"strings"
)

// TypeTestSample is the default value of the metadata `type` field.
const TypeTestSample = "test_sample"

type (
	// GroupKey carries the chunk-grouping key emitted for FASTQ output.
	GroupKey struct {
		GroupSize   int    `json:"groupSize"`
		GroupTarget string `json:"groupTarget"`
	}

	// Meta is the normalized per-sample metadata record. Every recognized
	// field is enumerated here with its default; arbitrary sample-sheet
	// columns land in Extra. Nullable numerics are pointers so "no
	// statistics computed" is distinguishable from zero.
	Meta struct {
		// Alias identifies the sample. Required; embedded spaces are
		// normalized to underscores at build time.
		Alias string `json:"alias"`
		// Barcode is the sub-directory name for barcoded layouts; nil for
		// single-file and flat-directory inputs.
		Barcode *string `json:"barcode"`
		// Type defaults to TypeTestSample.
		Type string `json:"type"`
		// RunIDs is always a sorted list, canonicalized at build time.
		RunIDs []string `json:"run_ids"`

		// NSeqs is the record count for sequence-read input (and for
		// alignment input handled as FASTQ-like output).
		NSeqs *int `json:"n_seqs,omitempty"`
		// NPrimary counts primary alignments for alignment input.
		NPrimary *int `json:"n_primary,omitempty"`
		// NUnmapped counts unmapped records for alignment input.
		NUnmapped *int `json:"n_unmapped,omitempty"`

		// DSRunIDs and DSBasecallModels hold provenance collected from
		// read-group DS header fields of alignment input.
		DSRunIDs         []string `json:"ds_runids,omitempty"`
		DSBasecallModels []string `json:"ds_basecall_models,omitempty"`

		// IsUnaligned is set by the aggregator's alignment-status pass.
		IsUnaligned *bool `json:"is_unaligned,omitempty"`

		// NFastq, GroupKey, and GroupIndex are populated by AmendForOutput
		// for FASTQ output.
		NFastq     *int      `json:"n_fastq,omitempty"`
		GroupKey   *GroupKey `json:"group_key,omitempty"`
		GroupIndex []string  `json:"group_index,omitempty"`

		// Extra holds sample-sheet columns with no dedicated field.
		Extra map[string]string `json:"extra,omitempty"`
	}
)

// buildMeta constructs the metadata record for one resolved input unit.
// The count field set follows the input kind, except that bamHeadersInFastq
// signals the caller will treat alignment content as FASTQ-like output
// downstream, in which case n_seqs is populated instead of
// n_primary/n_unmapped.
func buildMeta(alias string, barcode string, res *ScanResult, kind Kind, bamHeadersInFastq bool) (*Meta, error) {
	m := &Meta{
		Alias:  alias,
		RunIDs: res.sortedRunIDs(),
	}
	if barcode != "" {
		m.Barcode = ptr(barcode)
	}

	if kind == KindFastq || bamHeadersInFastq {
		m.NSeqs = ptr(len(res.Names))
	} else {
		m.NPrimary = ptr(res.NPrimary)
		m.NUnmapped = ptr(res.NUnmapped)
	}
	if kind == KindBAM {
		m.DSRunIDs = res.sortedDSRunIDs()
		m.DSBasecallModels = res.sortedDSBasecallModels()
	}

	return finalize(m)
}

// finalize validates and normalizes a record: the alias is required and has
// embedded spaces replaced by underscores, defaults are applied, and run_ids
// is canonicalized to a sorted list even if supplied pre-sorted.
func finalize(m *Meta) (*Meta, error) {
	if m.Alias == "" {
		barcode := ""
		if m.Barcode != nil {
			barcode = *m.Barcode
		}
		return nil, &MissingAliasError{Barcode: barcode}
	}
	m.Alias = strings.ReplaceAll(m.Alias, " ", "_")
	if m.Type == "" {
		m.Type = TypeTestSample
	}
	if m.RunIDs == nil {
		m.RunIDs = []string{}
	}
	slices.Sort(m.RunIDs)
	return m, nil
}

// Merge overlays sheet-row fields onto base, the overlay winning on
// conflict, and revalidates the result. Neither input is mutated. Columns
// fixes the application order; recognized columns map onto their dedicated
// fields and everything else lands in Extra.
func Merge(base *Meta, columns []string, row map[string]string) (*Meta, error) {
	m := base.clone()
	for _, col := range columns {
		v, ok := row[col]
		if !ok {
			continue
		}
		switch col {
		case "alias":
			m.Alias = v
		case "barcode":
			m.Barcode = ptr(v)
		case "type":
			m.Type = v
		default:
			if m.Extra == nil {
				m.Extra = make(map[string]string)
			}
			m.Extra[col] = v
		}
	}
	return finalize(m)
}

// clone returns a deep copy suitable for independent mutation.
func (m *Meta) clone() *Meta {
	if m == nil {
		return &Meta{}
	}
	out := *m
	out.Barcode = clonePtr(m.Barcode)
	out.RunIDs = slices.Clone(m.RunIDs)
	out.NSeqs = clonePtr(m.NSeqs)
	out.NPrimary = clonePtr(m.NPrimary)
	out.NUnmapped = clonePtr(m.NUnmapped)
	out.DSRunIDs = slices.Clone(m.DSRunIDs)
	out.DSBasecallModels = slices.Clone(m.DSBasecallModels)
	out.IsUnaligned = clonePtr(m.IsUnaligned)
	out.NFastq = clonePtr(m.NFastq)
	if m.GroupKey != nil {
		gk := *m.GroupKey
		out.GroupKey = &gk
	}
	out.GroupIndex = slices.Clone(m.GroupIndex)
	out.Extra = maps.Clone(m.Extra)
	return &out
}

func ptr[T any](v T) *T {
	return &v
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
