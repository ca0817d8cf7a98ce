// SPDX-License-Identifier: MPL-2.0

package ingress

import (
	"errors"
	"slices"
	"testing"
)

func scanResultWithRunIDs(ids ...string) *ScanResult {
	res := &ScanResult{
		runIDs:           make(map[string]struct{}),
		dsRunIDs:         make(map[string]struct{}),
		dsBasecallModels: make(map[string]struct{}),
	}
	for _, id := range ids {
		res.runIDs[id] = struct{}{}
	}
	return res
}

func TestBuildMeta_Defaults(t *testing.T) {
	res := scanResultWithRunIDs("runB", "runA")
	res.Names = []string{"r1", "r2", "r2"}

	m, err := buildMeta("my sample", "", res, KindFastq, false)
	if err != nil {
		t.Fatalf("buildMeta() returned error: %v", err)
	}

	if m.Alias != "my_sample" {
		t.Errorf("Alias = %q, want %q (spaces normalized)", m.Alias, "my_sample")
	}
	if m.Barcode != nil {
		t.Errorf("Barcode = %v, want nil", *m.Barcode)
	}
	if m.Type != TypeTestSample {
		t.Errorf("Type = %q, want %q", m.Type, TypeTestSample)
	}
	if !slices.Equal(m.RunIDs, []string{"runA", "runB"}) {
		t.Errorf("RunIDs = %v, want sorted [runA runB]", m.RunIDs)
	}
	if m.NSeqs == nil || *m.NSeqs != 3 {
		t.Errorf("NSeqs = %v, want 3 (duplicates counted)", m.NSeqs)
	}
	if m.NPrimary != nil || m.NUnmapped != nil {
		t.Error("alignment counters should be unset for fastq input")
	}
}

func TestBuildMeta_MissingAlias(t *testing.T) {
	_, err := buildMeta("", "", scanResultWithRunIDs(), KindFastq, false)
	if !errors.Is(err, ErrMissingAlias) {
		t.Errorf("buildMeta() error = %v, want ErrMissingAlias", err)
	}
}

func TestBuildMeta_BAMCounters(t *testing.T) {
	res := scanResultWithRunIDs("runA")
	res.Names = []string{"r1", "r2", "r3"}
	res.NPrimary = 2
	res.NUnmapped = 1
	res.dsRunIDs["runA"] = struct{}{}
	res.dsBasecallModels["model@v1"] = struct{}{}

	m, err := buildMeta("barcode01", "barcode01", res, KindBAM, false)
	if err != nil {
		t.Fatalf("buildMeta() returned error: %v", err)
	}

	if m.Barcode == nil || *m.Barcode != "barcode01" {
		t.Errorf("Barcode = %v, want barcode01", m.Barcode)
	}
	if m.NSeqs != nil {
		t.Error("NSeqs should be unset for bam input")
	}
	if m.NPrimary == nil || *m.NPrimary != 2 {
		t.Errorf("NPrimary = %v, want 2", m.NPrimary)
	}
	if m.NUnmapped == nil || *m.NUnmapped != 1 {
		t.Errorf("NUnmapped = %v, want 1", m.NUnmapped)
	}
	if !slices.Equal(m.DSRunIDs, []string{"runA"}) {
		t.Errorf("DSRunIDs = %v, want [runA]", m.DSRunIDs)
	}
	if !slices.Equal(m.DSBasecallModels, []string{"model@v1"}) {
		t.Errorf("DSBasecallModels = %v, want [model@v1]", m.DSBasecallModels)
	}
}

func TestBuildMeta_BAMHeadersInFastqOverride(t *testing.T) {
	// When alignment content will be handled as FASTQ-like output, counts
	// are reported as n_seqs even for bam input.
	res := scanResultWithRunIDs()
	res.Names = []string{"r1", "r2"}
	res.NPrimary = 1
	res.NUnmapped = 1

	m, err := buildMeta("sample", "", res, KindBAM, true)
	if err != nil {
		t.Fatalf("buildMeta() returned error: %v", err)
	}
	if m.NSeqs == nil || *m.NSeqs != 2 {
		t.Errorf("NSeqs = %v, want 2", m.NSeqs)
	}
	if m.NPrimary != nil || m.NUnmapped != nil {
		t.Error("alignment counters should be unset when bamHeadersInFastq is set")
	}
	// DS provenance is still reported for bam input.
	if m.DSRunIDs == nil || m.DSBasecallModels == nil {
		t.Error("DS provenance lists should be present for bam input")
	}
}

func TestMerge_OverlayWins(t *testing.T) {
	base := &Meta{
		Alias:   "barcode01",
		Barcode: ptr("barcode01"),
		Type:    TypeTestSample,
		RunIDs:  []string{"runA"},
		NSeqs:   ptr(7),
	}
	columns := []string{"barcode", "alias", "condition"}
	row := map[string]string{"barcode": "barcode01", "alias": "patient zero", "condition": "control"}

	merged, err := Merge(base, columns, row)
	if err != nil {
		t.Fatalf("Merge() returned error: %v", err)
	}

	if merged.Alias != "patient_zero" {
		t.Errorf("Alias = %q, want %q", merged.Alias, "patient_zero")
	}
	if merged.Extra["condition"] != "control" {
		t.Errorf("Extra[condition] = %q, want %q", merged.Extra["condition"], "control")
	}
	if merged.NSeqs == nil || *merged.NSeqs != 7 {
		t.Errorf("NSeqs = %v, want 7 (retained from base)", merged.NSeqs)
	}

	// Merge is pure: base must not change.
	if base.Alias != "barcode01" {
		t.Errorf("base.Alias mutated to %q", base.Alias)
	}
	if base.Extra != nil {
		t.Errorf("base.Extra mutated to %v", base.Extra)
	}
}

func TestMerge_EmptySeedNeedsAlias(t *testing.T) {
	columns := []string{"barcode", "condition"}
	row := map[string]string{"barcode": "barcode09", "condition": "treated"}

	_, err := Merge(nil, columns, row)
	if !errors.Is(err, ErrMissingAlias) {
		t.Fatalf("Merge() error = %v, want ErrMissingAlias", err)
	}
	var maErr *MissingAliasError
	if !errors.As(err, &maErr) {
		t.Fatal("error is not a *MissingAliasError")
	}
	if maErr.Barcode != "barcode09" {
		t.Errorf("reported barcode = %q, want %q", maErr.Barcode, "barcode09")
	}
}

func TestMerge_EmptySeedWithAlias(t *testing.T) {
	columns := []string{"barcode", "alias"}
	row := map[string]string{"barcode": "barcode09", "alias": "ghost"}

	merged, err := Merge(nil, columns, row)
	if err != nil {
		t.Fatalf("Merge() returned error: %v", err)
	}
	if merged.Type != TypeTestSample {
		t.Errorf("Type = %q, want default %q", merged.Type, TypeTestSample)
	}
	if merged.RunIDs == nil || len(merged.RunIDs) != 0 {
		t.Errorf("RunIDs = %v, want empty list", merged.RunIDs)
	}
}
