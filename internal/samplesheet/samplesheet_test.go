// SPDX-License-Identifier: MPL-2.0

package samplesheet

import (
	"errors"
	"path/filepath"
	"testing"

	"seqingress/internal/testutil"
)

func writeSheet(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sample_sheet.csv")
	testutil.MustWriteFile(t, path, []byte(content))
	return path
}

func TestRead_PreservesRowOrder(t *testing.T) {
	path := writeSheet(t, "barcode,alias,condition\nbarcode03,sample_c,treated\nbarcode01,sample_a,control\n")

	sheet, err := Read(path)
	if err != nil {
		t.Fatalf("Read() returned error: %v", err)
	}

	if len(sheet.Rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(sheet.Rows))
	}
	if got := sheet.Rows[0].Barcode(); got != "barcode03" {
		t.Errorf("first row barcode = %q, want %q", got, "barcode03")
	}
	if got := sheet.Rows[1].Barcode(); got != "barcode01" {
		t.Errorf("second row barcode = %q, want %q", got, "barcode01")
	}
	if got := sheet.Rows[0]["condition"]; got != "treated" {
		t.Errorf("first row condition = %q, want %q", got, "treated")
	}
	// The barcode value stays available as an ordinary column.
	if got := sheet.Rows[0][BarcodeColumn]; got != "barcode03" {
		t.Errorf("first row [barcode] = %q, want %q", got, "barcode03")
	}
}

func TestRead_MissingBarcodeColumn(t *testing.T) {
	path := writeSheet(t, "alias,condition\nsample_a,control\n")

	_, err := Read(path)
	if !errors.Is(err, ErrNoBarcodeColumn) {
		t.Fatalf("Read() error = %v, want ErrNoBarcodeColumn", err)
	}

	var nbErr *NoBarcodeColumnError
	if !errors.As(err, &nbErr) {
		t.Fatal("error is not a *NoBarcodeColumnError")
	}
	if len(nbErr.Columns) != 2 {
		t.Errorf("reported columns = %v, want 2 entries", nbErr.Columns)
	}
}

func TestRead_EmptySheet(t *testing.T) {
	path := writeSheet(t, "")

	if _, err := Read(path); !errors.Is(err, ErrEmptySheet) {
		t.Errorf("Read() error = %v, want ErrEmptySheet", err)
	}
}

func TestRead_MissingFile(t *testing.T) {
	if _, err := Read(filepath.Join(t.TempDir(), "nope.csv")); err == nil {
		t.Error("Read() on missing file returned nil error")
	}
}

func TestRead_RaggedRow(t *testing.T) {
	path := writeSheet(t, "barcode,alias\nbarcode01,sample_a,extra\n")

	if _, err := Read(path); err == nil {
		t.Error("Read() on ragged row returned nil error")
	}
}
