// SPDX-License-Identifier: MPL-2.0

// Package samplesheet reads the delimited per-barcode sample sheet that can
// accompany a discovery run. The sheet must carry a `barcode` column; every
// other column becomes a metadata overlay field. Row order is preserved so
// reconciliation can emit results in sheet order.
package samplesheet

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// BarcodeColumn is the mandatory column naming the barcode each row applies to.
const BarcodeColumn = "barcode"

var (
	// ErrNoBarcodeColumn is returned when the sheet header lacks a barcode column.
	ErrNoBarcodeColumn = errors.New("sample sheet has no barcode column")
	// ErrEmptySheet is returned when the sheet has no header row.
	ErrEmptySheet = errors.New("sample sheet is empty")
)

type (
	// Row is one sheet entry. The barcode value is retained as an ordinary
	// field under BarcodeColumn.
	Row map[string]string

	// Sheet is a parsed sample sheet. Rows appear in file order.
	Sheet struct {
		Columns []string
		Rows    []Row
	}

	// NoBarcodeColumnError reports a sheet whose header is missing the
	// barcode column. It wraps ErrNoBarcodeColumn for errors.Is().
	NoBarcodeColumnError struct {
		Path    string
		Columns []string
	}
)

// Error implements the error interface.
func (e *NoBarcodeColumnError) Error() string {
	return fmt.Sprintf("sample sheet %q has no %q column (found: %s)",
		e.Path, BarcodeColumn, strings.Join(e.Columns, ", "))
}

// Is reports whether target is ErrNoBarcodeColumn.
func (e *NoBarcodeColumnError) Is(target error) bool {
	return target == ErrNoBarcodeColumn
}

// Read parses the CSV sample sheet at path.
func Read(path string) (*Sheet, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()

	return parse(fh, path)
}

func parse(r io.Reader, path string) (*Sheet, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%s: %w", path, ErrEmptySheet)
	}
	if err != nil {
		return nil, fmt.Errorf("read sample sheet %s: %w", path, err)
	}

	columns := make([]string, len(header))
	hasBarcode := false
	for i, col := range header {
		columns[i] = strings.TrimSpace(col)
		if columns[i] == BarcodeColumn {
			hasBarcode = true
		}
	}
	if !hasBarcode {
		return nil, &NoBarcodeColumnError{Path: path, Columns: columns}
	}

	sheet := &Sheet{Columns: columns}
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read sample sheet %s: %w", path, err)
		}
		row := make(Row, len(columns))
		for i, col := range columns {
			row[col] = record[i]
		}
		sheet.Rows = append(sheet.Rows, row)
	}
	return sheet, nil
}

// Barcode returns the row's barcode value.
func (r Row) Barcode() string {
	return r[BarcodeColumn]
}
