package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/vietddude/enricher/internal/core/domain"
)

// XLSX implements Catalog over Excel workbooks.
type XLSX struct {
	sheet string
}

// NewXLSX creates a spreadsheet catalog over the given sheet name.
func NewXLSX(sheet string) *XLSX {
	if sheet == "" {
		sheet = "Sheet1"
	}
	return &XLSX{sheet: sheet}
}

// ReadInput loads catalogue entries from the input workbook.
func (x *XLSX) ReadInput(path string) ([]domain.CatalogEntry, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input catalogue: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(x.sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", x.sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("input catalogue is empty")
	}

	casCol, nameCol := -1, -1
	for i, header := range rows[0] {
		switch strings.TrimSpace(header) {
		case ColCAS:
			casCol = i
		case ColName:
			nameCol = i
		}
	}
	if casCol < 0 {
		return nil, fmt.Errorf("input catalogue is missing the %q column", ColCAS)
	}

	var entries []domain.CatalogEntry
	for _, row := range rows[1:] {
		cas := cellAt(row, casCol)
		if cas == "" {
			continue
		}
		entries = append(entries, domain.CatalogEntry{
			CAS:  cas,
			Name: cellAt(row, nameCol),
		})
	}
	return entries, nil
}

// ReadOutput loads rows from a prior output artifact.
func (x *XLSX) ReadOutput(path string) ([]domain.Record, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open output artifact: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(x.sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", x.sheet, err)
	}
	if len(rows) <= 1 {
		return nil, nil
	}

	records := make([]domain.Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		records = append(records, domain.Record{
			ProductCode:  cellAt(row, 0),
			Name:         cellAt(row, 1),
			CAS:          cellAt(row, 2),
			Synonyms:     cellAt(row, 3),
			Formula:      cellAt(row, 4),
			Weight:       cellAt(row, 5),
			Appearance:   cellAt(row, 6),
			Storage:      cellAt(row, 7),
			Shipping:     cellAt(row, 8),
			Applications: cellAt(row, 9),
			Category:     cellAt(row, 10),
		})
	}
	return records, nil
}

// WriteOutput rewrites the output artifact. The workbook is written to a
// temp file and renamed over the target so a crash mid-write never
// corrupts the previous artifact.
func (x *XLSX) WriteOutput(path string, records []domain.Record) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet != x.sheet {
		if err := f.SetSheetName(sheet, x.sheet); err != nil {
			return fmt.Errorf("failed to name sheet: %w", err)
		}
	}

	header := make([]interface{}, len(OutputHeader))
	for i, h := range OutputHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(x.sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, rec := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to address row %d: %w", i+2, err)
		}
		row := []interface{}{
			rec.ProductCode, rec.Name, rec.CAS, rec.Synonyms,
			rec.Formula, rec.Weight, rec.Appearance,
			rec.Storage, rec.Shipping, rec.Applications, rec.Category,
		}
		if err := f.SetSheetRow(x.sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".output-*.xlsx")
	if err != nil {
		return fmt.Errorf("failed to create temp output: %w", err)
	}
	tmpName := tmp.Name()
	tmp.Close()

	if err := f.SaveAs(tmpName); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to save output: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace output: %w", err)
	}
	return nil
}

func cellAt(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}
