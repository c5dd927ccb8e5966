package catalog

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/vietddude/enricher/internal/core/domain"
)

func writeInputWorkbook(t *testing.T, path string, header []string, rows [][]interface{}) {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	h := make([]interface{}, len(header))
	for i, v := range header {
		h[i] = v
	}
	if err := f.SetSheetRow("Sheet1", "A1", &h); err != nil {
		t.Fatalf("SetSheetRow failed: %v", err)
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatalf("SetSheetRow failed: %v", err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("SaveAs failed: %v", err)
	}
}

func TestReadInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.xlsx")
	writeInputWorkbook(t, path,
		[]string{"Chemical Name", "CAS No", "Supplier"},
		[][]interface{}{
			{"Benzene", " 71-43-2 ", "A"},
			{"No CAS row", "", "B"},
			{"Pyridine", "110-86-1", "C"},
		})

	entries, err := NewXLSX("Sheet1").ReadInput(path)
	if err != nil {
		t.Fatalf("ReadInput failed: %v", err)
	}

	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries after dropping blank CAS, got %d", len(entries))
	}
	if entries[0].CAS != "71-43-2" {
		t.Errorf("Expected trimmed CAS, got %q", entries[0].CAS)
	}
	if entries[0].Name != "Benzene" {
		t.Errorf("Expected name Benzene, got %q", entries[0].Name)
	}
	if entries[1].CAS != "110-86-1" {
		t.Errorf("Expected second CAS, got %q", entries[1].CAS)
	}
}

func TestReadInput_MissingCASColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.xlsx")
	writeInputWorkbook(t, path,
		[]string{"Chemical Name", "Supplier"},
		[][]interface{}{{"Benzene", "A"}})

	if _, err := NewXLSX("Sheet1").ReadInput(path); err == nil {
		t.Fatal("Expected error on missing CAS column")
	}
}

func TestOutputRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "output.xlsx")
	x := NewXLSX("Sheet1")

	records := []domain.Record{
		{
			ProductCode: "S1-0001", Name: "Benzene", CAS: "71-43-2",
			Synonyms: "Benzene", Formula: "C6H6", Weight: "78.11",
			Appearance: "Colorless liquid", Storage: domain.DefaultStorage,
			Shipping: domain.DefaultShipping, Applications: domain.DefaultApplications,
			Category: "Aromatic",
		},
		{
			ProductCode: "S1-0002", Name: "Pyridine", CAS: "110-86-1",
			Category: "Heterocyclic",
		},
	}

	if err := x.WriteOutput(path, records); err != nil {
		t.Fatalf("WriteOutput failed: %v", err)
	}

	got, err := x.ReadOutput(path)
	if err != nil {
		t.Fatalf("ReadOutput failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(got))
	}
	if got[0] != records[0] {
		t.Errorf("First record mismatch:\n got %+v\nwant %+v", got[0], records[0])
	}
	if got[1].ProductCode != "S1-0002" || got[1].Category != "Heterocyclic" {
		t.Errorf("Second record mismatch: %+v", got[1])
	}
}

func TestOutputRewriteReplaces(t *testing.T) {
	path := filepath.Join(t.TempDir(), "output.xlsx")
	x := NewXLSX("Sheet1")

	if err := x.WriteOutput(path, []domain.Record{{ProductCode: "S1-0001"}, {ProductCode: "S1-0002"}}); err != nil {
		t.Fatalf("WriteOutput failed: %v", err)
	}
	if err := x.WriteOutput(path, []domain.Record{{ProductCode: "S1-0001"}}); err != nil {
		t.Fatalf("WriteOutput failed: %v", err)
	}

	got, err := x.ReadOutput(path)
	if err != nil {
		t.Fatalf("ReadOutput failed: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("Expected full rewrite to leave 1 record, got %d", len(got))
	}
}

func TestReadOutput_MissingFile(t *testing.T) {
	got, err := NewXLSX("Sheet1").ReadOutput(filepath.Join(t.TempDir(), "missing.xlsx"))
	if err != nil {
		t.Fatalf("Expected no error for missing artifact, got %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Expected no records, got %d", len(got))
	}
}
