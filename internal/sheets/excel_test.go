package sheets

import (
	"bytes"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"resto/internal/core"
)

func TestExportFilename(t *testing.T) {
	now := time.Date(2026, 8, 20, 15, 30, 0, 0, time.UTC)
	if got := ExportFilename(now); got != "restaurant_expenses_2026-08-20.xlsx" {
		t.Fatalf("ExportFilename = %q", got)
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	records := []core.Expense{
		{ID: "a", SN: 1, Date: "2026-08-18", Vendor: "Acme", Product: "Eggs", Unit: "dozen", Rate: 4.5, Quantity: 2, Total: 9},
		{ID: "b", SN: 2, Date: "2026-08-19", Vendor: "Bidfood", Product: "Milk", Unit: "L", Rate: 1.2, Quantity: 10, Total: 12},
	}

	f, err := WriteWorkbook(records)
	if err != nil {
		t.Fatalf("WriteWorkbook: %v", err)
	}
	defer f.Close()

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("write workbook: %v", err)
	}

	parsed, err := ReadWorkbook(&buf)
	if err != nil {
		t.Fatalf("ReadWorkbook: %v", err)
	}
	if len(parsed) != len(records) {
		t.Fatalf("parsed %d records, want %d", len(parsed), len(records))
	}
	for i, got := range parsed {
		want := records[i]
		if got.Date != want.Date || got.Vendor != want.Vendor || got.Product != want.Product || got.Unit != want.Unit {
			t.Fatalf("record %d = %+v, want fields of %+v", i, got, want)
		}
		if got.Rate != want.Rate || got.Quantity != want.Quantity || got.Total != want.Total {
			t.Fatalf("record %d numbers = %v/%v/%v, want %v/%v/%v",
				i, got.Rate, got.Quantity, got.Total, want.Rate, want.Quantity, want.Total)
		}
	}
}

func TestWriteWorkbook_SheetLayout(t *testing.T) {
	f, err := WriteWorkbook(nil)
	if err != nil {
		t.Fatalf("WriteWorkbook: %v", err)
	}
	defer f.Close()

	if f.GetSheetName(0) != SheetName {
		t.Fatalf("first sheet = %q, want %q", f.GetSheetName(0), SheetName)
	}

	rows, err := f.GetRows(SheetName)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("empty export has %d rows, want header only", len(rows))
	}
	want := []string{"SN", "Date", "Vendor", "Product", "Unit", "Rate", "Quantity", "Total"}
	for i, name := range want {
		if rows[0][i] != name {
			t.Fatalf("header[%d] = %q, want %q", i, rows[0][i], name)
		}
	}
}

// buildWorkbook assembles an xlsx in memory with an arbitrary header and rows.
func buildWorkbook(t *testing.T, header []string, rows [][]any) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	cells := make([]any, len(header))
	for i, h := range header {
		cells[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &cells); err != nil {
		t.Fatalf("set header: %v", err)
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("set row %d: %v", i, err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return &buf
}

func TestReadWorkbook_LenientParsing(t *testing.T) {
	header := []string{"Vendor", "Product", "Rate", "Quantity", "Total", "Date"}
	buf := buildWorkbook(t, header, [][]any{
		// Missing date, text rate: both fall back.
		{"Acme", "Eggs", "not-a-number", 3, "", ""},
		// Zero total recomputed from rate and quantity.
		{"Bidfood", "Milk", 2.0, 5, 0, "2026-08-01"},
		// Carried total kept even though it disagrees.
		{"Costco Wholesale", "Butter", 2.0, 2, 99.0, "2026-08-02"},
	})

	parsed, err := ReadWorkbook(buf)
	if err != nil {
		t.Fatalf("ReadWorkbook: %v", err)
	}
	if len(parsed) != 3 {
		t.Fatalf("parsed %d records, want 3", len(parsed))
	}

	today := core.Day(time.Now())
	if parsed[0].Date != today {
		t.Fatalf("missing date = %q, want today %q", parsed[0].Date, today)
	}
	if parsed[0].Rate != 0 || parsed[0].Total != 0 {
		t.Fatalf("unparsable numbers = %v/%v, want zeros", parsed[0].Rate, parsed[0].Total)
	}
	if parsed[1].Total != 10 {
		t.Fatalf("recomputed total = %v, want 10", parsed[1].Total)
	}
	if parsed[2].Total != 99 {
		t.Fatalf("carried total = %v, want 99", parsed[2].Total)
	}
}

func TestReadWorkbook_RejectsGarbage(t *testing.T) {
	if _, err := ReadWorkbook(bytes.NewReader([]byte("this is not a workbook"))); err == nil {
		t.Fatal("ReadWorkbook accepted garbage input")
	}
}
