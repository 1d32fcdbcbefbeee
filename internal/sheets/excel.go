// Package sheets converts the expense list to and from xlsx workbooks.
package sheets

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"resto/internal/core"
)

// SheetName is the worksheet holding the expense table.
const SheetName = "Expenses"

var columns = []string{"SN", "Date", "Vendor", "Product", "Unit", "Rate", "Quantity", "Total"}

// ExportFilename returns the dated download name for an export taken now.
func ExportFilename(now time.Time) string {
	return fmt.Sprintf("restaurant_expenses_%s.xlsx", now.Format(core.DateLayout))
}

// WriteWorkbook renders the records as a single-sheet workbook with a fixed
// header row. The caller owns closing the returned file.
func WriteWorkbook(records []core.Expense) (*excelize.File, error) {
	f := excelize.NewFile()

	index, err := f.NewSheet(SheetName)
	if err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("remove default sheet: %w", err)
	}

	header := make([]any, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	if err := setRow(f, 1, header); err != nil {
		return nil, err
	}

	for i, e := range records {
		row := []any{e.SN, e.Date, e.Vendor, e.Product, e.Unit, e.Rate, e.Quantity, e.Total}
		if err := setRow(f, i+2, row); err != nil {
			return nil, err
		}
	}

	return f, nil
}

func setRow(f *excelize.File, rowNum int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return fmt.Errorf("row %d cell name: %w", rowNum, err)
	}
	if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
		return fmt.Errorf("write row %d: %w", rowNum, err)
	}
	return nil
}

// ReadWorkbook parses the first sheet of an uploaded workbook into expense
// records. Columns are matched by header name, so column order in the file
// does not matter. Parsing is lenient: a missing date becomes
// today, unparsable numbers become zero, and a zero or absent total is
// recomputed as rate times quantity. A total the file does carry is kept
// verbatim even when it disagrees with rate times quantity.
func ReadWorkbook(r io.Reader) ([]core.Expense, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
	}
	if len(rows) == 0 {
		return []core.Expense{}, nil
	}

	col := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}

	today := core.Day(time.Now())
	records := make([]core.Expense, 0, len(rows)-1)
	for _, row := range rows[1:] {
		get := func(name string) string {
			i, ok := col[name]
			if !ok || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}

		date := get("date")
		if date == "" {
			date = today
		}
		rate := parseNumber(get("rate"))
		quantity := parseNumber(get("quantity"))
		total := parseNumber(get("total"))
		if total == 0 {
			total = rate * quantity
		}

		records = append(records, core.Expense{
			Date:     date,
			Vendor:   get("vendor"),
			Product:  get("product"),
			Unit:     get("unit"),
			Rate:     rate,
			Quantity: quantity,
			Total:    total,
		})
	}

	return records, nil
}

func parseNumber(s string) float64 {
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
