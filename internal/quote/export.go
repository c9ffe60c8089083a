package quote

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

var (
	itemHeaders     = []string{"#", "Description", "Size", "Qty", "Rate", "Rate Unit", "Grill Rate", "Grill Unit", "Weight (kg)", "Area (sq ft)", "Amount"}
	hardwareHeaders = []string{"Name", "Qty", "Unit", "Rate", "Amount"}
)

func writeHeader(f *excelize.File, sheet string, headers []string, style int) {
	for i, h := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := col + "1"
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, style)
	}
}

// Workbook lays the quote out on three sheets: Items, Hardware and Summary.
func Workbook(q *Quote) (*excelize.File, error) {
	f := excelize.NewFile()
	items := "Items"
	if err := f.SetSheetName("Sheet1", items); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet("Hardware"); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet("Summary"); err != nil {
		return nil, err
	}

	bold, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true, Size: 11},
		Fill:   excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{{Type: "bottom", Color: "000000", Style: 1}},
	})
	if err != nil {
		return nil, err
	}

	writeHeader(f, items, itemHeaders, bold)
	for i, it := range q.Items {
		row := i + 2
		weight := it.Calculations.TotalWeightKg
		area := it.Calculations.AreaSqFt
		if g := it.GrillCalculations; g != nil {
			weight += g.TotalWeightKg
		}
		values := []interface{}{
			i + 1, it.Description, it.Size(), it.Quantity, it.Rate, string(it.RateUnit),
			it.GrillRate, string(it.GrillRateUnit), weight, area, it.StructureCost,
		}
		if err := f.SetSheetRow(items, fmt.Sprintf("A%d", row), &values); err != nil {
			return nil, err
		}
	}

	writeHeader(f, "Hardware", hardwareHeaders, bold)
	for i, h := range q.Hardware {
		values := []interface{}{h.Name, h.Quantity, h.Unit, h.Rate, h.Amount()}
		if err := f.SetSheetRow("Hardware", fmt.Sprintf("A%d", i+2), &values); err != nil {
			return nil, err
		}
	}

	t := q.Totals()
	summary := [][]interface{}{
		{"Quotation #", q.Number},
		{"Date", q.Date.Format("2006-01-02")},
		{"Customer", q.Details.Customer.Name},
		{"Structure Subtotal", t.Structure},
		{"Hardware Subtotal", t.Hardware},
		{"Installation Charges", t.Installation},
		{"Grand Total", t.Grand},
	}
	for i, values := range summary {
		if err := f.SetSheetRow("Summary", fmt.Sprintf("A%d", i+1), &values); err != nil {
			return nil, err
		}
	}
	last := fmt.Sprintf("A%d", len(summary))
	f.SetCellStyle("Summary", last, fmt.Sprintf("B%d", len(summary)), bold)

	widths := []float64{6, 40, 18, 6, 10, 10, 10, 10, 12, 12, 14}
	for i, w := range widths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(items, col, col, w)
	}
	f.SetColWidth("Hardware", "A", "A", 30)
	f.SetColWidth("Summary", "A", "A", 22)
	return f, nil
}

// WriteXLSX renders the workbook to w.
func WriteXLSX(w io.Writer, q *Quote) error {
	f, err := Workbook(q)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Write(w)
}
