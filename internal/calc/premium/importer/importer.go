package importer

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"Ironforge/internal/calc/gate"
	"Ironforge/internal/calc/premium/batch"
	"Ironforge/internal/calc/units"
	"Ironforge/internal/quote"

	"github.com/xuri/excelize/v2"
)

// Columns is the expected header row of a gate sheet.
var Columns = []string{"description", "width", "height", "unit", "gate_type", "frame", "inner_design", "bar_profile", "gap", "quantity"}

type Skipped struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

// Sheet is what a workbook yields: batch entries for the good rows and a reason
// for every row left out. Row numbers are as shown in the spreadsheet.
type Sheet struct {
	Entries []batch.Entry `json:"entries"`
	Skipped []Skipped     `json:"skipped"`
}

// Read parses the first sheet. Only the first four columns are required;
// the rest fall back to the default gate.
func Read(r io.Reader) (Sheet, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return Sheet{}, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return Sheet{}, err
	}
	if len(rows) < 2 {
		return Sheet{}, fmt.Errorf("sheet has no data rows")
	}

	var out Sheet
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if blank(row) {
			continue
		}
		entry, err := parseGateRow(row)
		if err != nil {
			out.Skipped = append(out.Skipped, Skipped{Row: i + 1, Reason: err.Error()})
			continue
		}
		out.Entries = append(out.Entries, entry)
	}
	return out, nil
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func cell(row []string, i int) string {
	if i < len(row) {
		return strings.TrimSpace(row[i])
	}
	return ""
}

func parseGateRow(row []string) (batch.Entry, error) {
	if len(row) < 4 {
		return batch.Entry{}, fmt.Errorf("expected at least %d columns", 4)
	}
	cfg := gate.Default()
	cfg.RightDoorDesign = nil
	cfg.LeftDoorWidth = nil

	var err error
	if cfg.Width, err = toFloat(cell(row, 1)); err != nil {
		return batch.Entry{}, fmt.Errorf("width: %w", err)
	}
	if cfg.Height, err = toFloat(cell(row, 2)); err != nil {
		return batch.Entry{}, fmt.Errorf("height: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return batch.Entry{}, fmt.Errorf("size must be positive")
	}
	cfg.Unit = units.Unit(strings.ToLower(cell(row, 3)))
	if v := cell(row, 4); v != "" {
		cfg.GateType = gate.GateType(strings.ToLower(v))
	}
	if v := cell(row, 5); v != "" {
		cfg.FrameProfileID = v
	}
	if v := cell(row, 6); v != "" {
		cfg.LeftDoorDesign.InnerDesign = gate.InnerDesign(strings.ToLower(v))
	}

	step := cfg.LeftDoorDesign.Sequence[0]
	if v := cell(row, 7); v != "" {
		step.ProfileID = v
	}
	if v := cell(row, 8); v != "" {
		if step.Gap, err = toFloat(v); err != nil {
			return batch.Entry{}, fmt.Errorf("gap: %w", err)
		}
	} else if step.Gap, err = units.FromMm(step.Gap, cfg.Unit); err != nil {
		return batch.Entry{}, err
	}
	cfg.LeftDoorDesign.Sequence = []gate.Step{step}

	qty := 1
	if v := cell(row, 9); v != "" {
		if qty, err = strconv.Atoi(v); err != nil || qty < 1 {
			return batch.Entry{}, fmt.Errorf("quantity %q", v)
		}
	}
	if err := cfg.Validate(); err != nil {
		return batch.Entry{}, err
	}
	return batch.Entry{
		Label:       cell(row, 0),
		ProductType: quote.Gate,
		Gate:        &cfg,
		Quantity:    qty,
	}, nil
}

func toFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
}
