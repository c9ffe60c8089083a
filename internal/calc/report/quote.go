package report

import (
	"bytes"
	"fmt"
	"image"
	_ "image/png"
	"io"
	"strings"

	"Ironforge/internal/calc/gate"
	"Ironforge/internal/calc/window"
	"Ironforge/internal/catalog"
	"Ironforge/internal/quote"

	"github.com/phpdave11/gofpdf"
)

const (
	margin  = 10.0
	lineH   = 5.0
	bodyTop = 35.0
)

type rgb struct{ r, g, b int }

var (
	primary   = rgb{30, 41, 59}
	secondary = rgb{71, 85, 105}
	dark      = rgb{15, 23, 42}
	light     = rgb{248, 250, 252}
	stripe    = rgb{241, 245, 249}
)

func money(v float64) string { return fmt.Sprintf("Rs. %.2f", v) }

type doc struct {
	pdf   *gofpdf.Fpdf
	pageW float64
	pageH float64
	cat   *catalog.Catalog
}

func (d *doc) fill(c rgb) { d.pdf.SetFillColor(c.r, c.g, c.b) }
func (d *doc) text(c rgb) { d.pdf.SetTextColor(c.r, c.g, c.b) }
func (d *doc) stroke(c rgb) { d.pdf.SetDrawColor(c.r, c.g, c.b) }

// table draws rows of wrapped cells, starting a new page when a row would not
// fit.
type table struct {
	d      *doc
	x      float64
	widths []float64
	aligns []string
}

func (t table) header(cols []string, bg rgb) {
	pdf := t.d.pdf
	t.d.fill(bg)
	t.d.text(light)
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetX(t.x)
	for i, c := range cols {
		pdf.CellFormat(t.widths[i], 7, c, "", 0, t.aligns[i], true, 0, "")
	}
	pdf.Ln(-1)
}

func (t table) row(cells []string, shade bool, bold int) {
	pdf := t.d.pdf
	lines := 1
	for i, c := range cells {
		if n := len(pdf.SplitLines([]byte(c), t.widths[i]-2)); n > lines {
			lines = n
		}
	}
	h := float64(lines)*lineH + 2
	if pdf.GetY()+h > t.d.pageH-20 {
		pdf.AddPage()
	}
	y := pdf.GetY()
	x := t.x
	t.d.text(dark)
	for i, c := range cells {
		if shade {
			t.d.fill(stripe)
			pdf.Rect(x, y, t.widths[i], h, "F")
		}
		style := ""
		if i == bold {
			style = "B"
		}
		pdf.SetFont("Helvetica", style, 9)
		pdf.SetXY(x+1, y+1)
		pdf.MultiCell(t.widths[i]-2, lineH, c, "", t.aligns[i], false)
		x += t.widths[i]
	}
	pdf.SetXY(t.x, y+h)
}

// Quote writes the quotation PDF: letterhead, item and hardware tables,
// totals, bank details and terms, then one specification page per item.
func Quote(w io.Writer, q *quote.Quote, cat *catalog.Catalog) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pageW, pageH := pdf.GetPageSize()
	d := &doc{pdf: pdf, pageW: pageW, pageH: pageH, cat: cat}
	company := q.Details.Company

	pdf.SetMargins(margin, bodyTop, margin)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AliasNbPages("")
	pdf.SetHeaderFunc(func() {
		d.fill(primary)
		pdf.Rect(0, 0, pageW, 28, "F")
		pdf.SetFont("Helvetica", "B", 22)
		d.text(light)
		pdf.SetXY(margin, 9)
		pdf.CellFormat(pageW-2*margin, 10, company.Name, "", 0, "C", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(209, 213, 219)
		pdf.SetXY(margin, 14)
		pdf.CellFormat(pageW-2*margin, 6, "QUOTATION", "", 0, "R", false, 0, "")
		pdf.SetY(bodyTop)
	})
	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont("Helvetica", "", 8)
		d.text(secondary)
		footer := fmt.Sprintf("Page %d of {nb} | %s | %s", pdf.PageNo(), company.Website, company.Email)
		pdf.CellFormat(0, 6, footer, "", 0, "C", false, 0, "")
	})

	pdf.AddPage()
	d.letterhead(q)
	d.items(q)
	d.hardware(q)
	d.totals(q)
	d.terms(q)
	for i, it := range q.Items {
		d.specPage(i, it)
	}

	if err := pdf.Error(); err != nil {
		return err
	}
	return pdf.Output(w)
}

func (d *doc) letterhead(q *quote.Quote) {
	pdf := d.pdf
	y := 40.0
	d.text(dark)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetXY(margin, y)
	pdf.Cell(60, 5, "BILLED TO")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(margin, y+5)
	pdf.MultiCell(90, 5, q.Details.Customer.Name+"\n"+q.Details.Customer.Address, "", "L", false)

	right := d.pageW/2 + 30
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetXY(right, y)
	pdf.Cell(30, 5, "QUOTATION #")
	pdf.SetXY(right, y+5)
	pdf.Cell(30, 5, "DATE")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(right, y)
	pdf.CellFormat(d.pageW-margin-right, 5, q.Number, "", 0, "R", false, 0, "")
	pdf.SetXY(right, y+5)
	pdf.CellFormat(d.pageW-margin-right, 5, q.Date.Format("2 January 2006"), "", 0, "R", false, 0, "")

	pdf.SetY(y + 20)
	if q.Details.Meta.Description != "" {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.Cell(0, 6, q.Details.Meta.Title)
		pdf.Ln(6)
		pdf.SetFont("Helvetica", "", 9)
		pdf.MultiCell(0, 5, q.Details.Meta.Description, "", "L", false)
		pdf.Ln(3)
	}
}

func (d *doc) items(q *quote.Quote) {
	t := table{d: d, x: margin, widths: []float64{10, 75, 15, 40, 50}, aligns: []string{"C", "L", "C", "R", "R"}}
	t.header([]string{"#", "ITEM DESCRIPTION", "QTY", "RATE", "AMOUNT"}, primary)
	for i, it := range q.Items {
		desc := fmt.Sprintf("%s\n(Size: %s)", it.Description, it.Size())
		rate := fmt.Sprintf("%s / %s", money(it.Rate), it.RateUnit)
		if it.ProductType == quote.Window && it.GrillCalculations != nil {
			desc += "\n+ Iron Security Grill"
			rate += fmt.Sprintf(" (Window)\n%s / %s (Grill)", money(it.GrillRate), it.GrillRateUnit)
		}
		t.row([]string{fmt.Sprint(i + 1), desc, fmt.Sprint(it.Quantity), rate, money(it.StructureCost)}, i%2 == 1, 4)
	}
}

func (d *doc) hardware(q *quote.Quote) {
	if len(q.Hardware) == 0 {
		return
	}
	d.pdf.Ln(5)
	t := table{d: d, x: margin, widths: []float64{75, 15, 20, 35, 45}, aligns: []string{"L", "C", "C", "R", "R"}}
	t.header([]string{"HARDWARE & ACCESSORIES", "QTY", "UNIT", "RATE", "AMOUNT"}, secondary)
	for i, h := range q.Hardware {
		t.row([]string{h.Name, fmt.Sprintf("%g", h.Quantity), h.Unit, money(h.Rate), money(h.Amount())}, i%2 == 1, 4)
	}
}

func (d *doc) totals(q *quote.Quote) {
	pdf := d.pdf
	tot := q.Totals()
	if pdf.GetY()+50 > d.pageH-20 {
		pdf.AddPage()
	}
	pdf.Ln(8)
	x := d.pageW / 2
	w := d.pageW - margin - x
	d.text(dark)
	pdf.SetFont("Helvetica", "", 10)
	for _, line := range [][2]string{
		{"Structure Subtotal", money(tot.Structure)},
		{"Hardware Subtotal", money(tot.Hardware)},
		{"Installation Charges", money(tot.Installation)},
	} {
		pdf.SetX(x)
		pdf.CellFormat(w/2, 6, line[0], "", 0, "R", false, 0, "")
		pdf.CellFormat(w/2, 6, line[1], "", 1, "R", false, 0, "")
	}
	y := pdf.GetY()
	d.stroke(secondary)
	pdf.Line(x, y+1, d.pageW-margin, y+1)

	d.fill(primary)
	pdf.Rect(x, y+3, w, 12, "F")
	d.text(light)
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(x+5, y+3)
	pdf.CellFormat(w/2, 12, "GRAND TOTAL", "", 0, "L", false, 0, "")
	pdf.CellFormat(w/2-5, 12, money(tot.Grand), "", 1, "R", false, 0, "")
	pdf.SetY(y + 20)
}

func (d *doc) terms(q *quote.Quote) {
	bank := q.Details.Company.Bank
	bankText := fmt.Sprintf("Bank: %s, %s\nA/C Name: %s\nA/C No: %s\nIFSC: %s", bank.Bank, bank.Branch, bank.Name, bank.Account, bank.IFSC)
	if gst := q.Details.Company.GST; gst != "" {
		bankText += "\nGSTIN: " + gst
	}

	full := d.pageW - 2*margin
	t := table{d: d, x: margin, widths: []float64{full * 0.45, full * 0.55}, aligns: []string{"L", "L"}}
	t.row([]string{"BANK DETAILS", "TERMS & CONDITIONS"}, false, -1)
	t.row([]string{bankText, q.Details.Meta.Terms}, false, -1)
}

func (d *doc) profileName(id string) string {
	if p, ok := d.cat.Gate(id); ok {
		return p.Name
	}
	return "N/A"
}

func (d *doc) windowProfileName(id string) string {
	if p, ok := d.cat.Window(id); ok {
		return p.Name
	}
	return "N/A"
}

// preview places the item thumbnail and returns the height used. Previews that do
// not decode are left out.
func (d *doc) preview(i int, png []byte, x, maxW, maxH float64) float64 {
	if len(png) == 0 {
		return 0
	}
	if _, _, err := image.DecodeConfig(bytes.NewReader(png)); err != nil {
		return 0
	}
	name := fmt.Sprintf("item-%d", i)
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	info := d.pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(png))
	if info == nil || info.Width() == 0 {
		return 0
	}
	ratio := info.Height() / info.Width()
	w, h := maxW, maxW*ratio
	if h > maxH {
		h = maxH
		w = h / ratio
	}
	d.pdf.ImageOptions(name, x, d.pdf.GetY(), w, h, false, opts, 0, "")
	return h
}

func (d *doc) specTable(head [2]string, rows [][2]string, x float64, bg rgb) {
	t := table{d: d, x: x, widths: []float64{60, d.pageW - margin - x - 60}, aligns: []string{"L", "L"}}
	t.header(head[:], bg)
	for i, r := range rows {
		t.row(r[:], i%2 == 1, 0)
	}
	d.pdf.Ln(6)
}

func (d *doc) specPage(i int, it quote.Item) {
	pdf := d.pdf
	pdf.AddPage()
	d.text(dark)
	pdf.SetFont("Helvetica", "B", 14)
	title := strings.TrimSuffix(it.Description, " with Security Grill")
	pdf.MultiCell(0, 7, fmt.Sprintf("SPECIFICATION SHEET - ITEM #%d: %s", i+1, title), "", "L", false)
	pdf.Ln(3)

	switch it.ProductType {
	case quote.Gate:
		if it.Gate == nil {
			return
		}
		h := d.preview(i, it.Preview, margin, d.pageW-2*margin, 100)
		pdf.SetY(pdf.GetY() + h + 6)
		d.gateSpec(it.Gate, it)
	case quote.Window:
		if it.Window == nil {
			return
		}
		top := pdf.GetY()
		h := d.preview(i, it.Preview, margin, 80, 60)
		pdf.SetY(top)
		d.windowSpec(it.Window, it)
		if y := top + h + 6; pdf.GetY() < y {
			pdf.SetY(y)
		}
		d.panels(it.Window)
		d.grill(it)
	}
}

func (d *doc) gateSpec(cfg *gate.Config, it quote.Item) {
	rows := [][2]string{
		{"Overall Size (WxH)", it.Size()},
		{"Gate Type", string(cfg.GateType)},
		{"Frame Profile", d.profileName(cfg.FrameProfileID)},
		{"Frame Color", cfg.FrameColor},
		{"Estimated Area", fmt.Sprintf("%.2f sq ft", it.Calculations.AreaSqFt)},
		{"Estimated Weight", fmt.Sprintf("%.2f kg", it.Calculations.TotalWeightKg)},
	}
	if cfg.GateType == gate.SlidingOpenable {
		rows = append(rows, [2]string{"Left Door Width", fmt.Sprintf("%g %s", cfg.LeftWidth(), cfg.Unit)})
	}
	d.specTable([2]string{"Specification", "Details"}, rows, margin, primary)

	d.sequence("Inner Design", cfg.LeftDoorDesign, cfg)
	if cfg.GateType == gate.SlidingOpenable && cfg.RightDoorDesign != nil {
		d.sequence("Right Door Design", *cfg.RightDoorDesign, cfg)
	}
}

func (d *doc) sequence(label string, design gate.DoorDesign, cfg *gate.Config) {
	if len(design.Sequence) == 0 {
		return
	}
	t := table{d: d, x: margin, widths: []float64{60, 80, 50}, aligns: []string{"L", "L", "R"}}
	t.header([]string{label, "Profile", "Gap After"}, primary)
	t.row([]string{string(design.InnerDesign), "", ""}, false, 0)
	for i, s := range design.Sequence {
		t.row([]string{fmt.Sprintf("Step %d", i+1), d.profileName(s.ProfileID), fmt.Sprintf("%g %s", s.Gap, cfg.Unit)}, i%2 == 0, 0)
	}
	d.pdf.Ln(6)
}

func (d *doc) windowSpec(cfg *window.Config, it quote.Item) {
	rows := [][2]string{
		{"Overall Size (WxH)", it.Size()},
		{"Grid Layout", fmt.Sprintf("%d Rows x %d Cols", len(cfg.RowSizes), len(cfg.ColSizes))},
		{"Color/Finish", cfg.Color},
		{"Glass Thickness", fmt.Sprintf("%g mm", cfg.GlassThicknessMm)},
		{"Outer Frame", d.windowProfileName(cfg.FrameProfiles.OuterFrame)},
		{"Est. Aluminium Weight", fmt.Sprintf("%.2f kg", it.Calculations.TotalWeightKg)},
		{"Est. Area", fmt.Sprintf("%.2f sq ft", it.Calculations.AreaSqFt)},
	}
	x := margin
	if len(it.Preview) > 0 {
		x = 100
	}
	d.specTable([2]string{"Specification", "Details"}, rows, x, primary)
}

func (d *doc) panels(cfg *window.Config) {
	t := table{d: d, x: margin, widths: []float64{60, 60, 70}, aligns: []string{"L", "L", "L"}}
	t.header([]string{"Panel ID", "Type", "Insect Mesh"}, secondary)
	n := 0
	for r := range cfg.RowSizes {
		for c := range cfg.ColSizes {
			cell := cfg.Cell(r, c)
			mesh := "No"
			if cell.HasMesh {
				mesh = "Yes"
			}
			t.row([]string{fmt.Sprintf("Panel (%s)", cell.ID), string(cell.Type), mesh}, n%2 == 1, -1)
			n++
		}
	}
	d.pdf.Ln(6)
}

func (d *doc) grill(it quote.Item) {
	cfg := it.Window.GrillConfig
	if cfg == nil || it.GrillCalculations == nil {
		return
	}
	pdf := d.pdf
	pdf.SetFont("Helvetica", "B", 12)
	d.text(dark)
	pdf.Cell(0, 6, "Attached Iron Security Grill Details")
	pdf.Ln(7)

	inner := "N/A"
	if len(cfg.LeftDoorDesign.Sequence) > 0 {
		inner = d.profileName(cfg.LeftDoorDesign.Sequence[0].ProfileID)
	}
	rows := [][2]string{
		{"Grill Frame Profile", d.profileName(cfg.FrameProfileID)},
		{"Grill Inner Design", string(cfg.LeftDoorDesign.InnerDesign)},
		{"Grill Inner Profile", inner},
		{"Est. Grill Weight", fmt.Sprintf("%.2f kg", it.GrillCalculations.TotalWeightKg)},
	}
	d.specTable([2]string{"Grill Specification", "Details"}, rows, margin, primary)
}
