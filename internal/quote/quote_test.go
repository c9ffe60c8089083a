package quote

import (
	"errors"
	"math"
	"testing"

	calc "Ironforge/internal/calc"
	"Ironforge/internal/calc/gate"
	"Ironforge/internal/calc/window"
	"Ironforge/internal/catalog"
)

const eps = 1e-9

func ptr(v float64) *float64 { return &v }

func gateItem(t *testing.T, req AddRequest) Item {
	t.Helper()
	cfg := gate.Default()
	req.ProductType = Gate
	req.Gate = &cfg
	it, err := NewItem(req, catalog.Default())
	if err != nil {
		t.Fatal(err)
	}
	return it
}

func windowItem(t *testing.T, withGrill bool, req AddRequest) Item {
	t.Helper()
	cfg := window.Default()
	if withGrill {
		g := window.DefaultGrill(cfg)
		cfg.GrillConfig = &g
	}
	req.ProductType = Window
	req.Window = &cfg
	it, err := NewItem(req, catalog.Default())
	if err != nil {
		t.Fatal(err)
	}
	return it
}

func TestNewItemDefaults(t *testing.T) {
	g := gateItem(t, AddRequest{Quantity: 0})
	if g.Quantity != 1 || g.Rate != DefaultGateRate || g.RateUnit != calc.PerKg {
		t.Errorf("gate defaults: %+v", g)
	}
	if g.Description != "Custom Iron Gate" || g.ID == "" || g.Window != nil {
		t.Errorf("gate item: %+v", g)
	}
	want := g.Calculations.TotalWeightKg * DefaultGateRate
	if math.Abs(g.StructureCost-want) > eps {
		t.Errorf("gate cost expected %v, got %v", want, g.StructureCost)
	}

	w := windowItem(t, false, AddRequest{})
	if w.Rate != DefaultWindowRate || w.RateUnit != calc.PerSqFt || w.Description != "Aluminium Window" {
		t.Errorf("window defaults: %+v", w)
	}
	if w.GrillCalculations != nil || w.GrillRate != 0 {
		t.Error("no grill attached")
	}

	wg := windowItem(t, true, AddRequest{})
	if wg.Description != "Aluminium Window with Security Grill" || wg.GrillRate != DefaultGrillRate || wg.GrillRateUnit != calc.PerKg {
		t.Errorf("grill defaults: %+v", wg)
	}
}

func TestStructureCostWithGrill(t *testing.T) {
	it := windowItem(t, true, AddRequest{
		Quantity:      3,
		Rate:          ptr(500),
		RateUnit:      calc.PerSqM,
		GrillRate:     ptr(140),
		GrillRateUnit: calc.PerKg,
		Description:   "Bedroom window",
	})
	want := (it.Calculations.AreaSqM*500 + it.GrillCalculations.TotalWeightKg*140) * 3
	if math.Abs(it.StructureCost-want) > eps {
		t.Errorf("expected %v, got %v", want, it.StructureCost)
	}
	if it.Description != "Bedroom window" {
		t.Errorf("description overwritten: %q", it.Description)
	}
}

func TestExplicitZeroRate(t *testing.T) {
	it := gateItem(t, AddRequest{Rate: ptr(0)})
	if it.Rate != 0 || it.StructureCost != 0 {
		t.Errorf("zero rate should price at zero, got %+v", it)
	}
}

func TestSnapshot(t *testing.T) {
	cfg := gate.Default()
	it, err := NewItem(AddRequest{ProductType: Gate, Gate: &cfg}, catalog.Default())
	if err != nil {
		t.Fatal(err)
	}
	cfg.Width = 10
	cfg.LeftDoorDesign.Sequence[0].Gap = 1
	if it.Gate.Width == 10 || it.Gate.LeftDoorDesign.Sequence[0].Gap == 1 {
		t.Error("item must hold its own copy of the config")
	}
}

func TestNewItemErrors(t *testing.T) {
	cat := catalog.Default()
	cfg := gate.Default()

	wide := gate.Default()
	wide.GateType = gate.SlidingOpenable
	*wide.LeftDoorWidth = 4000

	overlap := gate.Default()
	overlap.LeftDoorDesign.Sequence[0].Gap = -19.9999

	mismatched := window.Default()
	mismatched.RowSizes = []float64{1, 1}

	badGrill := window.Default()
	grill := window.DefaultGrill(badGrill)
	grill.GateType = "rolling"
	badGrill.GrillConfig = &grill

	tests := []struct {
		name string
		req  AddRequest
	}{
		{"unknown product", AddRequest{ProductType: "door", Gate: &cfg}},
		{"gate without config", AddRequest{ProductType: Gate}},
		{"window without config", AddRequest{ProductType: Window, Gate: &cfg}},
		{"bad rate unit", AddRequest{ProductType: Gate, Gate: &cfg, RateUnit: "per-bar"}},
		{"left leaf wider than gate", AddRequest{ProductType: Gate, Gate: &wide}},
		{"negative gap", AddRequest{ProductType: Gate, Gate: &overlap}},
		{"grid rows mismatch", AddRequest{ProductType: Window, Window: &mismatched}},
		{"bad grill", AddRequest{ProductType: Window, Window: &badGrill}},
	}
	for _, tt := range tests {
		if _, err := NewItem(tt.req, cat); err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
	}
}

func TestNewItemRejectsLeafWidth(t *testing.T) {
	cfg := gate.Default()
	cfg.GateType = gate.SlidingOpenable
	*cfg.LeftDoorWidth = 4000
	_, err := NewItem(AddRequest{ProductType: Gate, Gate: &cfg}, catalog.Default())
	var cfgErr *calc.ConfigError
	if !errors.As(err, &cfgErr) || cfgErr.Field != "leftDoorWidth" {
		t.Errorf("expected leftDoorWidth ConfigError, got %v", err)
	}
}

func TestTotals(t *testing.T) {
	q := New()
	g := gateItem(t, AddRequest{Quantity: 2})
	w := windowItem(t, true, AddRequest{})
	q.Add(g)
	q.Add(w)
	q.SetHardware([]HardwareItem{
		{Name: "Tower bolt", Quantity: 4, Unit: "pcs", Rate: 85},
		{Name: "Padlock", Quantity: 1, Unit: "pcs", Rate: 450},
	})

	structure := g.StructureCost + w.StructureCost
	hardware := 4*85 + 450.0
	kg := 2*g.Calculations.TotalWeightKg + w.Calculations.TotalWeightKg + w.GrillCalculations.TotalWeightKg
	sqft := 2*g.Calculations.AreaSqFt + w.Calculations.AreaSqFt + w.GrillCalculations.AreaSqFt
	sqm := 2*g.Calculations.AreaSqM + w.Calculations.AreaSqM + w.GrillCalculations.AreaSqM

	tests := []struct {
		in   Installation
		want float64
	}{
		{Installation{Rate: 0, Unit: Lumpsum}, 0},
		{Installation{Rate: -5, Unit: InstallPerKg}, 0},
		{Installation{Rate: 2500, Unit: Lumpsum}, 2500},
		{Installation{Rate: 12, Unit: InstallPerKg}, 12 * kg},
		{Installation{Rate: 30, Unit: InstallPerSqFt}, 30 * sqft},
		{Installation{Rate: 400, Unit: InstallPerSqM}, 400 * sqm},
	}
	for _, tt := range tests {
		if err := q.SetInstallation(tt.in); err != nil {
			t.Fatal(err)
		}
		got := q.Totals()
		if math.Abs(got.Installation-tt.want) > 1e-6 {
			t.Errorf("%+v: installation expected %v, got %v", tt.in, tt.want, got.Installation)
		}
		if math.Abs(got.Structure-structure) > eps || got.Hardware != hardware {
			t.Errorf("subtotals: %+v", got)
		}
		if got.Grand != got.Structure+got.Hardware+got.Installation {
			t.Errorf("grand total %v is not the sum of %+v", got.Grand, got)
		}
	}

	if err := q.SetInstallation(Installation{Rate: 1, Unit: "per-visit"}); err == nil {
		t.Error("unknown installation unit should fail")
	}
}

func TestEngineHardwareIsNotPriced(t *testing.T) {
	q := New()
	w := windowItem(t, false, AddRequest{})
	if len(w.Calculations.Hardware) == 0 {
		t.Fatal("window should list hardware")
	}
	q.Add(w)
	if q.Totals().Hardware != 0 {
		t.Error("only manual hardware lines are priced")
	}
}

func TestRemove(t *testing.T) {
	q := New()
	a := gateItem(t, AddRequest{})
	b := windowItem(t, false, AddRequest{})
	q.Add(a)
	q.Add(b)
	before := q.Totals()

	if err := q.Remove(a.ID); err != nil {
		t.Fatal(err)
	}
	after := q.Totals()
	if len(q.Items) != 1 || q.Items[0].ID != b.ID {
		t.Fatalf("unexpected items after remove: %v", q.Items)
	}
	if math.Abs(after.Structure-(before.Structure-a.StructureCost)) > eps {
		t.Errorf("structure total not recomputed: %v -> %v", before.Structure, after.Structure)
	}
	if err := q.Remove(a.ID); !errors.Is(err, ErrItemNotFound) {
		t.Errorf("expected ErrItemNotFound, got %v", err)
	}
}

func TestStore(t *testing.T) {
	s := NewStore()
	q := s.Get(1)
	if len(q.Items) != 0 || q.Number == "" {
		t.Fatalf("fresh quote: %+v", q)
	}

	it := gateItem(t, AddRequest{})
	if _, err := s.Update(1, func(q *Quote) error { q.Add(it); return nil }); err != nil {
		t.Fatal(err)
	}
	if len(s.Get(1).Items) != 1 || len(s.Get(2).Items) != 0 {
		t.Error("quotes must be kept per user")
	}

	_, err := s.Update(1, func(q *Quote) error {
		q.Items = nil
		return ErrItemNotFound
	})
	if err == nil || len(s.Get(1).Items) != 1 {
		t.Error("a failed update must not change the quote")
	}

	got := s.Get(1)
	got.Items[0].Description = "changed"
	if s.Get(1).Items[0].Description == "changed" {
		t.Error("Get must return a copy")
	}

	s.Reset(1)
	if len(s.Get(1).Items) != 0 {
		t.Error("reset should start a new quote")
	}
}

func TestWorkbook(t *testing.T) {
	q := New()
	q.Add(gateItem(t, AddRequest{}))
	q.SetHardware([]HardwareItem{{Name: "Hinge", Quantity: 2, Unit: "pcs", Rate: 100}})

	f, err := Workbook(q)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if got := f.GetSheetList(); len(got) != 3 || got[0] != "Items" || got[1] != "Hardware" || got[2] != "Summary" {
		t.Errorf("unexpected sheets %v", got)
	}
	desc, _ := f.GetCellValue("Items", "B2")
	if desc != "Custom Iron Gate" {
		t.Errorf("item description cell: %q", desc)
	}
	name, _ := f.GetCellValue("Hardware", "A2")
	if name != "Hinge" {
		t.Errorf("hardware name cell: %q", name)
	}
	label, _ := f.GetCellValue("Summary", "A7")
	if label != "Grand Total" {
		t.Errorf("summary label: %q", label)
	}
}
