package gate

import (
	"errors"
	"math"
	"strings"
	"testing"

	calc "Ironforge/internal/calc"
	"Ironforge/internal/calc/units"
	"Ironforge/internal/catalog"
)

const eps = 1e-9

func fixedGate(w, h float64, design DoorDesign) Config {
	return Config{
		Width:          w,
		Height:         h,
		Unit:           units.Millimeter,
		GateType:       Fixed,
		FrameProfileID: "p26",
		LeftDoorDesign: design,
	}
}

func bars(id string, gap float64) DoorDesign {
	return DoorDesign{InnerDesign: VerticalBars, Sequence: []Step{{ProfileID: id, Gap: gap}}}
}

func TestFrameWeight(t *testing.T) {
	cfg := fixedGate(3000, 1500, DoorDesign{InnerDesign: VerticalBars})
	res, err := Calculate(cfg, catalog.Default())
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(res.TotalWeightKg-20.79) > 1e-9 {
		t.Errorf("frame weight expected 20.79, got %v", res.TotalWeightKg)
	}
	if math.Abs(res.AreaSqM-4.5) > eps || math.Abs(res.AreaSqFt-4.5*10.7639) > eps {
		t.Errorf("unexpected area %v / %v", res.AreaSqM, res.AreaSqFt)
	}
}

func TestVerticalBars(t *testing.T) {
	cat := catalog.Default()
	b, _, err := Weigh(fixedGate(3000, 1500, bars("p7", 100)), cat)
	if err != nil {
		t.Fatal(err)
	}
	// inner 2920 x 1420, 20 mm bars every 120 mm
	wantBars := int(math.Floor((2920 + 100) / (20.0 + 100)))
	if b.Doors[0].Bars != wantBars {
		t.Errorf("expected %d bars, got %d", wantBars, b.Doors[0].Bars)
	}
	wantInner := float64(wantBars) * 1.42 * 1.05
	if math.Abs(b.Doors[0].InnerKg-wantInner) > eps {
		t.Errorf("inner weight expected %v, got %v", wantInner, b.Doors[0].InnerKg)
	}
	if math.Abs(b.TotalKg-(20.79+wantInner)) > eps {
		t.Errorf("total expected %v, got %v", 20.79+wantInner, b.TotalKg)
	}
}

func TestBarWeightLinearInHeight(t *testing.T) {
	cat := catalog.Default()
	var perMm []float64
	for _, h := range []float64{1000, 1500, 2400} {
		b, _, err := Weigh(fixedGate(3000, h, bars("p7", 100)), cat)
		if err != nil {
			t.Fatal(err)
		}
		perMm = append(perMm, b.Doors[0].InnerKg/(h-80))
	}
	for i := 1; i < len(perMm); i++ {
		if math.Abs(perMm[i]-perMm[0]) > 1e-12 {
			t.Errorf("bar weight per mm of height changed: %v", perMm)
		}
	}
}

func TestHorizontalBarsUseProfileHeight(t *testing.T) {
	cat := catalog.Default()
	design := DoorDesign{InnerDesign: HorizontalBars, Sequence: []Step{{ProfileID: "p21", Gap: 100}}}
	b, _, err := Weigh(fixedGate(3000, 1500, design), cat)
	if err != nil {
		t.Fatal(err)
	}
	// p21 is 40x20: horizontal bars stack by their 20 mm height over 1420 mm
	want := int(math.Floor((1420 + 100) / (20.0 + 100)))
	if b.Doors[0].Bars != want {
		t.Errorf("expected %d bars, got %d", want, b.Doors[0].Bars)
	}
	wantKg := float64(want) * 2.92 * 1.37
	if math.Abs(b.Doors[0].InnerKg-wantKg) > eps {
		t.Errorf("expected %v kg, got %v", wantKg, b.Doors[0].InnerKg)
	}
}

func TestSequenceAveragesResolvableProfiles(t *testing.T) {
	design := DoorDesign{InnerDesign: VerticalBars, Sequence: []Step{
		{ProfileID: "p7", Gap: 100},
		{ProfileID: "missing", Gap: 100},
		{ProfileID: "p1", Gap: 50},
	}}
	b, g, err := Weigh(fixedGate(3000, 1500, design), catalog.Default())
	if err != nil {
		t.Fatal(err)
	}
	fill := g.Doors[0].Fill
	if math.Abs(fill.AvgKgPerMeter-(1.05+0.47)/2) > eps {
		t.Errorf("average kg/m expected %v, got %v", (1.05+0.47)/2, fill.AvgKgPerMeter)
	}
	for _, bar := range fill.Bars.Bars {
		if bar.Step == 1 {
			t.Fatal("missing profile must not be placed")
		}
	}
	want := float64(b.Doors[0].Bars) * 1.42 * fill.AvgKgPerMeter
	if math.Abs(b.Doors[0].InnerKg-want) > eps {
		t.Errorf("inner expected %v, got %v", want, b.Doors[0].InnerKg)
	}
	if len(g.Warnings) != 1 || !strings.Contains(g.Warnings[0], "missing") {
		t.Errorf("expected one warning for the missing profile, got %v", g.Warnings)
	}
}

func TestCrissCross(t *testing.T) {
	cat := catalog.Default()
	design := DoorDesign{InnerDesign: CrissCross, Sequence: []Step{{ProfileID: "p7", Gap: 100}}}

	b, _, err := Weigh(fixedGate(3000, 1500, design), cat)
	if err != nil {
		t.Fatal(err)
	}
	count := int(math.Ceil((2920 + 1420) / 120.0))
	if b.Doors[0].Diagonals != count {
		t.Errorf("expected %d diagonals, got %d", count, b.Doors[0].Diagonals)
	}
	want := float64(count) * math.Hypot(2.92, 1.42) * 2 * 1.05
	if math.Abs(b.Doors[0].InnerKg-want) > 1e-6 {
		t.Errorf("expected %v kg, got %v", want, b.Doors[0].InnerKg)
	}
}

func TestCrissCrossSymmetric(t *testing.T) {
	cat := catalog.Default()
	design := DoorDesign{InnerDesign: CrissCross, Sequence: []Step{{ProfileID: "p4", Gap: 75}}}
	sizes := [][2]float64{{3000, 1500}, {1234, 2100}, {900, 900}}
	for _, s := range sizes {
		a, _, _ := Weigh(fixedGate(s[0], s[1], design), cat)
		b, _, _ := Weigh(fixedGate(s[1], s[0], design), cat)
		if a.Doors[0].Diagonals != b.Doors[0].Diagonals {
			t.Errorf("%v: diagonal count %d vs %d", s, a.Doors[0].Diagonals, b.Doors[0].Diagonals)
		}
		if math.Abs(a.TotalKg-b.TotalKg) > 1e-9 {
			t.Errorf("%v: weight %v vs %v", s, a.TotalKg, b.TotalKg)
		}
	}
}

func TestSheet(t *testing.T) {
	res, err := Calculate(fixedGate(3000, 1500, DoorDesign{InnerDesign: Sheet}), catalog.Default())
	if err != nil {
		t.Fatal(err)
	}
	want := 20.79 + 2.92*1.42*11.78
	if math.Abs(res.TotalWeightKg-want) > 1e-9 {
		t.Errorf("expected %v, got %v", want, res.TotalWeightKg)
	}
}

func TestBasisMismatchWarns(t *testing.T) {
	profiles := catalog.DefaultGateProfiles()
	for i := range profiles {
		switch profiles[i].ID {
		case catalog.SheetStockID:
			profiles[i].Basis = catalog.PerMeter
		case "p7":
			profiles[i].Basis = catalog.PerSqMeter
		}
	}
	cat := catalog.New(profiles, catalog.DefaultWindowProfiles())

	tests := []struct {
		name  string
		cfg   Config
		role  string
		count int
	}{
		{"defaults", fixedGate(3000, 1500, bars("p1", 100)), "", 0},
		{"sheet stock per meter", fixedGate(3000, 1500, DoorDesign{InnerDesign: Sheet}), "sheet", 1},
		{"bar per square meter", fixedGate(3000, 1500, bars("p7", 100)), "bar", 1},
		{"lattice per square meter", fixedGate(3000, 1500, DoorDesign{InnerDesign: CrissCross, Sequence: []Step{{ProfileID: "p7", Gap: 100}}}), "bar", 1},
		{"sheet as frame", func() Config {
			c := fixedGate(3000, 1500, bars("p1", 100))
			c.FrameProfileID = "sheet-2.0"
			return c
		}(), "frame", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := Decompose(tt.cfg, cat)
			if err != nil {
				t.Fatal(err)
			}
			if len(g.Warnings) != tt.count {
				t.Fatalf("expected %d warnings, got %v", tt.count, g.Warnings)
			}
			if tt.count > 0 && !strings.HasPrefix(g.Warnings[0], tt.role+" profile") {
				t.Errorf("expected a %s warning, got %q", tt.role, g.Warnings[0])
			}
		})
	}
}

func TestSlidingOpenable(t *testing.T) {
	cat := catalog.Default()
	cfg := Config{
		Width:          3000,
		Height:         1500,
		Unit:           units.Millimeter,
		GateType:       SlidingOpenable,
		FrameProfileID: "p26",
		LeftDoorDesign: bars("p7", 100),
	}

	half, g, err := Weigh(cfg, cat)
	if err != nil {
		t.Fatal(err)
	}
	if g.Doors[0].Outer.W != 1500 || g.Doors[1].Outer.W != 1500 {
		t.Errorf("unset left width should split in half, got %v / %v", g.Doors[0].Outer.W, g.Doors[1].Outer.W)
	}
	if math.Abs(half.CenterKg-1.5*2.31) > eps {
		t.Errorf("center member expected %v, got %v", 1.5*2.31, half.CenterKg)
	}
	// 1500 - 40 - 20 = 1440 mm of fill per leaf
	if g.Doors[0].Inner.W != 1440 || g.Doors[1].Inner.W != 1440 {
		t.Errorf("unexpected inner widths %v / %v", g.Doors[0].Inner.W, g.Doors[1].Inner.W)
	}
	if half.Doors[0].Bars != 12 || half.Doors[1].Bars != 12 {
		t.Errorf("expected 12 bars per leaf, got %d / %d", half.Doors[0].Bars, half.Doors[1].Bars)
	}

	left := 1000.0
	cfg.LeftDoorWidth = &left
	skewed, _, err := Weigh(cfg, cat)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(skewed.FrameKg-half.FrameKg) > eps || math.Abs(skewed.CenterKg-half.CenterKg) > eps {
		t.Errorf("frame weight must not depend on leaf split: %v vs %v", skewed.FrameKg, half.FrameKg)
	}
	if skewed.Doors[0].Bars != 8 || skewed.Doors[1].Bars != 17 {
		t.Errorf("expected 8 / 17 bars, got %d / %d", skewed.Doors[0].Bars, skewed.Doors[1].Bars)
	}
	if math.Abs(skewed.Doors[0].InnerKg-half.Doors[0].InnerKg) < eps {
		t.Error("moving the split should move fill weight between leaves")
	}
}

func TestRightDesignOverride(t *testing.T) {
	cfg := Config{
		Width: 3000, Height: 1500, Unit: units.Millimeter,
		GateType: SlidingOpenable, FrameProfileID: "p26",
		LeftDoorDesign:  bars("p7", 100),
		RightDoorDesign: &DoorDesign{InnerDesign: Sheet},
	}
	b, g, err := Weigh(cfg, catalog.Default())
	if err != nil {
		t.Fatal(err)
	}
	if g.Doors[1].Fill.Design != Sheet {
		t.Fatalf("right leaf should use its own design, got %s", g.Doors[1].Fill.Design)
	}
	want := 1.44 * 1.42 * 11.78
	if math.Abs(b.Doors[1].InnerKg-want) > 1e-9 {
		t.Errorf("right sheet expected %v, got %v", want, b.Doors[1].InnerKg)
	}
}

func TestMissingFrame(t *testing.T) {
	for _, id := range []string{"nope", "p0"} {
		cfg := fixedGate(3000, 1500, bars("p7", 100))
		cfg.FrameProfileID = id
		res, err := Calculate(cfg, catalog.Default())
		if err != nil {
			t.Fatalf("%s: missing frame must not fail: %v", id, err)
		}
		if res.TotalWeightKg != 0 {
			t.Errorf("%s: expected zero weight, got %v", id, res.TotalWeightKg)
		}
		if res.WidthMm != 3000 || res.HeightMm != 1500 {
			t.Errorf("%s: dimensions should still be reported", id)
		}
		if len(res.Warnings) == 0 {
			t.Errorf("%s: expected a warning", id)
		}
	}
}

func TestUnitsAgree(t *testing.T) {
	cat := catalog.Default()
	mm, _ := Calculate(fixedGate(3000, 1500, bars("p7", 100)), cat)

	cm := fixedGate(300, 150, bars("p7", 10))
	cm.Unit = units.Centimeter
	got, err := Calculate(cm, cat)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(got.TotalWeightKg-mm.TotalWeightKg) > 1e-9 {
		t.Errorf("cm and mm configs disagree: %v vs %v", got.TotalWeightKg, mm.TotalWeightKg)
	}

	bad := fixedGate(3000, 1500, bars("p7", 100))
	bad.Unit = "yd"
	_, err = Calculate(bad, cat)
	var cfgErr *calc.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Errorf("expected ConfigError for unknown unit, got %v", err)
	}
}

func TestNegativeGeometryIsReported(t *testing.T) {
	res, err := Calculate(fixedGate(-100, 1500, bars("p7", 100)), catalog.Default())
	if err != nil {
		t.Fatal(err)
	}
	if res.AreaSqM >= 0 {
		t.Errorf("negative width should give negative area, got %v", res.AreaSqM)
	}
}

func TestValidate(t *testing.T) {
	over := 3000.0
	tests := []struct {
		name  string
		mut   func(*Config)
		field string
	}{
		{"ok", func(c *Config) {}, ""},
		{"gate type", func(c *Config) { c.GateType = "rolling" }, "gateType"},
		{"unit", func(c *Config) { c.Unit = "yd" }, "unit"},
		{"inner design", func(c *Config) { c.LeftDoorDesign.InnerDesign = "mesh" }, "leftDoorDesign.innerDesign"},
		{"left too wide", func(c *Config) {
			c.GateType = SlidingOpenable
			c.LeftDoorWidth = &over
		}, "leftDoorWidth"},
		{"negative criss-cross gap", func(c *Config) {
			c.LeftDoorDesign = DoorDesign{InnerDesign: CrissCross, Sequence: []Step{{ProfileID: "p7", Gap: -19.9999}}}
		}, "leftDoorDesign.innerDesignSequence.gap"},
		{"negative right gap", func(c *Config) { c.RightDoorDesign.Sequence[0].Gap = -1 }, "rightDoorDesign.innerDesignSequence.gap"},
		{"zero gap", func(c *Config) { c.LeftDoorDesign.Sequence[0].Gap = 0 }, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mut(&cfg)
			err := cfg.Validate()
			if tt.field == "" {
				if err != nil {
					t.Errorf("unexpected error %v", err)
				}
				return
			}
			var cfgErr *calc.ConfigError
			if !errors.As(err, &cfgErr) || cfgErr.Field != tt.field {
				t.Errorf("expected ConfigError on %s, got %v", tt.field, err)
			}
		})
	}
}

func TestClone(t *testing.T) {
	cfg := Default()
	cp := cfg.Clone()
	cp.LeftDoorDesign.Sequence[0].Gap = 5
	*cp.LeftDoorWidth = 10
	cp.RightDoorDesign.Sequence[0].ProfileID = "p1"

	if cfg.LeftDoorDesign.Sequence[0].Gap != 100 || *cfg.LeftDoorWidth != 1000 || cfg.RightDoorDesign.Sequence[0].ProfileID != "p7" {
		t.Error("clone shares memory with the original")
	}
}
