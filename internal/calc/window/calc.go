package window

import (
	"math"

	calc "Ironforge/internal/calc"
	"Ironforge/internal/calc/gate"
	"Ironforge/internal/catalog"
)

const feetPerMeter = 3.28084

type tally struct {
	sliding  int
	casement int
	handles  int
	hinges   int
	meshSqFt float64
	sashKg   float64
}

// Calculate is the window weight engine. It fails closed: when any of the
// seven bound profiles is missing the weight is zero and no hardware is listed.
func Calculate(cfg Config, cat *catalog.Catalog) (calc.Result, error) {
	g, err := Decompose(cfg, cat)
	if err != nil {
		return calc.Result{}, err
	}
	sqm, sqft := calc.Area(g.WidthMm, g.HeightMm)
	res := calc.Result{
		WidthMm:  g.WidthMm,
		HeightMm: g.HeightMm,
		AreaSqM:  sqm,
		AreaSqFt: sqft,
		Hardware: []calc.HardwareLine{},
		Warnings: g.Warnings,
	}
	if !g.OK {
		return res, nil
	}

	p := g.Profiles
	widthM, heightM := g.WidthMm/1000, g.HeightMm/1000
	cols, rows := len(cfg.ColSizes), len(cfg.RowSizes)

	total := (2*widthM + 2*heightM) * p.OuterFrame.WeightKgPerMeter

	var vLen, hLen float64
	if cols > 1 {
		vLen = float64(cols-1) * (heightM - 2*p.OuterFrame.WidthMm/1000)
	}
	if rows > 1 {
		hLen = float64(rows-1) * (widthM - 2*p.OuterFrame.HeightMm/1000)
	}
	total += vLen * p.VerticalMullion.WeightKgPerMeter
	total += hLen * p.HorizontalMullion.WeightKgPerMeter

	var t tally
	for _, panel := range g.Panels {
		t.add(panel, p)
	}
	total += t.sashKg

	res.TotalWeightKg = total
	res.Hardware = t.hardware(widthM, heightM)
	return res, nil
}

func (t *tally) add(panel Panel, p Profiles) {
	w, h := panel.W/1000, panel.H/1000
	cell := panel.Cell

	if cell.HasMesh {
		t.meshSqFt += (w * feetPerMeter) * (h * feetPerMeter)
	}
	for _, f := range cell.Fittings {
		switch f.Type {
		case Handle:
			t.handles++
		case Hinge:
			t.hinges++
		}
	}

	switch cell.Type {
	case Sliding:
		t.sashKg += 2 * w * p.TopBottom.WeightKgPerMeter
		t.sashKg += h * p.Handle.WeightKgPerMeter
		t.sashKg += h * p.Interlock.WeightKgPerMeter
		t.sliding++
	case Casement, TopHung:
		t.sashKg += (2*w + 2*h) * p.CasementSash.WeightKgPerMeter
		t.casement++
	case Fixed:
		// fixed panes are framed with the casement sash section
		t.sashKg += (2*w + 2*h) * p.CasementSash.WeightKgPerMeter
	}
}

func (t tally) hardware(widthM, heightM float64) []calc.HardwareLine {
	out := []calc.HardwareLine{}
	if t.sliding > 0 {
		out = append(out,
			calc.HardwareLine{Name: "Sliding Rollers", Quantity: float64(t.sliding * 2), Unit: "pcs"},
			calc.HardwareLine{Name: "Sliding Lock", Quantity: float64(t.sliding), Unit: "pcs"},
		)
	}
	if t.casement > 0 {
		out = append(out,
			calc.HardwareLine{Name: "Casement Lock/Handle", Quantity: float64(t.casement), Unit: "pcs"},
			calc.HardwareLine{Name: "Friction Hinges", Quantity: float64(t.casement * 2), Unit: "pcs"},
		)
	}
	if t.handles > 0 {
		out = append(out, calc.HardwareLine{Name: "Window Handle", Quantity: float64(t.handles), Unit: "pcs"})
	}
	if t.hinges > 0 {
		out = append(out, calc.HardwareLine{Name: "Window Hinge", Quantity: float64(t.hinges), Unit: "pcs"})
	}
	if t.meshSqFt > 0 {
		out = append(out, calc.HardwareLine{Name: "SS Insect Mesh", Quantity: math.Round(t.meshSqFt*100) / 100, Unit: "sq ft"})
	}
	out = append(out,
		calc.HardwareLine{Name: "Gasket/Sealant", Quantity: math.Ceil(widthM+heightM) * 2, Unit: "meters"},
		calc.HardwareLine{Name: "Screws & Fasteners", Quantity: 1, Unit: "lot"},
	)
	return out
}

// Grill runs the gate engine on the attached security grill, if any. Its
// result is priced separately from the window.
func Grill(cfg Config, cat *catalog.Catalog) (*calc.Result, error) {
	if cfg.GrillConfig == nil {
		return nil, nil
	}
	res, err := gate.Calculate(*cfg.GrillConfig, cat)
	if err != nil {
		return nil, err
	}
	return &res, nil
}
