package gate

import (
	calc "Ironforge/internal/calc"
	"Ironforge/internal/catalog"
)

type DoorWeight struct {
	InnerKg   float64 `json:"innerKg"`
	Bars      int     `json:"bars,omitempty"`
	Diagonals int     `json:"diagonals,omitempty"`
}

type Breakdown struct {
	FrameKg  float64      `json:"frameKg"`
	CenterKg float64      `json:"centerKg"`
	Doors    []DoorWeight `json:"doors"`
	TotalKg  float64      `json:"totalKg"`
}

// Weigh returns the weight of each part of the gate.
func Weigh(cfg Config, cat *catalog.Catalog) (Breakdown, Geometry, error) {
	g, err := Decompose(cfg, cat)
	if err != nil {
		return Breakdown{}, Geometry{}, err
	}
	var b Breakdown
	if !g.FrameOK {
		return b, g, nil
	}

	kgpm := g.Frame.WeightKgPerMeter
	widthM, heightM := g.WidthMm/1000, g.HeightMm/1000
	b.FrameKg = (2*widthM + 2*heightM) * kgpm
	if g.Center != nil {
		b.CenterKg = heightM * kgpm
	}
	b.TotalKg = b.FrameKg + b.CenterKg

	for _, d := range g.Doors {
		dw := DoorWeight{
			InnerKg:   d.Fill.WeightKg(d.Inner),
			Bars:      d.Fill.Bars.Count(),
			Diagonals: d.Fill.Diagonal.Count,
		}
		b.Doors = append(b.Doors, dw)
		b.TotalKg += dw.InnerKg
	}
	return b, g, nil
}

// Calculate is the gate weight engine. A missing frame profile yields zero
// weight, not an error; only an unknown unit fails.
func Calculate(cfg Config, cat *catalog.Catalog) (calc.Result, error) {
	b, g, err := Weigh(cfg, cat)
	if err != nil {
		return calc.Result{}, err
	}
	return result(b, g), nil
}

func result(b Breakdown, g Geometry) calc.Result {
	sqm, sqft := calc.Area(g.WidthMm, g.HeightMm)
	return calc.Result{
		WidthMm:       g.WidthMm,
		HeightMm:      g.HeightMm,
		AreaSqM:       sqm,
		AreaSqFt:      sqft,
		TotalWeightKg: b.TotalKg,
		Warnings:      g.Warnings,
	}
}
