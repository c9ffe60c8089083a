package gate

import (
	"fmt"

	"Ironforge/internal/calc/units"
	"Ironforge/internal/catalog"
	"Ironforge/internal/layout"
)

// Rect is in millimeters with the origin at the bottom-left of the gate.
type Rect struct {
	X, Y, W, H float64
}

type Fill struct {
	Design      InnerDesign
	Bars        layout.Bars
	BarLengthMm float64
	// AvgKgPerMeter averages every resolvable profile reference in the
	// sequence, not the profile of each placed bar.
	AvgKgPerMeter float64
	Diagonal      layout.Diagonal
	DiagonalKgPM  float64
	Sheet         catalog.Profile
	HasSheet      bool
}

type Door struct {
	Outer  Rect
	Inner  Rect
	Design DoorDesign
	Fill   Fill
}

type Geometry struct {
	WidthMm  float64
	HeightMm float64
	Frame    catalog.Profile
	FrameOK  bool
	Center   *Rect
	Doors    []Door
	Warnings []string
}

// Decompose splits a gate into frame, optional center member and door leaves
// with their fill layout. The weight calculator and the preview both read it.
func Decompose(cfg Config, cat *catalog.Catalog) (Geometry, error) {
	factor, err := units.Factor(cfg.Unit)
	if err != nil {
		return Geometry{}, err
	}
	g := Geometry{
		WidthMm:  cfg.Width * factor,
		HeightMm: cfg.Height * factor,
	}

	frame, ok := cat.Gate(cfg.FrameProfileID)
	if !ok {
		g.Warnings = append(g.Warnings, fmt.Sprintf("frame profile %q not found", cfg.FrameProfileID))
		return g, nil
	}
	g.Frame, g.FrameOK = frame, true
	g.Warnings = append(g.Warnings, basisWarnings(frame, catalog.PerMeter, "frame")...)

	fw, fh := frame.WidthMm, frame.HeightMm
	innerH := g.HeightMm - 2*fh

	if cfg.GateType == SlidingOpenable {
		leftMm := cfg.LeftWidth() * factor
		rightMm := g.WidthMm - leftMm
		g.Center = &Rect{X: leftMm - fw/2, Y: 0, W: fw, H: g.HeightMm}

		left := Door{
			Outer:  Rect{X: 0, Y: 0, W: leftMm, H: g.HeightMm},
			Inner:  Rect{X: fw, Y: fh, W: leftMm - fw - fw/2, H: innerH},
			Design: cfg.LeftDoorDesign,
		}
		right := Door{
			Outer:  Rect{X: leftMm, Y: 0, W: rightMm, H: g.HeightMm},
			Inner:  Rect{X: leftMm + fw/2, Y: fh, W: rightMm - fw - fw/2, H: innerH},
			Design: cfg.RightDesign(),
		}
		g.Doors = []Door{left, right}
	} else {
		g.Doors = []Door{{
			Outer:  Rect{X: 0, Y: 0, W: g.WidthMm, H: g.HeightMm},
			Inner:  Rect{X: fw, Y: fh, W: g.WidthMm - 2*fw, H: innerH},
			Design: cfg.LeftDoorDesign,
		}}
	}

	for i := range g.Doors {
		d := &g.Doors[i]
		var warn []string
		d.Fill, warn = fill(d.Inner.W, d.Inner.H, d.Design, factor, cat)
		g.Warnings = append(g.Warnings, warn...)
	}
	return g, nil
}
// basisWarnings flags a profile whose weight basis does not fit its role. The
// weight is still used as given.
func basisWarnings(p catalog.Profile, want catalog.Basis, role string) []string {
	if p.Basis == want {
		return nil
	}
	return []string{fmt.Sprintf("%s profile %q has basis %s, expected %s", role, p.ID, p.Basis, want)}
}

func fill(innerW, innerH float64, design DoorDesign, factor float64, cat *catalog.Catalog) (Fill, []string) {
	f := Fill{Design: design.InnerDesign}
	var warnings []string

	switch design.InnerDesign {
	case VerticalBars, HorizontalBars:
		vertical := design.InnerDesign == VerticalBars
		span, length := innerW, innerH
		if !vertical {
			span, length = innerH, innerW
		}
		steps := make([]layout.Step, len(design.Sequence))
		sum, n := 0.0, 0
		for i, s := range design.Sequence {
			p, ok := cat.Gate(s.ProfileID)
			if !ok {
				warnings = append(warnings, fmt.Sprintf("bar profile %q not found", s.ProfileID))
				continue
			}
			thickness := p.WidthMm
			if !vertical {
				thickness = p.HeightMm
			}
			warnings = append(warnings, basisWarnings(p, catalog.PerMeter, "bar")...)
			steps[i] = layout.Step{ThicknessMm: thickness, GapMm: s.Gap * factor, Resolved: true}
			sum += p.WeightKgPerMeter
			n++
		}
		f.Bars = layout.Walk(span, steps)
		f.BarLengthMm = length
		if n > 0 {
			f.AvgKgPerMeter = sum / float64(n)
		}

	case CrissCross:
		if len(design.Sequence) == 0 {
			break
		}
		s := design.Sequence[0]
		p, ok := cat.Gate(s.ProfileID)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("bar profile %q not found", s.ProfileID))
			break
		}
		warnings = append(warnings, basisWarnings(p, catalog.PerMeter, "bar")...)
		f.Diagonal = layout.Diagonals(innerW, innerH, p.WidthMm, s.Gap*factor)
		f.DiagonalKgPM = p.WeightKgPerMeter

	case Sheet:
		p, ok := cat.Gate(catalog.SheetStockID)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("sheet stock %q not found", catalog.SheetStockID))
			break
		}
		warnings = append(warnings, basisWarnings(p, catalog.PerSqMeter, "sheet")...)
		f.Sheet, f.HasSheet = p, true
	}
	return f, warnings
}

// WeightKg converts a fill layout into steel weight for a door of the given
// inner size.
func (f Fill) WeightKg(inner Rect) float64 {
	switch f.Design {
	case VerticalBars, HorizontalBars:
		return float64(f.Bars.Count()) * (f.BarLengthMm / 1000) * f.AvgKgPerMeter
	case CrissCross:
		return f.Diagonal.TotalLengthMm() / 1000 * f.DiagonalKgPM
	case Sheet:
		if !f.HasSheet {
			return 0
		}
		return (inner.W / 1000) * (inner.H / 1000) * f.Sheet.WeightKgPerMeter
	}
	return 0
}
