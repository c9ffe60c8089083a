package window

import (
	"fmt"

	"Ironforge/internal/calc/units"
	"Ironforge/internal/catalog"
	"Ironforge/internal/layout"
)

// Profiles are the seven sections every window binds, whichever panel types
// it actually uses.
type Profiles struct {
	OuterFrame        catalog.WindowProfile
	VerticalMullion   catalog.WindowProfile
	HorizontalMullion catalog.WindowProfile
	Handle            catalog.WindowProfile
	Interlock         catalog.WindowProfile
	TopBottom         catalog.WindowProfile
	CasementSash      catalog.WindowProfile
}

// Panel is one grid cell placed in millimeters, origin at the bottom-left.
type Panel struct {
	Row, Col   int
	X, Y, W, H float64
	Cell       GridCell
}

type Geometry struct {
	WidthMm  float64
	HeightMm float64
	Profiles Profiles
	OK       bool

	ColWidthsMm  []float64
	RowHeightsMm []float64
	// Mullion rectangles, left edge / bottom edge positions.
	VerticalMullionsX   []float64
	HorizontalMullionsY []float64
	Panels              []Panel
	Warnings            []string
}

func resolve(cat *catalog.Catalog, cfg Config) (Profiles, []string) {
	var p Profiles
	var missing []string
	get := func(role, id string, dst *catalog.WindowProfile) {
		wp, ok := cat.Window(id)
		if !ok {
			missing = append(missing, fmt.Sprintf("%s profile %q not found", role, id))
			return
		}
		*dst = wp
	}
	get("outer frame", cfg.FrameProfiles.OuterFrame, &p.OuterFrame)
	get("vertical mullion", cfg.FrameProfiles.VerticalMullion, &p.VerticalMullion)
	get("horizontal mullion", cfg.FrameProfiles.HorizontalMullion, &p.HorizontalMullion)
	get("shutter handle", cfg.ShutterProfiles.HandleSection, &p.Handle)
	get("shutter interlock", cfg.ShutterProfiles.InterlockSection, &p.Interlock)
	get("shutter top/bottom", cfg.ShutterProfiles.TopBottomSection, &p.TopBottom)
	get("casement sash", cfg.ShutterProfiles.CasementSash, &p.CasementSash)
	return p, missing
}

// Decompose places the outer frame, mullions and panels. Row and column sizes
// are weights over the span left after the frame and mullions.
func Decompose(cfg Config, cat *catalog.Catalog) (Geometry, error) {
	factor, err := units.Factor(cfg.Unit)
	if err != nil {
		return Geometry{}, err
	}
	g := Geometry{
		WidthMm:  cfg.Width * factor,
		HeightMm: cfg.Height * factor,
	}
	g.Profiles, g.Warnings = resolve(cat, cfg)
	if len(g.Warnings) > 0 {
		return g, nil
	}
	g.OK = true

	of := g.Profiles.OuterFrame
	vmw := g.Profiles.VerticalMullion.WidthMm
	hmh := g.Profiles.HorizontalMullion.HeightMm
	cols, rows := len(cfg.ColSizes), len(cfg.RowSizes)

	spanW := g.WidthMm - 2*of.HeightMm - float64(cols-1)*vmw
	spanH := g.HeightMm - 2*of.WidthMm - float64(rows-1)*hmh
	g.ColWidthsMm = layout.Split(spanW, cfg.ColSizes)
	g.RowHeightsMm = layout.Split(spanH, cfg.RowSizes)

	xs := layout.Starts(of.HeightMm, g.ColWidthsMm, vmw)
	// Row 0 is the top row; y grows upwards.
	tops := layout.Starts(of.WidthMm, g.RowHeightsMm, hmh)

	for c := 1; c < cols; c++ {
		g.VerticalMullionsX = append(g.VerticalMullionsX, xs[c]-vmw)
	}
	for r := 1; r < rows; r++ {
		g.HorizontalMullionsY = append(g.HorizontalMullionsY, g.HeightMm-tops[r])
	}

	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			g.Panels = append(g.Panels, Panel{
				Row:  r,
				Col:  c,
				X:    xs[c],
				Y:    g.HeightMm - tops[r] - g.RowHeightsMm[r],
				W:    g.ColWidthsMm[c],
				H:    g.RowHeightsMm[r],
				Cell: cfg.Cell(r, c),
			})
		}
	}
	return g, nil
}
