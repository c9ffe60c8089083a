// Package preview draws gates and windows from the same decomposition the
// weight calculators use.
package preview

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"
	"strconv"
	"strings"

	"Ironforge/internal/calc/gate"
	"Ironforge/internal/calc/window"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

const (
	PNG = "png"
	SVG = "svg"
)

// maxMembers bounds the bars or diagonals drawn in one leaf.
const maxMembers = 5000

var ErrTooDetailed = errors.New("preview: fill has too many members to draw")

var (
	defaultFrame = color.RGBA{R: 0x21, G: 0x21, B: 0x21, A: 255}
	defaultBar   = color.RGBA{R: 0x37, G: 0x41, B: 0x51, A: 255}
	background   = color.White
	glass        = color.RGBA{R: 186, G: 230, B: 253, A: 160}
	sashLine     = color.RGBA{R: 0x64, G: 0x74, B: 0x8B, A: 255}
	meshLine     = color.RGBA{R: 0x94, G: 0xA3, B: 0xB8, A: 200}
	grillBar     = color.RGBA{R: 0x1F, G: 0x29, B: 0x37, A: 220}
)

// hexColor parses "#RRGGBB"; anything else yields def.
func hexColor(s string, def color.Color) color.Color {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return def
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return def
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}
}

func newPlot(widthMm, heightMm float64, title string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.HideAxes()
	pad := math.Max(widthMm, heightMm) * 0.02
	p.X.Min, p.X.Max = -pad, widthMm+pad
	p.Y.Min, p.Y.Max = -pad, heightMm+pad
	return p
}

func addRect(p *plot.Plot, x, y, w, h float64, fill, stroke color.Color) error {
	if w <= 0 || h <= 0 {
		return nil
	}
	poly, err := plotter.NewPolygon(plotter.XYs{
		{X: x, Y: y},
		{X: x + w, Y: y},
		{X: x + w, Y: y + h},
		{X: x, Y: y + h},
	})
	if err != nil {
		return err
	}
	poly.Color = fill
	if stroke == nil {
		poly.LineStyle.Width = 0
	} else {
		poly.LineStyle.Color = stroke
		poly.LineStyle.Width = vg.Points(0.5)
	}
	p.Add(poly)
	return nil
}

func addSegment(p *plot.Plot, x1, y1, x2, y2 float64, c color.Color, width vg.Length) error {
	l, err := plotter.NewLine(plotter.XYs{{X: x1, Y: y1}, {X: x2, Y: y2}})
	if err != nil {
		return err
	}
	l.LineStyle.Color = c
	l.LineStyle.Width = width
	p.Add(l)
	return nil
}

func addLabel(p *plot.Plot, x, y float64, text string) error {
	l, err := plotter.NewLabels(plotter.XYLabels{
		XYs:    []plotter.XY{{X: x, Y: y}},
		Labels: []string{text},
	})
	if err != nil {
		return err
	}
	for i := range l.TextStyle {
		l.TextStyle[i].XAlign = draw.XCenter
		l.TextStyle[i].YAlign = draw.YCenter
	}
	p.Add(l)
	return nil
}

// diagonals draws both families of a criss-cross lattice clipped to r.
func diagonals(p *plot.Plot, r gate.Rect, spacing float64, count int, c color.Color) error {
	if spacing <= 0 {
		return nil
	}
	for i := 0; i < count; i++ {
		// rising family: y - x = k
		k := -r.W + float64(i)*spacing
		x0, x1 := math.Max(0, -k), math.Min(r.W, r.H-k)
		if x0 < x1 {
			if err := addSegment(p, r.X+x0, r.Y+x0+k, r.X+x1, r.Y+x1+k, c, vg.Points(1.2)); err != nil {
				return err
			}
		}
		// falling family: y + x = k
		k = float64(i) * spacing
		x0, x1 = math.Max(0, k-r.H), math.Min(r.W, k)
		if x0 < x1 {
			if err := addSegment(p, r.X+x0, r.Y+k-x0, r.X+x1, r.Y+k-x1, c, vg.Points(1.2)); err != nil {
				return err
			}
		}
	}
	return nil
}

func drawFill(p *plot.Plot, d gate.Door, barColor color.Color) error {
	in := d.Inner
	f := d.Fill
	if f.Bars.Count() > maxMembers || f.Diagonal.Count > maxMembers {
		return fmt.Errorf("%w: %d bars, %d diagonals", ErrTooDetailed, f.Bars.Count(), f.Diagonal.Count)
	}
	switch f.Design {
	case gate.VerticalBars:
		for _, b := range f.Bars.Bars {
			if err := addRect(p, in.X+b.OffsetMm, in.Y, b.ThicknessMm, in.H, barColor, nil); err != nil {
				return err
			}
		}
	case gate.HorizontalBars:
		for _, b := range f.Bars.Bars {
			y := in.Y + in.H - b.OffsetMm - b.ThicknessMm
			if err := addRect(p, in.X, y, in.W, b.ThicknessMm, barColor, nil); err != nil {
				return err
			}
		}
	case gate.CrissCross:
		return diagonals(p, in, f.Diagonal.SpacingMm, f.Diagonal.Count, barColor)
	case gate.Sheet:
		if f.HasSheet {
			return addRect(p, in.X, in.Y, in.W, in.H, barColor, nil)
		}
	}
	return nil
}

func gateLayers(p *plot.Plot, g gate.Geometry, cfg gate.Config, frameColor, barColor color.Color) error {
	if !g.FrameOK {
		return addRect(p, 0, 0, g.WidthMm, g.HeightMm, background, frameColor)
	}
	if err := addRect(p, 0, 0, g.WidthMm, g.HeightMm, frameColor, nil); err != nil {
		return err
	}
	for i, d := range g.Doors {
		if err := addRect(p, d.Inner.X, d.Inner.Y, d.Inner.W, d.Inner.H, background, nil); err != nil {
			return err
		}
		c := barColor
		if i == 1 && cfg.RightDoorDesign != nil {
			c = hexColor(cfg.RightDoorDesign.Color, barColor)
		} else if i == 0 {
			c = hexColor(cfg.LeftDoorDesign.Color, barColor)
		}
		if err := drawFill(p, d, c); err != nil {
			return err
		}
	}
	return nil
}

// Gate draws a gate elevation.
func Gate(g gate.Geometry, cfg gate.Config) (*plot.Plot, error) {
	p := newPlot(g.WidthMm, g.HeightMm, fmt.Sprintf("%g x %g %s", cfg.Width, cfg.Height, cfg.Unit))
	frame := hexColor(cfg.FrameColor, defaultFrame)
	if err := gateLayers(p, g, cfg, frame, defaultBar); err != nil {
		return nil, err
	}
	return p, nil
}

// Window draws a window elevation. When grill is not nil its frame outline and
// fill are laid over the window.
func Window(g window.Geometry, cfg window.Config, grill *gate.Geometry) (*plot.Plot, error) {
	p := newPlot(g.WidthMm, g.HeightMm, fmt.Sprintf("%g x %g %s", cfg.Width, cfg.Height, cfg.Unit))
	frame := hexColor(cfg.Color, color.RGBA{R: 0xE5, G: 0xE7, B: 0xEB, A: 255})

	if err := addRect(p, 0, 0, g.WidthMm, g.HeightMm, frame, sashLine); err != nil {
		return nil, err
	}
	if g.OK {
		of := g.Profiles.OuterFrame
		vm := g.Profiles.VerticalMullion.WidthMm
		hm := g.Profiles.HorizontalMullion.HeightMm
		for _, x := range g.VerticalMullionsX {
			if err := addRect(p, x, of.WidthMm, vm, g.HeightMm-2*of.WidthMm, frame, sashLine); err != nil {
				return nil, err
			}
		}
		for _, y := range g.HorizontalMullionsY {
			if err := addRect(p, of.HeightMm, y, g.WidthMm-2*of.HeightMm, hm, frame, sashLine); err != nil {
				return nil, err
			}
		}
		for _, panel := range g.Panels {
			if err := drawPanel(p, panel); err != nil {
				return nil, err
			}
		}
	}

	if grill != nil && grill.FrameOK {
		for _, d := range grill.Doors {
			if err := drawFill(p, d, grillBar); err != nil {
				return nil, err
			}
		}
	}
	return p, nil
}

func drawPanel(p *plot.Plot, panel window.Panel) error {
	if err := addRect(p, panel.X, panel.Y, panel.W, panel.H, glass, sashLine); err != nil {
		return err
	}
	if panel.Cell.HasMesh {
		spacing := math.Max(panel.W, panel.H) / 12
		r := gate.Rect{X: panel.X, Y: panel.Y, W: panel.W, H: panel.H}
		n := int(math.Ceil((panel.W + panel.H) / spacing))
		if err := diagonals(p, r, spacing, n, meshLine); err != nil {
			return err
		}
	}
	for _, f := range panel.Cell.Fittings {
		x := panel.X + f.X*panel.W
		// fitting Y is measured from the top of the panel
		y := panel.Y + (1-f.Y)*panel.H
		s, err := plotter.NewScatter(plotter.XYs{{X: x, Y: y}})
		if err != nil {
			return err
		}
		s.GlyphStyle.Color = sashLine
		s.GlyphStyle.Radius = vg.Points(3 * math.Max(f.Size, 0.5))
		if f.Type == window.Hinge {
			s.GlyphStyle.Shape = draw.BoxGlyph{}
		} else {
			s.GlyphStyle.Shape = draw.CircleGlyph{}
		}
		p.Add(s)
	}
	return addLabel(p, panel.X+panel.W/2, panel.Y+panel.H/2, string(panel.Cell.Type))
}

// Size picks a canvas of the given width keeping the design's aspect ratio.
func Size(widthMm, heightMm float64, width vg.Length) (vg.Length, vg.Length) {
	if widthMm <= 0 || heightMm <= 0 {
		return width, width
	}
	h := width * vg.Length(heightMm/widthMm)
	if h > 2*width {
		h = 2 * width
	}
	if h < width/4 {
		h = width / 4
	}
	return width, h
}

// Render writes p as PNG or SVG.
func Render(w io.Writer, p *plot.Plot, format string, width, height vg.Length) error {
	switch format {
	case PNG, SVG:
	default:
		return fmt.Errorf("unsupported preview format %q", format)
	}
	wt, err := p.WriterTo(width, height, format)
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}
