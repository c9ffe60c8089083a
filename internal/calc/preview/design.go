package preview

import (
	"bytes"
	"errors"
	"fmt"

	calc "Ironforge/internal/calc"
	"Ironforge/internal/calc/gate"
	"Ironforge/internal/calc/window"
	"Ironforge/internal/catalog"
	"Ironforge/internal/quote"

	"github.com/disintegration/imaging"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
)

// ThumbnailPx bounds the longer side of item thumbnails.
const ThumbnailPx = 320

// Request selects what to draw. Exactly one of Gate and Window is used,
// following ProductType.
type Request struct {
	ProductType quote.ProductType `json:"productType"`
	Gate        *gate.Config      `json:"gate,omitempty"`
	Window      *window.Config    `json:"window,omitempty"`
}

// Design decomposes the requested product and draws it. It also returns the
// drawing's size in millimeters.
func Design(req Request, cat *catalog.Catalog) (*plot.Plot, float64, float64, error) {
	switch req.ProductType {
	case quote.Gate:
		if req.Gate == nil {
			return nil, 0, 0, errors.New("gate preview without gate config")
		}
		g, err := gate.Decompose(*req.Gate, cat)
		if err != nil {
			return nil, 0, 0, err
		}
		p, err := Gate(g, *req.Gate)
		return p, g.WidthMm, g.HeightMm, err

	case quote.Window:
		if req.Window == nil {
			return nil, 0, 0, errors.New("window preview without window config")
		}
		g, err := window.Decompose(*req.Window, cat)
		if err != nil {
			return nil, 0, 0, err
		}
		var grill *gate.Geometry
		if req.Window.GrillConfig != nil {
			gg, err := gate.Decompose(*req.Window.GrillConfig, cat)
			if err != nil {
				return nil, 0, 0, fmt.Errorf("grill: %w", err)
			}
			grill = &gg
		}
		p, err := Window(g, *req.Window, grill)
		return p, g.WidthMm, g.HeightMm, err
	}
	return nil, 0, 0, &calc.ConfigError{Field: "product type", Value: string(req.ProductType)}
}

// PNGBytes renders a design at the given canvas width.
func PNGBytes(req Request, cat *catalog.Catalog, width vg.Length) ([]byte, error) {
	p, wMm, hMm, err := Design(req, cat)
	if err != nil {
		return nil, err
	}
	w, h := Size(wMm, hMm, width)
	var buf bytes.Buffer
	if err := Render(&buf, p, PNG, w, h); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Thumbnail shrinks a rendered image to fit within max x max pixels and
// re-encodes it as PNG.
func Thumbnail(data []byte, max int) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode preview: %w", err)
	}
	img = imaging.Fit(img, max, max, imaging.Lanczos)
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ItemThumbnail returns the renderer attached to quotation items.
func ItemThumbnail(cat *catalog.Catalog) func(quote.Item) ([]byte, error) {
	return func(it quote.Item) ([]byte, error) {
		data, err := PNGBytes(Request{ProductType: it.ProductType, Gate: it.Gate, Window: it.Window}, cat, 4*vg.Inch)
		if err != nil {
			return nil, err
		}
		return Thumbnail(data, ThumbnailPx)
	}
}
