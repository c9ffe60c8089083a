package batch

import (
	"errors"
	"fmt"

	calc "Ironforge/internal/calc"
	"Ironforge/internal/calc/gate"
	"Ironforge/internal/calc/window"
	"Ironforge/internal/catalog"
	"Ironforge/internal/quote"
)

var ErrEmpty = errors.New("no items")

type Entry struct {
	Label       string            `json:"label,omitempty"`
	ProductType quote.ProductType `json:"productType"`
	Gate        *gate.Config      `json:"gate,omitempty"`
	Window      *window.Config    `json:"window,omitempty"`
	Quantity    int               `json:"quantity,omitempty"`
}

type Input struct {
	Items []Entry `json:"items"`
}

// Line is the outcome for one entry. Error is set instead of Result when the
// entry could not be calculated; the other entries still run.
type Line struct {
	Label    string       `json:"label,omitempty"`
	Quantity int          `json:"quantity"`
	Result   *calc.Result `json:"result,omitempty"`
	Grill    *calc.Result `json:"grill,omitempty"`
	Error    string       `json:"error,omitempty"`
}

type Output struct {
	Results       []Line  `json:"results"`
	Failed        int     `json:"failed"`
	TotalWeightKg float64 `json:"totalWeightKg"`
	TotalAreaSqFt float64 `json:"totalAreaSqFt"`
}

// Run calculates every entry in order. Totals are multiplied by quantity and
// include grills.
func Run(in Input, cat *catalog.Catalog) (Output, error) {
	if len(in.Items) == 0 {
		return Output{}, ErrEmpty
	}
	out := Output{Results: make([]Line, 0, len(in.Items))}
	for i, e := range in.Items {
		line := Line{Label: e.Label, Quantity: e.Quantity}
		if line.Quantity < 1 {
			line.Quantity = 1
		}
		res, grill, err := calculate(e, cat)
		if err != nil {
			line.Error = fmt.Sprintf("item %d: %v", i+1, err)
			out.Failed++
			out.Results = append(out.Results, line)
			continue
		}
		line.Result, line.Grill = &res, grill
		q := float64(line.Quantity)
		out.TotalWeightKg += res.TotalWeightKg * q
		out.TotalAreaSqFt += res.AreaSqFt * q
		if grill != nil {
			out.TotalWeightKg += grill.TotalWeightKg * q
		}
		out.Results = append(out.Results, line)
	}
	return out, nil
}

func calculate(e Entry, cat *catalog.Catalog) (calc.Result, *calc.Result, error) {
	switch e.ProductType {
	case quote.Gate:
		if e.Gate == nil {
			return calc.Result{}, nil, errors.New("missing gate config")
		}
		if err := e.Gate.Validate(); err != nil {
			return calc.Result{}, nil, err
		}
		res, err := gate.Calculate(*e.Gate, cat)
		return res, nil, err
	case quote.Window:
		if e.Window == nil {
			return calc.Result{}, nil, errors.New("missing window config")
		}
		if err := e.Window.Validate(); err != nil {
			return calc.Result{}, nil, err
		}
		res, err := window.Calculate(*e.Window, cat)
		if err != nil {
			return calc.Result{}, nil, err
		}
		grill, err := window.Grill(*e.Window, cat)
		return res, grill, err
	}
	return calc.Result{}, nil, &calc.ConfigError{Field: "product type", Value: string(e.ProductType)}
}
