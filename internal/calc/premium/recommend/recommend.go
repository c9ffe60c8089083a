package recommend

import (
	"fmt"

	calc "Ironforge/internal/calc"
	"Ironforge/internal/calc/gate"
	"Ironforge/internal/calc/units"
	"Ironforge/internal/catalog"
)

type FrameInput struct {
	Width    float64       `json:"width"`
	Height   float64       `json:"height"`
	Unit     units.Unit    `json:"unit"`
	GateType gate.GateType `json:"gateType,omitempty"`
}

type FrameResult struct {
	FrameProfileID   string  `json:"frameProfileId"`
	FrameProfileName string  `json:"frameProfileName"`
	BarProfileID     string  `json:"barProfileId"`
	GapMm            float64 `json:"gapMm"`
	AreaSqM          float64 `json:"areaSqM"`
	Notes            string  `json:"notes"`
}

type band struct {
	maxSqM float64
	frame  string
	bar    string
	gapMm  float64
	notes  string
}

// bands are ordered by area; the last one has no upper bound.
var bands = []band{
	{2, "p16", "p6", 100, "Light frame for windows grills and small gates."},
	{5, "p26", "p7", 100, "Standard frame for single gates."},
	{8, "p29", "p11", 120, "Heavy frame for wide or tall gates."},
	{0, "p33", "p11", 120, "Rectangular section for very large gates."},
}

// Frame picks a frame and bar section from the opening area.
func Frame(in FrameInput, cat *catalog.Catalog) (FrameResult, error) {
	if in.Unit == "" {
		in.Unit = units.Millimeter
	}
	wMm, err := units.ToMm(in.Width, in.Unit)
	if err != nil {
		return FrameResult{}, err
	}
	hMm, _ := units.ToMm(in.Height, in.Unit)
	if wMm <= 0 || hMm <= 0 {
		return FrameResult{}, &calc.ConfigError{Field: "size", Value: fmt.Sprintf("%gx%g", in.Width, in.Height)}
	}
	area, _ := calc.Area(wMm, hMm)

	b := bands[len(bands)-1]
	for _, cand := range bands[:len(bands)-1] {
		if area <= cand.maxSqM {
			b = cand
			break
		}
	}
	// Two moving leaves hang off one post, so they need the next section up.
	if in.GateType == gate.SlidingOpenable && b.frame == "p16" {
		b = bands[1]
	}

	frame, ok := cat.Gate(b.frame)
	if !ok {
		return FrameResult{}, fmt.Errorf("frame profile %s not in catalog", b.frame)
	}
	if _, ok := cat.Gate(b.bar); !ok {
		return FrameResult{}, fmt.Errorf("bar profile %s not in catalog", b.bar)
	}
	return FrameResult{
		FrameProfileID:   frame.ID,
		FrameProfileName: frame.Name,
		BarProfileID:     b.bar,
		GapMm:            b.gapMm,
		AreaSqM:          area,
		Notes:            b.notes,
	}, nil
}

// Gate builds a complete vertical-bar gate around the recommended sections.
// Gaps are converted to the input unit.
func Gate(in FrameInput, cat *catalog.Catalog) (gate.Config, error) {
	res, err := Frame(in, cat)
	if err != nil {
		return gate.Config{}, err
	}
	cfg := gate.Default()
	cfg.Width, cfg.Height = in.Width, in.Height
	if in.Unit != "" {
		cfg.Unit = in.Unit
	}
	if in.GateType != "" {
		cfg.GateType = in.GateType
	}
	gap, err := units.FromMm(res.GapMm, cfg.Unit)
	if err != nil {
		return gate.Config{}, err
	}
	cfg.FrameProfileID = res.FrameProfileID
	cfg.LeftDoorDesign.Sequence = []gate.Step{{ProfileID: res.BarProfileID, Gap: gap}}
	cfg.RightDoorDesign = nil
	lw := cfg.Width / 3
	cfg.LeftDoorWidth = &lw
	return cfg, nil
}
