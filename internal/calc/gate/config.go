package gate

import (
	"fmt"

	calc "Ironforge/internal/calc"
	"Ironforge/internal/calc/units"
)

type GateType string

const (
	Sliding         GateType = "sliding"
	Openable        GateType = "openable"
	Fixed           GateType = "fixed"
	SlidingOpenable GateType = "sliding-openable"
)

var GateTypes = []GateType{Sliding, Openable, Fixed, SlidingOpenable}

func (g GateType) Valid() bool {
	for _, v := range GateTypes {
		if g == v {
			return true
		}
	}
	return false
}

type InnerDesign string

const (
	VerticalBars   InnerDesign = "vertical-bars"
	HorizontalBars InnerDesign = "horizontal-bars"
	CrissCross     InnerDesign = "criss-cross"
	Sheet          InnerDesign = "sheet"
)

var InnerDesigns = []InnerDesign{VerticalBars, HorizontalBars, CrissCross, Sheet}

func (d InnerDesign) Valid() bool {
	for _, v := range InnerDesigns {
		if d == v {
			return true
		}
	}
	return false
}

// Step is one bar of a repeating fill sequence. Gap is in the gate's unit.
type Step struct {
	ProfileID string  `json:"profileId"`
	Gap       float64 `json:"gap"`
}

type DoorDesign struct {
	InnerDesign InnerDesign `json:"innerDesign"`
	Sequence    []Step      `json:"innerDesignSequence"`
	Color       string      `json:"color,omitempty"`
	Texture     string      `json:"texture,omitempty"`
}

func (d DoorDesign) Clone() DoorDesign {
	d.Sequence = append([]Step(nil), d.Sequence...)
	return d
}

// validateGaps rejects negative gaps. A gap below zero lets a bar overlap the
// previous one, and with a criss-cross a gap near -thickness packs millions of
// diagonals into one leaf.
func (d DoorDesign) validateGaps(field string) error {
	for _, s := range d.Sequence {
		if s.Gap < 0 {
			return &calc.ConfigError{Field: field + ".innerDesignSequence.gap", Value: fmt.Sprint(s.Gap)}
		}
	}
	return nil
}

// Config describes a gate or grill. For sliding-openable gates the right leaf
// is whatever width remains after LeftDoorWidth; it is never stored.
type Config struct {
	Width           float64     `json:"width"`
	Height          float64     `json:"height"`
	Unit            units.Unit  `json:"unit"`
	GateType        GateType    `json:"gateType"`
	FrameProfileID  string      `json:"frameProfileId"`
	FrameColor      string      `json:"frameColor,omitempty"`
	FrameTexture    string      `json:"frameTexture,omitempty"`
	LeftDoorWidth   *float64    `json:"leftDoorWidth,omitempty"`
	LeftDoorDesign  DoorDesign  `json:"leftDoorDesign"`
	RightDoorDesign *DoorDesign `json:"rightDoorDesign,omitempty"`
}

// Clone returns a copy that shares no memory with c.
func (c Config) Clone() Config {
	out := c
	if c.LeftDoorWidth != nil {
		w := *c.LeftDoorWidth
		out.LeftDoorWidth = &w
	}
	out.LeftDoorDesign = c.LeftDoorDesign.Clone()
	if c.RightDoorDesign != nil {
		r := c.RightDoorDesign.Clone()
		out.RightDoorDesign = &r
	}
	return out
}

// LeftWidth is the left leaf width in the gate's unit, half the gate when unset.
func (c Config) LeftWidth() float64 {
	if c.LeftDoorWidth == nil || *c.LeftDoorWidth == 0 {
		return c.Width / 2
	}
	return *c.LeftDoorWidth
}

// RightDesign falls back to the left design when no separate one is set.
func (c Config) RightDesign() DoorDesign {
	if c.RightDoorDesign != nil {
		return *c.RightDoorDesign
	}
	return c.LeftDoorDesign
}

// Validate checks closed sets, sequence gaps and the leaf width invariant. The
// calculator does not call it: half-edited configs are still computed.
func (c Config) Validate() error {
	if _, err := units.Factor(c.Unit); err != nil {
		return err
	}
	if !c.GateType.Valid() {
		return &calc.ConfigError{Field: "gateType", Value: string(c.GateType)}
	}
	if !c.LeftDoorDesign.InnerDesign.Valid() {
		return &calc.ConfigError{Field: "leftDoorDesign.innerDesign", Value: string(c.LeftDoorDesign.InnerDesign)}
	}
	if c.RightDoorDesign != nil && !c.RightDoorDesign.InnerDesign.Valid() {
		return &calc.ConfigError{Field: "rightDoorDesign.innerDesign", Value: string(c.RightDoorDesign.InnerDesign)}
	}
	if err := c.LeftDoorDesign.validateGaps("leftDoorDesign"); err != nil {
		return err
	}
	if c.RightDoorDesign != nil {
		if err := c.RightDoorDesign.validateGaps("rightDoorDesign"); err != nil {
			return err
		}
	}
	if c.GateType == SlidingOpenable {
		lw := c.LeftWidth()
		if lw <= 0 || lw >= c.Width {
			return &calc.ConfigError{Field: "leftDoorWidth", Value: fmt.Sprint(lw)}
		}
	}
	return nil
}

// Default is the starting configuration offered to a new design.
func Default() Config {
	left := 1000.0
	design := DoorDesign{
		InnerDesign: VerticalBars,
		Sequence:    []Step{{ProfileID: "p7", Gap: 100}},
		Color:       "#374151",
	}
	right := design.Clone()
	return Config{
		Width:           3000,
		Height:          1500,
		Unit:            units.Millimeter,
		GateType:        Sliding,
		FrameProfileID:  "p26",
		FrameColor:      "#212121",
		LeftDoorWidth:   &left,
		LeftDoorDesign:  design,
		RightDoorDesign: &right,
	}
}
