package autodesign

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"Ironforge/internal/calc/gate"
	"Ironforge/internal/calc/units"
	"Ironforge/internal/catalog"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
)

var (
	// ErrNoSuggestion means the model answered but no usable left leaf
	// design could be recovered from it.
	ErrNoSuggestion = errors.New("no valid design suggestion")
	ErrUnavailable  = errors.New("design suggestions are not configured")
)

const systemPrompt = `You translate requests for iron gate designs into JSON.
Rules:
1. Keep the current size and gate type when the request does not mention them.
2. Change the gate type only when the request asks for it.
3. A strong or heavy frame means a thicker section such as p29 (50x50x2). Privacy means the sheet design. Simple vertical lines means vertical-bars.
4. Only sliding-openable gates may have different left and right designs. Otherwise rightDoorDesign repeats leftDoorDesign exactly.
5. Gaps are millimeters.
6. Sequences have 1 to 3 steps.`

// Suggestion holds the validated parts of a model answer. Lengths are in the
// unit of the config it was made for. Nil or empty fields were missing or
// invalid and leave the config untouched.
type Suggestion struct {
	GateType        gate.GateType    `json:"gateType,omitempty"`
	FrameProfileID  string           `json:"frameProfileId,omitempty"`
	LeftDoorWidth   *float64         `json:"leftDoorWidth,omitempty"`
	LeftDoorDesign  gate.DoorDesign  `json:"leftDoorDesign"`
	RightDoorDesign *gate.DoorDesign `json:"rightDoorDesign,omitempty"`
}

type rawStep struct {
	ProfileID string      `json:"profileId"`
	Gap       interface{} `json:"gap"`
}

type rawDesign struct {
	InnerDesign string    `json:"innerDesign"`
	Sequence    []rawStep `json:"innerDesignSequence"`
}

type rawSuggestion struct {
	GateType        string      `json:"gateType"`
	FrameProfileID  string      `json:"frameProfileId"`
	LeftDoorWidth   interface{} `json:"leftDoorWidth"`
	LeftDoorDesign  *rawDesign  `json:"leftDoorDesign"`
	RightDoorDesign *rawDesign  `json:"rightDoorDesign"`
}

func Prompt(request string, current gate.Config, cat *catalog.Catalog) string {
	unit := current.Unit
	if unit == "" {
		unit = units.Millimeter
	}
	orUnset := func(v float64) string {
		if v <= 0 {
			return "not set"
		}
		return fmt.Sprintf("%g %s", v, unit)
	}
	gateType := string(current.GateType)
	if gateType == "" {
		gateType = "not set"
	}

	var profiles []string
	for _, p := range cat.GateProfiles() {
		if p.Placeholder() || p.Basis != catalog.PerMeter {
			continue
		}
		profiles = append(profiles, p.ID+": "+p.Name)
	}

	var b strings.Builder
	b.WriteString("Current gate:\n")
	fmt.Fprintf(&b, "- width: %s\n", orUnset(current.Width))
	fmt.Fprintf(&b, "- height: %s\n", orUnset(current.Height))
	fmt.Fprintf(&b, "- gate type: %s\n", gateType)
	if current.GateType == gate.SlidingOpenable {
		fmt.Fprintf(&b, "- left leaf width: %s\n", orUnset(current.LeftWidth()))
	}
	fmt.Fprintf(&b, "\nRequest: %q\n\n", request)
	b.WriteString("Profiles (WIDTHxHEIGHTxWALL): ")
	b.WriteString(strings.Join(profiles, ", "))
	return b.String()
}

// Suggest asks the provider for a design and keeps only what resolves against
// the enums and the catalog.
func Suggest(ctx context.Context, p Provider, request string, current gate.Config, cat *catalog.Catalog) (Suggestion, error) {
	if p == nil {
		return Suggestion{}, ErrUnavailable
	}
	text, err := p.Generate(ctx, systemPrompt, Prompt(request, current, cat))
	if err != nil {
		return Suggestion{}, err
	}
	return Parse(text, current, cat)
}

// Parse validates a model answer for the given config.
func Parse(text string, current gate.Config, cat *catalog.Catalog) (Suggestion, error) {
	repaired, err := jsonrepair.RepairJSON(text)
	if err != nil {
		return Suggestion{}, fmt.Errorf("%w: %v", ErrNoSuggestion, err)
	}
	var raw rawSuggestion
	if err := json.Unmarshal([]byte(repaired), &raw); err != nil {
		return Suggestion{}, fmt.Errorf("%w: %v", ErrNoSuggestion, err)
	}

	unit := current.Unit
	if unit == "" {
		unit = units.Millimeter
	}
	left, ok := door(raw.LeftDoorDesign, unit, cat)
	if !ok {
		return Suggestion{}, ErrNoSuggestion
	}
	s := Suggestion{LeftDoorDesign: left}

	if gt := gate.GateType(raw.GateType); gt.Valid() {
		s.GateType = gt
	}
	if p, ok := cat.Gate(raw.FrameProfileID); ok {
		s.FrameProfileID = p.ID
	}

	gateType := current.GateType
	if s.GateType != "" {
		gateType = s.GateType
	}
	if gateType != gate.SlidingOpenable {
		r := left.Clone()
		s.RightDoorDesign = &r
		return s, nil
	}
	if mm, ok := raw.LeftDoorWidth.(float64); ok {
		if w, err := units.FromMm(mm, unit); err == nil && w > 0 && w < current.Width {
			s.LeftDoorWidth = &w
		}
	}
	if right, ok := door(raw.RightDoorDesign, unit, cat); ok {
		s.RightDoorDesign = &right
	}
	return s, nil
}

func door(raw *rawDesign, unit units.Unit, cat *catalog.Catalog) (gate.DoorDesign, bool) {
	if raw == nil || len(raw.Sequence) == 0 {
		return gate.DoorDesign{}, false
	}
	d := gate.DoorDesign{InnerDesign: gate.InnerDesign(raw.InnerDesign)}
	if !d.InnerDesign.Valid() {
		return gate.DoorDesign{}, false
	}
	for _, st := range raw.Sequence {
		gapMm, ok := st.Gap.(float64)
		if !ok || st.ProfileID == "" {
			return gate.DoorDesign{}, false
		}
		if _, ok := cat.Gate(st.ProfileID); !ok {
			return gate.DoorDesign{}, false
		}
		gap, err := units.FromMm(gapMm, unit)
		if err != nil {
			return gate.DoorDesign{}, false
		}
		d.Sequence = append(d.Sequence, gate.Step{ProfileID: st.ProfileID, Gap: gap})
	}
	return d, true
}

// Apply merges a suggestion into cfg. Colors and textures stay as they were.
func Apply(cfg gate.Config, s Suggestion) gate.Config {
	out := cfg.Clone()
	if s.GateType != "" {
		out.GateType = s.GateType
	}
	if s.FrameProfileID != "" {
		out.FrameProfileID = s.FrameProfileID
	}
	if s.LeftDoorWidth != nil {
		w := *s.LeftDoorWidth
		out.LeftDoorWidth = &w
	}
	out.LeftDoorDesign = merge(cfg.LeftDoorDesign, s.LeftDoorDesign)
	if s.RightDoorDesign != nil {
		r := merge(cfg.RightDesign(), *s.RightDoorDesign)
		out.RightDoorDesign = &r
	}
	return out
}

func merge(old, next gate.DoorDesign) gate.DoorDesign {
	d := next.Clone()
	d.Color, d.Texture = old.Color, old.Texture
	return d
}
