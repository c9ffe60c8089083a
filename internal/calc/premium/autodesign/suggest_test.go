package autodesign

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"Ironforge/internal/calc/gate"
	"Ironforge/internal/calc/units"
	"Ironforge/internal/catalog"
)

type fakeProvider struct {
	answer string
	err    error
	prompt string
}

func (f *fakeProvider) Generate(_ context.Context, _, prompt string) (string, error) {
	f.prompt = prompt
	return f.answer, f.err
}

const privacyAnswer = `{
  "gateType": "sliding-openable",
  "frameProfileId": "p29",
  "leftDoorWidth": 1000,
  "leftDoorDesign": {"innerDesign": "sheet", "innerDesignSequence": [{"profileId": "p7", "gap": 100}]},
  "rightDoorDesign": {"innerDesign": "vertical-bars", "innerDesignSequence": [{"profileId": "p6", "gap": 80}, {"profileId": "p11", "gap": 120}]}
}`

func TestSuggestSlidingOpenable(t *testing.T) {
	cat := catalog.Default()
	fp := &fakeProvider{answer: privacyAnswer}
	s, err := Suggest(context.Background(), fp, "strong gate with privacy", gate.Default(), cat)
	if err != nil {
		t.Fatal(err)
	}
	if s.GateType != gate.SlidingOpenable || s.FrameProfileID != "p29" {
		t.Errorf("unexpected suggestion %+v", s)
	}
	if s.LeftDoorWidth == nil || *s.LeftDoorWidth != 1000 {
		t.Errorf("left width not kept: %v", s.LeftDoorWidth)
	}
	if s.RightDoorDesign == nil || s.RightDoorDesign.InnerDesign != gate.VerticalBars || len(s.RightDoorDesign.Sequence) != 2 {
		t.Errorf("right design not kept: %+v", s.RightDoorDesign)
	}
	for _, want := range []string{"width: 3000 mm", "p29: 50x50x2", "strong gate with privacy"} {
		if !strings.Contains(fp.prompt, want) {
			t.Errorf("prompt is missing %q", want)
		}
	}
	if strings.Contains(fp.prompt, "sheet-1.5") || strings.Contains(fp.prompt, "p0:") {
		t.Error("prompt should list only bar profiles")
	}
}

func TestSuggestCopiesLeftForSingleLeaf(t *testing.T) {
	answer := `{'gateType': 'fixed', 'frameProfileId': 'p26', 'leftDoorWidth': 900,
		'leftDoorDesign': {'innerDesign': 'criss-cross', 'innerDesignSequence': [{'profileId': 'p7', 'gap': 150}]},
		'rightDoorDesign': {'innerDesign': 'sheet', 'innerDesignSequence': [{'profileId': 'p7', 'gap': 100}]},}`
	cfg := gate.Default()
	cfg.Unit = units.Centimeter
	cfg.Width, cfg.Height = 300, 150

	s, err := Parse(answer, cfg, catalog.Default())
	if err != nil {
		t.Fatal(err)
	}
	if s.LeftDoorWidth != nil {
		t.Error("leftDoorWidth only applies to sliding-openable gates")
	}
	if s.RightDoorDesign == nil || s.RightDoorDesign.InnerDesign != gate.CrissCross {
		t.Fatalf("right leaf should repeat the left: %+v", s.RightDoorDesign)
	}
	if math.Abs(s.LeftDoorDesign.Sequence[0].Gap-15) > 1e-9 {
		t.Errorf("gap should be converted to cm, got %v", s.LeftDoorDesign.Sequence[0].Gap)
	}
	s.RightDoorDesign.Sequence[0].Gap = 1
	if s.LeftDoorDesign.Sequence[0].Gap == 1 {
		t.Error("right design shares memory with the left")
	}
}

func TestParseRejects(t *testing.T) {
	cat := catalog.Default()
	tests := []struct {
		name   string
		answer string
	}{
		{"no left design", `{"gateType":"sliding","frameProfileId":"p26"}`},
		{"unknown design", `{"leftDoorDesign":{"innerDesign":"waves","innerDesignSequence":[{"profileId":"p7","gap":100}]}}`},
		{"empty sequence", `{"leftDoorDesign":{"innerDesign":"sheet","innerDesignSequence":[]}}`},
		{"unknown profile", `{"leftDoorDesign":{"innerDesign":"vertical-bars","innerDesignSequence":[{"profileId":"p99","gap":100}]}}`},
		{"gap as text", `{"leftDoorDesign":{"innerDesign":"vertical-bars","innerDesignSequence":[{"profileId":"p7","gap":"100"}]}}`},
		{"missing profile id", `{"leftDoorDesign":{"innerDesign":"vertical-bars","innerDesignSequence":[{"gap":100}]}}`},
	}
	for _, tt := range tests {
		if _, err := Parse(tt.answer, gate.Default(), cat); !errors.Is(err, ErrNoSuggestion) {
			t.Errorf("%s: expected ErrNoSuggestion, got %v", tt.name, err)
		}
	}
}

func TestParseDropsInvalidFields(t *testing.T) {
	answer := `{"gateType":"revolving","frameProfileId":"p404","leftDoorWidth":5000,
		"leftDoorDesign":{"innerDesign":"horizontal-bars","innerDesignSequence":[{"profileId":"p7","gap":100}]}}`
	cfg := gate.Default()
	cfg.GateType = gate.SlidingOpenable
	s, err := Parse(answer, cfg, catalog.Default())
	if err != nil {
		t.Fatal(err)
	}
	if s.GateType != "" || s.FrameProfileID != "" || s.LeftDoorWidth != nil || s.RightDoorDesign != nil {
		t.Errorf("invalid fields should be dropped: %+v", s)
	}
}

func TestApplyKeepsColors(t *testing.T) {
	cfg := gate.Default()
	s, err := Parse(privacyAnswer, cfg, catalog.Default())
	if err != nil {
		t.Fatal(err)
	}
	out := Apply(cfg, s)
	if out.GateType != gate.SlidingOpenable || out.FrameProfileID != "p29" {
		t.Errorf("suggestion not applied: %+v", out)
	}
	if out.LeftDoorDesign.Color != cfg.LeftDoorDesign.Color || out.RightDoorDesign.Color != cfg.RightDoorDesign.Color {
		t.Error("colors should survive a suggestion")
	}
	if err := out.Validate(); err != nil {
		t.Errorf("applied config does not validate: %v", err)
	}
	if cfg.FrameProfileID != "p26" {
		t.Error("Apply modified its input")
	}
}

func TestSuggestUnavailable(t *testing.T) {
	if _, err := Suggest(context.Background(), nil, "x", gate.Default(), catalog.Default()); !errors.Is(err, ErrUnavailable) {
		t.Errorf("expected ErrUnavailable, got %v", err)
	}
	if _, err := NewGeminiProvider(context.Background(), "", ""); !errors.Is(err, ErrUnavailable) {
		t.Errorf("expected ErrUnavailable without key, got %v", err)
	}
}

func TestHandler(t *testing.T) {
	cat := catalog.Default()
	body := `{"prompt":"privacy","config":` + func() string {
		b, _ := json.Marshal(gate.Default())
		return string(b)
	}() + `}`

	tests := []struct {
		name     string
		provider Provider
		code     int
		source   string
	}{
		{"model", &fakeProvider{answer: privacyAnswer}, http.StatusOK, "model"},
		{"fallback", nil, http.StatusOK, "recommend"},
		{"unusable answer", &fakeProvider{answer: `{}`}, http.StatusUnprocessableEntity, ""},
		{"provider down", &fakeProvider{err: errors.New("quota")}, http.StatusBadGateway, ""},
	}
	for _, tt := range tests {
		h := &Handler{Provider: tt.provider, Catalog: cat}
		rec := httptest.NewRecorder()
		h.Suggest(rec, httptest.NewRequest(http.MethodPost, "/tools/suggest", strings.NewReader(body)))
		if rec.Code != tt.code {
			t.Errorf("%s: expected %d, got %d", tt.name, tt.code, rec.Code)
			continue
		}
		if tt.code != http.StatusOK {
			continue
		}
		var res SuggestResponse
		if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
			t.Fatal(err)
		}
		if res.Source != tt.source {
			t.Errorf("%s: source %q", tt.name, res.Source)
		}
	}
}
