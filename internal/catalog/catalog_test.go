package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultLookups(t *testing.T) {
	c := Default()

	p, ok := c.Gate("p26")
	if !ok {
		t.Fatal("p26 not found")
	}
	if p.WeightKgPerMeter != 2.31 || p.WidthMm != 40 {
		t.Errorf("unexpected p26: %+v", p)
	}
	if p.Basis != PerMeter {
		t.Errorf("p26 basis expected %s, got %s", PerMeter, p.Basis)
	}

	s, ok := c.Gate(SheetStockID)
	if !ok || s.Basis != PerSqMeter || s.WeightKgPerMeter != 11.78 {
		t.Errorf("unexpected sheet stock: %+v ok=%v", s, ok)
	}

	if _, ok := c.Gate("p0"); ok {
		t.Error("placeholder row must not resolve")
	}
	if _, ok := c.Gate("nope"); ok {
		t.Error("unknown id must not resolve")
	}
	if _, ok := c.Window("wp_cs_1"); !ok {
		t.Error("wp_cs_1 not found")
	}

	var nilCat *Catalog
	if _, ok := nilCat.Gate("p1"); ok {
		t.Error("nil catalog must not resolve")
	}
}

func TestWindowByCategory(t *testing.T) {
	got := Default().WindowByCategory(OuterFrame)
	if len(got) != 1 || got[0].ID != "wp_of_1" {
		t.Errorf("unexpected outer frames: %+v", got)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	data := `
gate:
  - id: f1
    name: 45x45x2
    weight_kg_per_meter: 2.6
    width_mm: 45
    height_mm: 45
    wall_thickness_mm: 2
  - id: s1
    name: 1.2mm sheet
    weight_kg_per_meter: 9.42
    width_mm: 1.2
    height_mm: 1.2
    basis: per_sq_meter
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	f1, ok := c.Gate("f1")
	if !ok || f1.Basis != PerMeter || f1.WeightKgPerMeter != 2.6 {
		t.Errorf("unexpected f1: %+v", f1)
	}
	s1, _ := c.Gate("s1")
	if s1.Basis != PerSqMeter {
		t.Errorf("s1 basis expected %s, got %s", PerSqMeter, s1.Basis)
	}
	if _, ok := c.Gate("p26"); ok {
		t.Error("gate section in file should replace the built-in table")
	}
	if _, ok := c.Window("wp_of_1"); !ok {
		t.Error("window table should fall back to built-in profiles")
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"duplicate", "gate:\n  - id: a\n  - id: a\n", "duplicate"},
		{"missing id", "gate:\n  - name: x\n", "missing id"},
		{"bad basis", "gate:\n  - id: a\n    basis: per_kg\n", "unknown basis"},
		{"bad category", "window:\n  - id: w\n    category: door\n", "unknown category"},
		{"bad yaml", "gate: [", "parse catalog"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}
