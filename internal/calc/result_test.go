package calc

import (
	"math"
	"testing"
)

func TestCost(t *testing.T) {
	r := Result{AreaSqM: 2, AreaSqFt: 21.5278, TotalWeightKg: 50}
	tests := []struct {
		name string
		rate float64
		unit RateUnit
		want float64
	}{
		{"per kg", 120, PerKg, 6000},
		{"per sqm", 100, PerSqM, 200},
		{"per sqft", 10, PerSqFt, 215.278},
		{"zero rate", 0, PerKg, 0},
		{"negative rate", -5, PerKg, 0},
		{"unknown unit", 10, RateUnit("m"), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Cost(r, tt.rate, tt.unit)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestArea(t *testing.T) {
	sqm, sqft := Area(3000, 1500)
	if math.Abs(sqm-4.5) > 1e-12 {
		t.Errorf("sqm expected 4.5, got %v", sqm)
	}
	if math.Abs(sqft-4.5*SqFtPerSqM) > 1e-12 {
		t.Errorf("sqft expected %v, got %v", 4.5*SqFtPerSqM, sqft)
	}
}
