package calc

import "fmt"

const SqFtPerSqM = 10.7639

// Result is what every structure calculator returns, so a quotation item can
// carry a gate or a window without caring which.
type Result struct {
	WidthMm       float64        `json:"widthMm"`
	HeightMm      float64        `json:"heightMm"`
	AreaSqM       float64        `json:"areaSqM"`
	AreaSqFt      float64        `json:"areaSqFt"`
	TotalWeightKg float64        `json:"totalWeightKg"`
	Hardware      []HardwareLine `json:"hardware,omitempty"`
	Warnings      []string       `json:"warnings,omitempty"`
}

type HardwareLine struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

type RateUnit string

const (
	PerSqFt RateUnit = "sqft"
	PerSqM  RateUnit = "sqm"
	PerKg   RateUnit = "kg"
)

func (u RateUnit) Valid() bool {
	switch u {
	case PerSqFt, PerSqM, PerKg:
		return true
	}
	return false
}

// Cost prices a result. A non-positive rate yields zero.
func Cost(r Result, rate float64, unit RateUnit) float64 {
	if rate <= 0 {
		return 0
	}
	switch unit {
	case PerSqFt:
		return r.AreaSqFt * rate
	case PerSqM:
		return r.AreaSqM * rate
	case PerKg:
		return r.TotalWeightKg * rate
	}
	return 0
}

// Area fills both area fields from millimeter dimensions.
func Area(widthMm, heightMm float64) (sqm, sqft float64) {
	sqm = (widthMm / 1000) * (heightMm / 1000)
	return sqm, sqm * SqFtPerSqM
}

// ConfigError reports a value outside a closed set (unit, gate type, ...).
type ConfigError struct {
	Field string
	Value string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s %q", e.Field, e.Value)
}
