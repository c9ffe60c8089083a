package units

import (
	calc "Ironforge/internal/calc"
)

type Unit string

const (
	Millimeter Unit = "mm"
	Centimeter Unit = "cm"
	Inch       Unit = "in"
	Foot       Unit = "ft"
)

var factors = map[Unit]float64{
	Millimeter: 1,
	Centimeter: 10,
	Inch:       25.4,
	Foot:       304.8,
}

// All lists the supported units in display order.
var All = []Unit{Millimeter, Centimeter, Inch, Foot}

// Factor returns how many millimeters one unit is. Unknown units are an error,
// never a silent 1.
func Factor(u Unit) (float64, error) {
	f, ok := factors[u]
	if !ok {
		return 0, &calc.ConfigError{Field: "unit", Value: string(u)}
	}
	return f, nil
}

func ToMm(v float64, u Unit) (float64, error) {
	f, err := Factor(u)
	if err != nil {
		return 0, err
	}
	return v * f, nil
}

func FromMm(mm float64, u Unit) (float64, error) {
	f, err := Factor(u)
	if err != nil {
		return 0, err
	}
	return mm / f, nil
}
