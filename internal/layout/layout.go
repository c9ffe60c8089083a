// Package layout holds the placement rules shared by the weight calculators and
// the preview renderer. Both sides call these functions, so the bars that are
// drawn are exactly the bars that are weighed.
package layout

import "math"

// Step is one entry of a repeating bar sequence, already resolved to
// millimeters. Unresolved steps are skipped but still consume their turn.
type Step struct {
	ThicknessMm float64
	GapMm       float64
	Resolved    bool
}

func (s Step) usable() bool {
	return s.Resolved && s.ThicknessMm > 0
}

type Bar struct {
	Step        int     // index into the sequence
	OffsetMm    float64 // from the start of the span, after centering
	ThicknessMm float64
}

type Bars struct {
	Bars      []Bar
	PatternMm float64 // bars plus inner gaps, trailing gap excluded
	StartMm   float64 // leading margin that centers the pattern
}

func (b Bars) Count() int { return len(b.Bars) }

// Walk lays bars along a span by cycling through steps. It stops at the first
// bar that would overrun the span.
func Walk(spanMm float64, steps []Step) Bars {
	n := len(steps)
	if n == 0 || spanMm <= 0 {
		return Bars{}
	}

	minAdvance := math.Inf(1)
	for _, s := range steps {
		if !s.usable() {
			continue
		}
		if adv := s.ThicknessMm + math.Max(s.GapMm, 0); adv < minAdvance {
			minAdvance = adv
		}
	}
	if math.IsInf(minAdvance, 1) {
		return Bars{}
	}
	// Each usable bar moves at least minAdvance, and between two usable bars
	// there are fewer than n skipped steps.
	limit := (int(spanMm/minAdvance) + 2) * n

	var (
		out    Bars
		pos    float64
		misses int
		last   float64
	)
	for i := 0; i < limit; i++ {
		idx := i % n
		s := steps[idx]
		if !s.usable() {
			misses++
			if misses >= n {
				break
			}
			continue
		}
		misses = 0
		if pos+s.ThicknessMm > spanMm {
			break
		}
		out.Bars = append(out.Bars, Bar{Step: idx, OffsetMm: pos, ThicknessMm: s.ThicknessMm})
		last = s.GapMm
		pos += s.ThicknessMm + s.GapMm
	}
	if len(out.Bars) == 0 {
		return Bars{}
	}

	out.PatternMm = pos - last
	out.StartMm = (spanMm - out.PatternMm) / 2
	for i := range out.Bars {
		out.Bars[i].OffsetMm += out.StartMm
	}
	return out
}

// Diagonal describes one family of 45 degree bars of a criss-cross lattice.
// The lattice uses two mirrored families.
type Diagonal struct {
	Count     int
	SpacingMm float64
	LengthMm  float64
}

func Diagonals(widthMm, heightMm, thicknessMm, gapMm float64) Diagonal {
	spacing := thicknessMm + gapMm
	if spacing <= 0 {
		return Diagonal{}
	}
	count := int(math.Ceil((widthMm + heightMm) / spacing))
	if count < 0 {
		count = 0
	}
	return Diagonal{
		Count:     count,
		SpacingMm: spacing,
		LengthMm:  math.Sqrt(widthMm*widthMm + heightMm*heightMm),
	}
}

// TotalLengthMm is the bar length of both families together.
func (d Diagonal) TotalLengthMm() float64 {
	return float64(d.Count) * d.LengthMm * 2
}

// Split distributes total across weights proportionally. A zero weight sum is
// treated as 1.
func Split(total float64, weights []float64) []float64 {
	sum := 0.0
	for _, w := range weights {
		sum += w
	}
	if sum == 0 {
		sum = 1
	}
	out := make([]float64, len(weights))
	for i, w := range weights {
		out[i] = total * w / sum
	}
	return out
}

// Starts returns the running start offset of each segment laid out with a
// fixed separator between neighbours, beginning at origin.
func Starts(origin float64, sizes []float64, separator float64) []float64 {
	out := make([]float64, len(sizes))
	pos := origin
	for i, s := range sizes {
		out[i] = pos
		pos += s + separator
	}
	return out
}
