package window

import (
	"fmt"

	calc "Ironforge/internal/calc"
	"Ironforge/internal/calc/gate"
	"Ironforge/internal/calc/units"
)

type CellType string

const (
	Fixed    CellType = "fixed"
	Sliding  CellType = "sliding"
	Casement CellType = "casement"
	TopHung  CellType = "top-hung"
	Glass    CellType = "glass"
)

var CellTypes = []CellType{Fixed, Sliding, Casement, TopHung, Glass}

func (t CellType) Valid() bool {
	for _, v := range CellTypes {
		if t == v {
			return true
		}
	}
	return false
}

type FittingType string

const (
	Handle FittingType = "handle"
	Hinge  FittingType = "hinge"
)

// Fitting X and Y are relative to the panel, 0..1.
type Fitting struct {
	ID       string      `json:"id"`
	Type     FittingType `json:"type"`
	X        float64     `json:"x"`
	Y        float64     `json:"y"`
	Size     float64     `json:"size"`
	Rotation float64     `json:"rotation"`
}

type GridCell struct {
	ID       string    `json:"id"`
	Type     CellType  `json:"type"`
	HasMesh  bool      `json:"hasMesh"`
	Fittings []Fitting `json:"fittings"`
}

func CellID(row, col int) string {
	return fmt.Sprintf("r%dc%d", row, col)
}

// DefaultCell is what a new grid position starts as.
func DefaultCell(row, col int) GridCell {
	return GridCell{ID: CellID(row, col), Type: Fixed, Fittings: []Fitting{}}
}

type FrameProfiles struct {
	OuterFrame        string `json:"outerFrame"`
	VerticalMullion   string `json:"verticalMullion"`
	HorizontalMullion string `json:"horizontalMullion"`
}

type ShutterProfiles struct {
	HandleSection    string `json:"handleSection"`
	TopBottomSection string `json:"topBottomSection"`
	InterlockSection string `json:"interlockSection"`
	CasementSash     string `json:"casementSash"`
}

// Config is a window of Rows x Cols panels. RowSizes and ColSizes are relative
// weights; Grid always has len(RowSizes) rows of len(ColSizes) cells.
type Config struct {
	Width            float64         `json:"width"`
	Height           float64         `json:"height"`
	Unit             units.Unit      `json:"unit"`
	RowSizes         []float64       `json:"rowSizes"`
	ColSizes         []float64       `json:"colSizes"`
	Grid             [][]GridCell    `json:"grid"`
	GlassThicknessMm float64         `json:"glassThicknessMm"`
	FrameProfiles    FrameProfiles   `json:"frameProfiles"`
	ShutterProfiles  ShutterProfiles `json:"shutterProfiles"`
	Color            string          `json:"color,omitempty"`
	Texture          string          `json:"texture,omitempty"`
	GrillConfig      *gate.Config    `json:"grillConfig,omitempty"`
}

// Cell returns the grid cell at (r, c), or a default cell when the grid does
// not reach that far.
func (c Config) Cell(r, col int) GridCell {
	if r < len(c.Grid) && col < len(c.Grid[r]) {
		return c.Grid[r][col]
	}
	return DefaultCell(r, col)
}

func (c Config) Clone() Config {
	out := c
	out.RowSizes = append([]float64(nil), c.RowSizes...)
	out.ColSizes = append([]float64(nil), c.ColSizes...)
	out.Grid = make([][]GridCell, len(c.Grid))
	for r, row := range c.Grid {
		out.Grid[r] = make([]GridCell, len(row))
		for col, cell := range row {
			cell.Fittings = append([]Fitting(nil), cell.Fittings...)
			out.Grid[r][col] = cell
		}
	}
	if c.GrillConfig != nil {
		g := c.GrillConfig.Clone()
		out.GrillConfig = &g
	}
	return out
}

type Axis string

const (
	Rows Axis = "rows"
	Cols Axis = "cols"
)

// Resize adds or removes trailing rows or columns, never going below one.
// Cells keep their content by position; new cells are fixed panes with no mesh
// and no fittings.
func (c Config) Resize(axis Axis, delta int) (Config, error) {
	out := c.Clone()
	var sizes *[]float64
	switch axis {
	case Rows:
		sizes = &out.RowSizes
	case Cols:
		sizes = &out.ColSizes
	default:
		return Config{}, &calc.ConfigError{Field: "axis", Value: string(axis)}
	}

	n := len(*sizes) + delta
	if n < 1 {
		n = 1
	}
	for len(*sizes) < n {
		*sizes = append(*sizes, 1)
	}
	*sizes = (*sizes)[:n]

	grid := make([][]GridCell, len(out.RowSizes))
	for r := range grid {
		grid[r] = make([]GridCell, len(out.ColSizes))
		for col := range grid[r] {
			grid[r][col] = out.Cell(r, col)
		}
	}
	out.Grid = grid
	return out, nil
}

func (c Config) Validate() error {
	if _, err := units.Factor(c.Unit); err != nil {
		return err
	}
	if len(c.Grid) != len(c.RowSizes) {
		return fmt.Errorf("grid has %d rows, rowSizes has %d", len(c.Grid), len(c.RowSizes))
	}
	for r, row := range c.Grid {
		if len(row) != len(c.ColSizes) {
			return fmt.Errorf("grid row %d has %d cells, colSizes has %d", r, len(row), len(c.ColSizes))
		}
		for _, cell := range row {
			if !cell.Type.Valid() {
				return &calc.ConfigError{Field: "cell " + cell.ID + " type", Value: string(cell.Type)}
			}
			for _, f := range cell.Fittings {
				if f.Type != Handle && f.Type != Hinge {
					return &calc.ConfigError{Field: "fitting type", Value: string(f.Type)}
				}
				if f.X < 0 || f.X > 1 || f.Y < 0 || f.Y > 1 {
					return fmt.Errorf("fitting %s in %s: position (%v, %v) outside the panel", f.ID, cell.ID, f.X, f.Y)
				}
			}
		}
	}
	if c.GrillConfig != nil {
		if err := c.GrillConfig.Validate(); err != nil {
			return fmt.Errorf("grill: %w", err)
		}
	}
	return nil
}

// Default is a 2400 x 1200 three-panel window, one fixed and two sliding.
func Default() Config {
	grid := [][]GridCell{{DefaultCell(0, 0), DefaultCell(0, 1), DefaultCell(0, 2)}}
	grid[0][1].Type = Sliding
	grid[0][2].Type = Sliding
	return Config{
		Width:            2400,
		Height:           1200,
		Unit:             units.Millimeter,
		RowSizes:         []float64{1},
		ColSizes:         []float64{1, 1, 1},
		Grid:             grid,
		GlassThicknessMm: 5,
		FrameProfiles: FrameProfiles{
			OuterFrame:        "wp_of_1",
			VerticalMullion:   "wp_vm_1",
			HorizontalMullion: "wp_hm_1",
		},
		ShutterProfiles: ShutterProfiles{
			HandleSection:    "wp_sh_1",
			TopBottomSection: "wp_st_1",
			InterlockSection: "wp_si_1",
			CasementSash:     "wp_cs_1",
		},
		Color: "#E5E7EB",
	}
}

// DefaultGrill is the grill attached when a user ticks "security grill": the
// default gate design sized to the window.
func DefaultGrill(c Config) gate.Config {
	g := gate.Default()
	g.Width, g.Height, g.Unit = c.Width, c.Height, c.Unit
	return g
}
