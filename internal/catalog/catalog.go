package catalog

// Basis says what WeightKgPerMeter means for a profile row.
type Basis string

const (
	PerMeter   Basis = "per_meter"
	PerSqMeter Basis = "per_sq_meter"
)

// SheetStockID is the sheet row used for plain sheet fills. Only one thickness
// is offered.
const SheetStockID = "sheet-1.5"

type Profile struct {
	ID               string  `json:"id" yaml:"id"`
	Name             string  `json:"name" yaml:"name"`
	WeightKgPerMeter float64 `json:"weightKgPerMeter" yaml:"weight_kg_per_meter"`
	WidthMm          float64 `json:"widthMm" yaml:"width_mm"`
	HeightMm         float64 `json:"heightMm" yaml:"height_mm"`
	WallThicknessMm  float64 `json:"wallThicknessMm" yaml:"wall_thickness_mm"`
	Basis            Basis   `json:"basis" yaml:"basis"`
}

// Placeholder reports the "select profile" row: no size, no weight.
func (p Profile) Placeholder() bool {
	return p.WeightKgPerMeter == 0 && p.WidthMm == 0 && p.HeightMm == 0
}

type Category string

const (
	OuterFrame        Category = "outer-frame"
	VerticalMullion   Category = "vertical-mullion"
	HorizontalMullion Category = "horizontal-mullion"
	ShutterHandle     Category = "shutter-handle"
	ShutterInterlock  Category = "shutter-interlock"
	ShutterTopBottom  Category = "shutter-top-bottom"
	CasementFrame     Category = "casement-frame"
	CasementSash      Category = "casement-sash"
	FixedSash         Category = "fixed-sash"
)

var Categories = []Category{
	OuterFrame, VerticalMullion, HorizontalMullion,
	ShutterHandle, ShutterInterlock, ShutterTopBottom,
	CasementFrame, CasementSash, FixedSash,
}

func (c Category) Valid() bool {
	for _, v := range Categories {
		if c == v {
			return true
		}
	}
	return false
}

type WindowProfile struct {
	ID               string   `json:"id" yaml:"id"`
	Name             string   `json:"name" yaml:"name"`
	Category         Category `json:"category" yaml:"category"`
	WidthMm          float64  `json:"widthMm" yaml:"width_mm"`
	HeightMm         float64  `json:"heightMm" yaml:"height_mm"`
	WeightKgPerMeter float64  `json:"weightKgPerMeter" yaml:"weight_kg_per_meter"`
	StandardLengthM  float64  `json:"standardLengthM" yaml:"standard_length_m"`
}

// Catalog is loaded once and only read afterwards, so it can be shared by
// concurrent requests without locking.
type Catalog struct {
	gate     []Profile
	window   []WindowProfile
	gateIdx  map[string]int
	windowIx map[string]int
}

func New(gate []Profile, window []WindowProfile) *Catalog {
	c := &Catalog{
		gate:     append([]Profile(nil), gate...),
		window:   append([]WindowProfile(nil), window...),
		gateIdx:  make(map[string]int, len(gate)),
		windowIx: make(map[string]int, len(window)),
	}
	for i, p := range c.gate {
		if p.Basis == "" {
			c.gate[i].Basis = PerMeter
		}
		c.gateIdx[p.ID] = i
	}
	for i, p := range c.window {
		c.windowIx[p.ID] = i
	}
	return c
}

// Gate looks up a gate profile. The placeholder row counts as unresolved.
func (c *Catalog) Gate(id string) (Profile, bool) {
	if c == nil {
		return Profile{}, false
	}
	i, ok := c.gateIdx[id]
	if !ok || c.gate[i].Placeholder() {
		return Profile{}, false
	}
	return c.gate[i], true
}

func (c *Catalog) Window(id string) (WindowProfile, bool) {
	if c == nil {
		return WindowProfile{}, false
	}
	i, ok := c.windowIx[id]
	if !ok {
		return WindowProfile{}, false
	}
	return c.window[i], true
}

func (c *Catalog) GateProfiles() []Profile {
	return append([]Profile(nil), c.gate...)
}

func (c *Catalog) WindowProfiles() []WindowProfile {
	return append([]WindowProfile(nil), c.window...)
}

// WindowByCategory returns the window profiles of one category in catalog order.
func (c *Catalog) WindowByCategory(cat Category) []WindowProfile {
	var out []WindowProfile
	for _, p := range c.window {
		if p.Category == cat {
			out = append(out, p)
		}
	}
	return out
}
