package quote

import (
	"errors"
	"fmt"
	"strings"
	"time"

	calc "Ironforge/internal/calc"
	"Ironforge/internal/calc/gate"
	"Ironforge/internal/calc/window"
	"Ironforge/internal/catalog"

	"github.com/google/uuid"
)

var ErrItemNotFound = errors.New("quote item not found")

type ProductType string

const (
	Gate   ProductType = "gate"
	Window ProductType = "window"
)

const (
	DefaultGateRate   = 120.0
	DefaultWindowRate = 450.0
	DefaultGrillRate  = 150.0
)

// Item is one priced line of a quotation. Exactly one of Gate and Window is
// set, matching ProductType. The config is a copy taken when the item was
// added; later edits in the configurator do not reach it.
type Item struct {
	ID          string         `json:"id"`
	ProductType ProductType    `json:"productType"`
	Gate        *gate.Config   `json:"gate,omitempty"`
	Window      *window.Config `json:"window,omitempty"`

	Calculations      calc.Result  `json:"calculations"`
	GrillCalculations *calc.Result `json:"grillCalculations,omitempty"`

	Quantity      int           `json:"quantity"`
	Rate          float64       `json:"rate"`
	RateUnit      calc.RateUnit `json:"rateUnit"`
	GrillRate     float64       `json:"grillRate,omitempty"`
	GrillRateUnit calc.RateUnit `json:"grillRateUnit,omitempty"`
	StructureCost float64       `json:"structureCost"`
	Description   string        `json:"description"`

	// PNG thumbnail, base64 in JSON.
	Preview []byte `json:"previewImage,omitempty"`
}

// Size is the item's dimensions as entered, e.g. "3000x1500 mm".
func (it Item) Size() string {
	switch it.ProductType {
	case Gate:
		if it.Gate != nil {
			return fmt.Sprintf("%gx%g %s", it.Gate.Width, it.Gate.Height, it.Gate.Unit)
		}
	case Window:
		if it.Window != nil {
			return fmt.Sprintf("%gx%g %s", it.Window.Width, it.Window.Height, it.Window.Unit)
		}
	}
	return ""
}

// AddRequest is what the configurator sends when a design is added. Nil rates
// take the product defaults.
type AddRequest struct {
	ProductType   ProductType    `json:"productType"`
	Gate          *gate.Config   `json:"gate,omitempty"`
	Window        *window.Config `json:"window,omitempty"`
	Quantity      int            `json:"quantity"`
	Rate          *float64       `json:"rate,omitempty"`
	RateUnit      calc.RateUnit  `json:"rateUnit,omitempty"`
	GrillRate     *float64       `json:"grillRate,omitempty"`
	GrillRateUnit calc.RateUnit  `json:"grillRateUnit,omitempty"`
	Description   string         `json:"description,omitempty"`
}

func rateOr(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}

func unitOr(u, def calc.RateUnit) (calc.RateUnit, error) {
	if u == "" {
		return def, nil
	}
	if !u.Valid() {
		return "", &calc.ConfigError{Field: "rate unit", Value: string(u)}
	}
	return u, nil
}

// NewItem validates and snapshots the requested design, runs the matching
// engine and prices the result.
func NewItem(req AddRequest, cat *catalog.Catalog) (Item, error) {
	it := Item{
		ID:          uuid.NewString(),
		ProductType: req.ProductType,
		Quantity:    req.Quantity,
		Description: strings.TrimSpace(req.Description),
	}
	if it.Quantity < 1 {
		it.Quantity = 1
	}

	var err error
	switch req.ProductType {
	case Gate:
		if req.Gate == nil {
			return Item{}, errors.New("gate item without gate config")
		}
		cfg := req.Gate.Clone()
		if err := cfg.Validate(); err != nil {
			return Item{}, err
		}
		it.Gate = &cfg
		if it.Calculations, err = gate.Calculate(cfg, cat); err != nil {
			return Item{}, err
		}
		it.Rate = rateOr(req.Rate, DefaultGateRate)
		if it.RateUnit, err = unitOr(req.RateUnit, calc.PerKg); err != nil {
			return Item{}, err
		}
		if it.Description == "" {
			it.Description = "Custom Iron Gate"
		}

	case Window:
		if req.Window == nil {
			return Item{}, errors.New("window item without window config")
		}
		cfg := req.Window.Clone()
		if err := cfg.Validate(); err != nil {
			return Item{}, err
		}
		it.Window = &cfg
		if it.Calculations, err = window.Calculate(cfg, cat); err != nil {
			return Item{}, err
		}
		if it.GrillCalculations, err = window.Grill(cfg, cat); err != nil {
			return Item{}, fmt.Errorf("grill: %w", err)
		}
		it.Rate = rateOr(req.Rate, DefaultWindowRate)
		if it.RateUnit, err = unitOr(req.RateUnit, calc.PerSqFt); err != nil {
			return Item{}, err
		}
		if it.GrillCalculations != nil {
			it.GrillRate = rateOr(req.GrillRate, DefaultGrillRate)
			if it.GrillRateUnit, err = unitOr(req.GrillRateUnit, calc.PerKg); err != nil {
				return Item{}, err
			}
		}
		if it.Description == "" {
			it.Description = "Aluminium Window"
			if it.GrillCalculations != nil {
				it.Description = "Aluminium Window with Security Grill"
			}
		}

	default:
		return Item{}, &calc.ConfigError{Field: "product type", Value: string(req.ProductType)}
	}

	it.StructureCost = it.cost()
	return it, nil
}

func (it Item) cost() float64 {
	c := calc.Cost(it.Calculations, it.Rate, it.RateUnit)
	if it.GrillCalculations != nil {
		c += calc.Cost(*it.GrillCalculations, it.GrillRate, it.GrillRateUnit)
	}
	return c * float64(it.Quantity)
}

// HardwareItem is a manually priced accessory line.
type HardwareItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
	Rate     float64 `json:"rate"`
}

func (h HardwareItem) Amount() float64 { return h.Quantity * h.Rate }

type InstallationUnit string

const (
	InstallPerKg   InstallationUnit = "kg"
	InstallPerSqFt InstallationUnit = "sqft"
	InstallPerSqM  InstallationUnit = "sqm"
	Lumpsum        InstallationUnit = "lumpsum"
)

func (u InstallationUnit) Valid() bool {
	switch u {
	case InstallPerKg, InstallPerSqFt, InstallPerSqM, Lumpsum:
		return true
	}
	return false
}

type Installation struct {
	Rate float64          `json:"rate"`
	Unit InstallationUnit `json:"unit"`
}

type Bank struct {
	Name    string `json:"name"`
	Account string `json:"account"`
	Bank    string `json:"bank"`
	Branch  string `json:"branch"`
	IFSC    string `json:"ifsc"`
}

type Company struct {
	Name    string `json:"name"`
	GST     string `json:"gst"`
	Address string `json:"address"`
	Website string `json:"website"`
	Email   string `json:"email"`
	Contact string `json:"contact"`
	Bank    Bank   `json:"bankDetails"`
}

type Customer struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

type Meta struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Terms       string `json:"terms"`
}

// Details is the letterhead part of a quotation.
type Details struct {
	Company  Company  `json:"company"`
	Customer Customer `json:"customer"`
	Meta     Meta     `json:"meta"`
}

func DefaultDetails() Details {
	return Details{
		Company: Company{
			Name:    "Your Company Name",
			GST:     "YOUR_GSTIN",
			Address: "123 Workshop Lane, Industrial Area, City, State - 123456",
			Website: "www.yourcompany.com",
			Email:   "contact@yourcompany.com",
			Contact: "+91 98765 43210",
			Bank: Bank{
				Name:    "Your Company Name",
				Account: "123456789012",
				Bank:    "Bank Name",
				Branch:  "Branch Name, City",
				IFSC:    "BANK0001234",
			},
		},
		Customer: Customer{Name: "Valued Customer", Address: "Project Site Address"},
		Meta: Meta{
			Title:       "Custom Iron Gate Quotation",
			Description: "Supply and installation of custom-designed iron gate as per the specified design and dimensions.",
			Terms:       "1. 50% advance payment required.\n2. GST @ 18% applicable extra.\n3. Validity: 15 days.",
		},
	}
}

type Quote struct {
	Number       string         `json:"number"`
	Date         time.Time      `json:"date"`
	Details      Details        `json:"details"`
	Items        []Item         `json:"items"`
	Hardware     []HardwareItem `json:"hardware"`
	Installation Installation   `json:"installation"`
}

func New() *Quote {
	return &Quote{
		Number:       "Q-" + strings.ToUpper(uuid.NewString()[:6]),
		Date:         time.Now(),
		Details:      DefaultDetails(),
		Items:        []Item{},
		Hardware:     []HardwareItem{},
		Installation: Installation{Unit: Lumpsum},
	}
}

func (q *Quote) Add(it Item) {
	q.Items = append(q.Items, it)
}

func (q *Quote) Remove(id string) error {
	for i, it := range q.Items {
		if it.ID == id {
			q.Items = append(q.Items[:i], q.Items[i+1:]...)
			return nil
		}
	}
	return ErrItemNotFound
}

// SetHardware replaces the manual hardware lines, assigning ids to new ones.
func (q *Quote) SetHardware(lines []HardwareItem) {
	out := make([]HardwareItem, len(lines))
	for i, l := range lines {
		if l.ID == "" {
			l.ID = uuid.NewString()
		}
		out[i] = l
	}
	q.Hardware = out
}

func (q *Quote) SetInstallation(in Installation) error {
	if !in.Unit.Valid() {
		return &calc.ConfigError{Field: "installation unit", Value: string(in.Unit)}
	}
	q.Installation = in
	return nil
}

// Clone copies the quote deep enough that the copy can be rendered while the
// original keeps changing.
func (q *Quote) Clone() *Quote {
	out := *q
	out.Items = make([]Item, len(q.Items))
	copy(out.Items, q.Items)
	out.Hardware = make([]HardwareItem, len(q.Hardware))
	copy(out.Hardware, q.Hardware)
	return &out
}

type Totals struct {
	Structure    float64 `json:"structure"`
	Hardware     float64 `json:"hardware"`
	Installation float64 `json:"installation"`
	Grand        float64 `json:"grand"`
}

// Totals is always derived from the items; nothing is cached on the quote.
func (q *Quote) Totals() Totals {
	var t Totals
	var kg, sqft, sqm float64
	for _, it := range q.Items {
		t.Structure += it.StructureCost
		n := float64(it.Quantity)
		kg += it.Calculations.TotalWeightKg * n
		sqft += it.Calculations.AreaSqFt * n
		sqm += it.Calculations.AreaSqM * n
		if g := it.GrillCalculations; g != nil {
			kg += g.TotalWeightKg * n
			sqft += g.AreaSqFt * n
			sqm += g.AreaSqM * n
		}
	}
	for _, h := range q.Hardware {
		t.Hardware += h.Amount()
	}

	in := q.Installation
	if in.Rate > 0 {
		switch in.Unit {
		case Lumpsum:
			t.Installation = in.Rate
		case InstallPerKg:
			t.Installation = in.Rate * kg
		case InstallPerSqFt:
			t.Installation = in.Rate * sqft
		case InstallPerSqM:
			t.Installation = in.Rate * sqm
		}
	}

	t.Grand = t.Structure + t.Hardware + t.Installation
	return t
}
