package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	calc "Ironforge/internal/calc"
	"Ironforge/internal/calc/gate"
	"Ironforge/internal/calc/units"

	"github.com/spf13/cobra"
)

type gateFlags struct {
	config   string
	width    float64
	height   float64
	unit     string
	gateType string
	frame    string
	design   string
	bar      string
	gap      float64
}

func (f gateFlags) build(cmd *cobra.Command) (gate.Config, error) {
	cfg := gate.Default()
	if f.config != "" {
		cfg = gate.Config{}
		if err := readJSON(cmd, f.config, &cfg); err != nil {
			return gate.Config{}, err
		}
	}
	set := cmd.Flags().Changed
	if set("unit") {
		cfg.Unit = units.Unit(f.unit)
		if f.config == "" {
			// The built-in gate is in mm.
			for i, st := range cfg.LeftDoorDesign.Sequence {
				gap, err := units.FromMm(st.Gap, cfg.Unit)
				if err != nil {
					return gate.Config{}, err
				}
				cfg.LeftDoorDesign.Sequence[i].Gap = gap
			}
			cfg.RightDoorDesign = nil
			cfg.LeftDoorWidth = nil
		}
	}
	if set("width") {
		cfg.Width = f.width
		cfg.LeftDoorWidth = nil
	}
	if set("height") {
		cfg.Height = f.height
	}
	if set("type") {
		cfg.GateType = gate.GateType(f.gateType)
	}
	if set("frame") {
		cfg.FrameProfileID = f.frame
	}
	if set("design") || set("bar") || set("gap") {
		d := cfg.LeftDoorDesign.Clone()
		if set("design") {
			d.InnerDesign = gate.InnerDesign(f.design)
		}
		if len(d.Sequence) == 0 {
			d.Sequence = []gate.Step{{ProfileID: "p7", Gap: 100}}
		}
		if set("bar") {
			d.Sequence[0].ProfileID = f.bar
		}
		if set("gap") {
			d.Sequence[0].Gap = f.gap
		}
		cfg.LeftDoorDesign = d
		cfg.RightDoorDesign = nil
	}
	return cfg, cfg.Validate()
}

func newGateCmd() *cobra.Command {
	var f gateFlags
	cmd := &cobra.Command{
		Use:   "gate",
		Short: "Weight and area of a gate or grill",
		Long: `Calculate a gate from a JSON config, from flags, or both. Flags override
the file. Without either the default 3000 x 1500 mm sliding gate is used.`,
		Example: `  forgecli gate --width 12 --height 6 --unit ft --type sliding-openable
  forgecli gate --config front-gate.json --frame p29`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := loadCatalog()
			if err != nil {
				return err
			}
			cfg, err := f.build(cmd)
			if err != nil {
				return err
			}
			b, g, err := gate.Weigh(cfg, cat)
			if err != nil {
				return err
			}
			res, err := gate.Calculate(cfg, cat)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "\n%s GATE  %g x %g %s\n\n", cfg.GateType, cfg.Width, cfg.Height, cfg.Unit)
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "  Frame (%s):\t%.2f kg\n", g.Frame.Name, b.FrameKg)
			if g.Center != nil {
				fmt.Fprintf(w, "  Center member:\t%.2f kg\n", b.CenterKg)
			}
			for i, d := range b.Doors {
				fmt.Fprintf(w, "  Leaf %d (%s):\t%.2f kg\t%d bars\n", i+1, g.Doors[i].Design.InnerDesign, d.InnerKg, d.Bars)
			}
			w.Flush()
			printResult(out, res)
			return nil
		},
	}
	fl := cmd.Flags()
	fl.StringVarP(&f.config, "config", "f", "", "gate config JSON file, - for stdin")
	fl.Float64VarP(&f.width, "width", "w", 0, "overall width")
	fl.Float64Var(&f.height, "height", 0, "overall height")
	fl.StringVarP(&f.unit, "unit", "u", "mm", "length unit: mm, cm, in, ft")
	fl.StringVar(&f.gateType, "type", "", "sliding, openable, fixed or sliding-openable")
	fl.StringVar(&f.frame, "frame", "", "frame profile id")
	fl.StringVar(&f.design, "design", "", "vertical-bars, horizontal-bars, criss-cross or sheet")
	fl.StringVar(&f.bar, "bar", "", "bar profile id")
	fl.Float64Var(&f.gap, "gap", 0, "gap between bars, in --unit")
	return cmd
}

func printResult(out io.Writer, res calc.Result) {
	fmt.Fprintln(out)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Size:\t%.0f x %.0f mm\n", res.WidthMm, res.HeightMm)
	fmt.Fprintf(w, "  Area:\t%.2f sq ft\t%.3f sq m\n", res.AreaSqFt, res.AreaSqM)
	fmt.Fprintf(w, "  Total weight:\t%.2f kg\n", res.TotalWeightKg)
	w.Flush()
	for _, warn := range res.Warnings {
		fmt.Fprintf(out, "  warning: %s\n", warn)
	}
}
