package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"Ironforge/internal/calc/gate"
	"Ironforge/internal/calc/premium/recommend"
	"Ironforge/internal/calc/units"

	"github.com/spf13/cobra"
)

func newRecommendCmd() *cobra.Command {
	var (
		in       recommend.FrameInput
		unit     string
		gateType string
		asConfig bool
	)
	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Suggest frame and bar sections for an opening",
		Example: `  forgecli recommend --width 4000 --height 1800
  forgecli recommend -w 12 --height 6 -u ft --config > gate.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := loadCatalog()
			if err != nil {
				return err
			}
			in.Unit = units.Unit(unit)
			in.GateType = gate.GateType(gateType)
			out := cmd.OutOrStdout()
			if asConfig {
				cfg, err := recommend.Gate(in, cat)
				if err != nil {
					return err
				}
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(cfg)
			}
			res, err := recommend.Frame(in, cat)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "  Area:\t%.2f sq m\n", res.AreaSqM)
			fmt.Fprintf(w, "  Frame:\t%s (%s)\n", res.FrameProfileID, res.FrameProfileName)
			fmt.Fprintf(w, "  Bars:\t%s every %.0f mm\n", res.BarProfileID, res.GapMm)
			fmt.Fprintf(w, "  Notes:\t%s\n", res.Notes)
			return w.Flush()
		},
	}
	fl := cmd.Flags()
	fl.Float64VarP(&in.Width, "width", "w", 0, "opening width [required]")
	fl.Float64Var(&in.Height, "height", 0, "opening height [required]")
	fl.StringVarP(&unit, "unit", "u", "mm", "length unit")
	fl.StringVar(&gateType, "type", "", "gate type")
	fl.BoolVar(&asConfig, "config", false, "print a complete gate config as JSON")
	cmd.MarkFlagRequired("width")
	cmd.MarkFlagRequired("height")
	return cmd
}
