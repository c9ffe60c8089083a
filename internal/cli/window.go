package cli

import (
	"fmt"
	"text/tabwriter"

	"Ironforge/internal/calc/window"

	"github.com/spf13/cobra"
)

func newWindowCmd() *cobra.Command {
	var (
		config string
		grill  bool
	)
	cmd := &cobra.Command{
		Use:   "window",
		Short: "Weight, area and hardware of an aluminium window",
		Example: `  forgecli window
  forgecli window --config bay.json --grill`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := loadCatalog()
			if err != nil {
				return err
			}
			cfg := window.Default()
			if config != "" {
				cfg = window.Config{}
				if err := readJSON(cmd, config, &cfg); err != nil {
					return err
				}
			}
			if grill && cfg.GrillConfig == nil {
				g := window.DefaultGrill(cfg)
				cfg.GrillConfig = &g
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			res, err := window.Calculate(cfg, cat)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "\nWINDOW  %g x %g %s, %d x %d grid\n", cfg.Width, cfg.Height, cfg.Unit, len(cfg.RowSizes), len(cfg.ColSizes))
			printResult(out, res)

			fmt.Fprintln(out, "\n  HARDWARE")
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			for _, h := range res.Hardware {
				fmt.Fprintf(w, "  %s\t%g\t%s\n", h.Name, h.Quantity, h.Unit)
			}
			w.Flush()

			g, err := window.Grill(cfg, cat)
			if err != nil {
				return err
			}
			if g != nil {
				fmt.Fprintln(out, "\n  GRILL")
				printResult(out, *g)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&config, "config", "f", "", "window config JSON file, - for stdin")
	cmd.Flags().BoolVar(&grill, "grill", false, "attach the default security grill")
	return cmd
}
