package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"Ironforge/internal/calc/gate"
	"Ironforge/internal/calc/preview"
	"Ironforge/internal/calc/window"
	"Ironforge/internal/quote"

	"github.com/spf13/cobra"
	"gonum.org/v1/plot/vg"
)

func newPreviewCmd() *cobra.Command {
	var (
		product string
		config  string
		out     string
		widthIn float64
	)
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Draw a gate or window to PNG or SVG",
		Long:  `Draw a design. The output format follows the file extension.`,
		Example: `  forgecli preview --product gate --out gate.png
  forgecli preview --product window -f bay.json --out bay.svg`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := loadCatalog()
			if err != nil {
				return err
			}
			req := preview.Request{ProductType: quote.ProductType(product)}
			switch req.ProductType {
			case quote.Gate:
				cfg := gate.Default()
				if config != "" {
					if err := readJSON(cmd, config, &cfg); err != nil {
						return err
					}
				}
				req.Gate = &cfg
			case quote.Window:
				cfg := window.Default()
				if config != "" {
					if err := readJSON(cmd, config, &cfg); err != nil {
						return err
					}
				}
				req.Window = &cfg
			default:
				return fmt.Errorf("unknown product %q", product)
			}

			format := strings.TrimPrefix(strings.ToLower(filepath.Ext(out)), ".")
			p, wMm, hMm, err := preview.Design(req, cat)
			if err != nil {
				return err
			}
			w, h := preview.Size(wMm, hMm, vg.Length(widthIn)*vg.Inch)

			f, err := os.Create(out)
			if err != nil {
				return err
			}
			if err := preview.Render(f, p, format, w, h); err != nil {
				f.Close()
				os.Remove(out)
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", out)
			return nil
		},
	}
	fl := cmd.Flags()
	fl.StringVarP(&product, "product", "p", "gate", "gate or window")
	fl.StringVarP(&config, "config", "f", "", "config JSON file, - for stdin")
	fl.StringVarP(&out, "out", "o", "design.png", "output file (.png or .svg)")
	fl.Float64Var(&widthIn, "inches", 8, "drawing width in inches")
	return cmd
}
