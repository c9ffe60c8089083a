package cli

import (
	"fmt"
	"text/tabwriter"

	"Ironforge/internal/catalog"

	"github.com/spf13/cobra"
)

func newCatalogCmd() *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List gate and window profiles",
		Example: `  forgecli catalog
  forgecli catalog --category outer-frame`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := loadCatalog()
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			defer w.Flush()

			if category == "" {
				fmt.Fprintln(w, "GATE PROFILES")
				fmt.Fprintln(w, "ID\tNAME\tKG\tBASIS")
				for _, p := range cat.GateProfiles() {
					if p.Placeholder() {
						continue
					}
					fmt.Fprintf(w, "%s\t%s\t%.2f\t%s\n", p.ID, p.Name, p.WeightKgPerMeter, p.Basis)
				}
				fmt.Fprintln(w)
			}

			rows := cat.WindowProfiles()
			if category != "" {
				c := catalog.Category(category)
				if !c.Valid() {
					return fmt.Errorf("unknown category %q", category)
				}
				rows = cat.WindowByCategory(c)
			}
			fmt.Fprintln(w, "WINDOW PROFILES")
			fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tKG/M")
			for _, p := range rows {
				fmt.Fprintf(w, "%s\t%s\t%s\t%.3f\n", p.ID, p.Name, p.Category, p.WeightKgPerMeter)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "only window profiles of this category")
	return cmd
}
