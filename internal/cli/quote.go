package cli

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"Ironforge/internal/calc/preview"
	"Ironforge/internal/calc/report"
	"Ironforge/internal/quote"

	"github.com/spf13/cobra"
)

// quoteFile is the JSON accepted by "forgecli quote".
type quoteFile struct {
	Details      *quote.Details       `json:"details,omitempty"`
	Items        []quote.AddRequest   `json:"items"`
	Hardware     []quote.HardwareItem `json:"hardware,omitempty"`
	Installation *quote.Installation  `json:"installation,omitempty"`
}

func newQuoteCmd() *cobra.Command {
	var (
		in        string
		pdfOut    string
		xlsxOut   string
		noPreview bool
	)
	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Price a list of gates and windows and write the quotation",
		Example: `  forgecli quote -f site.json
  forgecli quote -f site.json --pdf site.pdf --xlsx site.xlsx`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := loadCatalog()
			if err != nil {
				return err
			}
			q := quote.New()
			// Details in the file are merged over the defaults.
			qf := quoteFile{Details: &q.Details}
			if err := readJSON(cmd, in, &qf); err != nil {
				return err
			}
			thumb := preview.ItemThumbnail(cat)
			for i, req := range qf.Items {
				it, err := quote.NewItem(req, cat)
				if err != nil {
					return fmt.Errorf("item %d: %w", i+1, err)
				}
				if !noPreview && pdfOut != "" {
					if it.Preview, err = thumb(it); err != nil {
						fmt.Fprintf(cmd.ErrOrStderr(), "item %d: no preview: %v\n", i+1, err)
					}
				}
				q.Add(it)
			}
			q.SetHardware(qf.Hardware)
			if qf.Installation != nil {
				if err := q.SetInstallation(*qf.Installation); err != nil {
					return err
				}
			}

			printQuote(cmd.OutOrStdout(), q)

			if pdfOut != "" {
				if err := writeFile(pdfOut, func(w io.Writer) error { return report.Quote(w, q, cat) }); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", pdfOut)
			}
			if xlsxOut != "" {
				if err := writeFile(xlsxOut, func(w io.Writer) error { return quote.WriteXLSX(w, q) }); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", xlsxOut)
			}
			return nil
		},
	}
	fl := cmd.Flags()
	fl.StringVarP(&in, "file", "f", "", "quotation JSON file, - for stdin [required]")
	fl.StringVar(&pdfOut, "pdf", "", "write the quotation PDF here")
	fl.StringVar(&xlsxOut, "xlsx", "", "write the quotation workbook here")
	fl.BoolVar(&noPreview, "no-preview", false, "leave drawings out of the PDF")
	cmd.MarkFlagRequired("file")
	return cmd
}

func printQuote(out io.Writer, q *quote.Quote) {
	fmt.Fprintf(out, "\nQUOTATION %s\n\n", q.Number)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "#\tDESCRIPTION\tSIZE\tQTY\tWEIGHT KG\tAMOUNT\t")
	for i, it := range q.Items {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%.2f\t%.2f\t\n", i+1, it.Description, it.Size(), it.Quantity, it.Calculations.TotalWeightKg, it.StructureCost)
	}
	w.Flush()

	t := q.Totals()
	fmt.Fprintln(out)
	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Structure:\t%.2f\n", t.Structure)
	fmt.Fprintf(w, "  Hardware:\t%.2f\n", t.Hardware)
	fmt.Fprintf(w, "  Installation:\t%.2f\n", t.Installation)
	fmt.Fprintf(w, "  Grand total:\t%.2f\n", t.Grand)
	w.Flush()
}

func writeFile(path string, render func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := render(f); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}
