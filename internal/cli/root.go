package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"Ironforge/internal/catalog"

	"github.com/spf13/cobra"
)

var catalogPath string

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "forgecli",
		Short: "Gate, grill and window estimator",
		Long: `forgecli - weights, areas and quotations for fabricated iron gates,
grills and aluminium windows.

Lengths may be given in mm, cm, in or ft. Configurations use the same JSON
as the HTTP API.`,
		SilenceUsage: true,
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.PersistentFlags().StringVar(&catalogPath, "catalog", "", "profile catalog YAML file (built-in catalog when empty)")

	root.AddCommand(
		newCatalogCmd(),
		newGateCmd(),
		newWindowCmd(),
		newQuoteCmd(),
		newPreviewCmd(),
		newRecommendCmd(),
		newVersionCmd(),
	)
	return root
}

// Execute runs the CLI and exits non-zero on error.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func loadCatalog() (*catalog.Catalog, error) {
	if catalogPath == "" {
		return catalog.Default(), nil
	}
	return catalog.LoadFile(catalogPath)
}

// readJSON decodes a file, or stdin when path is "-".
func readJSON(cmd *cobra.Command, path string, v interface{}) error {
	var r io.Reader
	if path == "-" {
		r = cmd.InOrStdin()
	} else {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}
	if err := json.NewDecoder(r).Decode(v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
