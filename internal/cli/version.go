package cli

import (
	"fmt"

	"Ironforge/internal/version"

	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of forgecli",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "forgecli v%s (commit %s, built %s)\n", version.Version, version.GitCommit, version.BuildTime)
		},
	}
}
