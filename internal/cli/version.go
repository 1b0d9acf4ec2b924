package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newVersionCmd(a *application) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprint(cmd.OutOrStdout(), a.buildInfo)
		},
	}
}
