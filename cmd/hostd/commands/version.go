package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kbukum/hostkit/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", serviceName, version.Get())
		return err
	},
}
