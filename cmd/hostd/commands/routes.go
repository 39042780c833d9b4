package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kbukum/hostkit/bootstrap"
	"github.com/kbukum/hostkit/logger"
)

var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "Print the route report without serving",
	Long: `Build the host exactly as serve does and print the route report to
stdout. No startup action runs and no port is bound.`,
	RunE: runRoutes,
}

func runRoutes(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	host, err := NewHost(cfg, bootstrap.WithLogger(logger.NewNop()))
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(cmd.OutOrStdout(), host.Report())
	return err
}
