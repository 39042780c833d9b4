// Package commands implements the hostd CLI.
package commands

import (
	"github.com/spf13/cobra"
)

const serviceName = "hostd"

var (
	cfgFile string
	envFile string
)

var rootCmd = &cobra.Command{
	Use:   serviceName,
	Short: "hostd - sample host with startup actions and a route report",
	Long: `hostd runs its startup actions in order before serving HTTP traffic.
One of them logs every attribute-routed path the host exposes.

Configuration is read from config.yml and .env files found in the standard
locations, then from the environment (HOSTD_LIFECYCLE_TIMEOUT=30s, HOSTD_SERVER_PORT=9090).

Use "hostd [command] --help" for more information about a command.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// NewRootCmd returns the root command, for tests.
func NewRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./cmd/hostd/config.yml or ./config.yml)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "dotenv file loaded before the environment is read")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(routesCmd)
	rootCmd.AddCommand(versionCmd)
}
