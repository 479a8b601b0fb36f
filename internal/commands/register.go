// Package commands contains all CLI command definitions.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/cdspub/mrt/internal/config"
	"github.com/cdspub/mrt/internal/logging"
)

var (
	cfgFile   string
	logLevel  string
	logFormat string

	cfg = config.Default()
)

// NewRootCmd creates and returns the root command for the CLI.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "mrt",
		Short:         "Build machine-readable astronomical tables",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cfgFile != "" {
				loaded, err := config.Load(cfgFile)
				if err != nil {
					return err
				}
				cfg = loaded
			}
			if logLevel != "" {
				cfg.LogLevel = logLevel
			}
			if logFormat != "" {
				cfg.LogFormat = logFormat
			}
			logging.Setup(cfg.LogLevel, cfg.LogFormat)
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to a YAML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format: text or json")

	rootCmd.AddCommand(newConvertCmd())
	rootCmd.AddCommand(newDescribeCmd())
	rootCmd.AddCommand(newExportCmd())

	return rootCmd
}
