// Package cmd provides the CLI commands for the thalessim application.
package cmd

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/andrei-cloud/thalessim/internal/config"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "thalessim",
	Short: "Thales-style HSM simulator for payment networks",
	Long: `A simulator of a Thales-style Hardware Security Module used to exercise
payment applications: PIN verification, PIN block translation and CVV
verification over a TCP host command interface.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		if err := config.Initialize(cfgFile); err != nil {
			return fmt.Errorf("failed to initialize configuration: %w", err)
		}

		return nil
	},
}

// Execute runs the root command and logs any error it returns.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		log.Error().Err(err).Msg("command failed")
	}

	return err
}

func init() {
	rootCmd.PersistentFlags().
		StringVar(&cfgFile, "config", "", "config file (default: config.yaml in ., $HOME/.thalessim or /etc/thalessim)")
	rootCmd.PersistentFlags().
		String("log-level", "info", "logging level (debug enables debug output; any other value logs at info)")
	rootCmd.PersistentFlags().String("log-format", "human", "logging format (human, json)")
}
