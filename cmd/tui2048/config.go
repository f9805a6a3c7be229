package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-2048/internal/config"
)

var flagEnvHelp bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration after merging defaults, the config file,
environment variables and flags.

Examples:
  tui2048 config
  tui2048 config --env
  T2048_BOARD_SIZE=5 tui2048 config`,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagEnvHelp, "env", false, "List the supported environment variables")
}

func runConfig(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()

	if flagEnvHelp {
		usage, err := config.EnvUsage()
		if err != nil {
			return err
		}
		fmt.Fprintln(out, usage)
		return nil
	}

	data, err := yaml.Marshal(appConfig)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	_, err = out.Write(data)
	return err
}
