package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/soundless/internal/config"
	"github.com/vovakirdan/soundless/internal/games/soundless"
)

var configSettings gameSettings

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective config or its JSON schema",
}

var configShowCmd = &cobra.Command{
	Use:   "show [variant]",
	Short: "Print the effective config as YAML",
	Long: `Print the config a variant would run with, after the search order
(--config, ~/.soundless/configs, ./configs, built-in defaults), the
difficulty preset and normalization.

Examples:
  soundless config show
  soundless config show soundless_swarm --difficulty hard > swarm.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfigShow,
}

var configSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of config files",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		data, err := config.SchemaJSON()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(os.Stdout, string(data))
		return err
	},
}

func init() {
	configSettings.register(configShowCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSchemaCmd)
}

func runConfigShow(_ *cobra.Command, args []string) error {
	variant, err := variantArg(args, "")
	if err != nil {
		return err
	}
	if variant == "" {
		variant = soundless.IDStages
	}

	cfg, err := configSettings.load(variant)
	if err != nil {
		return err
	}
	cfg.Normalize()

	data, err := config.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}
