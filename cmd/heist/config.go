package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/goldnoam/great-heist/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective game configuration",
	Long: `Print the configuration a new game would use, as YAML.

Lookup order: --config, ~/.heist/configs/heist.yaml, ./configs/heist.yaml,
then the built-in defaults. The output is a complete file that can be
edited and passed back with --config.

Examples:
  heist config > my-heist.yaml
  heist config --config ./my-heist.yaml`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.LoadHeist(flagConfig)
	if err != nil {
		return err
	}

	data, err := config.Marshal(cfg)
	if err != nil {
		return err
	}

	_, err = os.Stdout.Write(data)
	return err
}
