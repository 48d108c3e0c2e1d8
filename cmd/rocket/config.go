package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/rocket-arcade/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the rocket configuration after --config and --difficulty are
applied, as YAML. Save it to ~/.arcade/configs/rocket.yaml to make it the default.

Examples:
  rocket config
  rocket config --difficulty hard > ~/.arcade/configs/rocket.yaml`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func runConfig(_ *cobra.Command, _ []string) {
	cfg, err := loadTuning()
	if err != nil {
		fail("%v", err)
	}
	out, err := config.MarshalRocket(cfg)
	if err != nil {
		fail("%v", err)
	}
	fmt.Print(string(out))
}
