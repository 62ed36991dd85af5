package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sahadev/jyotish/config"
	"github.com/sahadev/jyotish/errors"
)

// ConfigCmd groups configuration subcommands
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage jyotish configuration",
	Long: `Inspect the effective configuration after merging system, user and
project TOML files with JYOTISH_* environment variables.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return errors.Wrap(err, "failed to load configuration")
		}
		fmt.Print(cfg.String())
		return nil
	},
}

func init() {
	ConfigCmd.AddCommand(configShowCmd)
}
