package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/arkanoid/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect the game configuration",
	Long: `The configuration is read from the first of:
  --config <path>
  ~/.arkanoid/arkanoid.yaml
  ./configs/arkanoid.yaml
  the built-in defaults

Examples:
  arkanoid config dump
  arkanoid config dump --difficulty hard
  arkanoid config default > ~/.arkanoid/arkanoid.yaml`,
}

var configDumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Print the effective configuration after flags and difficulty",
	Args:  cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		data, err := config.Marshal(gameConfig(difficulty()))
		if err != nil {
			fatal("%v", err)
		}
		os.Stdout.Write(data)
	},
}

var configDefaultCmd = &cobra.Command{
	Use:   "default",
	Short: "Print the built-in default configuration",
	Args:  cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Print(string(config.DefaultYAML()))
	},
}

func init() {
	configCmd.AddCommand(configDumpCmd)
	configCmd.AddCommand(configDefaultCmd)
}
