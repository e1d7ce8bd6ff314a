package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/brogergvhs/mangascraper/internal/config"

	"github.com/spf13/cobra"
)

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the Default config and make it active",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaultPath := filepath.Join(config.ConfigsDir(), config.DefaultLabel+".yaml")

		if _, err := os.Stat(defaultPath); err != nil {
			fmt.Println("Default configuration:")
			config.DefaultConfig().Print(os.Stdout)
			fmt.Println()

			if !confirm(fmt.Sprintf("Create Default config at %s", defaultPath)) {
				fmt.Println("Aborted.")
				return nil
			}
		}

		path, err := config.InitDefaultConfig()
		if errors.Is(err, os.ErrExist) {
			fmt.Println("Configuration already exists at:")
			fmt.Println("  ", path)
			fmt.Println("It is now active. Use `mangascraper config reset` to restore defaults.")
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to create Default config: %w", err)
		}

		fmt.Println("Config created at:", path)
		fmt.Println("This config is now active (label: Default).")
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
}
