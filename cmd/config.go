package cmd

import (
	"fmt"
	"os"

	"github.com/brogergvhs/mangascraper/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the active config or manage config profiles",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, used, err := loadConfig(config.Options{})
		if err != nil {
			return err
		}

		fmt.Printf("Loaded config from:\n  %s\n\n", used)
		cfg.Print(os.Stdout)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
