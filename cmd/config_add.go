package cmd

import (
	"fmt"

	"github.com/brogergvhs/mangascraper/internal/config"

	"github.com/spf13/cobra"
)

var configAddFrom string

var configAddCmd = &cobra.Command{
	Use:   "add <label>",
	Short: "Create a new config profile from defaults or an existing YAML file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			path string
			err  error
		)

		if configAddFrom != "" {
			path, err = config.AddConfig(args[0], configAddFrom)
		} else {
			path, err = config.CreateEmptyConfig(args[0])
		}
		if err != nil {
			return err
		}

		fmt.Printf("Created new config: %s\n", path)
		return nil
	},
}

func init() {
	configAddCmd.Flags().StringVar(&configAddFrom, "from", "", "copy settings from this YAML file")
	configCmd.AddCommand(configAddCmd)
}
