package cmd

import (
	"fmt"
	"strings"

	"github.com/brogergvhs/mangascraper/internal/config"
	"github.com/brogergvhs/mangascraper/internal/source"
	"github.com/brogergvhs/mangascraper/internal/ui"

	"github.com/spf13/cobra"
)

var slugCmd = &cobra.Command{
	Use:   "slug <title>",
	Short: "Print the URL slug and title page for a manga title",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadConfig(config.Options{})
		if err != nil {
			return err
		}

		slug := source.Slug(strings.Join(args, " "))
		site := source.NewClient(nil, cfg.BaseURL, ui.NewLogger(cfg.Debug))

		fmt.Println(slug)
		fmt.Println(site.TitleURL(slug))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(slugCmd)
}
