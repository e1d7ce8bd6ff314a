package cmd

import (
	"fmt"
	"strings"

	"github.com/brogergvhs/mangascraper/internal/chapters"
	"github.com/brogergvhs/mangascraper/internal/config"
	"github.com/brogergvhs/mangascraper/internal/ui"

	"github.com/spf13/cobra"
)

var (
	pdfTitle   string
	pdfChapter string
	pdfRange   string
	pdfList    string
	pdfOutput  string
)

var pdfCmd = &cobra.Command{
	Use:   "pdf",
	Short: "Rebuild chapter PDFs from raw pages already on disk",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadConfig(config.Options{
			Output:       pdfOutput,
			DefaultTitle: pdfTitle,
			NoProgress:   true,
		})
		if err != nil {
			return err
		}

		title := strings.TrimSpace(cfg.DefaultTitle)
		if title == "" {
			return fmt.Errorf("missing --title and no default_title in config")
		}

		sel, err := chapters.Parse(pdfChapter, pdfRange, pdfList)
		if err != nil {
			return err
		}

		p, err := newPipeline(cfg, ui.NewLogger(cfg.Debug))
		if err != nil {
			return err
		}

		for _, ch := range sel.Chapters() {
			path, err := p.assembler.Assemble(title, ch)
			if err != nil {
				return err
			}
			p.log.Debugf("Wrote %s", path)
		}

		return nil
	},
}

func init() {
	pdfCmd.Flags().StringVar(&pdfTitle, "title", "", "manga title, as used for the download folder")
	pdfCmd.Flags().StringVar(&pdfChapter, "chapter", "", "chapter to rebuild")
	pdfCmd.Flags().StringVar(&pdfRange, "range", "", "inclusive range of chapters to rebuild (e.g. 5-12)")
	pdfCmd.Flags().StringVar(&pdfList, "list", "", "chapters to rebuild (e.g. 1,3,5)")
	pdfCmd.Flags().StringVar(&pdfOutput, "output", "", "download folder (default \"Downloads\")")

	rootCmd.AddCommand(pdfCmd)
}
