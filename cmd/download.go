package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/brogergvhs/mangascraper/internal/chapters"
	"github.com/brogergvhs/mangascraper/internal/config"
	"github.com/brogergvhs/mangascraper/internal/source"
	"github.com/brogergvhs/mangascraper/internal/ui"
	"github.com/brogergvhs/mangascraper/internal/util"

	"github.com/spf13/cobra"
)

var (
	// selection
	flagTitle   string
	flagChapter string
	flagRange   string
	flagList    string

	// runtime
	flagOutput     string
	flagBaseURL    string
	flagTimeout    time.Duration
	flagNoProgress bool
	flagDryRun     bool

	// headers/auth
	flagCookie     string
	flagCookieFile string
	flagUserAgent  string
	flagCFBypass   bool
)

func init() {
	downloadCmd := &cobra.Command{
		Use:   "download",
		Short: "Download chapters and assemble one PDF per chapter. Uses the defaults from the selected config, overwritten by CLI flags",
		Example: `  mangascraper download --title "One Piece" --chapter 500
  mangascraper download --title "One Piece" --range 500-505
  mangascraper download --title "Naruto" --list 1,3,7`,
		RunE: runDownload,
	}

	// selection
	downloadCmd.Flags().StringVar(&flagTitle, "title", "", "manga title as shown on the site (e.g. \"One Piece\")")
	downloadCmd.Flags().StringVar(&flagChapter, "chapter", "", "download a single chapter (e.g. 500)")
	downloadCmd.Flags().StringVar(&flagRange, "range", "", "download an inclusive range of chapters (e.g. 5-12)")
	downloadCmd.Flags().StringVar(&flagList, "list", "", "download specific chapters (e.g. 1,3,5)")

	// runtime
	downloadCmd.Flags().StringVar(&flagOutput, "output", "", "download folder (default \"Downloads\")")
	downloadCmd.Flags().StringVar(&flagBaseURL, "base-url", "", "site base URL (default \"http://www.mangareader.net\")")
	downloadCmd.Flags().DurationVar(&flagTimeout, "timeout", 0, "per request timeout, 0 for none")
	downloadCmd.Flags().BoolVar(&flagNoProgress, "no-progress", false, "disable progress bars")
	downloadCmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "show the chapter URLs that would be fetched, don't download")

	// headers/auth
	downloadCmd.Flags().StringVar(&flagCookie, "cookie", "", "cookie string, e.g. \"key=value; other=123\"")
	downloadCmd.Flags().StringVar(&flagCookieFile, "cookie-file", "", "path to a text file with cookies (one header line)")
	downloadCmd.Flags().StringVar(&flagUserAgent, "user-agent", "", "override User-Agent")
	downloadCmd.Flags().BoolVar(&flagCFBypass, "cf-bypass", false, "use a browser-like TLS profile for Cloudflare protected mirrors")

	rootCmd.AddCommand(downloadCmd)
}

func runDownload(cmd *cobra.Command, _ []string) error {
	cfg, usedPath, err := loadConfig(config.Options{
		Output:       flagOutput,
		BaseURL:      flagBaseURL,
		Timeout:      flagTimeout,
		NoProgress:   flagNoProgress,
		DefaultTitle: flagTitle,
		Cookie:       flagCookie,
		CookieFile:   flagCookieFile,
		UserAgent:    flagUserAgent,
		CFBypass:     flagCFBypass,
	})
	if err != nil {
		return err
	}

	log := ui.NewLogger(cfg.Debug)
	if usedPath != "" {
		fmt.Printf("Config file: %s\n", usedPath)
	}
	if cfg.Debug {
		fmt.Println("Full config:")
		cfg.Print(os.Stdout)
		fmt.Println()
	}

	title := strings.TrimSpace(cfg.DefaultTitle)
	if title == "" {
		return fmt.Errorf("missing --title and no default_title in config")
	}

	sel, err := selectChapters(cfg)
	if err != nil {
		return err
	}

	p, err := newPipeline(cfg, log)
	if err != nil {
		return err
	}

	if flagDryRun {
		printDryRun(os.Stdout, p.site, title, sel)
		return nil
	}

	if err := p.layout.EnsureRoot(); err != nil {
		return err
	}

	ctx, cancel := util.WithInterrupt(context.Background())
	defer cancel()

	start := time.Now()

	switch sel.Kind {
	case chapters.Single:
		err = p.scraper.SaveChapter(ctx, title, sel.Start)
	case chapters.Range:
		err = p.scraper.SaveChapters(ctx, title, sel.Start, sel.End)
	case chapters.List:
		err = p.scraper.SaveList(ctx, title, sel.List)
	}
	p.progress.Close()

	stats := p.scraper.Stats()
	fmt.Println()
	fmt.Println("Download Summary:")
	fmt.Printf("Chapters: %d saved, %d skipped\n", stats.TotalChapters.Load(), stats.SkippedChapters.Load())
	fmt.Printf("Pages:    %d\n", stats.TotalPages.Load())
	fmt.Printf("Data:     %s\n", util.Human(stats.TotalBytes.Load()))
	fmt.Printf("Time:     %s\n", time.Since(start).Round(time.Second))

	return err
}

// selectChapters prefers the CLI selection flags as a group; config
// defaults only apply when none of them is set.
func selectChapters(cfg *config.Config) (chapters.Selection, error) {
	if flagChapter != "" || flagRange != "" || flagList != "" {
		return chapters.Parse(flagChapter, flagRange, flagList)
	}

	return chapters.Parse("", cfg.DefaultRange, cfg.DefaultList)
}

func printDryRun(w io.Writer, site *source.Client, title string, sel chapters.Selection) {
	slug := source.Slug(title)
	list := sel.Chapters()

	_, _ = fmt.Fprintf(w, "Dry-run: %d chapters of %s selected.\n\n", len(list), title)
	_, _ = fmt.Fprintf(w, "Title page: %s\n", site.TitleURL(slug))
	for i, ch := range list {
		_, _ = fmt.Fprintf(w, "%3d) Chapter %d\n    %s\n", i+1, ch, site.ChapterURL(slug, ch))
	}
}
