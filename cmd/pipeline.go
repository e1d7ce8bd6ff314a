package cmd

import (
	"os"

	"github.com/brogergvhs/mangascraper/internal/assemble"
	"github.com/brogergvhs/mangascraper/internal/config"
	"github.com/brogergvhs/mangascraper/internal/downloader"
	"github.com/brogergvhs/mangascraper/internal/scraper"
	"github.com/brogergvhs/mangascraper/internal/source"
	"github.com/brogergvhs/mangascraper/internal/storage"
	"github.com/brogergvhs/mangascraper/internal/ui"
	"github.com/brogergvhs/mangascraper/internal/util"
)

type pipeline struct {
	log       *ui.Logger
	layout    storage.Layout
	site      *source.Client
	assembler *assemble.Assembler
	scraper   *scraper.Scraper
	progress  *ui.ProgressManager
}

// loadConfig applies the persistent root flags before merging.
func loadConfig(opts config.Options) (*config.Config, string, error) {
	opts.IgnoreConfig = flagIgnoreConfig
	opts.Debug = flagDebug

	return config.LoadMerged(opts)
}

func newPipeline(cfg *config.Config, log *ui.Logger) (*pipeline, error) {
	client, err := util.NewHTTPClient(util.HTTPClientOptions{
		Timeout:          cfg.Timeout,
		UserAgent:        util.PickUserAgent(cfg.UserAgent),
		Cookie:           cfg.Cookie,
		CookieFile:       cfg.CookieFile,
		CloudflareBypass: cfg.CFBypass,
		DebugLogger:      log,
	})
	if err != nil {
		return nil, err
	}

	layout := storage.New(cfg.Output)
	site := source.NewClient(client, cfg.BaseURL, log)
	asm := assemble.New(layout, log)

	var pm *ui.ProgressManager
	if cfg.Progress {
		pm = ui.NewProgressManager(os.Stdout)
	}

	return &pipeline{
		log:       log,
		layout:    layout,
		site:      site,
		assembler: asm,
		progress:  pm,
		scraper: scraper.New(scraper.Options{
			Site:      site,
			Pages:     downloader.New(client, site, layout, log),
			Assembler: asm,
			Log:       log,
			Progress:  pm,
		}),
	}, nil
}
