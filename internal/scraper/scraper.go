// Package scraper saves whole chapters: validate, persist every page in
// order, then assemble the PDF. Everything runs sequentially.
package scraper

import (
	"context"
	"fmt"

	"github.com/brogergvhs/mangascraper/internal/assemble"
	"github.com/brogergvhs/mangascraper/internal/downloader"
	"github.com/brogergvhs/mangascraper/internal/source"
	"github.com/brogergvhs/mangascraper/internal/storage"
	"github.com/brogergvhs/mangascraper/internal/ui"
)

type Scraper struct {
	site      *source.Client
	pages     *downloader.Downloader
	assembler *assemble.Assembler
	log       source.Logger

	progress *ui.ProgressManager
	stats    *ui.Stats
}

type Options struct {
	Site      *source.Client
	Pages     *downloader.Downloader
	Assembler *assemble.Assembler
	Log       source.Logger

	// Progress may be nil to run without bars.
	Progress *ui.ProgressManager
	Stats    *ui.Stats
}

func New(opts Options) *Scraper {
	stats := opts.Stats
	if stats == nil {
		stats = &ui.Stats{}
	}

	return &Scraper{
		site:      opts.Site,
		pages:     opts.Pages,
		assembler: opts.Assembler,
		log:       opts.Log,
		progress:  opts.Progress,
		stats:     stats,
	}
}

func (s *Scraper) Stats() *ui.Stats {
	return s.stats
}

// SaveChapter downloads every page of one chapter and assembles its PDF. A
// title or chapter the site does not have is reported and skipped with a
// nil error and nothing written. Titles that cannot be stored are refused
// before any request. Pages written before a failure stay on disk.
func (s *Scraper) SaveChapter(ctx context.Context, title string, chapter int) error {
	if err := storage.CheckTitle(title); err != nil {
		return err
	}

	res, err := s.site.Validate(ctx, title, chapter)
	if err != nil {
		return err
	}
	if !res.OK() {
		s.stats.SkippedChapters.Add(1)
		return nil
	}

	links, err := source.PageLinks(res.Doc, s.site.BaseURL())
	if err != nil {
		return fmt.Errorf("chapter %d of %s: %w", chapter, title, err)
	}

	s.log.Debugf("Chapter %d of %s has %d pages", chapter, title, len(links))

	bar := s.progress.Register(fmt.Sprintf("Ch.%d", chapter), len(links))

	var pageBytes int64
	for i, link := range links {
		ref := storage.PageRef{Title: title, Chapter: chapter, Page: i + 1}

		n, err := s.pages.SavePage(ctx, ref, link, bar.AddBytes)
		pageBytes += n
		if err != nil {
			bar.Abort()
			s.stats.TotalBytes.Add(pageBytes)
			return fmt.Errorf("chapter %d of %s: %w", chapter, title, err)
		}

		bar.PageDone()
		s.stats.TotalPages.Add(1)
	}
	bar.MarkDone()
	s.stats.TotalBytes.Add(pageBytes)

	if _, err := s.assembler.Assemble(title, chapter); err != nil {
		return fmt.Errorf("chapter %d of %s: %w", chapter, title, err)
	}

	s.stats.TotalChapters.Add(1)
	s.log.Infof("Ch%d of %s has been saved!", chapter, title)

	return nil
}

// SaveChapters saves every chapter from start to end inclusive, in order.
// Chapters that fail validation are skipped; any other error stops the run.
func (s *Scraper) SaveChapters(ctx context.Context, title string, start, end int) error {
	if start > end {
		return fmt.Errorf("invalid chapter range %d-%d", start, end)
	}

	for chapter := start; chapter <= end; chapter++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.SaveChapter(ctx, title, chapter); err != nil {
			return err
		}
	}

	s.log.Infof("Chapters %d-%d of %s have been downloaded!", start, end, title)

	return nil
}

// SaveList saves the given chapters in the order given, with the same
// skipping rules as SaveChapters.
func (s *Scraper) SaveList(ctx context.Context, title string, chapters []int) error {
	for _, chapter := range chapters {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.SaveChapter(ctx, title, chapter); err != nil {
			return err
		}
	}

	return nil
}
