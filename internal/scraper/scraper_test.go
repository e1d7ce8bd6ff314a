package scraper

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/brogergvhs/mangascraper/internal/assemble"
	"github.com/brogergvhs/mangascraper/internal/downloader"
	"github.com/brogergvhs/mangascraper/internal/source"
	"github.com/brogergvhs/mangascraper/internal/source/sitetest"
	"github.com/brogergvhs/mangascraper/internal/storage"
	"github.com/brogergvhs/mangascraper/internal/ui"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type harness struct {
	scraper *Scraper
	layout  storage.Layout
	out     *bytes.Buffer
}

func newHarness(t *testing.T, baseURL string, progress *ui.ProgressManager) harness {
	t.Helper()

	var out bytes.Buffer
	log := ui.NewLogger(false)
	log.SetOutput(&out)

	layout := storage.New(filepath.Join(t.TempDir(), "Downloads"))
	require.NoError(t, layout.EnsureRoot())

	site := source.NewClient(http.DefaultClient, baseURL, log)

	return harness{
		scraper: New(Options{
			Site:      site,
			Pages:     downloader.New(http.DefaultClient, site, layout, log),
			Assembler: assemble.New(layout, log),
			Log:       log,
			Progress:  progress,
		}),
		layout: layout,
		out:    &out,
	}
}

func TestSaveChapter(t *testing.T) {
	site := sitetest.New(t, map[string]map[int]int{"one-piece": {500: 4}})
	pm := ui.NewProgressManager(io.Discard)
	h := newHarness(t, site.URL, pm)

	require.NoError(t, h.scraper.SaveChapter(context.Background(), "One Piece", 500))
	pm.Close()

	for p := 1; p <= 4; p++ {
		assert.FileExists(t, filepath.Join(h.layout.Root, "One Piece", "raws", fmt.Sprintf("One Piece ch500-%d.jpg", p)))
	}

	pdf := filepath.Join(h.layout.Root, "One Piece", "PDFs", "One Piece ch500.pdf")
	n, err := api.PageCountFile(pdf)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	assert.Contains(t, h.out.String(), "Ch500 of One Piece has been saved!")

	stats := h.scraper.Stats()
	assert.EqualValues(t, 1, stats.TotalChapters.Load())
	assert.EqualValues(t, 4, stats.TotalPages.Load())
	assert.Positive(t, stats.TotalBytes.Load())
}

func TestSaveChapterUnknownTitle(t *testing.T) {
	site := sitetest.New(t, map[string]map[int]int{"one-piece": {500: 2}})
	h := newHarness(t, site.URL, nil)

	require.NoError(t, h.scraper.SaveChapter(context.Background(), "Two Piece", 20))

	entries, err := os.ReadDir(h.layout.Root)
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.Contains(t, h.out.String(), "Two Piece does not exist on")
	assert.EqualValues(t, 1, h.scraper.Stats().SkippedChapters.Load())
}

func TestSaveChapterOutOfRange(t *testing.T) {
	site := sitetest.New(t, map[string]map[int]int{"one-piece": {500: 2}})
	h := newHarness(t, site.URL, nil)

	require.NoError(t, h.scraper.SaveChapter(context.Background(), "One Piece", 1000))

	assert.NoDirExists(t, h.layout.TitleDir("One Piece"))
	assert.Contains(t, h.out.String(), "Sorry Chapter1000 of One Piece does not exist.")
}

func TestSaveChapterRejectsUnsafeTitle(t *testing.T) {
	site := sitetest.New(t, map[string]map[int]int{"lian-ai-12": {1: 2}, "outside": {1: 2}})
	h := newHarness(t, site.URL, nil)

	for _, title := range []string{"LIAN AI 1/2", "../outside"} {
		err := h.scraper.SaveChapter(context.Background(), title, 1)
		assert.ErrorIs(t, err, storage.ErrBadTitle, title)
	}

	assert.Empty(t, site.Requests())

	entries, err := os.ReadDir(h.layout.Root)
	require.NoError(t, err)
	assert.Empty(t, entries)

	entries, err = os.ReadDir(filepath.Dir(h.layout.Root))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Downloads", entries[0].Name())
}

func TestSaveChaptersSkipsMissing(t *testing.T) {
	site := sitetest.New(t, map[string]map[int]int{"naruto": {1: 2, 3: 1}})
	h := newHarness(t, site.URL, nil)

	require.NoError(t, h.scraper.SaveChapters(context.Background(), "Naruto", 1, 3))

	assert.FileExists(t, h.layout.PDFPath("Naruto", 1))
	assert.NoFileExists(t, h.layout.PDFPath("Naruto", 2))
	assert.FileExists(t, h.layout.PDFPath("Naruto", 3))
	assert.Contains(t, h.out.String(), "Chapters 1-3 of Naruto have been downloaded!")

	stats := h.scraper.Stats()
	assert.EqualValues(t, 2, stats.TotalChapters.Load())
	assert.EqualValues(t, 1, stats.SkippedChapters.Load())
	assert.EqualValues(t, 3, stats.TotalPages.Load())
}

func TestSaveChaptersRejectsInvertedRange(t *testing.T) {
	h := newHarness(t, "http://unused.test", nil)

	assert.Error(t, h.scraper.SaveChapters(context.Background(), "Naruto", 5, 2))
}

func TestSaveListInGivenOrder(t *testing.T) {
	site := sitetest.New(t, map[string]map[int]int{"naruto": {1: 1, 7: 1}})
	h := newHarness(t, site.URL, nil)

	require.NoError(t, h.scraper.SaveList(context.Background(), "Naruto", []int{7, 4, 1}))

	assert.FileExists(t, h.layout.PDFPath("Naruto", 7))
	assert.FileExists(t, h.layout.PDFPath("Naruto", 1))

	var chapterHits []string
	for _, p := range site.Requests() {
		if p == "/naruto/7" || p == "/naruto/4" || p == "/naruto/1" {
			chapterHits = append(chapterHits, p)
		}
	}
	assert.Equal(t, "/naruto/7", chapterHits[0])
	assert.Equal(t, "/naruto/1", chapterHits[len(chapterHits)-1])
}

// A structural failure is fatal and stops the range, leaving the pages
// already written in place.
func TestSaveChaptersStopsOnStructureError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		switch r.URL.Path {
		case "/bleach":
			_, _ = fmt.Fprint(w, "<h1>Bleach</h1>")
		case "/bleach/1":
			_, _ = fmt.Fprint(w, `<select id="pageMenu"><option value="/bleach/1">1</option><option value="/bleach/1/2">2</option></select>
<div id="imgholder"><a href="/bleach/1/2"><img src="/img/1.png"></a></div>`)
		case "/bleach/1/2":
			_, _ = fmt.Fprint(w, `<div id="moved">site redesign</div>`)
		case "/img/1.png":
			w.Header().Set("Content-Type", "image/png")
			_, _ = w.Write(sitetest.PNG(5, 5))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	h := newHarness(t, srv.URL, ui.NewProgressManager(io.Discard))

	err := h.scraper.SaveChapters(context.Background(), "Bleach", 1, 2)
	assert.ErrorIs(t, err, source.ErrMissingElement)

	assert.FileExists(t, h.layout.RawPath(storage.PageRef{Title: "Bleach", Chapter: 1, Page: 1}))
	assert.NoFileExists(t, h.layout.PDFPath("Bleach", 1))
	assert.NotContains(t, h.out.String(), "have been downloaded")
}

func TestSaveChaptersHonoursCancel(t *testing.T) {
	site := sitetest.New(t, map[string]map[int]int{"naruto": {1: 1}})
	h := newHarness(t, site.URL, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, h.scraper.SaveChapters(ctx, "Naruto", 1, 1), context.Canceled)
	assert.Empty(t, site.Requests())
}
