package downloader

import (
	"context"
	"fmt"
	"net/http"

	"github.com/brogergvhs/mangascraper/internal/source"
	"github.com/brogergvhs/mangascraper/internal/storage"
)

// Downloader saves chapter pages as raw image files.
type Downloader struct {
	client *http.Client
	site   *source.Client
	layout storage.Layout
	log    source.Logger
}

func New(c *http.Client, site *source.Client, layout storage.Layout, log source.Logger) *Downloader {
	return &Downloader{
		client: c,
		site:   site,
		layout: layout,
		log:    log,
	}
}

// SavePage reads the image URL off pageURL, downloads the image and writes
// it to the raws folder under ref, replacing any earlier file. progress, if
// set, receives the size of every chunk written. It returns the number of
// bytes written.
func (d *Downloader) SavePage(
	ctx context.Context,
	ref storage.PageRef,
	pageURL string,
	progress func(n int64),
) (int64, error) {
	doc, err := d.site.Fetch(ctx, pageURL).Document()
	if err != nil {
		// an interrupted fetch also comes back as absent content
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
		}
		return 0, fmt.Errorf("page %d: %w", ref.Page, err)
	}

	imgURL, err := source.ImageSource(doc, pageURL)
	if err != nil {
		return 0, fmt.Errorf("page %d: %w", ref.Page, err)
	}

	d.log.Debugf("Page %d image: %s", ref.Page, imgURL)

	return d.download(ctx, imgURL, ref, progress)
}

// download stores the response body whatever its status or type.
func (d *Downloader) download(
	ctx context.Context,
	u string,
	ref storage.PageRef,
	progress func(n int64),
) (written int64, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return 0, err
	}

	req.Header.Set("Accept", "image/avif,image/webp,image/apng,image/*,*/*;q=0.8")

	resp, err := d.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("page %d image: %w", ref.Page, err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	if resp.StatusCode != http.StatusOK {
		d.log.Debugf("Page %d image answered HTTP %d, saving body anyway", ref.Page, resp.StatusCode)
	}

	f, err := d.layout.CreateRaw(ref)
	if err != nil {
		return 0, err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	return copyWithProgress(f, resp.Body, progress)
}
