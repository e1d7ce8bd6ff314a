// Package assemble merges the raw pages of a chapter into one PDF.
package assemble

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/brogergvhs/mangascraper/internal/source"
	"github.com/brogergvhs/mangascraper/internal/storage"

	"github.com/disintegration/imaging"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/ztrue/tracerr"
	_ "golang.org/x/image/webp"
)

// ErrNoPages is returned when a chapter has no raw pages on disk.
var ErrNoPages = errors.New("no raw pages for chapter")

type Assembler struct {
	layout storage.Layout
	log    source.Logger
}

func New(layout storage.Layout, log source.Logger) *Assembler {
	return &Assembler{layout: layout, log: log}
}

// Pages returns the chapter's raw pages ordered by page number, whatever
// order the folder lists them in.
func (a *Assembler) Pages(title string, chapter int) ([]storage.PageRef, error) {
	refs, err := a.layout.Raws(title, chapter)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	if len(refs) == 0 {
		return nil, fmt.Errorf("%s ch%d: %w", title, chapter, ErrNoPages)
	}

	sort.Slice(refs, func(i, j int) bool { return refs[i].Page < refs[j].Page })

	return refs, nil
}

// Assemble writes the chapter PDF, one page per raw image, and returns its
// path. Any earlier PDF for the chapter is replaced.
func (a *Assembler) Assemble(title string, chapter int) (string, error) {
	if err := storage.CheckTitle(title); err != nil {
		return "", err
	}

	refs, err := a.Pages(title, chapter)
	if err != nil {
		return "", err
	}

	if err := a.layout.EnsureTitle(title); err != nil {
		return "", err
	}

	scratch, err := os.MkdirTemp("", "mangascraper-*")
	if err != nil {
		return "", tracerr.Wrap(err)
	}
	defer func() {
		_ = os.RemoveAll(scratch)
	}()

	files := make([]string, 0, len(refs))
	for _, ref := range refs {
		out := filepath.Join(scratch, fmt.Sprintf("%04d.jpg", ref.Page))
		if err := toRGB(a.layout.RawPath(ref), out); err != nil {
			return "", fmt.Errorf("page %d: %w", ref.Page, err)
		}

		files = append(files, out)
	}

	pdfPath := a.layout.PDFPath(title, chapter)

	// pdfcpu appends to an existing output file instead of replacing it.
	if err := os.Remove(pdfPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return "", err
	}

	if err := api.ImportImagesFile(files, pdfPath, nil, model.NewDefaultConfiguration()); err != nil {
		return "", tracerr.Wrap(err)
	}

	a.log.Infof("All done! Chapter %d of %s has been saved as pdf!", chapter, title)

	return pdfPath, nil
}

// toRGB decodes a raw page in any supported format, flattens it onto white
// and writes it back out as an opaque JPEG.
func toRGB(in, out string) error {
	img, err := imaging.Open(in, imaging.AutoOrientation(true))
	if err != nil {
		return tracerr.Wrap(err)
	}

	b := img.Bounds()
	flat := imaging.Overlay(imaging.New(b.Dx(), b.Dy(), color.White), img, image.Pt(0, 0), 1.0)

	if err := imaging.Save(flat, out, imaging.JPEGQuality(92)); err != nil {
		return tracerr.Wrap(err)
	}

	return nil
}
