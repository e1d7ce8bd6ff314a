// Package storage owns the download folder layout:
//
//	<root>/<Title>/raws/<Title> ch<Chapter>-<Page>.jpg
//	<root>/<Title>/PDFs/<Title> ch<Chapter>.pdf
//
// Titles appear verbatim, not slugged, and must pass CheckTitle. Nothing here
// is ever cleaned up.
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	DefaultRoot = "Downloads"

	rawsDir = "raws"
	pdfsDir = "PDFs"
	rawExt  = ".jpg"
	pdfExt  = ".pdf"
)

// ErrBadTitle is returned for titles that cannot be used as a single folder
// name under the root.
var ErrBadTitle = errors.New("title cannot be used as a folder name")

// CheckTitle rejects titles that would not map to exactly one folder below
// the root: blank titles, "." and "..", and anything with a path separator.
func CheckTitle(title string) error {
	switch {
	case strings.TrimSpace(title) == "", title == ".", title == "..":
		return fmt.Errorf("%q: %w", title, ErrBadTitle)
	case strings.ContainsAny(title, `/\`):
		return fmt.Errorf("%q contains a path separator: %w", title, ErrBadTitle)
	}

	return nil
}

// PageRef identifies one raw page on disk.
type PageRef struct {
	Title   string
	Chapter int
	Page    int
}

// FileName is the raw page file name, e.g. "One Piece ch500-3.jpg".
func (r PageRef) FileName() string {
	return fmt.Sprintf("%s ch%d-%d%s", r.Title, r.Chapter, r.Page, rawExt)
}

// ParsePageRef is the inverse of FileName for the given title.
func ParsePageRef(title, name string) (PageRef, bool) {
	rest, ok := strings.CutPrefix(name, title+" ch")
	if !ok {
		return PageRef{}, false
	}

	rest, ok = strings.CutSuffix(rest, rawExt)
	if !ok {
		return PageRef{}, false
	}

	chapter, page, ok := strings.Cut(rest, "-")
	if !ok {
		return PageRef{}, false
	}

	c, err := strconv.ParseUint(chapter, 10, 31)
	if err != nil {
		return PageRef{}, false
	}

	p, err := strconv.ParseUint(page, 10, 31)
	if err != nil {
		return PageRef{}, false
	}

	return PageRef{Title: title, Chapter: int(c), Page: int(p)}, true
}

type Layout struct {
	Root string
}

func New(root string) Layout {
	if root == "" {
		root = DefaultRoot
	}

	return Layout{Root: root}
}

// EnsureRoot creates the top level download folder. It runs once at start
// up, before any chapter is saved.
func (l Layout) EnsureRoot() error {
	if err := os.MkdirAll(l.Root, 0755); err != nil {
		return fmt.Errorf("create download folder: %w", err)
	}

	return nil
}

func (l Layout) TitleDir(title string) string {
	return filepath.Join(l.Root, title)
}

func (l Layout) RawsDir(title string) string {
	return filepath.Join(l.Root, title, rawsDir)
}

func (l Layout) PDFsDir(title string) string {
	return filepath.Join(l.Root, title, pdfsDir)
}

func (l Layout) RawPath(ref PageRef) string {
	return filepath.Join(l.RawsDir(ref.Title), ref.FileName())
}

func (l Layout) PDFPath(title string, chapter int) string {
	return filepath.Join(l.PDFsDir(title), fmt.Sprintf("%s ch%d%s", title, chapter, pdfExt))
}

// EnsureTitle creates the title folder with its raws and PDFs folders. It
// is safe to call for a title that already has them.
func (l Layout) EnsureTitle(title string) error {
	if err := CheckTitle(title); err != nil {
		return err
	}

	for _, dir := range []string{l.RawsDir(title), l.PDFsDir(title)} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create folders for %s: %w", title, err)
		}
	}

	return nil
}

// CreateRaw opens the raw page file for writing, creating the title's
// folders first. An existing file is truncated.
func (l Layout) CreateRaw(ref PageRef) (*os.File, error) {
	if err := l.EnsureTitle(ref.Title); err != nil {
		return nil, err
	}

	return os.Create(l.RawPath(ref))
}

// Raws lists the pages of one chapter found in the title's raws folder, in
// directory order. Files that do not parse as pages of this title are
// ignored.
func (l Layout) Raws(title string, chapter int) ([]PageRef, error) {
	if err := CheckTitle(title); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(l.RawsDir(title))
	if err != nil {
		return nil, err
	}

	var out []PageRef
	for _, e := range entries {
		if e.IsDir() {
			continue
		}

		ref, ok := ParsePageRef(title, e.Name())
		if !ok || ref.Chapter != chapter {
			continue
		}

		out = append(out, ref)
	}

	return out, nil
}
