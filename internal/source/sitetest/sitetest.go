// Package sitetest serves a small fake of the manga site for tests.
package sitetest

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
)

// Site maps slugs to chapters to page counts. Titles absent from the map
// answer 404 on their landing page.
type Site struct {
	*httptest.Server

	mu       sync.Mutex
	titles   map[string]map[int]int
	requests []string
}

func New(t *testing.T, titles map[string]map[int]int) *Site {
	t.Helper()

	s := &Site{titles: titles}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	t.Cleanup(s.Close)

	return s
}

// Requests returns the paths requested so far, in order.
func (s *Site) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]string(nil), s.requests...)
}

// PageWidth is the width of the image served for a page, so tests can tell
// pages apart after decoding.
func PageWidth(page int) int {
	return 10 * page
}

func (s *Site) serve(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.requests = append(s.requests, r.URL.Path)
	s.mu.Unlock()

	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")

	if parts[0] == "img" && len(parts) == 4 {
		page, err := strconv.Atoi(strings.TrimSuffix(parts[3], ".png"))
		if err != nil {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(PNG(PageWidth(page), 8))
		return
	}

	chapters, ok := s.titles[parts[0]]
	if !ok {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	if len(parts) == 1 {
		_, _ = fmt.Fprintf(w, "<html><body><h1>%s</h1></body></html>", parts[0])
		return
	}

	chapter, err := strconv.Atoi(parts[1])
	if err != nil {
		http.NotFound(w, r)
		return
	}

	pages, ok := chapters[chapter]
	if !ok {
		_, _ = fmt.Fprint(w, `<html><body><div id="imgholder"><div id="recom"><p>Not released yet</p></div></div></body></html>`)
		return
	}

	page := 1
	if len(parts) > 2 {
		if page, err = strconv.Atoi(parts[2]); err != nil || page < 1 || page > pages {
			http.NotFound(w, r)
			return
		}
	}

	_, _ = fmt.Fprint(w, chapterPage(parts[0], chapter, page, pages))
}

func chapterPage(slug string, chapter, page, pages int) string {
	var menu strings.Builder
	for p := 1; p <= pages; p++ {
		value := fmt.Sprintf("/%s/%d/%d", slug, chapter, p)
		if p == 1 {
			value = fmt.Sprintf("/%s/%d", slug, chapter)
		}
		fmt.Fprintf(&menu, "\n<option value=\"%s\">%d</option>", value, p)
	}
	menu.WriteString("\n")

	return fmt.Sprintf(`<html><body>
<select id="pageMenu">%s</select>
<div id="imgholder"><a href="/%s/%d/%d"><img id="img" src="/img/%s/%d/%d.png" alt="page"></a></div>
</body></html>`, menu.String(), slug, chapter, page+1, slug, chapter, page)
}

// PNG encodes a solid w×h image.
func PNG(w, h int) []byte {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: 200, G: 40, B: 40, A: 255})
		}
	}

	var buf bytes.Buffer
	_ = png.Encode(&buf, img)

	return buf.Bytes()
}
