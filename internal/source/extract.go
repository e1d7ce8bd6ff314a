package source

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// ErrMissingElement means the page no longer has the structure the
// extractors rely on. It is never recovered from.
var ErrMissingElement = errors.New("expected element not found")

const (
	imageHolderSelector = "#imgholder"
	pageMenuSelector    = "#pageMenu"
	notFoundSelector    = "#recom"
)

// ImageSource returns the URL of the page image held in the image holder:
// the src of the first child element of its first link. Relative sources
// are resolved against pageURL.
func ImageSource(doc *goquery.Document, pageURL string) (string, error) {
	holder := doc.Find(imageHolderSelector).First()
	if holder.Length() == 0 {
		return "", missing(imageHolderSelector, pageURL)
	}

	link := holder.Find("a").First()
	if link.Length() == 0 {
		return "", missing(imageHolderSelector+" a", pageURL)
	}

	img := link.Children().First()
	if img.Length() == 0 {
		return "", missing(imageHolderSelector+" a > *", pageURL)
	}

	src, ok := img.Attr("src")
	if !ok || strings.TrimSpace(src) == "" {
		return "", missing(imageHolderSelector+" a > *[src]", pageURL)
	}

	return resolve(pageURL, strings.TrimSpace(src)), nil
}

// PageLinks lists the chapter's page URLs in the order the page menu holds
// them. Each option value is appended to baseURL as is.
func PageLinks(doc *goquery.Document, baseURL string) ([]string, error) {
	menu := doc.Find(pageMenuSelector).First()
	if menu.Length() == 0 {
		return nil, missing(pageMenuSelector, baseURL)
	}

	var (
		out []string
		err error
	)

	menu.Contents().EachWithBreak(func(i int, child *goquery.Selection) bool {
		if child.Get(0).Type != html.ElementNode {
			return true
		}

		value, ok := child.Attr("value")
		if !ok {
			err = missing(fmt.Sprintf("%s child %d [value]", pageMenuSelector, i), baseURL)
			return false
		}

		out = append(out, baseURL+value)
		return true
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// HasNotFoundMarker reports whether the image holder carries the
// recommendation block the site shows for chapters past the last one.
func HasNotFoundMarker(doc *goquery.Document, pageURL string) (bool, error) {
	holder := doc.Find(imageHolderSelector).First()
	if holder.Length() == 0 {
		return false, missing(imageHolderSelector, pageURL)
	}

	return holder.Find(notFoundSelector).Length() > 0, nil
}

func missing(selector, where string) error {
	return fmt.Errorf("%w: %s on %s", ErrMissingElement, selector, where)
}

func resolve(pageURL, raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u == nil {
		return raw
	}

	if u.IsAbs() {
		return u.String()
	}

	base, err := url.Parse(pageURL)
	if err != nil || base == nil {
		return raw
	}

	return base.ResolveReference(u).String()
}
