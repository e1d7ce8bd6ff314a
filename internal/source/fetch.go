package source

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ErrNoContent is returned when a caller asks for markup that the fetch did
// not produce.
var ErrNoContent = errors.New("no markup content")

type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// Content is the result of a markup fetch. The zero value is an absent
// result; callers must check Present before using Body.
type Content struct {
	URL  string
	Body []byte

	present bool
}

func (c Content) Present() bool {
	return c.present
}

// Document parses the fetched markup.
func (c Content) Document() (*goquery.Document, error) {
	if !c.present {
		return nil, fmt.Errorf("%s: %w", c.URL, ErrNoContent)
	}

	return goquery.NewDocumentFromReader(bytes.NewReader(c.Body))
}

type Client struct {
	client  *http.Client
	baseURL string
	log     Logger
}

func NewClient(c *http.Client, baseURL string, log Logger) *Client {
	return &Client{
		client:  c,
		baseURL: strings.TrimRight(baseURL, "/"),
		log:     log,
	}
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// SiteName is the host shown in user facing messages, e.g. "mangareader.net".
func (c *Client) SiteName() string {
	u, err := url.Parse(c.baseURL)
	if err != nil || u.Host == "" {
		return c.baseURL
	}

	return strings.TrimPrefix(u.Hostname(), "www.")
}

// TitleURL is the chapter-less landing page of a title.
func (c *Client) TitleURL(slug string) string {
	return c.baseURL + "/" + slug
}

// ChapterURL is the first page of a chapter.
func (c *Client) ChapterURL(slug string, chapter int) string {
	return fmt.Sprintf("%s/%s/%d", c.baseURL, slug, chapter)
}

// Fetch performs a single GET. Transport failures are logged and reported as
// absent content, as are non-200 responses and anything that is not HTML or
// XML. It never returns an error.
func (c *Client) Fetch(ctx context.Context, target string) Content {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		c.log.Errorf("Error during requests to %s : %v", target, err)
		return Content{URL: target}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.log.Errorf("Error during requests to %s : %v", target, err)
		return Content{URL: target}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if !isMarkupResponse(resp) {
		c.log.Debugf("Rejected %s (HTTP %d, %q)", target, resp.StatusCode, resp.Header.Get("Content-Type"))
		return Content{URL: target}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.log.Errorf("Error during requests to %s : %v", target, err)
		return Content{URL: target}
	}

	return Content{URL: target, Body: body, present: true}
}

func isMarkupResponse(resp *http.Response) bool {
	if resp.StatusCode != http.StatusOK {
		return false
	}

	ct := strings.ToLower(resp.Header.Get("Content-Type"))

	return strings.Contains(ct, "html") || strings.Contains(ct, "xml")
}
