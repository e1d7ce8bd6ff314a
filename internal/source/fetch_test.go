package source

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/brogergvhs/mangascraper/internal/ui"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, baseURL string) (*Client, *bytes.Buffer) {
	t.Helper()

	var buf bytes.Buffer
	log := ui.NewLogger(false)
	log.SetOutput(&buf)

	return NewClient(http.DefaultClient, baseURL, log), &buf
}

func TestFetchAcceptsMarkup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/html":
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			_, _ = w.Write([]byte("<html><body>ok</body></html>"))
		case "/xml":
			w.Header().Set("Content-Type", "application/XHTML+XML")
			_, _ = w.Write([]byte("<html/>"))
		case "/json":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte("{}"))
		case "/missing":
			w.Header().Set("Content-Type", "text/html")
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c, _ := newTestClient(t, srv.URL)
	ctx := context.Background()

	html := c.Fetch(ctx, srv.URL+"/html")
	require.True(t, html.Present())
	assert.Equal(t, "<html><body>ok</body></html>", string(html.Body))

	assert.True(t, c.Fetch(ctx, srv.URL+"/xml").Present())
	assert.False(t, c.Fetch(ctx, srv.URL+"/json").Present())
	assert.False(t, c.Fetch(ctx, srv.URL+"/missing").Present())
}

func TestFetchTransportFailureIsLogged(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL + "/gone"
	srv.Close()

	c, buf := newTestClient(t, srv.URL)

	got := c.Fetch(context.Background(), url)
	assert.False(t, got.Present())
	assert.Contains(t, buf.String(), "Error during requests to "+url)

	_, err := got.Document()
	assert.ErrorIs(t, err, ErrNoContent)
}

func TestClientURLs(t *testing.T) {
	c, _ := newTestClient(t, "http://www.mangareader.net/")

	assert.Equal(t, "http://www.mangareader.net", c.BaseURL())
	assert.Equal(t, "mangareader.net", c.SiteName())
	assert.Equal(t, "http://www.mangareader.net/one-piece", c.TitleURL("one-piece"))
	assert.Equal(t, "http://www.mangareader.net/one-piece/500", c.ChapterURL("one-piece", 500))
}
