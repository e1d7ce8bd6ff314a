package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/brogergvhs/mangascraper/internal/source/sitetest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	site := sitetest.New(t, map[string]map[int]int{
		"one-piece": {500: 3},
	})
	c, buf := newTestClient(t, site.URL)
	ctx := context.Background()

	t.Run("valid", func(t *testing.T) {
		res, err := c.Validate(ctx, "One Piece", 500)
		require.NoError(t, err)
		assert.True(t, res.OK())
		assert.Equal(t, site.URL+"/one-piece/500", res.ChapterURL)
		require.NotNil(t, res.Doc)
		assert.Equal(t, 1, res.Doc.Find("#pageMenu").Length())
	})

	t.Run("title missing", func(t *testing.T) {
		buf.Reset()
		res, err := c.Validate(ctx, "Two Piece", 20)
		require.NoError(t, err)
		assert.False(t, res.OK())
		assert.Equal(t, TitleMissing, res.Verdict)
		assert.Contains(t, buf.String(), "Sorry, Two Piece does not exist on 127.0.0.1")
	})

	t.Run("chapter missing", func(t *testing.T) {
		buf.Reset()
		res, err := c.Validate(ctx, "One Piece", 1000)
		require.NoError(t, err)
		assert.Equal(t, ChapterMissing, res.Verdict)
		assert.Nil(t, res.Doc)
		assert.Contains(t, buf.String(), "Sorry Chapter1000 of One Piece does not exist.")
	})
}

func TestValidateTitleMissingStopsEarly(t *testing.T) {
	site := sitetest.New(t, map[string]map[int]int{})
	c, _ := newTestClient(t, site.URL)

	_, err := c.Validate(context.Background(), "Two Piece", 20)
	require.NoError(t, err)
	assert.Equal(t, []string{"/two-piece"}, site.Requests())
}

// A site that answers unknown titles with a normal page is not caught by
// the landing check; the chapter check then fails on structure.
func TestValidateSoftNotFoundFallsThrough(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html><body><h1>Page not found</h1></body></html>"))
	}))
	defer srv.Close()

	c, _ := newTestClient(t, srv.URL)

	_, err := c.Validate(context.Background(), "Two Piece", 20)
	assert.ErrorIs(t, err, ErrMissingElement)
}

func TestValidateCancelled(t *testing.T) {
	site := sitetest.New(t, map[string]map[int]int{"one-piece": {500: 3}})
	c, buf := newTestClient(t, site.URL)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := c.Validate(ctx, "Two Piece", 20)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, res.Doc)
	assert.NotContains(t, buf.String(), "does not exist")
}

func TestVerdictString(t *testing.T) {
	assert.Equal(t, "valid", Valid.String())
	assert.Equal(t, "title missing", TitleMissing.String())
	assert.Equal(t, "chapter missing", ChapterMissing.String())
	assert.Equal(t, "verdict(9)", Verdict(9).String())
}
