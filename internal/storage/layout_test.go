package storage

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageRefFileName(t *testing.T) {
	ref := PageRef{Title: "One Piece", Chapter: 500, Page: 3}
	assert.Equal(t, "One Piece ch500-3.jpg", ref.FileName())

	back, ok := ParsePageRef("One Piece", ref.FileName())
	require.True(t, ok)
	assert.Equal(t, ref, back)
}

func TestParsePageRefRejects(t *testing.T) {
	for _, name := range []string{
		"One Piece ch500.pdf",
		"One Piece ch500-3.png",
		"One Piece ch500-.jpg",
		"One Piece ch-3.jpg",
		"One Piece ch+5-3.jpg",
		"One Piece chfive-3.jpg",
		"Two Piece ch500-3.jpg",
		"One Piece ch500-3-1.jpg",
	} {
		_, ok := ParsePageRef("One Piece", name)
		assert.False(t, ok, name)
	}
}

func TestLayoutPaths(t *testing.T) {
	l := New("")
	assert.Equal(t, DefaultRoot, l.Root)

	assert.Equal(t, filepath.Join("Downloads", "One Piece", "raws", "One Piece ch500-1.jpg"),
		l.RawPath(PageRef{Title: "One Piece", Chapter: 500, Page: 1}))
	assert.Equal(t, filepath.Join("Downloads", "One Piece", "PDFs", "One Piece ch500.pdf"),
		l.PDFPath("One Piece", 500))
}

func TestCreateRawBuildsFoldersOnce(t *testing.T) {
	l := New(filepath.Join(t.TempDir(), "Downloads"))
	require.NoError(t, l.EnsureRoot())

	ref := PageRef{Title: "One Piece", Chapter: 1, Page: 1}
	for _, content := range []string{"first write", "second"} {
		f, err := l.CreateRaw(ref)
		require.NoError(t, err)
		_, err = f.WriteString(content)
		require.NoError(t, err)
		require.NoError(t, f.Close())
	}

	got, err := os.ReadFile(l.RawPath(ref))
	require.NoError(t, err)
	assert.Equal(t, "second", string(got))

	entries, err := os.ReadDir(l.TitleDir("One Piece"))
	require.NoError(t, err)

	var names []string
	for _, e := range entries {
		assert.True(t, e.IsDir())
		names = append(names, e.Name())
	}
	sort.Strings(names)
	assert.Equal(t, []string{"PDFs", "raws"}, names)
}

func TestRawsFiltersChapter(t *testing.T) {
	l := New(t.TempDir())
	require.NoError(t, l.EnsureTitle("Naruto"))

	for _, name := range []string{
		"Naruto ch5-2.jpg",
		"Naruto ch5-1.jpg",
		"Naruto ch15-1.jpg",
		"Naruto ch5-notes.txt",
		"Boruto ch5-1.jpg",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(l.RawsDir("Naruto"), name), []byte("x"), 0644))
	}

	refs, err := l.Raws("Naruto", 5)
	require.NoError(t, err)
	assert.ElementsMatch(t, []PageRef{
		{Title: "Naruto", Chapter: 5, Page: 1},
		{Title: "Naruto", Chapter: 5, Page: 2},
	}, refs)
}

func TestRawsMissingTitle(t *testing.T) {
	_, err := New(t.TempDir()).Raws("Nobody", 1)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestCheckTitle(t *testing.T) {
	for _, title := range []string{
		"One Piece",
		"LET'S TAKE THE TRAIN TOGETHER, SHALL WE?",
		"15-SAI (ASAGI RYUU)",
		"Mr. Fu",
		"...",
	} {
		assert.NoError(t, CheckTitle(title), title)
	}

	for _, title := range []string{
		"LIAN AI 1/2",
		"../outside",
		`a\b`,
		".",
		"..",
		"",
		"   ",
	} {
		assert.ErrorIs(t, CheckTitle(title), ErrBadTitle, title)
	}
}

func TestCreateRawStaysUnderRoot(t *testing.T) {
	parent := t.TempDir()
	l := New(filepath.Join(parent, "Downloads"))
	require.NoError(t, l.EnsureRoot())

	for _, title := range []string{"LIAN AI 1/2", "../outside"} {
		_, err := l.CreateRaw(PageRef{Title: title, Chapter: 1, Page: 1})
		assert.ErrorIs(t, err, ErrBadTitle, title)

		_, err = l.Raws(title, 1)
		assert.ErrorIs(t, err, ErrBadTitle, title)
	}

	entries, err := os.ReadDir(l.Root)
	require.NoError(t, err)
	assert.Empty(t, entries)

	entries, err = os.ReadDir(parent)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Downloads", entries[0].Name())
}
