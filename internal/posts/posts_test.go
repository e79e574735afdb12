package posts

import (
	"context"
	"errors"
	"iter"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// sliceSource yields fixed summaries and counts how often it is ranged over.
type sliceSource struct {
	items []Summary
	err   error
	reads int
}

func (s *sliceSource) Summaries(context.Context) iter.Seq2[Summary, error] {
	return func(yield func(Summary, error) bool) {
		s.reads++
		for _, it := range s.items {
			if !yield(it, nil) {
				return
			}
		}
		if s.err != nil {
			yield(Summary{}, s.err)
		}
	}
}

func day(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return t
}

func writePost(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestCollect_SortsNewestFirstAndIsStable(t *testing.T) {
	src := &sliceSource{items: []Summary{
		{Slug: "old", PublishedAt: day("2023-01-01")},
		{Slug: "tie-a", PublishedAt: day("2024-05-01")},
		{Slug: "new", PublishedAt: day("2025-02-10")},
		{Slug: "tie-b", PublishedAt: day("2024-05-01")},
	}}

	got, err := Collect(context.Background(), src)
	require.NoError(t, err)

	var slugs []string
	for _, s := range got {
		slugs = append(slugs, s.Slug)
	}
	require.Equal(t, []string{"new", "tie-a", "tie-b", "old"}, slugs)
}

func TestCollect_StopsAtFirstError(t *testing.T) {
	boom := errors.New("boom")
	src := &sliceSource{items: []Summary{{Slug: "a"}}, err: boom}

	got, err := Collect(context.Background(), src)
	require.ErrorIs(t, err, boom)
	require.Nil(t, got)
}

func TestValidSlug(t *testing.T) {
	for _, ok := range []string{"hello", "spaces-vs-tabs", "go_1.24"} {
		require.True(t, ValidSlug(ok), ok)
	}
	for _, bad := range []string{"", ".", "..", "a/b", `a\b`, "../etc"} {
		require.False(t, ValidSlug(bad), bad)
	}
}

func TestSplitFrontmatter(t *testing.T) {
	fm, body, had, err := splitFrontmatter([]byte("---\ntitle: x\n---\n# Body\n"))
	require.NoError(t, err)
	require.True(t, had)
	require.Equal(t, "title: x\n", string(fm))
	require.Equal(t, "# Body\n", string(body))

	fm, body, had, err = splitFrontmatter([]byte("---\r\ntitle: x\r\n---\r\nbody"))
	require.NoError(t, err)
	require.True(t, had)
	require.Equal(t, "title: x\r\n", string(fm))
	require.Equal(t, "body", string(body))

	_, body, had, err = splitFrontmatter([]byte("# No frontmatter\n"))
	require.NoError(t, err)
	require.False(t, had)
	require.Equal(t, "# No frontmatter\n", string(body))

	_, _, _, err = splitFrontmatter([]byte("---\ntitle: x\n# never closed\n"))
	require.ErrorIs(t, err, ErrMissingClosingDelimiter)
}

func TestParseMetadata(t *testing.T) {
	sum, err := parseMetadata([]byte("title: 'Spaces vs. Tabs'\npublishedAt: 2024-04-08\nsummary: ' Tabs win. '\n"))
	require.NoError(t, err)
	require.Equal(t, "Spaces vs. Tabs", sum.Title)
	require.Equal(t, day("2024-04-08"), sum.PublishedAt)
	require.Equal(t, "Tabs win.", sum.Summary)

	sum, err = parseMetadata([]byte("title: x\npublishedAt: '2024-04-08T10:30:00Z'\n"))
	require.NoError(t, err)
	require.Equal(t, time.Date(2024, 4, 8, 10, 30, 0, 0, time.UTC), sum.PublishedAt)

	_, err = parseMetadata([]byte("publishedAt: 2024-04-08\n"))
	require.ErrorContains(t, err, "title")

	_, err = parseMetadata([]byte("title: x\npublishedAt: yesterday\n"))
	require.ErrorContains(t, err, "publishedAt")
}
