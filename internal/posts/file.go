package posts

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"strings"
)

// Extensions recognised as post files, in lookup order.
var extensions = []string{".mdx", ".md"}

// FileSource reads posts from Markdown files with YAML frontmatter in a
// single directory. The slug of a post is its file name without extension.
type FileSource struct {
	Dir string
}

func NewFileSource(dir string) *FileSource {
	return &FileSource{Dir: dir}
}

// Summaries lists the directory when iteration starts and then reads one
// file per step.
func (s *FileSource) Summaries(ctx context.Context) iter.Seq2[Summary, error] {
	return func(yield func(Summary, error) bool) {
		names, err := s.files()
		if err != nil {
			yield(Summary{}, err)
			return
		}
		for _, name := range names {
			if err := ctx.Err(); err != nil {
				yield(Summary{}, err)
				return
			}
			sum, _, err := s.load(name)
			if !yield(sum, err) || err != nil {
				return
			}
		}
	}
}

// Post loads a single post and renders its body.
func (s *FileSource) Post(ctx context.Context, slug string) (Post, error) {
	sum, body, err := s.Markdown(ctx, slug)
	if err != nil {
		return Post{}, err
	}
	html, err := RenderMarkdown(body)
	if err != nil {
		return Post{}, fmt.Errorf("post %s: %w", slug, err)
	}
	return Post{Summary: sum, HTML: html}, nil
}

// Markdown returns the summary and the unrendered body of a post.
func (s *FileSource) Markdown(ctx context.Context, slug string) (Summary, []byte, error) {
	if !ValidSlug(slug) {
		return Summary{}, nil, ErrNotFound
	}
	if err := ctx.Err(); err != nil {
		return Summary{}, nil, err
	}
	for _, ext := range extensions {
		sum, body, err := s.load(slug + ext)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		return sum, body, err
	}
	return Summary{}, nil, ErrNotFound
}

// files returns one file name per slug. When a slug exists with more than
// one extension the file Markdown would resolve wins, so the list and the
// post page agree. Names whose slug is not addressable are skipped.
func (s *FileSource) files() ([]string, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		return nil, fmt.Errorf("read posts dir: %w", err)
	}
	var slugs []string
	chosen := make(map[string]string)
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !isPostFile(name) {
			continue
		}
		slug := strings.TrimSuffix(name, filepath.Ext(name))
		if !ValidSlug(slug) {
			continue
		}
		prev, seen := chosen[slug]
		if !seen {
			slugs = append(slugs, slug)
			chosen[slug] = name
			continue
		}
		if extRank(name) < extRank(prev) {
			chosen[slug] = name
		}
	}
	names := make([]string, 0, len(slugs))
	for _, slug := range slugs {
		names = append(names, chosen[slug])
	}
	return names, nil
}

func (s *FileSource) load(name string) (Summary, []byte, error) {
	path := filepath.Join(s.Dir, name)
	content, err := os.ReadFile(path)
	if err != nil {
		return Summary{}, nil, fmt.Errorf("read post %s: %w", name, err)
	}
	fm, body, had, err := splitFrontmatter(content)
	if err != nil {
		return Summary{}, nil, fmt.Errorf("post %s: %w", name, err)
	}
	if !had {
		return Summary{}, nil, fmt.Errorf("post %s: missing frontmatter", name)
	}
	sum, err := parseMetadata(fm)
	if err != nil {
		return Summary{}, nil, fmt.Errorf("post %s: %w", name, err)
	}
	sum.Slug = strings.TrimSuffix(name, filepath.Ext(name))
	return sum, body, nil
}

func isPostFile(name string) bool {
	return extRank(name) >= 0
}

// extRank is the position of the name's extension in extensions, or -1.
func extRank(name string) int {
	ext := filepath.Ext(name)
	for i, e := range extensions {
		if ext == e {
			return i
		}
	}
	return -1
}
