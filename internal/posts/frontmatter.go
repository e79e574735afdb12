package posts

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrMissingClosingDelimiter indicates the document opened a frontmatter
// block but never closed it.
var ErrMissingClosingDelimiter = errors.New("frontmatter start delimiter found but closing delimiter is missing")

// metadata is the frontmatter every post file carries.
type metadata struct {
	Title       string `yaml:"title"`
	PublishedAt string `yaml:"publishedAt"`
	Summary     string `yaml:"summary"`
	Image       string `yaml:"image"`
}

// splitFrontmatter separates a `---` delimited YAML block from the body.
// A document without an opening delimiter has no frontmatter.
func splitFrontmatter(content []byte) (fm []byte, body []byte, had bool, err error) {
	nl := "\n"
	if i := bytes.IndexByte(content, '\n'); i > 0 && content[i-1] == '\r' {
		nl = "\r\n"
	}

	open := []byte("---" + nl)
	if !bytes.HasPrefix(content, open) {
		return nil, content, false, nil
	}

	start := len(open)
	if bytes.HasPrefix(content[start:], open) {
		return []byte{}, content[start+len(open):], true, nil
	}

	closeSeq := []byte(nl + "---" + nl)
	idx := bytes.Index(content[start:], closeSeq)
	if idx < 0 {
		// A closing delimiter on the final line has no trailing newline.
		if bytes.HasSuffix(content, []byte(nl+"---")) {
			end := len(content) - len("---")
			return content[start:end], []byte{}, true, nil
		}
		return nil, nil, false, ErrMissingClosingDelimiter
	}

	end := start + idx + len(nl)
	return content[start:end], content[start+idx+len(closeSeq):], true, nil
}

// parseMetadata turns raw frontmatter into a Summary. The slug is not part
// of the frontmatter and is left for the caller.
func parseMetadata(fm []byte) (Summary, error) {
	var meta metadata
	if err := yaml.Unmarshal(fm, &meta); err != nil {
		return Summary{}, fmt.Errorf("parse frontmatter: %w", err)
	}
	meta.Title = strings.TrimSpace(meta.Title)
	if meta.Title == "" {
		return Summary{}, errors.New("frontmatter: title is required")
	}
	published, err := parseDate(meta.PublishedAt)
	if err != nil {
		return Summary{}, fmt.Errorf("frontmatter: publishedAt: %w", err)
	}
	return Summary{
		Title:       meta.Title,
		PublishedAt: published,
		Summary:     strings.TrimSpace(meta.Summary),
		Image:       strings.TrimSpace(meta.Image),
	}, nil
}

// parseDate accepts a bare date or a full RFC 3339 timestamp. Bare dates
// are midnight UTC.
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errors.New("missing date")
	}
	if !strings.Contains(s, "T") {
		return time.Parse(time.DateOnly, s)
	}
	return time.Parse(time.RFC3339, s)
}
