package web

import (
	"bytes"
	"html/template"
	"strings"
	"sync"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

const noDescription = "No description available"

// The parser configuration never changes and goldmark.Markdown is safe
// for concurrent use, so one instance serves every request.
var (
	markdownInstance goldmark.Markdown
	markdownOnce     sync.Once
)

func getMarkdown() goldmark.Markdown {
	markdownOnce.Do(func() {
		// The default HTML renderer drops raw HTML from the source and
		// replaces it with a comment. Issue bodies are user content, so
		// html.WithUnsafe must stay off.
		markdownInstance = goldmark.New(
			goldmark.WithExtensions(extension.GFM),
		)
	})
	return markdownInstance
}

// renderMarkdown converts a GitHub-flavored markdown issue body to HTML.
// An empty body renders as "No description available".
func renderMarkdown(body string) (template.HTML, error) {
	if strings.TrimSpace(body) == "" {
		body = noDescription
	}

	var buf bytes.Buffer
	if err := getMarkdown().Convert([]byte(body), &buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}
