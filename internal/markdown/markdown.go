// Package markdown converts localized post and project bodies to HTML.
package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// Renderer converts Markdown content to HTML.
type Renderer struct {
	md goldmark.Markdown
}

// NewRenderer builds the goldmark pipeline used for all site content.
// Content is authored by the site owner, so raw HTML passes through.
func NewRenderer() *Renderer {
	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				extension.Strikethrough,
				extension.TaskList,
			),
			goldmark.WithParserOptions(
				parser.WithAutoHeadingID(),
			),
			goldmark.WithRendererOptions(
				html.WithXHTML(),
				html.WithUnsafe(),
			),
		),
	}
}

// Render converts Markdown source to HTML.
func (r *Renderer) Render(source string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("markdown: convert: %w", err)
	}
	return buf.String(), nil
}

// FirstParagraph returns the first plain-text paragraph of a Markdown
// document, skipping headings, rules, lists, tables, and code fences.
// Used as an excerpt fallback when none is authored.
func FirstParagraph(source string) string {
	var collected []string
	for _, line := range strings.Split(source, "\n") {
		trimmed := strings.TrimSpace(line)

		structural := trimmed == "" ||
			strings.HasPrefix(trimmed, "#") ||
			strings.HasPrefix(trimmed, "```") ||
			strings.HasPrefix(trimmed, "---") ||
			strings.HasPrefix(trimmed, "***") ||
			strings.HasPrefix(trimmed, "- ") ||
			strings.HasPrefix(trimmed, "* ") ||
			strings.HasPrefix(trimmed, "+ ") ||
			strings.HasPrefix(trimmed, "|") ||
			strings.HasPrefix(trimmed, ">")

		if structural {
			if len(collected) > 0 {
				break
			}
			continue
		}
		collected = append(collected, trimmed)
	}
	return strings.Join(collected, " ")
}
