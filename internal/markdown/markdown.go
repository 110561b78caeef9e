// Package markdown renders reference answers written in markdown.
package markdown

import (
	"html/template"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

const (
	extensions = parser.CommonExtensions | parser.NoEmptyLineBeforeBlock
	// Raw HTML in the spreadsheet is dropped and links are limited to safe
	// protocols, so the output can be trusted by html/template.
	renderFlags = html.CommonFlags | html.SkipHTML | html.Safelink | html.HrefTargetBlank
)

// ToHTML renders text to HTML. Blank text renders to "".
func ToHTML(text string) template.HTML {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}

	// parsers are single use
	p := parser.NewWithExtensions(extensions)
	renderer := html.NewRenderer(html.RendererOptions{Flags: renderFlags})
	out := markdown.ToHTML([]byte(normalizeNewlines(text)), p, renderer)
	return template.HTML(strings.TrimSpace(string(out)))
}

func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
