// ABOUTME: Converts the optional "about" markdown block to HTML for the dashboard page.
// ABOUTME: goldmark's default renderer drops raw HTML, so operator-supplied text cannot inject markup.
package web

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// RenderAbout converts markdown source to HTML. Empty input yields an empty
// fragment.
func RenderAbout(source []byte) (template.HTML, error) {
	if len(bytes.TrimSpace(source)) == 0 {
		return "", nil
	}
	var buf bytes.Buffer
	md := goldmark.New(goldmark.WithExtensions(extension.Table, extension.Linkify))
	if err := md.Convert(source, &buf); err != nil {
		return "", fmt.Errorf("render about markdown: %w", err)
	}
	return template.HTML(buf.String()), nil
}
