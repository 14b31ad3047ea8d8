// ABOUTME: Markdown rendering for comment bodies
// ABOUTME: Comments are authored as markdown; responses carry a rendered html field

package collab

import (
	"bytes"

	"github.com/yuin/goldmark"
)

// RenderMarkdown converts comment markdown to HTML for the response body.
// On conversion failure the raw content is returned unrendered rather than
// failing the request.
func RenderMarkdown(content string) string {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(content), &buf); err != nil {
		return content
	}
	return buf.String()
}
