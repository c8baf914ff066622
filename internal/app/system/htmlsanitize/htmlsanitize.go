// Package htmlsanitize cleans the limited rich text allowed in mentor bios
// and session notes, and turns plain-text notes into display HTML.
package htmlsanitize

import (
	"html"
	"html/template"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	policyOnce sync.Once
	policy     *bluemonday.Policy
)

func richText() *bluemonday.Policy {
	policyOnce.Do(func() {
		p := bluemonday.UGCPolicy()
		p.AllowElements("u", "s", "mark")
		p.AllowAttrs("colspan", "rowspan").OnElements("td", "th")
		p.RequireNoFollowOnLinks(true)
		p.AddTargetBlankToFullyQualifiedLinks(true)
		policy = p
	})
	return policy
}

// Sanitize strips anything outside the rich-text allow list.
func Sanitize(s string) string {
	if s == "" {
		return ""
	}
	return richText().Sanitize(s)
}

// isPlainText reports whether s contains nothing that looks like a tag.
func isPlainText(s string) bool {
	return !(strings.Contains(s, "<") && strings.Contains(s, ">"))
}

// plainTextToHTML escapes s and wraps it in a paragraph, turning newlines
// into <br>.
func plainTextToHTML(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return "<p>" + strings.ReplaceAll(html.EscapeString(s), "\n", "<br>") + "</p>"
}

// PrepareForDisplay renders stored text for a detail page: plain text is
// escaped and paragraphed, anything else is sanitized.
func PrepareForDisplay(s string) template.HTML {
	if s == "" {
		return ""
	}
	if isPlainText(s) {
		return template.HTML(plainTextToHTML(s))
	}
	return template.HTML(Sanitize(s))
}
