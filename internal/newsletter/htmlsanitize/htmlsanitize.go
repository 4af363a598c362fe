// internal/newsletter/htmlsanitize/htmlsanitize.go

// Package htmlsanitize cleans staff-entered and model-generated text
// before it is embedded in newsletter markup. Event details and prose
// come from outside the engine and must never be trusted as HTML.
package htmlsanitize

import (
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// policy allows basic formatting, links, lists, and images, which is
// everything an email client renders reliably. Scripts, frames, forms,
// and event handlers are stripped.
var policy = func() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowElements("u", "s", "sub", "sup", "mark")
	p.AllowAttrs("style").OnElements("table", "tr", "td", "th", "p", "a", "img", "div")
	return p
}()

// Sanitize removes dangerous markup, keeping safe formatting.
func Sanitize(input string) string {
	return policy.Sanitize(input)
}

// SanitizeToHTML sanitizes and wraps the result for template use.
func SanitizeToHTML(input string) template.HTML {
	return template.HTML(Sanitize(input))
}

// IsPlainText reports whether the input contains no markup. A string
// needs both "<" and ">" before it is treated as HTML, so "5 < 10"
// stays plain.
func IsPlainText(input string) bool {
	return !strings.Contains(input, "<") || !strings.Contains(input, ">")
}

// PlainTextToHTML escapes plain text and converts newlines to <br>,
// wrapped in a paragraph.
func PlainTextToHTML(input string) string {
	if input == "" {
		return ""
	}
	escaped := template.HTMLEscapeString(input)
	escaped = strings.ReplaceAll(escaped, "\n", "<br>")
	return "<p>" + escaped + "</p>"
}

// PrepareForDisplay renders untrusted text for embedding: plain text
// is escaped and paragraph-wrapped, HTML is sanitized.
func PrepareForDisplay(input string) template.HTML {
	if input == "" {
		return ""
	}
	if IsPlainText(input) {
		return template.HTML(PlainTextToHTML(input))
	}
	return SanitizeToHTML(input)
}
