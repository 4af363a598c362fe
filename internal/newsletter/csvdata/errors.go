// internal/newsletter/csvdata/errors.go
package csvdata

import (
	"html/template"
	"strconv"
	"strings"
)

// FormatRowErrors formats the validation report for display in the UI.
// If maxShow is <= 0, it defaults to 5. All errors are shown if there
// are fewer than maxShow errors.
func FormatRowErrors(errors []RowError, maxShow int) template.HTML {
	var b strings.Builder
	b.WriteString("Some rows could not be used. Fix and re-upload, or continue without them.<br><br>")

	if maxShow <= 0 {
		maxShow = 5
	}
	if len(errors) < maxShow {
		maxShow = len(errors)
	}

	for i := 0; i < maxShow; i++ {
		e := errors[i]
		b.WriteString("• ")
		if e.Line > 0 {
			b.WriteString("Line ")
			b.WriteString(strconv.Itoa(e.Line))
			b.WriteString(": ")
		}
		b.WriteString(template.HTMLEscapeString(e.Reason))
		b.WriteString("<br>")
	}

	if len(errors) > maxShow {
		b.WriteString("<br>... and ")
		b.WriteString(strconv.Itoa(len(errors) - maxShow))
		b.WriteString(" more errors.")
	}

	return template.HTML(b.String())
}
