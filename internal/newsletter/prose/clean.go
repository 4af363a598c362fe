// internal/newsletter/prose/clean.go
package prose

import "strings"

// Clean normalizes a model response into a single line of prose:
// wrapping quotes are removed, numbered or dashed list prefixes are
// stripped, and line breaks collapse to spaces. Models keep returning
// "1. ..." style answers no matter how the prompt asks them not to.
func Clean(response string) string {
	cleaned := strings.TrimSpace(response)
	if len(cleaned) >= 2 {
		if (cleaned[0] == '"' && cleaned[len(cleaned)-1] == '"') ||
			(cleaned[0] == '\'' && cleaned[len(cleaned)-1] == '\'') {
			cleaned = cleaned[1 : len(cleaned)-1]
		}
	}

	var lines []string
	for _, line := range strings.Split(cleaned, "\n") {
		line = strings.TrimSpace(line)
		line = stripListPrefix(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return strings.TrimSpace(strings.Join(lines, " "))
}

// stripListPrefix removes "1.", "2)", "3 -" and "- " style prefixes.
func stripListPrefix(line string) string {
	if strings.HasPrefix(line, "- ") {
		return strings.TrimSpace(line[2:])
	}
	if len(line) >= 2 && line[0] >= '0' && line[0] <= '9' {
		switch line[1] {
		case '.', ')', '-':
			return strings.TrimSpace(line[2:])
		}
	}
	return line
}
