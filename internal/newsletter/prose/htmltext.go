// internal/newsletter/prose/htmltext.go
package prose

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// HTMLText extracts the readable text of a rendered newsletter so it
// can be fed to the generator as prompt context. Tags are dropped and
// whitespace collapsed; on a parse failure the input is returned
// as-is, which is good enough for a prompt.
func HTMLText(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return html
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}
