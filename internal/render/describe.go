package render

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Describe derives a meta description from the first non-empty paragraph of
// bodyHTML, cut to width display columns. It returns "" when there is no
// paragraph text.
func Describe(bodyHTML string, width int) string {
	if strings.TrimSpace(bodyHTML) == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(bodyHTML))
	if err != nil {
		return ""
	}
	var text string
	doc.Find("p").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text = strings.Join(strings.Fields(s.Text()), " ")
		return text == ""
	})
	if text == "" {
		return ""
	}
	return truncateWidth(text, width)
}
