package observability

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// plainText renders free-text bio fields for the terminal. Bios may carry
// light HTML (paragraphs, line breaks, lists); tags are dropped and block
// elements become line breaks.
func plainText(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return cleanText(s)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return cleanText(s)
	}
	doc.Find("br").ReplaceWithHtml("\n")
	doc.Find("p, div, li, h1, h2, h3, h4").Each(func(_ int, sel *goquery.Selection) {
		sel.AppendHtml("\n")
	})
	doc.Find("li").Each(func(_ int, sel *goquery.Selection) {
		sel.PrependHtml("• ")
	})
	return cleanText(doc.Text())
}

// cleanText collapses runs of whitespace inside lines and drops blank lines.
func cleanText(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if line = strings.Join(strings.Fields(line), " "); line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}

// wrap breaks text into lines of at most width runes on word boundaries.
// Words longer than width are left for printBox to truncate.
func wrap(text string, width int) string {
	var sb strings.Builder
	for i, para := range strings.Split(text, "\n") {
		if i > 0 {
			sb.WriteString("\n")
		}
		lineLen := 0
		for _, word := range strings.Fields(para) {
			n := len([]rune(word))
			if lineLen > 0 && lineLen+1+n > width {
				sb.WriteString("\n")
				lineLen = 0
			}
			if lineLen > 0 {
				sb.WriteString(" ")
				lineLen++
			}
			sb.WriteString(word)
			lineLen += n
		}
	}
	return sb.String()
}
