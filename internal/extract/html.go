package extract

import (
	"io"
	"strings"

	"golang.org/x/net/html"
)

// TextFromHTML returns the visible text of an HTML document, with
// script and style bodies skipped. Used for .html inputs where the
// inline tag-stripping regex would leave code and CSS behind.
func TextFromHTML(r io.Reader) (string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	collectText(doc, &b)
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(b.String(), " ")), nil
}

func collectText(n *html.Node, b *strings.Builder) {
	if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
		return
	}
	if n.Type == html.TextNode {
		b.WriteString(n.Data)
		b.WriteString(" ")
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, b)
	}
}
