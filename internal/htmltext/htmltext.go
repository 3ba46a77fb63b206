// Package htmltext pulls the readable text out of an HTML fragment.
package htmltext

import (
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Extract returns the visible text of an HTML document or fragment with
// whitespace collapsed to single spaces. Script and style contents are
// dropped.
func Extract(r io.Reader) (string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return "", err
	}

	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.DataAtom == atom.Script || n.DataAtom == atom.Style) {
			return
		}
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
			buf.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return strings.Join(strings.Fields(buf.String()), " "), nil
}

// ExtractString is Extract for in-memory input. Unparseable input is
// returned unchanged.
func ExtractString(s string) string {
	text, err := Extract(strings.NewReader(s))
	if err != nil {
		return s
	}
	return text
}
