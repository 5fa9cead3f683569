package compare

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
)

// NormalizeWhitespace collapses every whitespace run to a single space and
// trims both ends.
func NormalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Page holds the semantic features compared when two pages differ textually.
type Page struct {
	Titles    []string
	Slides    int
	Galleries int
}

// Title joins every <title> text in document order.
func (p Page) Title() string {
	return strings.Join(p.Titles, " | ")
}

// ParsePage extracts titles and class counts from an HTML document. A
// slide is an element whose class list holds the token "slide"; a gallery
// element is one whose class attribute starts with "gallery".
func ParsePage(content []byte) (Page, error) {
	doc, err := html.Parse(bytes.NewReader(content))
	if err != nil {
		return Page{}, err
	}

	var p Page
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if n.Data == "title" {
				p.Titles = append(p.Titles, strings.TrimSpace(extractText(n)))
			}
			if class, ok := getAttr(n, "class"); ok {
				if hasClassToken(class, "slide") {
					p.Slides++
				}
				if strings.HasPrefix(class, "gallery") {
					p.Galleries++
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return p, nil
}

// getAttr retrieves an attribute value from an HTML node.
func getAttr(n *html.Node, key string) (string, bool) {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val, true
		}
	}
	return "", false
}

func hasClassToken(class, token string) bool {
	for _, f := range strings.Fields(class) {
		if f == token {
			return true
		}
	}
	return false
}

// extractText extracts text content from an HTML node and its children.
func extractText(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var text strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		text.WriteString(extractText(c))
	}
	return text.String()
}
