package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// MainContent extracts readable text from HTML, preferring <main> or
// <article>, falling back to <body>. It skips obvious boilerplate like <nav>,
// <footer> and cookie banners.
func MainContent(input []byte) (Document, error) {
	doc, err := parse(input)
	if err != nil {
		return Document{}, err
	}
	var content *goquery.Selection
	for _, tag := range []string{"main", "article", "body"} {
		if s := doc.Find(tag).First(); s.Length() > 0 {
			content = s
			break
		}
	}
	var w textWriter
	if content != nil {
		w.walk(content.Nodes[0], isBoilerplate)
	}
	return Document{Title: title(doc), Text: w.String()}, nil
}

func isBoilerplate(n *html.Node) bool {
	switch n.DataAtom {
	case atom.Nav, atom.Footer, atom.Aside, atom.Iframe:
		return true
	}
	return isBoilerplateContainer(n)
}

// isBoilerplateContainer returns true if the element looks like a cookie/consent banner.
func isBoilerplateContainer(n *html.Node) bool {
	for _, attr := range n.Attr {
		key := strings.ToLower(attr.Key)
		if key != "id" && key != "class" && !strings.HasPrefix(key, "data-") && key != "aria-label" && key != "role" {
			continue
		}
		val := strings.ToLower(attr.Val)
		for _, marker := range []string{"cookie", "consent", "gdpr"} {
			if strings.Contains(val, marker) {
				return true
			}
		}
	}
	return false
}
