package extract

import (
	"fmt"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
)

// Selected extracts text only from elements matching a CSS selector, in
// document order. Nested matches are rendered once, through their outermost
// match. No match gives an empty Text.
func Selected(input []byte, selector string) (Document, error) {
	m, err := cascadia.Compile(selector)
	if err != nil {
		return Document{}, &ParseError{Err: fmt.Errorf("selector %q: %w", selector, err)}
	}
	doc, err := parse(input)
	if err != nil {
		return Document{}, err
	}
	matches := doc.FindMatcher(m)
	outer := matches.NotSelection(matches.FindMatcher(m))

	var w textWriter
	outer.Each(func(_ int, s *goquery.Selection) {
		w.breakLine()
		w.walk(s.Nodes[0], nil)
	})
	return Document{Title: title(doc), Text: w.String()}, nil
}
