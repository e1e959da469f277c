package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Document is the plain-text rendering of a page.
type Document struct {
	Title string
	Text  string
}

// ParseError reports input that could not be turned into a node tree.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string { return fmt.Sprintf("parse html: %v", e.Err) }

func (e *ParseError) Unwrap() error { return e.Err }

// FromHTML renders every text node of the document in order, separating
// block-level elements with newlines. Script, style and template content is
// dropped. Malformed markup is tolerated; empty input gives an empty Document.
func FromHTML(input []byte) (Document, error) {
	doc, err := parse(input)
	if err != nil {
		return Document{}, err
	}
	var w textWriter
	w.walk(doc.Nodes[0], nil)
	return Document{Title: title(doc), Text: w.String()}, nil
}

func parse(input []byte) (*goquery.Document, error) {
	node, err := html.Parse(bytes.NewReader(input))
	if err != nil {
		return nil, &ParseError{Err: err}
	}
	if node == nil {
		return nil, &ParseError{Err: fmt.Errorf("no document node")}
	}
	return goquery.NewDocumentFromNode(node), nil
}

func title(doc *goquery.Document) string {
	return strings.TrimSpace(doc.Find("head title").First().Text())
}

// blockElements get a line break before and after their content.
var blockElements = map[atom.Atom]bool{
	atom.Address: true, atom.Article: true, atom.Aside: true, atom.Blockquote: true,
	atom.Body: true, atom.Br: true, atom.Caption: true, atom.Dd: true,
	atom.Details: true, atom.Dialog: true, atom.Div: true, atom.Dl: true,
	atom.Dt: true, atom.Fieldset: true, atom.Figcaption: true, atom.Figure: true,
	atom.Footer: true, atom.Form: true, atom.H1: true, atom.H2: true,
	atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true,
	atom.Head: true, atom.Header: true, atom.Hgroup: true, atom.Hr: true,
	atom.Html: true, atom.Legend: true, atom.Li: true, atom.Main: true,
	atom.Nav: true, atom.Ol: true, atom.Option: true, atom.P: true,
	atom.Pre: true, atom.Section: true, atom.Summary: true, atom.Table: true,
	atom.Tbody: true, atom.Td: true, atom.Tfoot: true, atom.Th: true,
	atom.Thead: true, atom.Title: true, atom.Tr: true, atom.Ul: true,
}

// hiddenElements never contribute text.
var hiddenElements = map[atom.Atom]bool{
	atom.Script: true, atom.Style: true, atom.Noscript: true, atom.Template: true,
}

type textWriter struct {
	b strings.Builder
}

// walk appends text under n. skip, when set, prunes whole subtrees.
func (w *textWriter) walk(n *html.Node, skip func(*html.Node) bool) {
	switch n.Type {
	case html.TextNode:
		w.b.WriteString(n.Data)
		return
	case html.CommentNode, html.DoctypeNode:
		return
	case html.ElementNode:
		if hiddenElements[n.DataAtom] || (skip != nil && skip(n)) {
			return
		}
	}

	block := n.Type == html.ElementNode && blockElements[n.DataAtom]
	if block {
		w.breakLine()
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		w.walk(c, skip)
	}
	if block {
		w.breakLine()
	}
}

// breakLine ends the current line unless the output is empty or already
// ends with one.
func (w *textWriter) breakLine() {
	s := w.b.String()
	if s == "" || strings.HasSuffix(s, "\n") {
		return
	}
	w.b.WriteByte('\n')
}

func (w *textWriter) String() string {
	return strings.TrimSuffix(w.b.String(), "\n")
}
