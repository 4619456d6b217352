package dom

import (
	"io"
	"regexp"
	"sort"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Node converts the element subtree into an x/net/html node tree.
func (e *Element) Node() *html.Node {
	n := &html.Node{
		Type:     html.ElementNode,
		Data:     e.tag,
		DataAtom: atom.Lookup([]byte(e.tag)),
	}
	if len(e.classes) > 0 {
		n.Attr = append(n.Attr, html.Attribute{Key: "class", Val: e.ClassName()})
	}
	keys := make([]string, 0, len(e.attrs))
	for k := range e.attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		n.Attr = append(n.Attr, html.Attribute{Key: k, Val: e.attrs[k]})
	}
	if e.hidden {
		n.Attr = append(n.Attr, html.Attribute{Key: "hidden"})
	}
	if e.text != "" {
		n.AppendChild(&html.Node{Type: html.TextNode, Data: e.text})
	}
	for _, c := range e.children {
		n.AppendChild(c.Node())
	}
	return n
}

// RenderHTML writes the element subtree as HTML.
func (e *Element) RenderHTML(w io.Writer) error {
	return html.Render(w, e.Node())
}

// OuterHTML returns the element subtree as an HTML string.
func (e *Element) OuterHTML() string {
	var b strings.Builder
	if err := e.RenderHTML(&b); err != nil {
		return ""
	}
	return b.String()
}

// InnerHTML returns the HTML of the element's children.
func (e *Element) InnerHTML() string {
	var b strings.Builder
	for _, c := range e.children {
		_ = c.RenderHTML(&b)
	}
	return b.String()
}

var whitespace = regexp.MustCompile(`\s+`)

// Squish trims s, drops zero-width spaces and collapses runs of whitespace
// into one space.
func Squish(s string) string {
	if s == "" {
		return s
	}
	s = strings.ReplaceAll(strings.TrimSpace(s), "\u200b", "")
	return whitespace.ReplaceAllString(s, " ")
}
