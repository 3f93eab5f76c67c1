package node

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ParseFragment parses an HTML fragment in a <body> context back into nodes.
// Comments and doctypes are discarded; all character data becomes Text.
func ParseFragment(s string) ([]Node, error) {
	ctx := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	parsed, err := html.ParseFragment(strings.NewReader(s), ctx)
	if err != nil {
		return nil, fmt.Errorf("parse fragment: %w", err)
	}
	out := make([]Node, 0, len(parsed))
	for _, p := range parsed {
		if n, ok := convert(p); ok {
			out = append(out, n)
		}
	}
	return out, nil
}

func convert(h *html.Node) (Node, bool) {
	switch h.Type {
	case html.TextNode:
		return Text(h.Data), true
	case html.ElementNode:
		attrs := make([]Attr, 0, len(h.Attr))
		for _, a := range h.Attr {
			attrs = append(attrs, Attr{Key: a.Key, Val: a.Val})
		}
		var children []Node
		for c := h.FirstChild; c != nil; c = c.NextSibling {
			if n, ok := convert(c); ok {
				children = append(children, n)
			}
		}
		return El(h.Data, attrs, children...), true
	default:
		return Node{}, false
	}
}
