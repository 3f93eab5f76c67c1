package node

import "strings"

// Attrs collects attributes, dropping zero-value entries produced by When.
func Attrs(attrs ...Attr) []Attr {
	out := make([]Attr, 0, len(attrs))
	for _, a := range attrs {
		if a.Key == "" {
			continue
		}
		out = append(out, a)
	}
	return out
}

// A builds an arbitrary attribute.
func A(key, val string) Attr { return Attr{Key: key, Val: val} }

// Class joins the non-empty class names with single spaces.
func Class(names ...string) Attr {
	parts := make([]string, 0, len(names))
	for _, n := range names {
		if n != "" {
			parts = append(parts, n)
		}
	}
	return Attr{Key: "class", Val: strings.Join(parts, " ")}
}

// ID concatenates parts into an id attribute.
func ID(parts ...string) Attr {
	return Attr{Key: "id", Val: strings.Join(parts, "")}
}

// Href concatenates parts into an href attribute.
func Href(parts ...string) Attr {
	return Attr{Key: "href", Val: strings.Join(parts, "")}
}

// When returns a if cond holds, otherwise a zero Attr that Attrs drops.
func When(cond bool, a Attr) Attr {
	if !cond {
		return Attr{}
	}
	return a
}

// Blank is target="_blank".
func Blank() Attr { return Attr{Key: "target", Val: "_blank"} }

// Clearfix is the float-clearing spacer placed after tile runs.
func Clearfix() Node {
	return El(TagDiv, Attrs(Class("clearfix")))
}

// Icon references a symbol from the page's svg sprite sheet.
func Icon(name, class string) Node {
	return El(TagSvg, Attrs(Class(class)),
		El(TagUse, Attrs(Href("#icon-", name))),
	)
}
