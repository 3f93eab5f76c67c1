// Package node models the HTML tree produced by the content compiler.
//
// A tree is built bottom-up from Element, Text and Raw values. Each child is
// owned by exactly one parent; nodes are plain values and are never shared.
package node

// Kind distinguishes the three node variants.
type Kind uint8

const (
	KindElement Kind = iota
	KindText
	KindRaw
)

// Common tags emitted by the compiler.
const (
	TagA        = "a"
	TagB        = "b"
	TagBr       = "br"
	TagDiv      = "div"
	TagFont     = "font"
	TagH2       = "h2"
	TagH3       = "h3"
	TagHr       = "hr"
	TagI        = "i"
	TagImg      = "img"
	TagLink     = "link"
	TagP        = "p"
	TagScript   = "script"
	TagSpan     = "span"
	TagStyle    = "style"
	TagSvg      = "svg"
	TagTemplate = "template"
	TagUse      = "use"
)

// voidTags never carry children or a closing tag.
var voidTags = map[string]bool{
	"area": true, "base": true, TagBr: true, "col": true, "embed": true,
	TagHr: true, TagImg: true, "input": true, TagLink: true, "meta": true,
	"source": true, "track": true, "wbr": true,
}

// IsVoid reports whether tag is an HTML void element.
func IsVoid(tag string) bool { return voidTags[tag] }

// Attr is a single attribute. Attribute order is preserved on output.
type Attr struct {
	Key string
	Val string
}

// Node is an element, an escaped text leaf or a verbatim raw leaf.
type Node struct {
	Kind     Kind
	Tag      string
	Attrs    []Attr
	Children []Node
	Data     string
}

// El builds an element node.
func El(tag string, attrs []Attr, children ...Node) Node {
	return Node{Kind: KindElement, Tag: tag, Attrs: attrs, Children: children}
}

// Text builds a text leaf; its content is escaped when rendered.
func Text(s string) Node {
	return Node{Kind: KindText, Data: s}
}

// Raw builds a leaf emitted verbatim. Used for author-supplied HTML.
func Raw(s string) Node {
	return Node{Kind: KindRaw, Data: s}
}

// Nbsp is the non-breaking space separator used between inline parts.
func Nbsp() Node { return Text(" ") }

// Attribute returns the value of key and whether it is present.
func (n Node) Attribute(key string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}
