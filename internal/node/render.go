package node

import "strings"

var (
	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	attrEscaper = strings.NewReplacer("&", "&amp;", `"`, "&quot;")
)

// Render serializes n to HTML. Rendering is deterministic.
func (n Node) Render() string {
	var b strings.Builder
	n.renderTo(&b)
	return b.String()
}

// RenderNodes serializes a node list with no separators.
func RenderNodes(nodes []Node) string {
	var b strings.Builder
	for _, n := range nodes {
		n.renderTo(&b)
	}
	return b.String()
}

func (n Node) renderTo(b *strings.Builder) {
	switch n.Kind {
	case KindText:
		b.WriteString(textEscaper.Replace(n.Data))
	case KindRaw:
		b.WriteString(n.Data)
	case KindElement:
		b.WriteByte('<')
		b.WriteString(n.Tag)
		for _, a := range n.Attrs {
			b.WriteByte(' ')
			b.WriteString(a.Key)
			// An empty value renders as a bare boolean attribute.
			if a.Val != "" {
				b.WriteString(`="`)
				b.WriteString(attrEscaper.Replace(a.Val))
				b.WriteByte('"')
			}
		}
		b.WriteByte('>')
		if IsVoid(n.Tag) {
			return
		}
		for _, c := range n.Children {
			c.renderTo(b)
		}
		b.WriteString("</")
		b.WriteString(n.Tag)
		b.WriteByte('>')
	}
}
