package assets

import "strings"

// Header is the provenance comment prefixed to text artifacts.
type Header struct {
	Lines    []string
	Revision string
}

// Text renders the header body, one indented line per entry followed by the
// commit line.
func (h Header) Text() string {
	var b strings.Builder
	b.WriteByte('\n')
	for _, l := range h.Lines {
		b.WriteString("  ")
		b.WriteString(l)
		b.WriteByte('\n')
	}
	b.WriteString("  Commit: ")
	b.WriteString(h.Revision)
	b.WriteByte('\n')
	return b.String()
}

// Prefix returns body with the header prepended in the comment syntax of
// kind. Plain text artifacts are returned unchanged.
func (h Header) Prefix(kind Kind, body []byte) []byte {
	var open, closing string
	switch kind {
	case KindHTML:
		open, closing = "<!--", "-->\n\n"
	case KindCSS, KindJS:
		open, closing = "/*", "*/\n\n"
	default:
		return body
	}
	text := h.Text()
	out := make([]byte, 0, len(open)+len(text)+len(closing)+len(body))
	out = append(out, open...)
	out = append(out, text...)
	out = append(out, closing...)
	return append(out, body...)
}
