package assets

import (
	"git.home.luguber.info/inful/pagegen/internal/node"
)

// Tokens pages use to reference an asset.
func LinkToken(name string) string   { return "<!--{{asset:" + name + "}}-->" }
func InlineToken(name string) string { return "<!--{{inline:" + name + "}}-->" }

// Asset is a processed artifact ready to be written.
type Asset struct {
	Name      string
	Kind      Kind
	FileName  string
	URL       string
	Integrity string
	Content   []byte
	// Body is the content without the provenance header, used when inlining.
	Body []byte
}

// LinkTag references the artifact by URL with its integrity digest.
func (a *Asset) LinkTag() node.Node {
	if a.Kind == KindCSS {
		return node.El(node.TagLink, node.Attrs(
			node.A("rel", "stylesheet"),
			node.Href(a.URL),
			node.A("integrity", a.Integrity),
			node.A("crossorigin", "anonymous"),
		))
	}
	return node.El(node.TagScript, node.Attrs(
		node.A("src", a.URL),
		node.A("integrity", a.Integrity),
		node.A("crossorigin", "anonymous"),
	))
}

// InlineTag embeds the artifact body in the page.
func (a *Asset) InlineTag() node.Node {
	tag := node.TagScript
	if a.Kind == KindCSS {
		tag = node.TagStyle
	}
	return node.El(tag, nil, node.Raw(string(a.Body)))
}
