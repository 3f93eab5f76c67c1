package compiler

import (
	"git.home.luguber.info/inful/pagegen/internal/foundation/errors"
	"git.home.luguber.info/inful/pagegen/internal/node"
	"git.home.luguber.info/inful/pagegen/internal/schema"
)

// Classic renders the legacy button page. A list node expands into its
// toggle button followed by the detail container holding its children.
func (c *Compiler) Classic(nodes []schema.ClassicNode) ([]node.Node, error) {
	var out []node.Node
	for _, n := range nodes {
		switch {
		case n.Type == schema.ClassicButtonType && n.Button != nil:
			out = append(out, c.classicButton(*n.Button, true))
		case n.Type == schema.ClassicTextType && n.Text != nil:
			out = append(out, classicText(*n.Text))
		case n.Type == schema.ClassicListType && n.List != nil:
			list, err := c.classicList(*n.List)
			if err != nil {
				return nil, err
			}
			out = append(out, list...)
		default:
			return nil, errors.InternalError("unhandled classic node").WithContext("type", string(n.Type)).Build()
		}
	}
	return out, nil
}

func (c *Compiler) classicButton(b schema.ClassicButton, top bool) node.Node {
	nolink := b.Target == ""
	attrs := node.Attrs(
		node.Class("button", pick(!top, "button-detail"), pick(nolink, "button-nolink")),
		node.When(!nolink, node.Href(c.opts.RedirectBase, "/r/", b.Target)),
	)
	return node.El(node.TagP, nil, node.El(node.TagA, attrs, node.Raw(b.Text)))
}

func classicText(t schema.ClassicText) node.Node {
	class := "text"
	if t.Footer {
		class = "text-detail-footer"
	}
	return node.El(node.TagSpan, node.Attrs(node.Class(class)), node.Raw(t.Text))
}

func (c *Compiler) classicList(l schema.ClassicList) ([]node.Node, error) {
	children := make([]node.Node, 0, len(l.Content))
	for _, sub := range l.Content {
		switch {
		case sub.Type == schema.ClassicButtonType && sub.Button != nil:
			children = append(children, c.classicButton(*sub.Button, false))
		case sub.Type == schema.ClassicTextType && sub.Text != nil:
			children = append(children, classicText(*sub.Text))
		default:
			return nil, errors.ConfigError("classic list may only hold buttons and text").
				WithContext("list", l.ID).
				WithContext("type", string(sub.Type)).
				Build()
		}
	}
	return []node.Node{
		node.El(node.TagP, nil,
			node.El(node.TagA, node.Attrs(node.Class("button"), node.A("onclick", "detail('"+l.ID+"')")), node.Raw(l.Text)),
		),
		node.El(node.TagDiv, node.Attrs(node.Class("detail-container"), node.ID(l.ID, "-detail")), children...),
	}, nil
}

func pick(cond bool, s string) string {
	if cond {
		return s
	}
	return ""
}
