package compiler

import (
	"git.home.luguber.info/inful/pagegen/internal/catalog"
	"git.home.luguber.info/inful/pagegen/internal/foundation/errors"
	"git.home.luguber.info/inful/pagegen/internal/node"
	"git.home.luguber.info/inful/pagegen/internal/schema"
)

// CrossKind marks how a tool appears in the flat document.
type CrossKind int

const (
	// CrossNone is a tool listed under its own group.
	CrossNone CrossKind = iota
	// CrossListed is a tool listed after a foreign group's own tools.
	CrossListed
	// CrossTopListed is a tool listed before a foreign group's own tools.
	CrossTopListed
)

func (k CrossKind) sign() string {
	switch k {
	case CrossListed:
		return "[cross]"
	case CrossTopListed:
		return "[cross-top]"
	default:
		return ""
	}
}

const (
	noticeHeading = "注意事项"
	tocHeading    = "目录"
	tocLink       = "[目录]"
	singleHint    = "[single]"
)

func noticeNode(notice string) node.Node {
	return node.El(node.TagP, nil,
		node.El(node.TagB, nil, node.Text(noticeHeading)),
		node.El(node.TagBr, nil),
		node.Raw(notice),
	)
}

func descriptionNode(desc string) node.Node {
	if desc == "" {
		return node.El(node.TagP, nil)
	}
	return node.El(node.TagP, nil, node.Raw(desc))
}

// Tool renders the interactive detail widget as template#tool-<name>.
func (c *Compiler) Tool(t schema.Tool) (node.Node, error) {
	links, err := c.ToolLinks(t.Name, t.Links, false)
	if err != nil {
		return node.Node{}, err
	}

	var title []node.Node
	if !t.HidesIcon() {
		title = append(title, node.El(node.TagImg, node.Attrs(
			node.A("src", c.opts.AssetBase+"/image/icon-tool/"+t.IconName()+".webp"),
			node.A("alt", t.Title),
		)))
	}
	title = append(title, node.Text(t.Title))

	detail := make([]node.Node, 0, len(links)+2)
	detail = append(detail, descriptionNode(t.Description))
	detail = append(detail, links...)
	if t.Notice != "" {
		detail = append(detail, noticeNode(t.Notice))
	}

	return node.El(node.TagTemplate, node.Attrs(node.ID("tool-", t.Name)),
		node.El(node.TagDiv, node.Attrs(node.Class("item"), node.A("onclick", "detail(this)")),
			node.El(node.TagDiv, node.Attrs(node.Class("item-title")), title...),
			node.Icon("expand-right", "icon-line"),
			node.El(node.TagDiv, node.Attrs(node.Class("detail-container")),
				node.El(node.TagDiv, node.Attrs(node.Class("detail")), detail...),
			),
		),
	), nil
}

// ToolPlain renders a tool for the flat document. The heading is omitted for
// single groups; cross entries carry a hint marker.
func (c *Compiler) ToolPlain(t schema.Tool, cross CrossKind, heading bool) ([]node.Node, error) {
	links, err := c.ToolLinks(t.Name, t.Links, true)
	if err != nil {
		return nil, err
	}
	out := make([]node.Node, 0, len(links)+3)
	if heading {
		h := []node.Node{
			node.Text(t.Title),
			node.Nbsp(),
			node.El(node.TagI, nil, node.Text(t.Name)),
		}
		if cross != CrossNone {
			h = append(h, node.Nbsp(), node.El(node.TagI, node.Attrs(node.Class("hint")), node.Text(cross.sign())))
		}
		out = append(out, node.El(node.TagH3, node.Attrs(node.ID(t.Name)), h...))
	}
	out = append(out, descriptionNode(t.Description))
	out = append(out, links...)
	if t.Notice != "" {
		out = append(out, noticeNode(t.Notice))
	}
	return out, nil
}

// ToolsPlain renders the flat text-only catalog, one section per index entry.
// Cross-listed tools follow the group's own tools, each followed by the
// group-specific cross notice when one exists.
func (c *Compiler) ToolsPlain(cat *catalog.Catalog) ([]node.Node, error) {
	var out []node.Node
	appendTool := func(name string, cross CrossKind, heading bool) error {
		t, ok := cat.Tools.Get(name)
		if !ok {
			return errors.InternalError("index references an unregistered tool").WithContext("tool", name).Build()
		}
		nodes, err := c.ToolPlain(t, cross, heading)
		if err != nil {
			return err
		}
		out = append(out, nodes...)
		return nil
	}

	for key, entry := range cat.Data.Index.All() {
		h := []node.Node{
			node.Text(entry.Title + " "),
			node.El(node.TagI, nil, node.Text(key)),
			node.Nbsp(),
		}
		if entry.Single {
			h = append(h, node.El(node.TagI, node.Attrs(node.Class("hint")), node.Text(singleHint)), node.Nbsp())
		}
		h = append(h, node.El(node.TagA, node.Attrs(node.Class("toc"), node.Href("#toc")), node.Text(tocLink)))
		out = append(out, node.El(node.TagH2, node.Attrs(node.ID(key)), h...))

		if entry.Single {
			if len(entry.List) != 1 {
				return nil, errors.InternalError("single group must list one tool").WithContext("group", key).Build()
			}
			if err := appendTool(entry.List[0], CrossNone, false); err != nil {
				return nil, err
			}
		} else {
			for _, name := range entry.CrossTopList {
				if err := appendTool(name, CrossTopListed, true); err != nil {
					return nil, err
				}
			}
			for _, name := range entry.List {
				if err := appendTool(name, CrossNone, true); err != nil {
					return nil, err
				}
			}
		}

		notices, _ := cat.Data.Cross.Get(key)
		for _, name := range entry.CrossList {
			if err := appendTool(name, CrossListed, true); err != nil {
				return nil, err
			}
			if notice, ok := notices.Get(name); ok {
				out = append(out, node.Raw(notice))
			}
		}
	}
	return out, nil
}

// ToolsPlainTOC renders the table of contents of the flat document.
func ToolsPlainTOC(cat *catalog.Catalog) []node.Node {
	out := []node.Node{node.El(node.TagH2, node.Attrs(node.ID("toc")), node.Text(tocHeading))}
	for key, entry := range cat.Data.Index.All() {
		out = append(out, node.El(node.TagP, nil,
			node.El(node.TagA, node.Attrs(node.Href("#", key)), node.Text(entry.Title)),
			node.Nbsp(),
			node.El(node.TagI, nil, node.Text(key)),
		))
	}
	return out
}
