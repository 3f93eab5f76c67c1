package compiler

import (
	"git.home.luguber.info/inful/pagegen/internal/foundation/errors"
	"git.home.luguber.info/inful/pagegen/internal/node"
	"git.home.luguber.info/inful/pagegen/internal/schema"
)

type linkType string

const (
	linkR2     linkType = "r2"
	linkMirror linkType = "mirror"
)

type linkIcon string

const (
	iconLink     linkIcon = "link"
	iconDownload linkIcon = "download"
)

var linkEmoji = map[linkIcon]string{
	iconLink:     "🔗",
	iconDownload: "💾",
}

const mirrorDownloadTitle = "镜像下载"

type toolLink struct {
	title schema.ToolLinkTitle
	kind  linkType
	link  string
	icon  linkIcon
}

func textTitle(s string) schema.ToolLinkTitle {
	return schema.ToolLinkTitle{Text: s}
}

func titleNode(t schema.ToolLinkTitle) node.Node {
	if t.Numbered() {
		return node.Raw(t.Caption())
	}
	return node.Text(t.Caption())
}

func (c *Compiler) linkHref(l toolLink) string {
	switch l.kind {
	case linkMirror:
		return c.opts.MirrorBase + l.link
	default:
		return c.opts.RedirectBase + "/r2/" + l.link
	}
}

// interactiveLink renders a link for the app shell detail widget.
func (c *Compiler) interactiveLink(l toolLink) node.Node {
	return node.El(node.TagSpan, nil,
		node.El(node.TagA, node.Attrs(node.Blank(), node.Class("link"), node.Href(c.linkHref(l))),
			node.Icon(string(l.icon), "icon"),
			node.Nbsp(),
			titleNode(l.title),
		),
	)
}

// plainLink renders a link for the text-only document.
func (c *Compiler) plainLink(l toolLink) node.Node {
	return node.El(node.TagSpan, nil,
		node.El(node.TagA, node.Attrs(node.Blank(), node.Href(c.linkHref(l))),
			node.Text(linkEmoji[l.icon]),
			titleNode(l.title),
		),
		node.Nbsp(),
		node.El(node.TagI, nil, node.Text("["+string(l.kind)+"] "+l.link)),
		node.El(node.TagBr, nil),
	)
}

// ToolLinks renders a tool's link block. Websites form the links group and
// downloads plus mirrors the downloads group; either is omitted when empty.
// Download groups follow, then tile links, which go through the tool's tile
// template in interactive mode and render as plain links otherwise.
func (c *Compiler) ToolLinks(name string, links schema.ToolLinks, plain bool) ([]node.Node, error) {
	render := c.interactiveLink
	wrapper := node.TagDiv
	if plain {
		render = c.plainLink
		wrapper = node.TagP
	}
	attrs := node.Attrs(node.When(!plain && links.Columns, node.Class("tool-links-columns")))
	group := func(attrs []node.Attr, items []toolLink) node.Node {
		children := make([]node.Node, 0, len(items))
		for _, l := range items {
			children = append(children, render(l))
		}
		return node.El(wrapper, attrs, children...)
	}

	var out []node.Node

	var websites []toolLink
	if links.Website != nil {
		websites = append(websites, toolLink{title: *links.Website, kind: linkR2, link: name, icon: iconLink})
	}
	for suffix, title := range links.Websites.All() {
		websites = append(websites, toolLink{title: title, kind: linkR2, link: name + "-" + suffix, icon: iconLink})
	}
	if len(websites) > 0 {
		out = append(out, group(attrs, websites))
	}

	var downloads []toolLink
	for suffix, title := range links.Downloads.All() {
		downloads = append(downloads, toolLink{title: textTitle(title), kind: linkR2, link: name + "-d-" + suffix, icon: iconDownload})
	}
	if links.Mirror != "" {
		downloads = append(downloads, toolLink{title: textTitle(mirrorDownloadTitle), kind: linkMirror, link: name, icon: iconDownload})
	}
	for suffix, title := range links.Mirrors.All() {
		downloads = append(downloads, toolLink{title: textTitle(title), kind: linkMirror, link: name + "-" + suffix, icon: iconDownload})
	}
	if len(downloads) > 0 {
		out = append(out, group(attrs, downloads))
	}

	for groupTitle, entries := range links.DownloadsGroups.All() {
		children := []node.Node{node.El(node.TagP, nil, node.El(node.TagB, nil, node.Text(groupTitle)))}
		for suffix, title := range entries.All() {
			children = append(children, render(toolLink{title: textTitle(title), kind: linkR2, link: name + "-d-" + suffix, icon: iconDownload}))
		}
		out = append(out, node.El(wrapper, nil, children...))
	}

	if links.WebsitesTile.Len() > 0 {
		if plain {
			var tileLinks []toolLink
			for suffix, title := range links.WebsitesTile.All() {
				tileLinks = append(tileLinks, toolLink{title: title, kind: linkR2, link: name + "-" + suffix, icon: iconLink})
			}
			out = append(out, group(attrs, tileLinks))
		} else {
			if links.WebsitesTileTemplate == nil {
				return nil, errors.ConfigError("websites_tile requires websites_tile_template").WithContext("tool", name).Build()
			}
			names := make([]string, 0, links.WebsitesTile.Len())
			for suffix := range links.WebsitesTile.All() {
				names = append(names, name+"-"+suffix)
			}
			tmpl := schema.TileTemplate{
				Template: *links.WebsitesTileTemplate,
				Tiles:    schema.TileTemplateTiles{Names: names},
			}
			tiles, err := c.Tiles(tmpl.Expand())
			if err != nil {
				return nil, err
			}
			out = append(out, tiles...)
			out = append(out, node.Clearfix())
		}
	}

	return out, nil
}
