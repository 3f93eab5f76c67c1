package compiler

import (
	"git.home.luguber.info/inful/pagegen/internal/foundation/errors"
	"git.home.luguber.info/inful/pagegen/internal/node"
	"git.home.luguber.info/inful/pagegen/internal/schema"
)

// Tile renders a tile.
func (c *Compiler) Tile(t schema.Tile) (node.Node, error) {
	return c.tile(t, false)
}

// CategoryItem renders a tile inside a category group.
func (c *Compiler) CategoryItem(t schema.Tile) (node.Node, error) {
	return c.tile(t, true)
}

// Tiles renders tiles in order.
func (c *Compiler) Tiles(tiles []schema.Tile) ([]node.Node, error) {
	out := make([]node.Node, 0, len(tiles))
	for _, t := range tiles {
		n, err := c.Tile(t)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

func (c *Compiler) tile(t schema.Tile, categoryItem bool) (node.Node, error) {
	class := node.Class("tile", t.Tile)
	if categoryItem {
		class = node.Class("category-item")
	}
	face := c.tileFace(t, categoryItem)

	call := func(fn string) node.Node {
		return node.El(node.TagDiv, node.Attrs(class, node.A("onclick", fn+"('"+t.Name+"')")), face...)
	}
	link := func(href string) node.Node {
		return node.El(node.TagA, node.Attrs(node.Blank(), node.Class("tile-link"), node.Href(href)),
			node.El(node.TagDiv, node.Attrs(class), face...),
		)
	}

	switch t.Action {
	case schema.ActionSide, schema.ActionTool, schema.ActionCategory, schema.ActionCopy:
		return call(string(t.Action)), nil
	case schema.ActionPath:
		if t.Path != "" {
			return link(t.Path), nil
		}
		return link("/" + t.Name + "/"), nil
	case schema.ActionSubdomain:
		if t.Subdomain == "" {
			return node.Node{}, errors.ConfigError("subdomain tile requires a subdomain").WithContext("tile", t.Name).Build()
		}
		return link("//" + t.Subdomain + "." + c.opts.SubdomainRoot + "/"), nil
	case schema.ActionR:
		return link(c.opts.RedirectBase + "/r/" + t.Name + "/"), nil
	case schema.ActionR2:
		return link(c.opts.RedirectBase + "/r2/" + t.Name + "/"), nil
	case schema.ActionNone:
		return node.El(node.TagDiv, node.Attrs(class), face...), nil
	default:
		return node.Node{}, errors.InternalError("unhandled tile action").
			WithContext("tile", t.Name).
			WithContext("action", string(t.Action)).
			Build()
	}
}

// tileFace is the icon and caption shared by every tile variant.
func (c *Compiler) tileFace(t schema.Tile, categoryItem bool) []node.Node {
	iconDir := "icon"
	if t.IconType != "" {
		iconDir += "-" + t.IconType
	}
	icon := t.Icon
	if icon == "" {
		icon = t.Name
	}
	img := node.El(node.TagImg, node.Attrs(
		node.A("src", c.opts.AssetBase+"/image/"+iconDir+"/"+icon+".webp"),
		node.When(t.Title != "", node.A("alt", t.Title)),
	))

	switch {
	case t.Title == "":
		return []node.Node{img}
	case categoryItem:
		return []node.Node{img, node.El(node.TagSpan, nil, node.Text(t.Title))}
	case t.Font != "":
		return []node.Node{img, node.El(string(t.Font), nil, node.Text(t.Title))}
	default:
		return []node.Node{img}
	}
}
