package compiler

import (
	"git.home.luguber.info/inful/pagegen/internal/foundation/errors"
	"git.home.luguber.info/inful/pagegen/internal/node"
	"git.home.luguber.info/inful/pagegen/internal/schema"
)

const (
	gridMiddleBlocks = 3
	gridThirdTiles   = 9
	maxTabGroups     = 4
)

// TileColumns renders the home major area, one div.tile-column per column.
func (c *Compiler) TileColumns(cols schema.TileColumns) ([]node.Node, error) {
	out := make([]node.Node, 0, len(cols))
	for _, col := range cols {
		tiles, err := c.Tiles(col)
		if err != nil {
			return nil, err
		}
		out = append(out, node.El(node.TagDiv, node.Attrs(node.Class("tile-column")), tiles...))
	}
	return out, nil
}

// TileGrids renders the tool major area. The middle region must hold exactly
// three blocks and the third block exactly nine tiles.
func (c *Compiler) TileGrids(g schema.TileGrids) ([]node.Node, error) {
	if len(g.Middle) != gridMiddleBlocks {
		return nil, errors.ConfigError("tile grid middle must hold exactly three blocks").
			WithContext("blocks", len(g.Middle)).
			Build()
	}
	first, second, third := g.Middle[0], g.Middle[1], g.Middle[2]
	if len(third.Content) != gridThirdTiles {
		return nil, errors.ConfigError("third tile grid block must hold exactly nine tiles").
			WithContext("block", third.Title).
			WithContext("tiles", len(third.Content)).
			Build()
	}

	left, err := c.Tiles(g.Left)
	if err != nil {
		return nil, err
	}
	firstTiles, err := c.Tiles(first.Content)
	if err != nil {
		return nil, err
	}
	secondTiles, err := c.Tiles(second.Content)
	if err != nil {
		return nil, err
	}
	thirdTiles, err := c.Tiles(third.Content)
	if err != nil {
		return nil, err
	}

	middle := make([]node.Node, 0, len(firstTiles)+len(secondTiles)+3)
	middle = append(middle, node.El(node.TagDiv, node.Attrs(node.Class("title", "top")), node.Text(first.Title)))
	middle = append(middle, firstTiles...)
	middle = append(middle, node.El(node.TagDiv, node.Attrs(node.Class("title")), node.Text(second.Title)))
	middle = append(middle, secondTiles...)
	middle = append(middle, node.El(node.TagDiv, node.Attrs(node.Class("title")), node.Text(third.Title)))

	out := []node.Node{
		node.El(node.TagDiv, node.Attrs(node.Class("tile-grid-vertical")), left...),
		node.El(node.TagDiv, node.Attrs(node.Class("tile-grid-middle")), middle...),
	}
	return append(out, thirdTiles...), nil
}

// MajorFragment wraps a major area in template#major-<id>.
func MajorFragment(id string, inner []node.Node) node.Node {
	children := make([]node.Node, 0, len(inner)+1)
	children = append(children, inner...)
	children = append(children, node.Clearfix())
	return node.El(node.TagTemplate, node.Attrs(node.ID("major-", id)), children...)
}

// Side renders a side panel as template#side-<name>.
func (c *Compiler) Side(s schema.Side) (node.Node, error) {
	var content []node.Node
	if tiles, ok := s.PanelTiles(); ok {
		rendered, err := c.Tiles(tiles)
		if err != nil {
			return node.Node{}, err
		}
		content = append(rendered, node.Clearfix())
	}
	if s.Text != "" {
		class := node.Class("text")
		if s.TextSmall {
			class = node.Class("text", "small")
		}
		content = append(content, node.El(node.TagDiv, node.Attrs(class), node.Raw(s.Text)))
	}
	return node.El(node.TagTemplate, node.Attrs(node.ID("side-", s.Name)),
		node.El(node.TagDiv, node.Attrs(node.Class("title")), node.Text(s.Title)),
		node.Icon("arrow-left", "icon-back"),
		node.El(node.TagHr, nil),
		node.El(node.TagDiv, node.Attrs(node.Class("content")), content...),
	), nil
}

// Sides renders side panels in order.
func (c *Compiler) Sides(sides []schema.Side) ([]node.Node, error) {
	out := make([]node.Node, 0, len(sides))
	for _, s := range sides {
		n, err := c.Side(s)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

// Category renders the category title bar and both tab lists.
func (c *Compiler) Category(cat schema.Category) ([]node.Node, error) {
	toolTab, err := c.categoryTab(cat.Tool)
	if err != nil {
		return nil, err
	}
	linkTab, err := c.categoryTab(cat.Link)
	if err != nil {
		return nil, err
	}
	return []node.Node{
		node.El(node.TagDiv, node.Attrs(node.Class("category-title")),
			node.El(node.TagDiv, node.Attrs(node.ID("tool-button"), node.Class("selected")), node.Text(cat.Tool.Title)),
			node.El(node.TagDiv, node.Attrs(node.ID("link-button")), node.Text(cat.Link.Title)),
		),
		node.El(node.TagDiv, node.Attrs(node.Class("category-content")),
			node.El(node.TagDiv, node.Attrs(node.ID("tool-list")), toolTab...),
			node.El(node.TagDiv, node.Attrs(node.ID("link-list"), node.A("style", "opacity: 0; pointer-events: none")), linkTab...),
		),
	}, nil
}

// categoryTab places the first two groups in the left part and the next two
// in the right part.
func (c *Compiler) categoryTab(tab schema.CategoryTab) ([]node.Node, error) {
	if len(tab.Content) > maxTabGroups {
		return nil, errors.ConfigError("category tab holds more than four groups").
			WithContext("tab", tab.Title).
			WithContext("groups", len(tab.Content)).
			Build()
	}
	var left, right []node.Node
	for i, g := range tab.Content {
		n, err := c.categoryGroup(g)
		if err != nil {
			return nil, err
		}
		if i < 2 {
			left = append(left, n)
		} else {
			right = append(right, n)
		}
	}
	return []node.Node{
		node.El(node.TagDiv, node.Attrs(node.Class("category-tab-part")), left...),
		node.El(node.TagDiv, node.Attrs(node.Class("category-tab-part")), right...),
	}, nil
}

func (c *Compiler) categoryGroup(g schema.CategoryGroup) (node.Node, error) {
	children := []node.Node{
		node.El(node.TagDiv, node.Attrs(node.Class("category-group-title")),
			node.El(node.TagDiv, node.Attrs(node.Class("text")), node.Text(g.Title)),
		),
	}
	for _, t := range g.Content {
		n, err := c.CategoryItem(t)
		if err != nil {
			return node.Node{}, err
		}
		children = append(children, n)
	}
	return node.El(node.TagDiv, node.Attrs(node.Class("category-group")), children...), nil
}
