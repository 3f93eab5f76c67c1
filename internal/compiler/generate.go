package compiler

import (
	"git.home.luguber.info/inful/pagegen/internal/catalog"
	"git.home.luguber.info/inful/pagegen/internal/foundation/errors"
	"git.home.luguber.info/inful/pagegen/internal/node"
	"git.home.luguber.info/inful/pagegen/internal/schema"
	"git.home.luguber.info/inful/pagegen/internal/substitute"
)

// Generated holds every rendered fragment of one build.
type Generated struct {
	HomeMajor     []node.Node
	HomeFragments []node.Node
	ToolFragments []node.Node
	ToolPlain     []node.Node
	LegacyButtons []node.Node
	Catalog       *catalog.Catalog
}

// Generate compiles all content documents.
//
// Home fragments are the home sides followed by the public sides. Tool
// fragments are the tool sides, the public sides, one detail widget per
// registered tool, then the tile grid and category major areas. The flat
// document is its table of contents followed by the tool sections.
func (c *Compiler) Generate(content *schema.Content) (*Generated, error) {
	publicSides, err := c.Sides(content.PublicSides)
	if err != nil {
		return nil, err
	}
	homeMajor, err := c.TileColumns(content.HomeMajor)
	if err != nil {
		return nil, err
	}
	homeSides, err := c.Sides(content.HomeSides)
	if err != nil {
		return nil, err
	}
	homeFragments := append(homeSides, publicSides...)

	cat, err := catalog.Resolve(content.ToolGroups, content.ToolCategory)
	if err != nil {
		return nil, err
	}

	toolFragments, err := c.Sides(content.ToolSides)
	if err != nil {
		return nil, err
	}
	toolFragments = append(toolFragments, publicSides...)
	for _, t := range cat.Tools.All() {
		n, err := c.Tool(t)
		if err != nil {
			return nil, err
		}
		toolFragments = append(toolFragments, n)
	}
	grids, err := c.TileGrids(content.ToolMajor)
	if err != nil {
		return nil, err
	}
	toolFragments = append(toolFragments, MajorFragment("tiles", grids))
	category, err := c.Category(content.ToolCategory)
	if err != nil {
		return nil, err
	}
	toolFragments = append(toolFragments, MajorFragment("category", category))

	plain := ToolsPlainTOC(cat)
	sections, err := c.ToolsPlain(cat)
	if err != nil {
		return nil, err
	}
	plain = append(plain, sections...)

	legacy, err := c.Classic(content.LegacyButtons)
	if err != nil {
		return nil, err
	}

	return &Generated{
		HomeMajor:     homeMajor,
		HomeFragments: homeFragments,
		ToolFragments: toolFragments,
		ToolPlain:     plain,
		LegacyButtons: legacy,
		Catalog:       cat,
	}, nil
}

// Inserts returns the generated fragments keyed by their tokens.
func (g *Generated) Inserts() (*substitute.Table, error) {
	t := substitute.NewTable()
	for _, p := range []substitute.Pair{
		{Pattern: TokenHomeMajor, Replacement: node.RenderNodes(g.HomeMajor)},
		{Pattern: TokenHomeFragments, Replacement: node.RenderNodes(g.HomeFragments)},
		{Pattern: TokenToolFragments, Replacement: node.RenderNodes(g.ToolFragments)},
		{Pattern: TokenToolPlain, Replacement: node.RenderNodes(g.ToolPlain)},
		{Pattern: TokenLegacyButtons, Replacement: node.RenderNodes(g.LegacyButtons)},
	} {
		if err := t.Add(p.Pattern, p.Replacement); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// GlobalData returns the page payload for kind, which is catalog.PageHome or
// catalog.PageTool.
func (g *Generated) GlobalData(kind string) (catalog.GlobalData, error) {
	switch kind {
	case catalog.PageHome:
		return catalog.HomeData(), nil
	case catalog.PageTool:
		return g.Catalog.ToolPageData(), nil
	default:
		return catalog.GlobalData{}, errors.ConfigError("unknown page data kind").WithContext("data", kind).Build()
	}
}

// GlobalDataInsert renders the payload as an inline JSON script element.
// A non-nil rewrite table, already escaped for JSON string content, is applied
// to the encoded payload.
func GlobalDataInsert(data catalog.GlobalData, rewrite *substitute.Table) (string, error) {
	js, err := data.JSON()
	if err != nil {
		return "", errors.WrapError(err, errors.CategoryInternal, "encode global data").Build()
	}
	if rewrite != nil {
		js = rewrite.Apply(js)
	}
	return globalDataScriptTag + js + "</script>", nil
}
