package schema

// Side is a named slide-out panel.
type Side struct {
	Name      string        `yaml:"name"`
	Title     string        `yaml:"title"`
	Text      string        `yaml:"text"`
	TextSmall bool          `yaml:"text_small"`
	Tiles     []Tile        `yaml:"tiles"`
	Templated *TileTemplate `yaml:"templated"`
}

// PanelTiles returns the explicit tiles, else the expanded template, and
// whether the panel has a tile area at all.
func (s Side) PanelTiles() ([]Tile, bool) {
	if s.Tiles != nil {
		return s.Tiles, true
	}
	if s.Templated != nil {
		return s.Templated.Expand(), true
	}
	return nil, false
}

// Category is the two-tab classification tree of the tool page.
type Category struct {
	Tool CategoryTab `yaml:"tool"`
	Link CategoryTab `yaml:"link"`
}

// CategoryTab holds ordered groups.
type CategoryTab struct {
	Title   string          `yaml:"title"`
	Content []CategoryGroup `yaml:"content"`
}

// CategoryGroup is a titled run of tiles.
type CategoryGroup struct {
	Title   string `yaml:"title"`
	Content []Tile `yaml:"content"`
}

// Tabs returns the tool tab then the link tab.
func (c Category) Tabs() []CategoryTab {
	return []CategoryTab{c.Tool, c.Link}
}
