package schema

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// TileAction selects what a tile does when activated.
type TileAction string

const (
	ActionSide      TileAction = "side"
	ActionTool      TileAction = "tool"
	ActionCategory  TileAction = "category"
	ActionCopy      TileAction = "copy"
	ActionPath      TileAction = "path"
	ActionSubdomain TileAction = "subdomain"
	ActionR         TileAction = "r"
	ActionR2        TileAction = "r2"
	ActionNone      TileAction = "none"
)

// TileActions lists every action in declaration order.
var TileActions = []TileAction{
	ActionSide, ActionTool, ActionCategory, ActionCopy,
	ActionPath, ActionSubdomain, ActionR, ActionR2, ActionNone,
}

// Valid reports whether a is a known action.
func (a TileAction) Valid() bool {
	for _, known := range TileActions {
		if a == known {
			return true
		}
	}
	return false
}

// UnmarshalYAML rejects unknown actions.
func (a *TileAction) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	if !TileAction(s).Valid() {
		return fmt.Errorf("line %d: unknown tile action %q", value.Line, s)
	}
	*a = TileAction(s)
	return nil
}

// TileFont is the heading element used for a tile caption.
type TileFont string

const (
	FontH1 TileFont = "h1"
	FontH2 TileFont = "h2"
	FontH3 TileFont = "h3"
	FontH4 TileFont = "h4"
	FontH5 TileFont = "h5"
)

// UnmarshalYAML accepts h1..h5.
func (f *TileFont) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	switch TileFont(s) {
	case FontH1, FontH2, FontH3, FontH4, FontH5:
		*f = TileFont(s)
		return nil
	default:
		return fmt.Errorf("line %d: unknown tile font %q", value.Line, s)
	}
}

// Tile is a single clickable unit.
type Tile struct {
	Tile      string     `yaml:"tile"`
	Font      TileFont   `yaml:"font"`
	Action    TileAction `yaml:"action"`
	IconType  string     `yaml:"icon_type"`
	Name      string     `yaml:"name"`
	Title     string     `yaml:"title"`
	Icon      string     `yaml:"icon"`
	Path      string     `yaml:"path"`
	Subdomain string     `yaml:"subdomain"`
}

// UnmarshalYAML requires name and action.
func (t *Tile) UnmarshalYAML(value *yaml.Node) error {
	type plain Tile
	var p plain
	if err := value.Decode(&p); err != nil {
		return err
	}
	if p.Name == "" {
		return fmt.Errorf("line %d: tile requires a name", value.Line)
	}
	if p.Action == "" {
		return fmt.Errorf("line %d: tile %q requires an action", value.Line, p.Name)
	}
	*t = Tile(p)
	return nil
}

// TileStyle is the shared style part of a TileTemplate.
type TileStyle struct {
	Tile     string     `yaml:"tile"`
	Font     TileFont   `yaml:"font"`
	Action   TileAction `yaml:"action"`
	IconType string     `yaml:"icon_type"`
}

// TileTemplateTiles is either a list of names or an ordered name -> title
// mapping. Exactly one of the two forms is populated.
type TileTemplateTiles struct {
	Names  []string
	Titled *Map[string]
}

// UnmarshalYAML accepts a sequence or a mapping.
func (t *TileTemplateTiles) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.SequenceNode:
		var names []string
		if err := value.Decode(&names); err != nil {
			return err
		}
		*t = TileTemplateTiles{Names: names}
		return nil
	case yaml.MappingNode:
		titled := NewMap[string]()
		if err := value.Decode(titled); err != nil {
			return err
		}
		*t = TileTemplateTiles{Titled: titled}
		return nil
	default:
		return fmt.Errorf("line %d: template tiles must be a sequence or a mapping, got %s", value.Line, kindName(value.Kind))
	}
}

// TileTemplate stamps one Tile per entry from a shared style.
type TileTemplate struct {
	Template TileStyle         `yaml:"template"`
	Tiles    TileTemplateTiles `yaml:"tiles"`
}

// Expand yields one Tile per entry in declaration order. Each tile receives
// its own copy of the template style.
func (tt TileTemplate) Expand() []Tile {
	stamp := func(name, title string) Tile {
		style := tt.Template
		return Tile{
			Tile:     style.Tile,
			Font:     style.Font,
			Action:   style.Action,
			IconType: style.IconType,
			Name:     name,
			Title:    title,
		}
	}
	if tt.Tiles.Titled != nil {
		out := make([]Tile, 0, tt.Tiles.Titled.Len())
		for name, title := range tt.Tiles.Titled.All() {
			out = append(out, stamp(name, title))
		}
		return out
	}
	out := make([]Tile, 0, len(tt.Tiles.Names))
	for _, name := range tt.Tiles.Names {
		out = append(out, stamp(name, ""))
	}
	return out
}

// TileColumns is the home major area: a sequence of tile columns.
type TileColumns [][]Tile

// TileGrids is the tool major area.
type TileGrids struct {
	Left   []Tile           `yaml:"left"`
	Middle []TileGridMiddle `yaml:"middle"`
}

// TileGridMiddle is a titled block of the middle grid.
type TileGridMiddle struct {
	Title   string `yaml:"title"`
	Content []Tile `yaml:"content"`
}
