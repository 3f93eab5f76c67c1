package schema

import (
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// NonIndexGroup is the group name that keeps a group's tools registered but
// out of the visible index.
const NonIndexGroup = "non-index"

// ToolGroup is a collection of tools sharing an optional cross notice title.
type ToolGroup struct {
	Name        string `yaml:"name"`
	Title       string `yaml:"title"`
	CrossNotice string `yaml:"cross_notice"`
	NoIcon      *bool  `yaml:"no_icon"`
	List        []Tool `yaml:"list"`
}

// Single reports whether the group is an unnamed wrapper around one tool.
func (g ToolGroup) Single() bool {
	return g.Name == "" && len(g.List) == 1
}

// Key returns the group's index key: its name, or the tool's name for a
// single group.
func (g ToolGroup) Key() string {
	if g.Single() {
		return g.List[0].Name
	}
	return g.Name
}

// DisplayTitle returns the group's title, falling back to the tool's title
// for a single group.
func (g ToolGroup) DisplayTitle() string {
	if g.Title == "" && g.Single() {
		return g.List[0].Title
	}
	return g.Title
}

// Tool is a catalog entry.
type Tool struct {
	Name        string       `yaml:"name"`
	Title       string       `yaml:"title"`
	NoIcon      *bool        `yaml:"no_icon"`
	Icon        string       `yaml:"icon"`
	Description string       `yaml:"description"`
	Notice      string       `yaml:"notice"`
	Category    []string     `yaml:"category"`
	Cross       []string     `yaml:"cross"`
	CrossTop    []string     `yaml:"cross_top"`
	Keywords    string       `yaml:"keywords"`
	CrossNotice *Map[string] `yaml:"cross_notice"`
	Links       ToolLinks    `yaml:",inline"`
}

// HidesIcon reports whether the tool renders without an icon.
func (t Tool) HidesIcon() bool {
	return t.NoIcon != nil && *t.NoIcon
}

// IconName returns the icon override or the tool name.
func (t Tool) IconName() string {
	if t.Icon != "" {
		return t.Icon
	}
	return t.Name
}

// MirrorType is the state of a tool's mirror download.
type MirrorType string

const (
	MirrorActive MirrorType = "active"
	MirrorLocked MirrorType = "locked"
	MirrorSynced MirrorType = "synced"
)

// UnmarshalYAML accepts active, locked or synced.
func (m *MirrorType) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	switch MirrorType(s) {
	case MirrorActive, MirrorLocked, MirrorSynced:
		*m = MirrorType(s)
		return nil
	default:
		return fmt.Errorf("line %d: unknown mirror type %q", value.Line, s)
	}
}

// ToolLinks is the link payload inlined into a Tool.
type ToolLinks struct {
	Website              *ToolLinkTitle      `yaml:"website"`
	Websites             *Map[ToolLinkTitle] `yaml:"websites"`
	WebsitesTile         *Map[ToolLinkTitle] `yaml:"websites_tile"`
	WebsitesTileTemplate *TileStyle          `yaml:"websites_tile_template"`
	Downloads            *Map[string]        `yaml:"downloads"`
	DownloadsGroups      *Map[*Map[string]]  `yaml:"downloads_groups"`
	Mirror               MirrorType          `yaml:"mirror"`
	Mirrors              *Map[string]        `yaml:"mirrors"`
	Columns              bool                `yaml:"columns"`
}

// LinkTitleKind numbers the predefined link captions.
type LinkTitleKind int

const (
	TitleText LinkTitleKind = iota
	TitleOfficial
	TitleFirstRelease
	TitlePageLink
	TitleUnofficial
)

var linkTitleCaptions = map[LinkTitleKind]string{
	TitleOfficial:     "官方网站",
	TitleFirstRelease: "首发链接",
	TitlePageLink:     "网页链接",
	TitleUnofficial:   "<b>非官方</b>页面",
}

// ToolLinkTitle is either a numbered kind or free text.
type ToolLinkTitle struct {
	Kind LinkTitleKind
	Text string
}

// Numbered reports whether the title is one of the predefined captions.
func (t ToolLinkTitle) Numbered() bool { return t.Kind != TitleText }

// Caption returns the display text. Numbered captions are HTML.
func (t ToolLinkTitle) Caption() string {
	if t.Kind == TitleText {
		return t.Text
	}
	return linkTitleCaptions[t.Kind]
}

// UnmarshalYAML decodes an integer 1..4 as a numbered kind and anything else
// scalar as free text.
func (t *ToolLinkTitle) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: link title must be a scalar, got %s", value.Line, kindName(value.Kind))
	}
	if value.Tag == "!!int" {
		n, err := strconv.Atoi(value.Value)
		if err != nil {
			return fmt.Errorf("line %d: %w", value.Line, err)
		}
		kind := LinkTitleKind(n)
		if _, ok := linkTitleCaptions[kind]; !ok {
			return fmt.Errorf("line %d: unknown link title kind %d", value.Line, n)
		}
		*t = ToolLinkTitle{Kind: kind}
		return nil
	}
	*t = ToolLinkTitle{Text: value.Value}
	return nil
}
