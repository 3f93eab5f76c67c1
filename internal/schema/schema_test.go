package schema

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/pagegen/internal/foundation/errors"
)

func TestMapPreservesOrder(t *testing.T) {
	var m Map[string]
	require.NoError(t, yaml.Unmarshal([]byte("zeta: z\nalpha: a\nmid: m\n"), &m))
	require.Equal(t, []string{"zeta", "alpha", "mid"}, m.Keys())

	v, ok := m.Get("alpha")
	require.True(t, ok)
	require.Equal(t, "a", v)

	out, err := json.Marshal(&m)
	require.NoError(t, err)
	require.JSONEq(t, `{"zeta":"z","alpha":"a","mid":"m"}`, string(out))
	require.Equal(t, `{"zeta":"z","alpha":"a","mid":"m"}`, string(out))
}

func TestMapInsertRejectsDuplicates(t *testing.T) {
	m := NewMap[int]()
	require.NoError(t, m.Insert("a", 1))
	err := m.Insert("a", 2)
	var dup *DuplicateKeyError
	require.ErrorAs(t, err, &dup)
	require.Equal(t, "a", dup.Key)

	v, _ := m.Get("a")
	require.Equal(t, 1, v)
	require.Equal(t, 1, m.Len())
}

func TestMapRejectsNonMapping(t *testing.T) {
	var m Map[string]
	require.Error(t, yaml.Unmarshal([]byte("- a\n- b\n"), &m))
}

func TestNilMapIsEmpty(t *testing.T) {
	var m *Map[string]
	require.Equal(t, 0, m.Len())
	require.Nil(t, m.Keys())
	_, ok := m.Get("x")
	require.False(t, ok)
	for range m.All() {
		t.Fatal("nil map must not yield")
	}
}

func TestTileDecode(t *testing.T) {
	t.Run("all fields", func(t *testing.T) {
		var tile Tile
		src := "tile: big\nfont: h2\naction: subdomain\nicon_type: round\nname: abc\ntitle: ABC\nicon: other\nsubdomain: x\n"
		require.NoError(t, yaml.Unmarshal([]byte(src), &tile))
		require.Equal(t, Tile{
			Tile: "big", Font: FontH2, Action: ActionSubdomain, IconType: "round",
			Name: "abc", Title: "ABC", Icon: "other", Subdomain: "x",
		}, tile)
	})

	t.Run("unknown action is rejected", func(t *testing.T) {
		var tile Tile
		err := yaml.Unmarshal([]byte("name: a\naction: teleport\n"), &tile)
		require.Error(t, err)
		require.Contains(t, err.Error(), "teleport")
	})

	t.Run("unknown font is rejected", func(t *testing.T) {
		var tile Tile
		require.Error(t, yaml.Unmarshal([]byte("name: a\naction: none\nfont: h9\n"), &tile))
	})

	t.Run("action is required", func(t *testing.T) {
		var tile Tile
		require.Error(t, yaml.Unmarshal([]byte("name: a\n"), &tile))
	})
}

func TestTileTemplateForms(t *testing.T) {
	t.Run("names", func(t *testing.T) {
		var tt TileTemplate
		src := "template: {tile: small, action: tool}\ntiles: [c, a, b]\n"
		require.NoError(t, yaml.Unmarshal([]byte(src), &tt))
		require.Equal(t, []string{"c", "a", "b"}, tt.Tiles.Names)
		require.Nil(t, tt.Tiles.Titled)

		tiles := tt.Expand()
		require.Len(t, tiles, 3)
		for i, name := range []string{"c", "a", "b"} {
			require.Equal(t, name, tiles[i].Name)
			require.Equal(t, "small", tiles[i].Tile)
			require.Equal(t, ActionTool, tiles[i].Action)
			require.Empty(t, tiles[i].Title)
		}
	})

	t.Run("titled", func(t *testing.T) {
		var tt TileTemplate
		src := "template: {tile: small, font: h3, action: side}\ntiles:\n  y: Why\n  x: Ex\n"
		require.NoError(t, yaml.Unmarshal([]byte(src), &tt))
		require.Nil(t, tt.Tiles.Names)

		tiles := tt.Expand()
		require.Equal(t, "y", tiles[0].Name)
		require.Equal(t, "Why", tiles[0].Title)
		require.Equal(t, "x", tiles[1].Name)
		require.Equal(t, FontH3, tiles[1].Font)
	})

	t.Run("expanded tiles do not alias", func(t *testing.T) {
		tt := TileTemplate{Template: TileStyle{Tile: "s", Action: ActionNone}, Tiles: TileTemplateTiles{Names: []string{"a", "b"}}}
		tiles := tt.Expand()
		tiles[0].Tile = "changed"
		require.Equal(t, "s", tiles[1].Tile)
		require.Equal(t, "s", tt.Template.Tile)
	})

	t.Run("scalar is rejected", func(t *testing.T) {
		var tt TileTemplate
		require.Error(t, yaml.Unmarshal([]byte("template: {tile: s, action: none}\ntiles: nope\n"), &tt))
	})
}

func TestToolDecode(t *testing.T) {
	src := `
name: foo
title: Foo
no_icon: true
category: [office]
cross: [g]
cross_top: [h]
keywords: bar
cross_notice:
  g: only on windows
website: 1
websites:
  beta: 4
  docs: Documentation
downloads_groups:
  Windows:
    x64: 64-bit
mirror: synced
columns: true
`
	var tool Tool
	require.NoError(t, yaml.Unmarshal([]byte(src), &tool))
	require.Equal(t, "foo", tool.Name)
	require.True(t, tool.HidesIcon())
	require.Equal(t, "foo", tool.IconName())
	require.Equal(t, []string{"h"}, tool.CrossTop)

	notice, ok := tool.CrossNotice.Get("g")
	require.True(t, ok)
	require.Equal(t, "only on windows", notice)

	require.NotNil(t, tool.Links.Website)
	require.Equal(t, TitleOfficial, tool.Links.Website.Kind)
	require.Equal(t, "官方网站", tool.Links.Website.Caption())

	beta, _ := tool.Links.Websites.Get("beta")
	require.True(t, beta.Numbered())
	require.Equal(t, "<b>非官方</b>页面", beta.Caption())
	docs, _ := tool.Links.Websites.Get("docs")
	require.False(t, docs.Numbered())
	require.Equal(t, "Documentation", docs.Caption())

	win, ok := tool.Links.DownloadsGroups.Get("Windows")
	require.True(t, ok)
	require.Equal(t, []string{"x64"}, win.Keys())
	require.Equal(t, MirrorSynced, tool.Links.Mirror)
	require.True(t, tool.Links.Columns)
}

func TestToolLinkTitleRejectsUnknownKind(t *testing.T) {
	var title ToolLinkTitle
	require.Error(t, yaml.Unmarshal([]byte("7"), &title))
	require.NoError(t, yaml.Unmarshal([]byte(`"7"`), &title))
	require.Equal(t, "7", title.Caption())
}

func TestMirrorTypeRejectsUnknown(t *testing.T) {
	var tool Tool
	require.Error(t, yaml.Unmarshal([]byte("name: a\ntitle: A\nmirror: stale\n"), &tool))
}

func TestToolGroupNaming(t *testing.T) {
	single := ToolGroup{List: []Tool{{Name: "foo", Title: "Foo"}}}
	require.True(t, single.Single())
	require.Equal(t, "foo", single.Key())
	require.Equal(t, "Foo", single.DisplayTitle())

	named := ToolGroup{Name: "g", Title: "G", List: []Tool{{Name: "foo"}}}
	require.False(t, named.Single())
	require.Equal(t, "g", named.Key())
	require.Equal(t, "G", named.DisplayTitle())

	unnamed := ToolGroup{List: []Tool{{Name: "a"}, {Name: "b"}}}
	require.False(t, unnamed.Single())
	require.Empty(t, unnamed.Key())
}

func TestClassicDecode(t *testing.T) {
	src := `
- type: button
  target: home
  text: Home
- type: text
  footer: true
  text: bye
- type: list
  id: more
  text: More
  content:
    - type: button
      text: inert
    - type: text
      footer: false
      text: hi
`
	var nodes []ClassicNode
	require.NoError(t, yaml.Unmarshal([]byte(src), &nodes))
	require.Len(t, nodes, 3)
	require.Equal(t, "home", nodes[0].Button.Target)
	require.True(t, nodes[1].Text.Footer)
	require.Equal(t, "more", nodes[2].List.ID)
	require.Len(t, nodes[2].List.Content, 2)
	require.Equal(t, ClassicButtonType, nodes[2].List.Content[0].Type)

	t.Run("unknown type", func(t *testing.T) {
		var n []ClassicNode
		require.Error(t, yaml.Unmarshal([]byte("- type: marquee\n  text: x\n"), &n))
	})

	t.Run("nested list", func(t *testing.T) {
		var n []ClassicNode
		src := "- type: list\n  id: a\n  text: A\n  content:\n    - type: list\n      id: b\n      text: B\n      content: []\n"
		require.Error(t, yaml.Unmarshal([]byte(src), &n))
	})
}

func TestLoadContent(t *testing.T) {
	dir := t.TempDir()
	docs := map[string]string{
		"public/sides.yml":   "- name: about\n  title: About\n  text: hi\n",
		"home/major.yml":     "- - {name: a, action: none, tile: s}\n",
		"home/sides.yml":     "[]\n",
		"tool/major.yml":     "left: []\nmiddle: []\n",
		"tool/sides.yml":     "[]\n",
		"tool/tools.yml":     "- list:\n    - {name: foo, title: Foo}\n",
		"tool/category.yml":  "tool: {title: T, content: []}\nlink: {title: L, content: []}\n",
		"legacy/buttons.yml": "- {type: button, text: x}\n",
	}
	for rel, body := range docs {
		p := filepath.Join(dir, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o750))
		require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	}

	c, err := LoadContent(dir, Paths{})
	require.NoError(t, err)
	require.Len(t, c.PublicSides, 1)
	require.Equal(t, "a", c.HomeMajor[0][0].Name)
	require.Equal(t, "foo", c.ToolGroups[0].List[0].Name)
	require.Equal(t, "T", c.ToolCategory.Tool.Title)
	require.Len(t, c.LegacyButtons, 1)

	t.Run("missing document", func(t *testing.T) {
		require.NoError(t, os.Remove(filepath.Join(dir, "legacy/buttons.yml")))
		_, err := LoadContent(dir, Paths{})
		require.True(t, errors.HasCategory(err, errors.CategoryNotFound))
	})

	t.Run("malformed document", func(t *testing.T) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "legacy/buttons.yml"), []byte("- {type: nope}\n"), 0o600))
		_, err := LoadContent(dir, Paths{})
		require.True(t, errors.HasCategory(err, errors.CategoryValidation))
	})
}
