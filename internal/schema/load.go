package schema

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/pagegen/internal/foundation/errors"
)

// Paths locates each content document relative to the content directory.
type Paths struct {
	PublicSides   string `yaml:"public_sides"`
	HomeMajor     string `yaml:"home_major"`
	HomeSides     string `yaml:"home_sides"`
	ToolMajor     string `yaml:"tool_major"`
	ToolSides     string `yaml:"tool_sides"`
	ToolTools     string `yaml:"tool_tools"`
	ToolCategory  string `yaml:"tool_category"`
	LegacyButtons string `yaml:"legacy_buttons"`
}

// DefaultPaths returns the conventional document layout.
func DefaultPaths() Paths {
	return Paths{
		PublicSides:   "public/sides.yml",
		HomeMajor:     "home/major.yml",
		HomeSides:     "home/sides.yml",
		ToolMajor:     "tool/major.yml",
		ToolSides:     "tool/sides.yml",
		ToolTools:     "tool/tools.yml",
		ToolCategory:  "tool/category.yml",
		LegacyButtons: "legacy/buttons.yml",
	}
}

// WithDefaults fills empty entries from DefaultPaths.
func (p Paths) WithDefaults() Paths {
	d := DefaultPaths()
	fill := func(v *string, def string) {
		if *v == "" {
			*v = def
		}
	}
	fill(&p.PublicSides, d.PublicSides)
	fill(&p.HomeMajor, d.HomeMajor)
	fill(&p.HomeSides, d.HomeSides)
	fill(&p.ToolMajor, d.ToolMajor)
	fill(&p.ToolSides, d.ToolSides)
	fill(&p.ToolTools, d.ToolTools)
	fill(&p.ToolCategory, d.ToolCategory)
	fill(&p.LegacyButtons, d.LegacyButtons)
	return p
}

// Content is every document the compiler consumes.
type Content struct {
	PublicSides   []Side
	HomeMajor     TileColumns
	HomeSides     []Side
	ToolMajor     TileGrids
	ToolSides     []Side
	ToolGroups    []ToolGroup
	ToolCategory  Category
	LegacyButtons []ClassicNode
}

// LoadContent reads and decodes all content documents under dir.
func LoadContent(dir string, paths Paths) (*Content, error) {
	paths = paths.WithDefaults()
	var c Content
	steps := []struct {
		rel string
		out any
	}{
		{paths.PublicSides, &c.PublicSides},
		{paths.HomeMajor, &c.HomeMajor},
		{paths.HomeSides, &c.HomeSides},
		{paths.ToolMajor, &c.ToolMajor},
		{paths.ToolSides, &c.ToolSides},
		{paths.ToolTools, &c.ToolGroups},
		{paths.ToolCategory, &c.ToolCategory},
		{paths.LegacyButtons, &c.LegacyButtons},
	}
	for _, s := range steps {
		if err := DecodeFile(filepath.Join(dir, s.rel), s.out); err != nil {
			return nil, err
		}
	}
	return &c, nil
}

// DecodeFile decodes the YAML document at path into out.
func DecodeFile(path string, out any) error {
	// #nosec G304 -- path comes from build configuration.
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.NotFoundError("content document not found").
				WithContext("path", path).
				Build()
		}
		return errors.WrapError(err, errors.CategoryFileSystem, "read content document").
			Fatal().
			WithContext("path", path).
			Build()
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return errors.WrapError(err, errors.CategoryValidation, "invalid content document").
			Fatal().
			WithContext("path", path).
			Build()
	}
	return nil
}
