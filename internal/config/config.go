// Package config loads pagegen.yaml, the build configuration that sits next to
// the content tree.
package config

import (
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/pagegen/internal/assets"
	"git.home.luguber.info/inful/pagegen/internal/foundation/errors"
	"git.home.luguber.info/inful/pagegen/internal/schema"
)

// FileName is the configuration file looked up in the source directory.
const FileName = "pagegen.yaml"

// Environment variables that override file settings.
const (
	EnvProfile  = "PAGEGEN_PROFILE"
	EnvRevision = "PAGEGEN_REVISION"
)

// Config is the complete build configuration.
type Config struct {
	Content            ContentConfig            `yaml:"content"`
	Fragments          FragmentsConfig          `yaml:"fragments"`
	Shell              ShellConfig              `yaml:"shell"`
	Pages              []PageConfig             `yaml:"pages"`
	Assets             AssetsConfig             `yaml:"assets"`
	Minifier           MinifierConfig           `yaml:"minifier"`
	Links              LinksConfig              `yaml:"links"`
	Profile            string                   `yaml:"profile"`
	Profiles           map[string]ProfileConfig `yaml:"profiles"`
	Output             OutputConfig             `yaml:"output"`
	Copyright          []string                 `yaml:"copyright"`
	Robots             *string                  `yaml:"robots"`
	StrictPlaceholders bool                     `yaml:"strict_placeholders"`
	Revision           RevisionConfig           `yaml:"revision"`
	Preview            PreviewConfig            `yaml:"preview"`

	// Root is the directory relative paths resolve against. It is the
	// directory holding the configuration file.
	Root string `yaml:"-"`
}

// ContentConfig locates the content documents.
type ContentConfig struct {
	Dir   string       `yaml:"dir"`
	Paths schema.Paths `yaml:"paths"`
}

// FragmentsConfig locates static fragments.
type FragmentsConfig struct {
	Dir     string   `yaml:"dir"`
	Include []string `yaml:"include"`
	Exclude []string `yaml:"exclude"`
}

// ShellConfig locates page shells and asset sources.
type ShellConfig struct {
	Dir string `yaml:"dir"`
}

// PageConfig declares one emitted page.
type PageConfig struct {
	Name   string `yaml:"name"`
	Shell  string `yaml:"shell"`
	Output string `yaml:"output"`
	// Data selects the embedded global data payload: home or tool.
	Data string `yaml:"data"`
}

// AssetsConfig declares the CSS and JS assets.
type AssetsConfig struct {
	BaseURL string        `yaml:"base_url"`
	Sources []AssetSource `yaml:"sources"`
}

// AssetSource is one asset entry file under the shell directory.
type AssetSource struct {
	Name   string `yaml:"name"`
	Source string `yaml:"source"`
}

// MinifierConfig selects the minifier.
type MinifierConfig struct {
	Mode   assets.Mode `yaml:"mode"`
	Binary string      `yaml:"binary"`
}

// LinksConfig holds the link targets baked into generated fragments.
type LinksConfig struct {
	RedirectBase  string `yaml:"redirect_base"`
	SubdomainRoot string `yaml:"subdomain_root"`
}

// ProfileConfig defines or overrides an environment profile.
type ProfileConfig struct {
	AssetBase  string `yaml:"asset_base"`
	MirrorBase string `yaml:"mirror_base"`
}

// OutputConfig selects the destination directory.
type OutputConfig struct {
	Dir string `yaml:"dir"`
}

// RevisionConfig controls the revision identifier.
type RevisionConfig struct {
	Override        string `yaml:"override"`
	WorkdirFallback bool   `yaml:"workdir_fallback"`
}

// PreviewConfig configures `pagegen preview`.
type PreviewConfig struct {
	Addr     string `yaml:"addr"`
	Debounce string `yaml:"debounce"`
}

// Load reads the configuration at path. .env files next to it are loaded
// first so ${VAR} references and overrides can use them.
func Load(path string) (*Config, error) {
	root := filepath.Dir(path)
	if err := loadEnvFiles(root); err != nil {
		slog.Debug("No .env file loaded", "dir", root, "reason", err.Error())
	}

	// #nosec G304 -- path is the user-selected configuration file.
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFoundError("configuration file not found").WithContext("path", path).Build()
		}
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "read configuration file").WithContext("path", path).Build()
	}
	return Parse(data, root)
}

// Parse decodes configuration data, expands environment variables, applies
// defaults and validates the result. root anchors relative paths.
func Parse(data []byte, root string) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "parse configuration").Build()
	}
	cfg.Root = root

	if err := applyDefaults(&cfg); err != nil {
		return nil, err
	}
	if err := ValidateConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the configuration used when no file is present.
func Default(root string) (*Config, error) {
	return Parse(nil, root)
}

// Path resolves p against Root unless it is absolute.
func (c *Config) Path(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Root, p)
}

// ContentDir is the absolute content directory.
func (c *Config) ContentDir() string { return c.Path(c.Content.Dir) }

// FragmentsDir is the absolute fragments directory.
func (c *Config) FragmentsDir() string { return c.Path(c.Fragments.Dir) }

// ShellDir is the absolute shell directory.
func (c *Config) ShellDir() string { return c.Path(c.Shell.Dir) }

// OutputDir is the absolute output directory.
func (c *Config) OutputDir() string { return c.Path(c.Output.Dir) }

// RobotsTxt returns the robots.txt body, or false when disabled.
func (c *Config) RobotsTxt() (string, bool) {
	if c.Robots == nil || *c.Robots == "" {
		return "", false
	}
	return *c.Robots, true
}
