package config

import (
	"git.home.luguber.info/inful/pagegen/internal/assets"
	"git.home.luguber.info/inful/pagegen/internal/catalog"
	"git.home.luguber.info/inful/pagegen/internal/compiler"
	"git.home.luguber.info/inful/pagegen/internal/substitute"
)

// DefaultRobots is emitted as robots.txt unless configured otherwise.
const DefaultRobots = "User-agent: *\nAllow: /\nAllow: /index.html\nDisallow: /*"

// DefaultApplier applies defaults for a specific configuration domain.
type DefaultApplier interface {
	ApplyDefaults(cfg *Config) error
	Domain() string
}

// PathsDefaultApplier handles directory defaults.
type PathsDefaultApplier struct{}

func (PathsDefaultApplier) Domain() string { return "paths" }

func (PathsDefaultApplier) ApplyDefaults(cfg *Config) error {
	setDefault(&cfg.Content.Dir, "content")
	cfg.Content.Paths = cfg.Content.Paths.WithDefaults()
	setDefault(&cfg.Fragments.Dir, "fragments")
	setDefault(&cfg.Shell.Dir, "shell")
	setDefault(&cfg.Output.Dir, "dist")
	return nil
}

// PagesDefaultApplier declares the home and tool pages when none are listed.
type PagesDefaultApplier struct{}

func (PagesDefaultApplier) Domain() string { return "pages" }

func (PagesDefaultApplier) ApplyDefaults(cfg *Config) error {
	if len(cfg.Pages) == 0 {
		cfg.Pages = []PageConfig{
			{Name: "home", Shell: "index.html", Output: "index.html", Data: catalog.PageHome},
			{Name: "tool", Shell: "ldtools/index.html", Output: "ldtools/index.html", Data: catalog.PageTool},
		}
	}
	for i := range cfg.Pages {
		p := &cfg.Pages[i]
		setDefault(&p.Output, p.Shell)
	}
	return nil
}

// AssetsDefaultApplier handles asset and minifier defaults.
type AssetsDefaultApplier struct{}

func (AssetsDefaultApplier) Domain() string { return "assets" }

func (AssetsDefaultApplier) ApplyDefaults(cfg *Config) error {
	setDefault(&cfg.Assets.BaseURL, "/")
	if cfg.Assets.Sources == nil {
		cfg.Assets.Sources = []AssetSource{
			{Name: "style", Source: "style.css"},
			{Name: "main", Source: "main.ts"},
		}
	}
	if cfg.Minifier.Mode == "" {
		cfg.Minifier.Mode = assets.ModeProduction
	}
	setDefault(&cfg.Minifier.Binary, "esbuild")
	return nil
}

// LinksDefaultApplier fills link targets and the profile selection.
type LinksDefaultApplier struct{}

func (LinksDefaultApplier) Domain() string { return "links" }

func (LinksDefaultApplier) ApplyDefaults(cfg *Config) error {
	def := compiler.DefaultOptions()
	setDefault(&cfg.Links.RedirectBase, def.RedirectBase)
	setDefault(&cfg.Links.SubdomainRoot, def.SubdomainRoot)
	setDefault(&cfg.Profile, substitute.ProfileProduction)
	if cfg.Robots == nil {
		robots := DefaultRobots
		cfg.Robots = &robots
	}
	return nil
}

// PreviewDefaultApplier handles preview server defaults.
type PreviewDefaultApplier struct{}

func (PreviewDefaultApplier) Domain() string { return "preview" }

func (PreviewDefaultApplier) ApplyDefaults(cfg *Config) error {
	setDefault(&cfg.Preview.Addr, "127.0.0.1:8080")
	setDefault(&cfg.Preview.Debounce, "300ms")
	return nil
}

func defaultAppliers() []DefaultApplier {
	return []DefaultApplier{
		PathsDefaultApplier{},
		PagesDefaultApplier{},
		AssetsDefaultApplier{},
		LinksDefaultApplier{},
		PreviewDefaultApplier{},
	}
}

func applyDefaults(cfg *Config) error {
	for _, a := range defaultAppliers() {
		if err := a.ApplyDefaults(cfg); err != nil {
			return err
		}
	}
	return nil
}

func setDefault(v *string, def string) {
	if *v == "" {
		*v = def
	}
}
