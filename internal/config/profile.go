package config

import (
	"os"
	"time"

	"git.home.luguber.info/inful/pagegen/internal/compiler"
	"git.home.luguber.info/inful/pagegen/internal/foundation/errors"
	"git.home.luguber.info/inful/pagegen/internal/substitute"
)

func builtin(name string) bool {
	_, ok := substitute.BuiltinProfiles()[name]
	return ok
}

// ProfileName returns the selected profile: override, then PAGEGEN_PROFILE,
// then the file setting.
func (c *Config) ProfileName(override string) string {
	if override != "" {
		return override
	}
	if env := os.Getenv(EnvProfile); env != "" {
		return env
	}
	return c.Profile
}

// ResolveProfile returns the selected profile. Configured profiles extend
// the built-in ones; fields left empty keep the built-in values.
func (c *Config) ResolveProfile(override string) (substitute.Profile, error) {
	name := c.ProfileName(override)
	p, ok := substitute.BuiltinProfiles()[name]
	if custom, has := c.Profiles[name]; has {
		p.Name = name
		if custom.AssetBase != "" {
			p.AssetBase = custom.AssetBase
		}
		if custom.MirrorBase != "" {
			p.MirrorBase = custom.MirrorBase
		}
		ok = true
	}
	if !ok {
		return substitute.Profile{}, errors.ConfigError("unknown profile").WithContext("profile", name).Build()
	}
	return p, nil
}

// RevisionOverride returns PAGEGEN_REVISION or the file setting.
func (c *Config) RevisionOverride() string {
	if env := os.Getenv(EnvRevision); env != "" {
		return env
	}
	return c.Revision.Override
}

// CompilerOptions returns the link targets for the compiler.
func (c *Config) CompilerOptions() compiler.Options {
	return compiler.Options{
		RedirectBase:  c.Links.RedirectBase,
		SubdomainRoot: c.Links.SubdomainRoot,
	}
}

// DebounceDuration returns the preview rebuild debounce.
func (c *Config) DebounceDuration() time.Duration {
	d, err := time.ParseDuration(c.Preview.Debounce)
	if err != nil {
		return 300 * time.Millisecond
	}
	return d
}
