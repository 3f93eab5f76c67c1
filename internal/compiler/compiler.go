// Package compiler turns content records into HTML node trees.
//
// Every function is deterministic: the same input yields byte-identical
// output. Environment-dependent URLs are emitted as tokens and rewritten
// later by the global substitution pass; the remaining link targets come
// from Options.
package compiler

import "git.home.luguber.info/inful/pagegen/internal/substitute"

// Options configures link targets.
type Options struct {
	// RedirectBase prefixes r and r2 redirect links, without trailing slash.
	RedirectBase string
	// SubdomainRoot is the domain subdomain tiles are placed under.
	SubdomainRoot string
	// AssetBase prefixes image URLs.
	AssetBase string
	// MirrorBase prefixes mirror download links.
	MirrorBase string
}

// DefaultOptions returns the production link layout.
func DefaultOptions() Options {
	return Options{
		RedirectBase:  "//r.ldt.pc.wiki",
		SubdomainRoot: "pc.wiki",
		AssetBase:     substitute.TokenAssetBase,
		MirrorBase:    substitute.TokenMirrorBase,
	}
}

// Compiler renders content with a fixed set of options.
type Compiler struct {
	opts Options
}

// New returns a Compiler. Empty option fields take their defaults.
func New(opts Options) *Compiler {
	def := DefaultOptions()
	if opts.RedirectBase == "" {
		opts.RedirectBase = def.RedirectBase
	}
	if opts.SubdomainRoot == "" {
		opts.SubdomainRoot = def.SubdomainRoot
	}
	if opts.AssetBase == "" {
		opts.AssetBase = def.AssetBase
	}
	if opts.MirrorBase == "" {
		opts.MirrorBase = def.MirrorBase
	}
	return &Compiler{opts: opts}
}

// Options returns the effective options.
func (c *Compiler) Options() Options { return c.opts }
