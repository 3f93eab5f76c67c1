package build

import (
	"path/filepath"
	"time"

	"git.home.luguber.info/inful/pagegen/internal/assets"
	"git.home.luguber.info/inful/pagegen/internal/compiler"
	"git.home.luguber.info/inful/pagegen/internal/config"
	"git.home.luguber.info/inful/pagegen/internal/fragments"
	"git.home.luguber.info/inful/pagegen/internal/metrics"
	"git.home.luguber.info/inful/pagegen/internal/schema"
	"git.home.luguber.info/inful/pagegen/internal/substitute"
)

// RenderedPage is a page shell after every substitution pass.
type RenderedPage struct {
	Name    string
	Output  string
	Content []byte
}

// State carries mutable build state across stages.
type State struct {
	Config    *config.Config
	Options   BuildOptions
	BuildID   string
	OutputDir string

	Profile substitute.Profile
	Global  *substitute.Table
	// GlobalJSON is Global escaped for use inside the embedded JSON payload.
	GlobalJSON *substitute.Table
	Minifier   assets.Minifier
	Revision   string

	Content   *schema.Content
	Generated *compiler.Generated
	Fragments []fragments.Fragment
	Assets    []*assets.Asset
	Pages     []RenderedPage
	Written   []string

	StageDurations map[StageName]time.Duration

	recorder metrics.Recorder
}

// Header returns the provenance header for the resolved revision.
func (st *State) Header() assets.Header {
	return assets.Header{Lines: st.Config.Copyright, Revision: st.Revision}
}

// sourcePaths returns the input directories relative to the config root.
func (st *State) sourcePaths() []string {
	dirs := []string{st.Config.ContentDir(), st.Config.FragmentsDir(), st.Config.ShellDir()}
	out := make([]string, 0, len(dirs))
	for _, d := range dirs {
		rel, err := filepath.Rel(st.Config.Root, d)
		if err != nil {
			continue
		}
		out = append(out, rel)
	}
	return out
}
