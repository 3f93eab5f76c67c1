package build

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/pagegen/internal/assets"
	"git.home.luguber.info/inful/pagegen/internal/compiler"
	"git.home.luguber.info/inful/pagegen/internal/fragments"
	"git.home.luguber.info/inful/pagegen/internal/git"
	"git.home.luguber.info/inful/pagegen/internal/logfields"
	"git.home.luguber.info/inful/pagegen/internal/schema"
)

func stageResolveRevision(_ context.Context, st *State) error {
	rev, err := git.Revision(st.Config.Root, git.RevisionOptions{
		Override:        st.Config.RevisionOverride(),
		WorkdirFallback: st.Config.Revision.WorkdirFallback,
		Paths:           st.sourcePaths(),
	})
	if err != nil {
		return err
	}
	st.Revision = rev
	slog.Info("Resolved revision", logfields.BuildID(st.BuildID), logfields.Revision(rev))
	return nil
}

func stageLoadContent(_ context.Context, st *State) error {
	content, err := schema.LoadContent(st.Config.ContentDir(), st.Config.Content.Paths)
	if err != nil {
		return err
	}
	st.Content = content
	return nil
}

func stageCompile(_ context.Context, st *State) error {
	gen, err := compiler.New(st.Config.CompilerOptions()).Generate(st.Content)
	if err != nil {
		return err
	}
	st.Generated = gen
	slog.Info("Compiled content", logfields.BuildID(st.BuildID), logfields.Count(gen.Catalog.Tools.Len()))
	return nil
}

func stageFragments(ctx context.Context, st *State) error {
	dir := st.Config.FragmentsDir()
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		slog.Debug("No fragments directory", logfields.Path(dir))
		return nil
	}
	loader := &fragments.Loader{
		Dir:      dir,
		Include:  st.Config.Fragments.Include,
		Exclude:  st.Config.Fragments.Exclude,
		Minifier: st.Minifier,
	}
	frags, err := loader.Load(ctx)
	if err != nil {
		return err
	}
	st.Fragments = frags
	return nil
}

func stageAssets(ctx context.Context, st *State) error {
	proc := &assets.Processor{
		Minifier: st.Minifier,
		Global:   st.Global,
		Header:   st.Header(),
		BaseURL:  st.Config.Assets.BaseURL,
	}
	sources := make([]assets.Source, 0, len(st.Config.Assets.Sources))
	for _, s := range st.Config.Assets.Sources {
		sources = append(sources, assets.Source{Name: s.Name, Path: shellPath(st, s.Source)})
	}
	built, err := proc.ProcessAll(ctx, sources)
	if err != nil {
		return err
	}
	st.Assets = built
	return nil
}

func shellPath(st *State, rel string) string {
	if filepath.IsAbs(rel) {
		return rel
	}
	return filepath.Join(st.Config.ShellDir(), rel)
}
