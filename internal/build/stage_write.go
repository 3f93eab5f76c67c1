package build

import (
	"context"
	"log/slog"

	"git.home.luguber.info/inful/pagegen/internal/assets"
	"git.home.luguber.info/inful/pagegen/internal/logfields"
	"git.home.luguber.info/inful/pagegen/internal/output"
)

// RobotsFile is the crawler policy emitted next to the pages.
const RobotsFile = "robots.txt"

// stageWrite emits assets, pages and robots.txt into an empty destination.
// Every path is created exclusively; an existing file aborts the build.
func stageWrite(_ context.Context, st *State) error {
	w := output.NewWriter(st.OutputDir)
	if err := w.EnsureEmpty(); err != nil {
		return err
	}
	emit := func(rel string, kind assets.Kind, content []byte) error {
		if _, err := w.Write(rel, content); err != nil {
			return err
		}
		st.recorder.ObserveArtifact(string(kind), len(content))
		slog.Debug("Wrote artifact", logfields.BuildID(st.BuildID), logfields.Path(rel), logfields.Bytes(len(content)))
		return nil
	}

	for _, a := range st.Assets {
		if err := emit(a.FileName, a.Kind, a.Content); err != nil {
			return err
		}
	}
	for _, p := range st.Pages {
		if err := emit(p.Output, assets.KindHTML, p.Content); err != nil {
			return err
		}
	}
	if robots, ok := st.Config.RobotsTxt(); ok {
		if err := emit(RobotsFile, assets.KindText, st.Header().Prefix(assets.KindText, []byte(robots))); err != nil {
			return err
		}
	}
	st.Written = w.Written()
	return nil
}
