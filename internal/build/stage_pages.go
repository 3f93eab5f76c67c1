package build

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"git.home.luguber.info/inful/pagegen/internal/assets"
	"git.home.luguber.info/inful/pagegen/internal/compiler"
	"git.home.luguber.info/inful/pagegen/internal/config"
	"git.home.luguber.info/inful/pagegen/internal/foundation/errors"
	"git.home.luguber.info/inful/pagegen/internal/fragments"
	"git.home.luguber.info/inful/pagegen/internal/logfields"
	"git.home.luguber.info/inful/pagegen/internal/substitute"
)

func stagePages(_ context.Context, st *State) error {
	base, err := pageInserts(st)
	if err != nil {
		return err
	}
	if st.Config.StrictPlaceholders {
		if err := st.Global.CheckOverlaps(); err != nil {
			return err
		}
	}
	pages := make([]RenderedPage, 0, len(st.Config.Pages))
	for _, page := range st.Config.Pages {
		content, err := renderPage(st, page, base)
		if err != nil {
			return err
		}
		pages = append(pages, RenderedPage{Name: page.Name, Output: page.Output, Content: content})
		slog.Debug("Rendered page", logfields.BuildID(st.BuildID), logfields.Page(page.Name), logfields.Bytes(len(content)))
	}
	st.Pages = pages
	return nil
}

// pageInserts merges the tokens shared by every page.
func pageInserts(st *State) (*substitute.Table, error) {
	table, err := st.Generated.Inserts()
	if err != nil {
		return nil, err
	}
	frags, err := fragments.Inserts(st.Fragments)
	if err != nil {
		return nil, err
	}
	built, err := assets.Inserts(st.Assets)
	if err != nil {
		return nil, err
	}
	for _, t := range []*substitute.Table{frags, built} {
		if err := table.Merge(t); err != nil {
			return nil, err
		}
	}
	return table, nil
}

// renderPage runs the per-page pass, then the global pass, then prefixes
// the header. The embedded payload receives the global pass up front in its
// JSON-escaped form.
func renderPage(st *State, page config.PageConfig, base *substitute.Table) ([]byte, error) {
	path := shellPath(st, page.Shell)
	// #nosec G304 -- shell paths come from the build configuration.
	shell, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFoundError("page shell not found").WithContext("page", page.Name).WithContext("path", path).Build()
		}
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "read page shell").WithContext("path", path).Build()
	}

	data, err := st.Generated.GlobalData(page.Data)
	if err != nil {
		return nil, err
	}
	payload, err := compiler.GlobalDataInsert(data, st.GlobalJSON)
	if err != nil {
		return nil, err
	}
	table := base.Clone()
	if err := table.Add(compiler.TokenGlobalData, payload); err != nil {
		return nil, err
	}
	if st.Config.StrictPlaceholders {
		if err := table.CheckOverlaps(); err != nil {
			return nil, err
		}
	}

	out := st.Global.Apply(table.Apply(string(shell)))
	if err := checkUnresolved(st, page.Name, out); err != nil {
		return nil, err
	}
	return st.Header().Prefix(assets.KindHTML, []byte(out)), nil
}

func checkUnresolved(st *State, page, out string) error {
	tokens := substitute.Unresolved(out)
	if len(tokens) == 0 {
		return nil
	}
	if st.Config.StrictPlaceholders {
		return errors.ConfigError("unresolved placeholder in page").
			WithContext("page", page).
			WithContext("token", tokens[0]).
			Build()
	}
	slog.Warn("Unresolved placeholders left in page",
		logfields.BuildID(st.BuildID), logfields.Page(page),
		logfields.Count(len(tokens)), slog.String("tokens", strings.Join(tokens, " ")))
	return nil
}
