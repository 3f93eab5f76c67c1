// Package fragments loads static HTML snippets that pages splice in by
// relative path.
package fragments

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/renderer/html"

	"git.home.luguber.info/inful/pagegen/internal/assets"
	"git.home.luguber.info/inful/pagegen/internal/foundation/errors"
	"git.home.luguber.info/inful/pagegen/internal/logfields"
	"git.home.luguber.info/inful/pagegen/internal/node"
	"git.home.luguber.info/inful/pagegen/internal/substitute"
)

// DefaultInclude matches every supported fragment type.
var DefaultInclude = []string{"**/*.{html,md,css,js,ts}"}

// Token is the insert token for the fragment at rel.
func Token(rel string) string { return "<!--{{fragment:" + rel + "}}-->" }

// Fragment is a rendered snippet keyed by its slash-separated relative path.
type Fragment struct {
	Name string
	HTML string
}

// Loader discovers and renders fragments under Dir.
type Loader struct {
	Dir      string
	Include  []string
	Exclude  []string
	Minifier assets.Minifier
}

// Discover returns the sorted relative paths matched by Include and not by
// Exclude.
func (l *Loader) Discover() ([]string, error) {
	include := l.Include
	if len(include) == 0 {
		include = DefaultInclude
	}
	if _, err := os.Stat(l.Dir); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFoundError("fragments directory not found").WithContext("path", l.Dir).Build()
		}
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "stat fragments directory").WithContext("path", l.Dir).Build()
	}

	fsys := os.DirFS(l.Dir)
	seen := make(map[string]bool)
	var out []string
	for _, pattern := range include {
		if !doublestar.ValidatePattern(pattern) {
			return nil, errors.ConfigError("invalid fragment pattern").WithContext("pattern", pattern).Build()
		}
		matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, errors.WrapError(err, errors.CategoryFileSystem, "glob fragments").WithContext("pattern", pattern).Build()
		}
		for _, m := range matches {
			if seen[m] || l.excluded(m) {
				continue
			}
			seen[m] = true
			out = append(out, m)
		}
	}
	slices.Sort(out)
	return out, nil
}

func (l *Loader) excluded(rel string) bool {
	for _, pattern := range l.Exclude {
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return true
		}
		if ok, err := doublestar.Match(pattern, path.Base(rel)); err == nil && ok {
			return true
		}
	}
	return false
}

// Load discovers and renders every fragment.
func (l *Loader) Load(ctx context.Context) ([]Fragment, error) {
	names, err := l.Discover()
	if err != nil {
		return nil, err
	}
	out := make([]Fragment, 0, len(names))
	for _, name := range names {
		f, err := l.render(ctx, name)
		if err != nil {
			return nil, err
		}
		slog.Debug("Loaded fragment", logfields.Fragment(name), logfields.Bytes(len(f.HTML)))
		out = append(out, f)
	}
	return out, nil
}

func (l *Loader) render(ctx context.Context, rel string) (Fragment, error) {
	full := filepath.Join(l.Dir, filepath.FromSlash(rel))
	ext := strings.ToLower(path.Ext(rel))

	if ext == ".js" || ext == ".ts" {
		minifier := l.Minifier
		if minifier == nil {
			minifier = assets.Passthrough{}
		}
		js, err := minifier.Minify(ctx, full, assets.KindJS)
		if err != nil {
			return Fragment{}, err
		}
		return Fragment{Name: rel, HTML: node.El(node.TagScript, nil, node.Raw(string(js))).Render()}, nil
	}

	// #nosec G304 -- rel was discovered under l.Dir.
	b, err := os.ReadFile(full)
	if err != nil {
		return Fragment{}, errors.WrapError(err, errors.CategoryFileSystem, "read fragment").WithContext("path", full).Build()
	}
	switch ext {
	case ".html", ".htm":
		return Fragment{Name: rel, HTML: string(b)}, nil
	case ".md":
		rendered, err := RenderMarkdown(b)
		if err != nil {
			return Fragment{}, errors.WrapError(err, errors.CategoryValidation, "render markdown fragment").WithContext("path", full).Build()
		}
		return Fragment{Name: rel, HTML: rendered}, nil
	case ".css":
		return Fragment{Name: rel, HTML: node.El(node.TagStyle, nil, node.Raw(string(b))).Render()}, nil
	default:
		return Fragment{}, errors.ConfigError("unsupported fragment type").WithContext("path", rel).Build()
	}
}

// RenderMarkdown converts Markdown to HTML. Inline HTML passes through.
func RenderMarkdown(src []byte) (string, error) {
	md := goldmark.New(goldmark.WithRendererOptions(html.WithUnsafe()))
	var buf bytes.Buffer
	if err := md.Convert(src, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Inserts keys each fragment by its token.
func Inserts(frags []Fragment) (*substitute.Table, error) {
	t := substitute.NewTable()
	for _, f := range frags {
		if err := t.Add(Token(f.Name), f.HTML); err != nil {
			return nil, err
		}
	}
	return t, nil
}

