package assets

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/pagegen/internal/foundation/errors"
	"git.home.luguber.info/inful/pagegen/internal/logfields"
	"git.home.luguber.info/inful/pagegen/internal/substitute"
)

// Source declares one asset to build.
type Source struct {
	// Name is the token name and the stem of the emitted file.
	Name string
	// Path is the entry file handed to the minifier.
	Path string
}

// Processor runs sources through the asset pipeline.
type Processor struct {
	Minifier Minifier
	Global   *substitute.Table
	Header   Header
	// BaseURL prefixes emitted file names in link tags.
	BaseURL string
}

// Process builds one asset.
func (p *Processor) Process(ctx context.Context, src Source) (*Asset, error) {
	kind, ok := KindOf(src.Path)
	if !ok || (kind != KindCSS && kind != KindJS) {
		return nil, errors.ConfigError("asset source must be CSS, JS or TS").
			WithContext("asset", src.Name).
			WithContext("path", src.Path).
			Build()
	}
	name := src.Name
	if name == "" {
		base := filepath.Base(src.Path)
		name = strings.TrimSuffix(base, filepath.Ext(base))
	}

	minified, err := p.Minifier.Minify(ctx, src.Path, kind)
	if err != nil {
		return nil, err
	}
	body := minified
	if p.Global != nil {
		body = p.Global.ApplyBytes(minified)
	}
	content := p.Header.Prefix(kind, body)
	fileName := HashedName(name, p.Header.Revision, kind)

	a := &Asset{
		Name:      name,
		Kind:      kind,
		FileName:  fileName,
		URL:       p.url(fileName),
		Integrity: Integrity(content),
		Content:   content,
		Body:      body,
	}
	slog.Debug("Processed asset", logfields.Asset(name), logfields.Path(fileName), logfields.Bytes(len(content)))
	return a, nil
}

// ProcessAll builds sources in order and rejects duplicate names.
func (p *Processor) ProcessAll(ctx context.Context, sources []Source) ([]*Asset, error) {
	out := make([]*Asset, 0, len(sources))
	seen := make(map[string]bool, len(sources))
	for _, src := range sources {
		a, err := p.Process(ctx, src)
		if err != nil {
			return nil, err
		}
		if seen[a.Name] {
			return nil, errors.ConfigError("duplicate asset name").WithContext("asset", a.Name).Build()
		}
		seen[a.Name] = true
		out = append(out, a)
	}
	return out, nil
}

func (p *Processor) url(fileName string) string {
	base := p.BaseURL
	if base == "" {
		base = "/"
	}
	if strings.HasSuffix(base, "/") {
		return base + fileName
	}
	return base + "/" + fileName
}

// Inserts returns the link and inline tokens of every asset.
func Inserts(assets []*Asset) (*substitute.Table, error) {
	t := substitute.NewTable()
	for _, a := range assets {
		if err := t.Add(LinkToken(a.Name), a.LinkTag().Render()); err != nil {
			return nil, err
		}
		if err := t.Add(InlineToken(a.Name), a.InlineTag().Render()); err != nil {
			return nil, err
		}
	}
	return t, nil
}
