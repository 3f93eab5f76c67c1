package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/pagegen/internal/assets"
	"git.home.luguber.info/inful/pagegen/internal/foundation/errors"
	"git.home.luguber.info/inful/pagegen/internal/substitute"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	p := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

func TestDefaults(t *testing.T) {
	root := t.TempDir()
	cfg, err := Default(root)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(root, "content"), cfg.ContentDir())
	assert.Equal(t, filepath.Join(root, "dist"), cfg.OutputDir())
	assert.Equal(t, "tool/tools.yml", cfg.Content.Paths.ToolTools)
	require.Len(t, cfg.Pages, 2)
	assert.Equal(t, "ldtools/index.html", cfg.Pages[1].Output)
	assert.Equal(t, assets.ModeProduction, cfg.Minifier.Mode)
	assert.Equal(t, "//r.ldt.pc.wiki", cfg.Links.RedirectBase)
	assert.Equal(t, substitute.ProfileProduction, cfg.Profile)
	assert.Equal(t, 300*time.Millisecond, cfg.DebounceDuration())

	robots, ok := cfg.RobotsTxt()
	require.True(t, ok)
	assert.Equal(t, DefaultRobots, robots)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvProfile, "")
	t.Setenv("PAGEGEN_TEST_CDN", "https://cdn.example")
	path := writeConfig(t, dir, `
content:
  dir: src
pages:
  - name: landing
    shell: landing.html
    data: home
assets:
  sources:
    - source: app.ts
minifier:
  mode: dev
profiles:
  staging:
    asset_base: ${PAGEGEN_TEST_CDN}
    mirror_base: /m/
profile: staging
robots: ""
copyright:
  - Copyright Example.
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.Root)
	assert.Equal(t, filepath.Join(dir, "src"), cfg.ContentDir())
	assert.Equal(t, "landing.html", cfg.Pages[0].Output)
	assert.Equal(t, []AssetSource{{Source: "app.ts"}}, cfg.Assets.Sources)
	assert.Equal(t, assets.ModeDev, cfg.Minifier.Mode)
	assert.Equal(t, []string{"Copyright Example."}, cfg.Copyright)

	_, ok := cfg.RobotsTxt()
	assert.False(t, ok)

	p, err := cfg.ResolveProfile("")
	require.NoError(t, err)
	assert.Equal(t, substitute.Profile{Name: "staging", AssetBase: "https://cdn.example", MirrorBase: "/m/"}, p)
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), FileName))
	assert.True(t, errors.HasCategory(err, errors.CategoryNotFound))
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("PAGEGEN_TEST_OUT=from-env\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env.local"), []byte("PAGEGEN_TEST_OUT=from-local\n"), 0o600))
	t.Setenv("PAGEGEN_TEST_OUT", "")
	require.NoError(t, os.Unsetenv("PAGEGEN_TEST_OUT"))

	cfg, err := Load(writeConfig(t, dir, "output:\n  dir: ${PAGEGEN_TEST_OUT}\n"))
	require.NoError(t, err)
	assert.Equal(t, "from-local", cfg.Output.Dir)
}

func TestValidation(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		key  string
	}{
		{"duplicate page", "pages:\n  - {name: a, shell: a.html}\n  - {name: a, shell: b.html}\n", "page"},
		{"duplicate output", "pages:\n  - {name: a, shell: a.html}\n  - {name: b, shell: a.html}\n", "output"},
		{"escaping output", "pages:\n  - {name: a, shell: a.html, output: ../a.html}\n", "output"},
		{"unknown data", "pages:\n  - {name: a, shell: a.html, data: blog}\n", "data"},
		{"unknown mode", "minifier:\n  mode: turbo\n", "mode"},
		{"duplicate asset", "assets:\n  sources:\n    - {name: x, source: a.css}\n    - {name: x, source: b.css}\n", "asset"},
		{"custom profile without base", "profiles:\n  qa:\n    mirror_base: /m/\n", "profile"},
		{"bad debounce", "preview:\n  debounce: soon\n", "debounce"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml), t.TempDir())
			require.Error(t, err)
			ce, ok := errors.AsClassified(err)
			require.True(t, ok)
			assert.Equal(t, errors.CategoryConfig, ce.Category())
			_, has := ce.Context().Get(tt.key)
			assert.True(t, has, "missing context key %q in %v", tt.key, err)
		})
	}
}

func TestProfileSelection(t *testing.T) {
	t.Setenv(EnvProfile, "")
	cfg, err := Parse([]byte("profile: dev\nprofiles:\n  dev:\n    mirror_base: /local-mirror/\n"), t.TempDir())
	require.NoError(t, err)

	p, err := cfg.ResolveProfile("")
	require.NoError(t, err)
	assert.Equal(t, "/assert", p.AssetBase, "built-in value kept")
	assert.Equal(t, "/local-mirror/", p.MirrorBase)

	t.Setenv(EnvProfile, substitute.ProfileProduction)
	assert.Equal(t, substitute.ProfileProduction, cfg.ProfileName(""))
	assert.Equal(t, "dev", cfg.ProfileName("dev"), "flag wins over environment")

	_, err = cfg.ResolveProfile("nightly")
	assert.True(t, errors.HasCategory(err, errors.CategoryConfig))
}

func TestRevisionOverride(t *testing.T) {
	cfg, err := Parse([]byte("revision:\n  override: fromfile\n"), t.TempDir())
	require.NoError(t, err)
	t.Setenv(EnvRevision, "")
	assert.Equal(t, "fromfile", cfg.RevisionOverride())
	t.Setenv(EnvRevision, "fromenv")
	assert.Equal(t, "fromenv", cfg.RevisionOverride())
}

func TestCompilerOptions(t *testing.T) {
	cfg, err := Parse([]byte("links:\n  redirect_base: //r.example\n"), t.TempDir())
	require.NoError(t, err)
	opts := cfg.CompilerOptions()
	assert.Equal(t, "//r.example", opts.RedirectBase)
	assert.Equal(t, "pc.wiki", opts.SubdomainRoot)
}
