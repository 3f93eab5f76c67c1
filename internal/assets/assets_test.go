package assets

import (
	"context"
	"crypto/sha512"
	"encoding/base64"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/pagegen/internal/foundation/errors"
	"git.home.luguber.info/inful/pagegen/internal/substitute"
)

func writeFile(t *testing.T, dir, name, content string, perm os.FileMode) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), perm))
	return p
}

// fakeESBuild writes a shell script that echoes its arguments and the entry
// file, or fails when fail is set.
func fakeESBuild(t *testing.T, fail bool) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script minifier requires a POSIX shell")
	}
	script := "#!/bin/sh\necho \"/*$**/\"\ncat \"$1\"\n"
	if fail {
		script = "#!/bin/sh\necho \"syntax error\" >&2\nexit 3\n"
	}
	return writeFile(t, t.TempDir(), "esbuild", script, 0o700)
}

func TestIntegrity(t *testing.T) {
	assert.Equal(t, "sha384-OLBgp1GsljhM2TJ+sbHjaiH9txEUvgdDTAzHv2P24donTt6/529l+9Ua0vFImLlb", Integrity(nil))

	data := []byte("body{color:red}")
	sum := sha512.Sum384(data)
	assert.Equal(t, "sha384-"+base64.StdEncoding.EncodeToString(sum[:]), Integrity(data))
	assert.NotEqual(t, Integrity(data), Integrity(append(data, ' ')))
}

func TestHashedName(t *testing.T) {
	assert.Equal(t, "style-abc1234.css", HashedName("style", "abc1234", KindCSS))
	assert.Equal(t, "main-abc1234.js", HashedName("main", "abc1234", KindJS))
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		path string
		want Kind
		ok   bool
	}{
		{"a/style.css", KindCSS, true},
		{"main.ts", KindJS, true},
		{"main.JS", KindJS, true},
		{"index.html", KindHTML, true},
		{"robots.txt", KindText, true},
		{"image.webp", "", false},
	}
	for _, tt := range tests {
		got, ok := KindOf(tt.path)
		assert.Equal(t, tt.ok, ok, tt.path)
		assert.Equal(t, tt.want, got, tt.path)
	}
}

func TestHeaderPrefix(t *testing.T) {
	h := Header{Lines: []string{"Copyright Example. MIT License."}, Revision: "abc1234"}

	css := string(h.Prefix(KindCSS, []byte("a{}")))
	assert.Equal(t, "/*\n  Copyright Example. MIT License.\n  Commit: abc1234\n*/\n\na{}", css)

	html := string(h.Prefix(KindHTML, []byte("<p>")))
	assert.True(t, strings.HasPrefix(html, "<!--\n"))
	assert.True(t, strings.HasSuffix(html, "-->\n\n<p>"))

	assert.Equal(t, "User-agent: *", string(h.Prefix(KindText, []byte("User-agent: *"))))
}

func TestESBuildArgs(t *testing.T) {
	dev := &ESBuild{Binary: "esbuild", Mode: ModeDev}
	assert.Equal(t, []string{"main.ts", "--bundle", "--log-level=warning", "--charset=utf8"}, dev.Args("main.ts", KindJS))

	prod := &ESBuild{Binary: "esbuild", Mode: ModeProduction}
	assert.Equal(t,
		[]string{"main.ts", "--bundle", "--log-level=warning", "--charset=utf8", "--minify", "--target=es2017", "--format=iife"},
		prod.Args("main.ts", KindJS))
	assert.Equal(t,
		[]string{"style.css", "--bundle", "--log-level=warning", "--charset=utf8", "--minify"},
		prod.Args("style.css", KindCSS))
}

func TestNewMinifier(t *testing.T) {
	m, err := NewMinifier(ModeNone, "")
	require.NoError(t, err)
	assert.IsType(t, Passthrough{}, m)

	m, err = NewMinifier(ModeProduction, "")
	require.NoError(t, err)
	assert.Equal(t, &ESBuild{Binary: "esbuild", Mode: ModeProduction}, m)

	_, err = NewMinifier("fast", "")
	require.True(t, errors.HasCategory(err, errors.CategoryConfig))
}

func TestESBuildMinify(t *testing.T) {
	src := writeFile(t, t.TempDir(), "main.js", "run()", 0o600)

	out, err := (&ESBuild{Binary: fakeESBuild(t, false), Mode: ModeProduction}).Minify(context.Background(), src, KindJS)
	require.NoError(t, err)
	assert.Contains(t, string(out), "--minify --target=es2017 --format=iife")
	assert.True(t, strings.HasSuffix(string(out), "run()"))
}

func TestESBuildFailureIsFatal(t *testing.T) {
	src := writeFile(t, t.TempDir(), "main.js", "run(", 0o600)

	_, err := (&ESBuild{Binary: fakeESBuild(t, true), Mode: ModeDev}).Minify(context.Background(), src, KindJS)
	require.Error(t, err)
	ce, ok := errors.AsClassified(err)
	require.True(t, ok)
	assert.Equal(t, errors.CategoryMinifier, ce.Category())
	output, _ := ce.Context().GetString("output")
	assert.Equal(t, "syntax error", output)
}

func TestESBuildMissingSource(t *testing.T) {
	_, err := (&ESBuild{Binary: "esbuild", Mode: ModeDev}).Minify(context.Background(), filepath.Join(t.TempDir(), "nope.js"), KindJS)
	assert.True(t, errors.HasCategory(err, errors.CategoryNotFound))
}

func TestProcessorPipeline(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "style.css", "body{background:url({{ASSERT}}/image/bg.webp)}", 0o600)

	global, err := substitute.Profile{Name: "test", AssetBase: "https://cdn.example", MirrorBase: "/m/"}.Global()
	require.NoError(t, err)
	p := &Processor{
		Minifier: Passthrough{},
		Global:   global,
		Header:   Header{Lines: []string{"Copyright"}, Revision: "abc1234"},
		BaseURL:  "https://static.example",
	}

	a, err := p.Process(context.Background(), Source{Path: src})
	require.NoError(t, err)
	assert.Equal(t, "style", a.Name)
	assert.Equal(t, "style-abc1234.css", a.FileName)
	assert.Equal(t, "https://static.example/style-abc1234.css", a.URL)
	assert.Equal(t, "body{background:url(https://cdn.example/image/bg.webp)}", string(a.Body))
	assert.True(t, strings.HasPrefix(string(a.Content), "/*\n  Copyright\n  Commit: abc1234\n*/\n\n"))
	assert.Equal(t, Integrity(a.Content), a.Integrity)

	assert.Equal(t,
		`<link rel="stylesheet" href="https://static.example/style-abc1234.css" integrity="`+a.Integrity+`" crossorigin="anonymous">`,
		a.LinkTag().Render())
	assert.Equal(t, "<style>"+string(a.Body)+"</style>", a.InlineTag().Render())
}

func TestProcessorRejectsUnknownSource(t *testing.T) {
	p := &Processor{Minifier: Passthrough{}}
	_, err := p.Process(context.Background(), Source{Name: "logo", Path: "logo.webp"})
	assert.True(t, errors.HasCategory(err, errors.CategoryConfig))
}

func TestProcessAllAndInserts(t *testing.T) {
	dir := t.TempDir()
	css := writeFile(t, dir, "style.css", "a{}", 0o600)
	js := writeFile(t, dir, "main.js", "go()", 0o600)
	p := &Processor{Minifier: Passthrough{}, Header: Header{Revision: "r1"}}

	list, err := p.ProcessAll(context.Background(), []Source{{Path: css}, {Path: js}})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "/main-r1.js", list[1].URL)

	table, err := Inserts(list)
	require.NoError(t, err)
	assert.Equal(t, 4, table.Len())
	script, ok := table.Lookup(LinkToken("main"))
	require.True(t, ok)
	assert.Equal(t, `<script src="/main-r1.js" integrity="`+list[1].Integrity+`" crossorigin="anonymous"></script>`, script)
	inline, ok := table.Lookup(InlineToken("main"))
	require.True(t, ok)
	assert.Equal(t, "<script>go()</script>", inline)

	_, err = p.ProcessAll(context.Background(), []Source{{Path: css}, {Name: "style", Path: js}})
	assert.True(t, errors.HasCategory(err, errors.CategoryConfig))
}
