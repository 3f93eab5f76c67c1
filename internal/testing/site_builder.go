package testing

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"git.home.luguber.info/inful/pagegen/internal/config"
)

// Default fixture documents. The tool major area carries the three middle
// blocks and nine third-block tiles the compiler requires.
var defaultContent = map[string]string{
	"public/sides.yml": "- name: about\n  title: About\n  text: hello\n",
	"home/major.yml":   "- - {name: home, action: none, tile: s, title: Home}\n",
	"home/sides.yml":   "- name: news\n  title: News\n  text: fresh\n",
	"tool/major.yml":   toolMajor(),
	"tool/sides.yml":   "[]\n",
	"tool/tools.yml": "- name: dev\n  title: Dev\n  list:\n" +
		"    - name: foo\n      title: Foo\n      description: the foo tool\n      category: [editors]\n",
	"tool/category.yml": "tool:\n  title: Tools\n  content:\n    - title: All\n      content:\n" +
		"        - {name: editors, title: Editors, action: category, tile: s}\n" +
		"link:\n  title: Links\n  content: []\n",
	"legacy/buttons.yml": "- {type: text, text: legacy}\n",
}

func toolMajor() string {
	var b strings.Builder
	b.WriteString("left: []\nmiddle:\n  - title: one\n    content: []\n  - title: two\n    content: []\n  - title: three\n    content:\n")
	for range 9 {
		b.WriteString("      - {name: t, action: none, tile: s}\n")
	}
	return b.String()
}

// Default page shells reference every generated token kind.
var defaultShells = map[string]string{
	"index.html": "<html><head><!--{{asset:style}}--><!--{{codegen-global-data}}--></head>" +
		"<body><img src=\"{{ASSERT}}/logo.png\"><!--{{codegen-home-major}}--><!--{{codegen-home-fragments}}-->" +
		"<!--{{fragment:note.html}}--><!--{{asset:main}}--></body></html>\n",
	"ldtools/index.html": "<html><head><!--{{inline:style}}--><!--{{codegen-global-data}}--></head>" +
		"<body><!--{{codegen-tool-fragments}}--><!--{{codegen-tool-plain}}--><!--{{codegen-legacy-buttons}}--></body></html>\n",
	"style.css": "body{background:url({{ASSERT}}/bg.webp)}\n",
	"main.ts":   "console.log(\"main\")\n",
}

// SiteBuilder writes a complete source tree into a temporary directory.
type SiteBuilder struct {
	t     *testing.T
	root  string
	files map[string]string
	yaml  string
}

// NewSiteBuilder returns a builder seeded with a minimal valid site. The
// configuration disables the external minifier and pins the revision.
func NewSiteBuilder(t *testing.T) *SiteBuilder {
	t.Helper()
	sb := &SiteBuilder{
		t:     t,
		root:  t.TempDir(),
		files: map[string]string{},
		yaml:  "minifier:\n  mode: none\nrevision:\n  override: abc1234\ncopyright:\n  - Copyright test\n",
	}
	for rel, body := range defaultContent {
		sb.files[filepath.Join("content", rel)] = body
	}
	for rel, body := range defaultShells {
		sb.files[filepath.Join("shell", rel)] = body
	}
	sb.files[filepath.Join("fragments", "note.html")] = "<p>note</p>"
	return sb
}

// WithFile sets or replaces a file relative to the site root.
func (sb *SiteBuilder) WithFile(rel, body string) *SiteBuilder {
	sb.files[filepath.FromSlash(rel)] = body
	return sb
}

// WithoutFile removes a seeded file.
func (sb *SiteBuilder) WithoutFile(rel string) *SiteBuilder {
	delete(sb.files, filepath.FromSlash(rel))
	return sb
}

// WithConfig replaces the configuration document.
func (sb *SiteBuilder) WithConfig(yaml string) *SiteBuilder {
	sb.yaml = yaml
	return sb
}

// Root returns the site directory.
func (sb *SiteBuilder) Root() string { return sb.root }

// ConfigPath returns the path of the written configuration file.
func (sb *SiteBuilder) ConfigPath() string { return filepath.Join(sb.root, config.FileName) }

// Write materializes the tree and returns the site root.
func (sb *SiteBuilder) Write() string {
	sb.t.Helper()
	for rel, body := range sb.files {
		writeFile(sb.t, filepath.Join(sb.root, rel), body)
	}
	writeFile(sb.t, sb.ConfigPath(), sb.yaml)
	return sb.root
}

// Build writes the tree and loads its configuration.
func (sb *SiteBuilder) Build() *config.Config {
	sb.t.Helper()
	sb.t.Setenv(config.EnvProfile, "")
	sb.t.Setenv(config.EnvRevision, "")
	sb.Write()
	cfg, err := config.Load(sb.ConfigPath())
	if err != nil {
		sb.t.Fatalf("load fixture config: %v", err)
	}
	return cfg
}

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), testDirPermissions); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(body), testFilePermissions); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
