package build

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/pagegen/internal/assets"
	"git.home.luguber.info/inful/pagegen/internal/config"
	"git.home.luguber.info/inful/pagegen/internal/foundation/errors"
	"git.home.luguber.info/inful/pagegen/internal/metrics"
	pgtest "git.home.luguber.info/inful/pagegen/internal/testing"
)

const header = "<!--\n  Copyright test\n  Commit: abc1234\n-->\n\n"

func run(t *testing.T, cfg *config.Config, opts BuildOptions) (*BuildResult, error) {
	t.Helper()
	return NewBuildService().Run(context.Background(), BuildRequest{Config: cfg, Options: opts})
}

func TestBuildService_WritesSite(t *testing.T) {
	cfg := pgtest.NewSiteBuilder(t).Build()

	result, err := run(t, cfg, BuildOptions{})
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, BuildStatusSuccess, result.Status)
	assert.True(t, result.Status.IsSuccess())
	assert.Equal(t, "abc1234", result.Revision)
	assert.Equal(t, "production", result.Profile)
	assert.Equal(t, cfg.OutputDir(), result.OutputPath)
	assert.NotEmpty(t, result.BuildID)
	assert.Equal(t, 1, result.Tools)
	assert.Equal(t, 2, result.Pages)
	assert.Equal(t, []string{
		"index.html",
		"ldtools/index.html",
		"main-abc1234.js",
		"robots.txt",
		"style-abc1234.css",
	}, result.Written)
	for _, stage := range []StageName{StageResolveRevision, StageLoadContent, StageCompile, StageFragments, StageAssets, StagePages, StageWrite} {
		assert.Contains(t, result.StageDurations, stage)
	}

	fa := pgtest.NewFileAssertions(t, result.OutputPath)
	fa.AssertFileHasPrefix("index.html", header).
		AssertFileContains("index.html", `<img src="https://cdn.jsdelivr.net/gh/stackinspector/ldtstore-assert@latest/logo.png">`).
		AssertFileContains("index.html", `<p>note</p>`).
		AssertFileContains("index.html", `<script id="global-data" type="application/json">{"page_type":"home"}</script>`).
		AssertFileContains("index.html", `id="side-news"`).
		AssertFileContains("ldtools/index.html", `"page_type":"tool"`).
		AssertFileContains("ldtools/index.html", `<span class="text">legacy</span>`).
		AssertFileContains("ldtools/index.html", `<style>body{background:url(https://cdn.jsdelivr.net/gh/stackinspector/ldtstore-assert@latest/bg.webp)}`).
		AssertFileHasPrefix("style-abc1234.css", "/*\n  Copyright test\n  Commit: abc1234\n*/\n\n").
		AssertFileHasPrefix("main-abc1234.js", "/*\n  Copyright test\n")

	index := fa.GetFileContent("index.html")
	assert.NotContains(t, index, "<!--{{")
	assert.NotContains(t, index, "{{ASSERT}}")

	assert.Equal(t, "main-abc1234.js", fa.FindFile("main-*.js"))
	style := fa.GetFileContent(fa.FindFile("*.css"))
	assert.Contains(t, index, `<link rel="stylesheet" href="/style-abc1234.css" integrity="`+assets.Integrity([]byte(style))+`" crossorigin="anonymous">`)

	assert.Equal(t, config.DefaultRobots, fa.GetFileContent("robots.txt"))
}

func TestBuildService_DevProfile(t *testing.T) {
	cfg := pgtest.NewSiteBuilder(t).Build()

	result, err := run(t, cfg, BuildOptions{Profile: "dev"})
	require.NoError(t, err)
	assert.Equal(t, "dev", result.Profile)
	pgtest.NewFileAssertions(t, result.OutputPath).
		AssertFileContains("index.html", `<img src="/assert/logo.png">`)
}

func TestBuildService_GlobalPassReachesEmbeddedNotices(t *testing.T) {
	cfg := pgtest.NewSiteBuilder(t).
		WithFile("tool/tools.yml", "- name: dev\n  title: Dev\n  cross_notice: Also in dev\n  list:\n"+
			"    - name: foo\n      title: Foo\n      category: [editors]\n"+
			"- name: ops\n  title: Ops\n  list:\n"+
			"    - name: bar\n      title: Bar\n      description: the bar tool\n"+
			"      cross_notice: {dev: 'see <a blank href=\"{{MIRROR}}bar\">bar</a> & more'}\n").
		Build()

	result, err := run(t, cfg, BuildOptions{Profile: "dev"})
	require.NoError(t, err)

	page := pgtest.NewFileAssertions(t, result.OutputPath).GetFileContent("ldtools/index.html")
	const open = `<script id="global-data" type="application/json">`
	start := strings.Index(page, open)
	require.GreaterOrEqual(t, start, 0)
	payload := page[start+len(open):]
	payload = payload[:strings.Index(payload, "</script>")]

	assert.NotContains(t, payload, `\u003c`)
	assert.NotContains(t, payload, "<a blank ")
	assert.Contains(t, payload, `<a target=\"_blank\" href=\"/mirror/bar\">`)

	var decoded struct {
		Tool struct {
			Cross map[string]map[string]string `json:"cross"`
		} `json:"tool"`
	}
	require.NoError(t, json.Unmarshal([]byte(payload), &decoded))
	assert.Equal(t, `<b>Also in dev</b><br>see <a target="_blank" href="/mirror/bar">bar</a> & more`, decoded.Tool.Cross["dev"]["bar"])
}

func TestBuildService_RefusesExistingOutput(t *testing.T) {
	cfg := pgtest.NewSiteBuilder(t).Build()

	first, err := run(t, cfg, BuildOptions{})
	require.NoError(t, err)

	// A new revision changes every asset name, so no single write would
	// collide. The destination must still be refused before anything lands.
	t.Setenv(config.EnvRevision, "def5678")
	result, err := run(t, cfg, BuildOptions{})
	require.Error(t, err)
	assert.Equal(t, BuildStatusFailed, result.Status)
	assert.True(t, errors.HasCategory(err, errors.CategoryAlreadyExists))

	var se *StageError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, StageWrite, se.Stage)
	assert.Equal(t, StageErrorFatal, se.Kind)

	fa := pgtest.NewFileAssertions(t, cfg.OutputDir())
	fa.AssertFileNotExists("style-def5678.css").
		AssertFileNotExists("main-def5678.js").
		AssertFileHasPrefix("index.html", header)
	entries, err := os.ReadDir(cfg.OutputDir())
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{"index.html", "ldtools", "main-abc1234.js", "robots.txt", "style-abc1234.css"}, names)
	assert.Len(t, first.Written, 5)
}

func TestBuildService_OutputDirOverride(t *testing.T) {
	cfg := pgtest.NewSiteBuilder(t).Build()
	out := filepath.Join(t.TempDir(), "site")

	result, err := NewBuildService().Run(context.Background(), BuildRequest{Config: cfg, OutputDir: out})
	require.NoError(t, err)
	assert.Equal(t, out, result.OutputPath)
	pgtest.NewFileAssertions(t, out).AssertFileExists("index.html")
	pgtest.NewFileAssertions(t, cfg.Root).AssertFileNotExists("dist")
}

func TestBuildService_DryRunWritesNothing(t *testing.T) {
	cfg := pgtest.NewSiteBuilder(t).Build()

	result, err := run(t, cfg, BuildOptions{DryRun: true})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Pages)
	assert.Empty(t, result.Written)
	assert.NotContains(t, result.StageDurations, StageWrite)
	_, statErr := os.Stat(cfg.OutputDir())
	assert.True(t, os.IsNotExist(statErr))
}

func TestBuildService_CheckOnly(t *testing.T) {
	// Shells and assets are not read in check mode.
	cfg := pgtest.NewSiteBuilder(t).WithoutFile("shell/index.html").WithoutFile("shell/style.css").Build()

	result, err := run(t, cfg, BuildOptions{CheckOnly: true})
	require.NoError(t, err)
	assert.Equal(t, BuildStatusSuccess, result.Status)
	assert.Equal(t, 1, result.Tools)
	assert.Empty(t, result.Revision)
	assert.NotContains(t, result.StageDurations, StageAssets)
}

func TestBuildService_Failures(t *testing.T) {
	tests := []struct {
		name     string
		site     func(*pgtest.SiteBuilder)
		opts     BuildOptions
		category errors.ErrorCategory
		stage    StageName
	}{
		{
			name:     "missing content document",
			site:     func(sb *pgtest.SiteBuilder) { sb.WithoutFile("content/legacy/buttons.yml") },
			category: errors.CategoryNotFound,
			stage:    StageLoadContent,
		},
		{
			name: "undeclared category",
			site: func(sb *pgtest.SiteBuilder) {
				sb.WithFile("content/tool/tools.yml", "- list:\n    - {name: foo, title: Foo, category: [nope]}\n")
			},
			category: errors.CategoryConfig,
			stage:    StageCompile,
		},
		{
			name:     "missing shell",
			site:     func(sb *pgtest.SiteBuilder) { sb.WithoutFile("shell/ldtools/index.html") },
			category: errors.CategoryNotFound,
			stage:    StagePages,
		},
		{
			name:     "missing asset source",
			site:     func(sb *pgtest.SiteBuilder) { sb.WithoutFile("shell/main.ts") },
			category: errors.CategoryNotFound,
			stage:    StageAssets,
		},
		{
			name: "strict unresolved placeholder",
			site: func(sb *pgtest.SiteBuilder) {
				sb.WithFile("shell/index.html", "<!--{{fragment:missing.html}}-->").
					WithConfig("minifier: {mode: none}\nrevision: {override: abc1234}\nstrict_placeholders: true\n")
			},
			category: errors.CategoryConfig,
			stage:    StagePages,
		},
		{
			name: "strict fragment expanding to another placeholder",
			site: func(sb *pgtest.SiteBuilder) {
				sb.WithFile("fragments/note.html", "<div><!--{{codegen-home-major}}--></div>").
					WithConfig("minifier: {mode: none}\nrevision: {override: abc1234}\nstrict_placeholders: true\n")
			},
			category: errors.CategoryConfig,
			stage:    StagePages,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sb := pgtest.NewSiteBuilder(t)
			tt.site(sb)
			cfg := sb.Build()

			result, err := run(t, cfg, tt.opts)
			require.Error(t, err)
			assert.Equal(t, BuildStatusFailed, result.Status)
			assert.True(t, errors.HasCategory(err, tt.category), "got %v", err)

			var se *StageError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, tt.stage, se.Stage)
		})
	}
}

func TestBuildService_StrictRejectsNestedPlaceholder(t *testing.T) {
	cfg := pgtest.NewSiteBuilder(t).
		WithFile("fragments/note.html", "<div><!--{{codegen-home-major}}--></div>").
		WithConfig("minifier: {mode: none}\nrevision: {override: abc1234}\nstrict_placeholders: true\n").
		Build()

	_, err := run(t, cfg, BuildOptions{})
	require.Error(t, err)
	ce, ok := errors.AsClassified(err)
	require.True(t, ok)
	pattern, _ := ce.Context().GetString("pattern")
	contains, _ := ce.Context().GetString("contains")
	assert.Equal(t, "<!--{{fragment:note.html}}-->", pattern)
	assert.Equal(t, "<!--{{codegen-home-major}}-->", contains)
	_, statErr := os.Stat(cfg.OutputDir())
	assert.True(t, os.IsNotExist(statErr))
}

func TestBuildService_UnresolvedPlaceholderWarnsByDefault(t *testing.T) {
	cfg := pgtest.NewSiteBuilder(t).WithFile("shell/index.html", "<p><!--{{fragment:missing.html}}--></p>").Build()

	result, err := run(t, cfg, BuildOptions{})
	require.NoError(t, err)
	pgtest.NewFileAssertions(t, result.OutputPath).
		AssertFileContains("index.html", "<!--{{fragment:missing.html}}-->")
}

func TestBuildService_UnknownProfile(t *testing.T) {
	cfg := pgtest.NewSiteBuilder(t).Build()

	result, err := run(t, cfg, BuildOptions{Profile: "staging"})
	require.Error(t, err)
	assert.Equal(t, BuildStatusFailed, result.Status)
	assert.True(t, errors.HasCategory(err, errors.CategoryConfig))
}

func TestBuildService_NilConfig(t *testing.T) {
	result, err := NewBuildService().Run(context.Background(), BuildRequest{})
	require.Error(t, err)
	assert.Equal(t, BuildStatusFailed, result.Status)
}

func TestBuildService_Cancelled(t *testing.T) {
	cfg := pgtest.NewSiteBuilder(t).Build()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := NewBuildService().Run(ctx, BuildRequest{Config: cfg})
	require.Error(t, err)
	assert.Equal(t, BuildStatusCancelled, result.Status)
	assert.ErrorIs(t, err, context.Canceled)
}

type fakeMinifier struct{}

func (fakeMinifier) Minify(_ context.Context, path string, kind assets.Kind) ([]byte, error) {
	return []byte("/*min " + string(kind) + "*/{{MIRROR}}" + filepath.Base(path)), nil
}

func TestBuildService_MinifierFactory(t *testing.T) {
	cfg := pgtest.NewSiteBuilder(t).Build()
	var gotMode assets.Mode

	svc := NewBuildService().WithMinifierFactory(func(mode assets.Mode, _ string) (assets.Minifier, error) {
		gotMode = mode
		return fakeMinifier{}, nil
	})
	result, err := svc.Run(context.Background(), BuildRequest{Config: cfg})
	require.NoError(t, err)
	assert.Equal(t, assets.ModeNone, gotMode)

	// The global pass runs over minifier output.
	pgtest.NewFileAssertions(t, result.OutputPath).
		AssertFileContains("main-abc1234.js", "/*min js*///r.ldt.pc.wiki/mirror/main.ts")
}

type recordingRecorder struct {
	metrics.NoopRecorder
	mu        sync.Mutex
	outcomes  []metrics.BuildOutcomeLabel
	artifacts map[string]int
	stages    map[string]metrics.ResultLabel
}

func newRecordingRecorder() *recordingRecorder {
	return &recordingRecorder{artifacts: map[string]int{}, stages: map[string]metrics.ResultLabel{}}
}

func (r *recordingRecorder) IncBuildOutcome(o metrics.BuildOutcomeLabel) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes = append(r.outcomes, o)
}

func (r *recordingRecorder) IncStageResult(stage string, result metrics.ResultLabel) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stages[stage] = result
}

func (r *recordingRecorder) ObserveArtifact(kind string, _ int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.artifacts[kind]++
}

func TestBuildService_RecordsMetrics(t *testing.T) {
	cfg := pgtest.NewSiteBuilder(t).Build()
	rec := newRecordingRecorder()

	_, err := NewBuildService().WithRecorder(rec).Run(context.Background(), BuildRequest{Config: cfg})
	require.NoError(t, err)
	assert.Equal(t, []metrics.BuildOutcomeLabel{metrics.BuildOutcomeSuccess}, rec.outcomes)
	assert.Equal(t, map[string]int{"html": 2, "css": 1, "js": 1, "txt": 1}, rec.artifacts)
	assert.Equal(t, metrics.ResultSuccess, rec.stages[string(StageWrite)])

	_, err = NewBuildService().WithRecorder(rec).Run(context.Background(), BuildRequest{Config: cfg})
	require.Error(t, err)
	assert.Equal(t, metrics.BuildOutcomeFailed, rec.outcomes[1])
	assert.Equal(t, metrics.ResultFatal, rec.stages[string(StageWrite)])
}

func TestBuildService_FixedClock(t *testing.T) {
	cfg := pgtest.NewSiteBuilder(t).Build()
	start := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	calls := 0
	svc := NewBuildService()
	svc.now = func() time.Time {
		calls++
		return start.Add(time.Duration(calls-1) * time.Second)
	}

	result, err := svc.Run(context.Background(), BuildRequest{Config: cfg, Options: BuildOptions{DryRun: true}})
	require.NoError(t, err)
	assert.Equal(t, start, result.StartTime)
	assert.Equal(t, time.Second, result.Duration)
}
