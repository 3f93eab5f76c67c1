package build

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/pagegen/internal/assets"
	ferrors "git.home.luguber.info/inful/pagegen/internal/foundation/errors"
	"git.home.luguber.info/inful/pagegen/internal/logfields"
	"git.home.luguber.info/inful/pagegen/internal/metrics"
)

// MinifierFactory creates the minifier for a build.
type MinifierFactory func(mode assets.Mode, binary string) (assets.Minifier, error)

// DefaultBuildService is the standard implementation of BuildService.
// It orchestrates the full pipeline: revision -> content -> compile ->
// fragments -> assets -> pages -> write.
type DefaultBuildService struct {
	minifierFactory MinifierFactory
	recorder        metrics.Recorder
	now             func() time.Time
}

// NewBuildService creates a new DefaultBuildService with default factories.
func NewBuildService() *DefaultBuildService {
	return &DefaultBuildService{
		minifierFactory: assets.NewMinifier,
		recorder:        metrics.NoopRecorder{},
		now:             time.Now,
	}
}

// WithMinifierFactory allows injecting a custom minifier (for testing).
func (s *DefaultBuildService) WithMinifierFactory(factory MinifierFactory) *DefaultBuildService {
	s.minifierFactory = factory
	return s
}

// WithRecorder sets the metrics recorder.
func (s *DefaultBuildService) WithRecorder(recorder metrics.Recorder) *DefaultBuildService {
	if recorder == nil {
		recorder = metrics.NoopRecorder{}
	}
	s.recorder = recorder
	return s
}

// Run executes the complete build pipeline.
func (s *DefaultBuildService) Run(ctx context.Context, req BuildRequest) (*BuildResult, error) {
	startTime := s.now()
	result := &BuildResult{
		StartTime:      startTime,
		BuildID:        uuid.NewString(),
		StageDurations: map[StageName]time.Duration{},
	}

	if req.Config == nil {
		return s.finish(result, ferrors.ConfigError("config required").Build())
	}

	st, err := s.newState(req, result)
	if err != nil {
		return s.finish(result, err)
	}
	result.OutputPath = st.OutputDir
	result.Profile = st.Profile.Name

	slog.Info("Build started",
		logfields.BuildID(st.BuildID),
		logfields.Profile(st.Profile.Name),
		logfields.Path(st.OutputDir),
		slog.Bool("check_only", req.Options.CheckOnly),
		slog.Bool("dry_run", req.Options.DryRun))

	err = runStages(ctx, st, pipeline(req.Options), s.recorder)
	result.Revision = st.Revision
	result.Written = st.Written
	result.Pages = len(st.Pages)
	if st.Generated != nil {
		result.Tools = st.Generated.Catalog.Tools.Len()
	}
	return s.finish(result, err)
}

func (s *DefaultBuildService) newState(req BuildRequest, result *BuildResult) (*State, error) {
	cfg := req.Config
	profile, err := cfg.ResolveProfile(req.Options.Profile)
	if err != nil {
		return nil, err
	}
	global, err := profile.Global()
	if err != nil {
		return nil, err
	}
	globalJSON, err := global.JSONEscaped()
	if err != nil {
		return nil, err
	}

	mode, binary := cfg.Minifier.Mode, cfg.Minifier.Binary
	if req.Options.CheckOnly {
		mode = assets.ModeNone
	}
	minifier, err := s.minifierFactory(mode, binary)
	if err != nil {
		return nil, err
	}

	outDir := req.OutputDir
	if outDir == "" {
		outDir = cfg.OutputDir()
	}
	return &State{
		Config:         cfg,
		Options:        req.Options,
		BuildID:        result.BuildID,
		OutputDir:      outDir,
		Profile:        profile,
		Global:         global,
		GlobalJSON:     globalJSON,
		Minifier:       minifier,
		StageDurations: result.StageDurations,
		recorder:       s.recorder,
	}, nil
}

func (s *DefaultBuildService) finish(result *BuildResult, err error) (*BuildResult, error) {
	result.EndTime = s.now()
	result.Duration = result.EndTime.Sub(result.StartTime)

	var se *StageError
	switch {
	case err == nil:
		result.Status = BuildStatusSuccess
		s.recorder.IncBuildOutcome(metrics.BuildOutcomeSuccess)
		s.recorder.ObserveBuildDuration(result.Duration)
		slog.Info("Build completed",
			logfields.BuildID(result.BuildID),
			logfields.Revision(result.Revision),
			logfields.Count(len(result.Written)),
			logfields.DurationMS(float64(result.Duration.Milliseconds())))
		return result, nil
	case errors.As(err, &se) && se.Kind == StageErrorCanceled:
		result.Status = BuildStatusCancelled
		s.recorder.IncBuildOutcome(metrics.BuildOutcomeCanceled)
		slog.Warn("Build cancelled", logfields.BuildID(result.BuildID), logfields.Stage(string(se.Stage)))
	default:
		result.Status = BuildStatusFailed
		s.recorder.IncBuildOutcome(metrics.BuildOutcomeFailed)
		slog.Error("Build failed", logfields.BuildID(result.BuildID), logfields.Error(err))
	}
	return result, err
}

// Compile-time check that DefaultBuildService implements BuildService.
var _ BuildService = (*DefaultBuildService)(nil)
