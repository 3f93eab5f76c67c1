package build

import (
	"context"
	"time"

	"git.home.luguber.info/inful/pagegen/internal/config"
)

// BuildService is the canonical interface for executing page builds.
type BuildService interface {
	// Run executes the build pipeline and returns a result even on failure.
	Run(ctx context.Context, req BuildRequest) (*BuildResult, error)
}

// BuildRequest contains all inputs required to execute a build.
type BuildRequest struct {
	// Config is the loaded configuration for this build.
	Config *config.Config

	// OutputDir overrides the configured output directory when set.
	OutputDir string

	// Options provides optional build behavior modifiers.
	Options BuildOptions
}

// BuildOptions provides optional configuration for build behavior.
type BuildOptions struct {
	// Profile overrides the configured environment profile.
	Profile string

	// DryRun runs every stage except writing output.
	DryRun bool

	// CheckOnly loads, resolves and compiles content and fragments without
	// processing assets or writing.
	CheckOnly bool
}

// BuildResult contains the outcome of a build execution.
type BuildResult struct {
	// Status indicates overall build outcome.
	Status BuildStatus

	// BuildID uniquely identifies this run in logs.
	BuildID string

	// Revision is the content revision identifier used for naming.
	Revision string

	// Profile is the environment profile applied by the global pass.
	Profile string

	// OutputPath is the final output directory.
	OutputPath string

	// Written lists the artifacts created, relative to OutputPath.
	Written []string

	// Tools and Pages count the resolved tools and rendered pages.
	Tools int
	Pages int

	// StageDurations records the wall time of each executed stage.
	StageDurations map[StageName]time.Duration

	// Duration is the total build execution time.
	Duration time.Duration

	// StartTime is when the build started.
	StartTime time.Time

	// EndTime is when the build completed.
	EndTime time.Time
}

// BuildStatus represents the outcome of a build execution.
type BuildStatus string

const (
	// BuildStatusSuccess indicates the build completed successfully.
	BuildStatusSuccess BuildStatus = "success"

	// BuildStatusFailed indicates the build encountered an error.
	BuildStatusFailed BuildStatus = "failed"

	// BuildStatusCancelled indicates the build was cancelled.
	BuildStatusCancelled BuildStatus = "cancelled"
)

// IsSuccess returns true if the build completed successfully.
func (s BuildStatus) IsSuccess() bool {
	return s == BuildStatusSuccess
}
