package build

import (
	"context"
	"fmt"
)

// StageName is a strongly-typed identifier for a build stage.
type StageName string

// Canonical stage names.
const (
	StageResolveRevision StageName = "resolve_revision"
	StageLoadContent     StageName = "load_content"
	StageCompile         StageName = "compile"
	StageFragments       StageName = "load_fragments"
	StageAssets          StageName = "process_assets"
	StagePages           StageName = "render_pages"
	StageWrite           StageName = "write_output"
)

// Stage is a discrete unit of work in the build.
type Stage func(ctx context.Context, st *State) error

// StageDef pairs a stage name with its executing function.
type StageDef struct {
	Name StageName
	Fn   Stage
}

// StageErrorKind classifies a stage failure.
type StageErrorKind string

const (
	StageErrorFatal    StageErrorKind = "fatal"
	StageErrorCanceled StageErrorKind = "canceled"
)

// StageError wraps the cause of a failed stage.
type StageError struct {
	Kind  StageErrorKind
	Stage StageName
	Err   error
}

func (e *StageError) Error() string { return fmt.Sprintf("%s stage %s: %v", e.Kind, e.Stage, e.Err) }
func (e *StageError) Unwrap() error { return e.Err }

// pipeline returns the stages for the request.
func pipeline(opts BuildOptions) []StageDef {
	if opts.CheckOnly {
		return []StageDef{
			{StageLoadContent, stageLoadContent},
			{StageCompile, stageCompile},
			{StageFragments, stageFragments},
		}
	}
	stages := []StageDef{
		{StageResolveRevision, stageResolveRevision},
		{StageLoadContent, stageLoadContent},
		{StageCompile, stageCompile},
		{StageFragments, stageFragments},
		{StageAssets, stageAssets},
		{StagePages, stagePages},
	}
	if !opts.DryRun {
		stages = append(stages, StageDef{StageWrite, stageWrite})
	}
	return stages
}
