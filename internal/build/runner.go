package build

import (
	"context"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/pagegen/internal/logfields"
	"git.home.luguber.info/inful/pagegen/internal/metrics"
)

// runStages executes stages in order, recording timing and stopping on the
// first error.
func runStages(ctx context.Context, st *State, stages []StageDef, recorder metrics.Recorder) error {
	for _, def := range stages {
		select {
		case <-ctx.Done():
			recorder.IncStageResult(string(def.Name), metrics.ResultCanceled)
			return &StageError{Kind: StageErrorCanceled, Stage: def.Name, Err: ctx.Err()}
		default:
		}

		t0 := time.Now()
		err := def.Fn(ctx, st)
		dur := time.Since(t0)
		st.StageDurations[def.Name] = dur
		recorder.ObserveStageDuration(string(def.Name), dur)

		if err != nil {
			recorder.IncStageResult(string(def.Name), metrics.ResultFatal)
			slog.Error("Stage failed", logfields.BuildID(st.BuildID), logfields.Stage(string(def.Name)), logfields.Error(err))
			return &StageError{Kind: StageErrorFatal, Stage: def.Name, Err: err}
		}
		recorder.IncStageResult(string(def.Name), metrics.ResultSuccess)
		slog.Debug("Stage complete", logfields.BuildID(st.BuildID), logfields.Stage(string(def.Name)),
			logfields.DurationMS(float64(dur.Microseconds())/1000))
	}
	return nil
}
