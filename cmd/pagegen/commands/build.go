package commands

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"git.home.luguber.info/inful/pagegen/internal/build"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Output  string `short:"o" help:"Output directory (overrides output.dir)"`
	Profile string `short:"p" help:"Environment profile (overrides PAGEGEN_PROFILE and profile)"`
	DryRun  bool   `name:"dry-run" help:"Run every stage except writing output"`
}

func (b *BuildCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.LoadConfig()
	if err != nil {
		return err
	}
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	result, err := build.NewBuildService().Run(ctx, build.BuildRequest{
		Config:    cfg,
		OutputDir: b.Output,
		Options:   build.BuildOptions{Profile: b.Profile, DryRun: b.DryRun},
	})
	if err != nil {
		return err
	}

	out := g.out()
	_, _ = fmt.Fprintf(out, "Built revision %s (profile %s) in %s\n", result.Revision, result.Profile, result.Duration.Round(time.Millisecond))
	if b.DryRun {
		_, _ = fmt.Fprintf(out, "Dry run: %d pages rendered, nothing written\n", result.Pages)
		return nil
	}
	for _, f := range result.Written {
		_, _ = fmt.Fprintf(out, "  %s\n", f)
	}
	_, _ = fmt.Fprintf(out, "Wrote %d files to %s\n", len(result.Written), result.OutputPath)
	return nil
}
