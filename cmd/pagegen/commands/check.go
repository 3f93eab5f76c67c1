package commands

import (
	"context"
	"fmt"

	"git.home.luguber.info/inful/pagegen/internal/build"
)

// CheckCmd implements the 'check' command.
type CheckCmd struct{}

func (c *CheckCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.LoadConfig()
	if err != nil {
		return err
	}
	result, err := build.NewBuildService().Run(context.Background(), build.BuildRequest{
		Config:  cfg,
		Options: build.BuildOptions{CheckOnly: true},
	})
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(g.out(), "Content OK: %d tools\n", result.Tools)
	return nil
}
