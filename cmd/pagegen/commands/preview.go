package commands

import (
	"context"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/pagegen/internal/preview"
)

// PreviewCmd serves the site locally and rebuilds when sources change.
type PreviewCmd struct {
	Addr    string `name:"addr" help:"Listen address (overrides preview.addr)"`
	Profile string `short:"p" default:"dev" help:"Environment profile for preview builds"`
	Root    string `name:"root" help:"Directory for preview builds (defaults to temp)"`
}

func (p *PreviewCmd) Run(_ *Global, root *CLI) error {
	cfg, err := root.LoadConfig()
	if err != nil {
		return err
	}
	addr := p.Addr
	if addr == "" {
		addr = cfg.Preview.Addr
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	srv, err := preview.New(cfg, preview.Options{Profile: p.Profile, Root: p.Root})
	if err != nil {
		return err
	}
	return srv.Run(ctx, addr)
}
