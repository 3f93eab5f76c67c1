// Package commands implements the pagegen subcommands.
package commands

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/pagegen/internal/config"
	"git.home.luguber.info/inful/pagegen/internal/foundation/errors"
	"git.home.luguber.info/inful/pagegen/internal/logfields"
)

// Global carries state shared by every subcommand.
type Global struct {
	// Out receives the user-facing summary.
	Out io.Writer
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"pagegen.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build   BuildCmd   `cmd:"" help:"Compile content and write pages, assets and robots.txt"`
	Check   CheckCmd   `cmd:"" help:"Load, resolve and compile content without writing"`
	Preview PreviewCmd `cmd:"" help:"Serve the site locally and rebuild on change"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

// LoadConfig loads the configuration file. A missing file at the default
// location falls back to the built-in defaults rooted at the working
// directory.
func (c *CLI) LoadConfig() (*config.Config, error) {
	cfg, err := config.Load(c.Config)
	if err == nil {
		return cfg, nil
	}
	if !errors.HasCategory(err, errors.CategoryNotFound) || c.Config != config.FileName {
		return nil, err
	}
	root, absErr := filepath.Abs(filepath.Dir(c.Config))
	if absErr != nil {
		return nil, errors.WrapError(absErr, errors.CategoryFileSystem, "resolve working directory").Build()
	}
	slog.Info("No configuration file; using defaults", logfields.Path(root))
	return config.Default(root)
}

func (g *Global) out() io.Writer {
	if g == nil || g.Out == nil {
		return io.Discard
	}
	return g.Out
}
