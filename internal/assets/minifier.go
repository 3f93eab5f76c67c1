package assets

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"git.home.luguber.info/inful/pagegen/internal/foundation/errors"
	"git.home.luguber.info/inful/pagegen/internal/logfields"
)

// Mode selects how sources are transformed.
type Mode string

const (
	// ModeNone copies sources unchanged.
	ModeNone Mode = "none"
	// ModeDev bundles without minification.
	ModeDev Mode = "dev"
	// ModeProduction bundles, minifies and pins the JS target and format.
	ModeProduction Mode = "production"
)

const (
	esbuildTarget = "es2017"
	esbuildFormat = "iife"
)

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	switch m {
	case ModeNone, ModeDev, ModeProduction:
		return true
	default:
		return false
	}
}

// Minifier transforms one source file into its emitted text.
type Minifier interface {
	Minify(ctx context.Context, path string, kind Kind) ([]byte, error)
}

// NewMinifier returns the minifier for mode. binary is the esbuild executable
// and may be a bare name resolved on PATH.
func NewMinifier(mode Mode, binary string) (Minifier, error) {
	switch mode {
	case ModeNone:
		return Passthrough{}, nil
	case ModeDev, ModeProduction:
		if binary == "" {
			binary = "esbuild"
		}
		return &ESBuild{Binary: binary, Mode: mode}, nil
	default:
		return nil, errors.ConfigError("unknown minifier mode").WithContext("mode", string(mode)).Build()
	}
}

// Passthrough returns sources unchanged.
type Passthrough struct{}

func (Passthrough) Minify(_ context.Context, path string, _ Kind) ([]byte, error) {
	// #nosec G304 -- path comes from the build configuration.
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, readError(err, path)
	}
	return b, nil
}

// ESBuild invokes the esbuild binary once per source and captures stdout.
type ESBuild struct {
	Binary string
	Mode   Mode
}

// Args returns the command line for path.
func (e *ESBuild) Args(path string, kind Kind) []string {
	args := []string{path, "--bundle", "--log-level=warning", "--charset=utf8"}
	if e.Mode == ModeProduction {
		args = append(args, "--minify")
		if kind == KindJS {
			args = append(args, "--target="+esbuildTarget, "--format="+esbuildFormat)
		}
	}
	return args
}

func (e *ESBuild) Minify(ctx context.Context, path string, kind Kind) ([]byte, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, readError(err, path)
	}
	bin, err := exec.LookPath(e.Binary)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryMinifier, "minifier binary not found").
			WithContext("binary", e.Binary).
			Build()
	}

	// #nosec G204 -- binary and path come from the build configuration.
	cmd := exec.CommandContext(ctx, bin, e.Args(path, kind)...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	slog.Debug("Invoking minifier", logfields.Path(path), slog.String("mode", string(e.Mode)))

	if err := cmd.Run(); err != nil {
		output := strings.TrimSpace(stderr.String())
		if output == "" {
			output = strings.TrimSpace(stdout.String())
		}
		return nil, errors.WrapError(err, errors.CategoryMinifier, "minifier failed").
			WithContext("path", path).
			WithContext("output", output).
			Build()
	}
	if errStr := strings.TrimSpace(stderr.String()); errStr != "" {
		slog.Warn("minifier stderr", logfields.Path(path), slog.String("error_output", errStr))
	}
	return stdout.Bytes(), nil
}

func readError(err error, path string) error {
	if os.IsNotExist(err) {
		return errors.WrapError(err, errors.CategoryNotFound, "asset source not found").WithContext("path", path).Build()
	}
	return errors.WrapError(err, errors.CategoryFileSystem, "read asset source").WithContext("path", path).Build()
}
