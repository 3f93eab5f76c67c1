package config

import (
	"path/filepath"
	"strings"
	"time"

	"git.home.luguber.info/inful/pagegen/internal/catalog"
	"git.home.luguber.info/inful/pagegen/internal/foundation/errors"
)

// ValidateConfig checks the configuration after defaults are applied.
func ValidateConfig(cfg *Config) error {
	validator := newConfigurationValidator(cfg)
	return validator.validate()
}

// configurationValidator coordinates validation across configuration domains.
type configurationValidator struct {
	config *Config
}

func newConfigurationValidator(config *Config) *configurationValidator {
	return &configurationValidator{config: config}
}

func (cv *configurationValidator) validate() error {
	if err := cv.validatePages(); err != nil {
		return err
	}
	if err := cv.validateAssets(); err != nil {
		return err
	}
	if err := cv.validateProfiles(); err != nil {
		return err
	}
	if err := cv.validatePreview(); err != nil {
		return err
	}
	return nil
}

func (cv *configurationValidator) validatePages() error {
	names := make(map[string]bool)
	outputs := make(map[string]bool)
	for _, p := range cv.config.Pages {
		if p.Name == "" {
			return errors.ConfigError("page name cannot be empty").Build()
		}
		if names[p.Name] {
			return errors.ConfigError("duplicate page name").WithContext("page", p.Name).Build()
		}
		names[p.Name] = true
		if p.Shell == "" {
			return errors.ConfigError("page shell cannot be empty").WithContext("page", p.Name).Build()
		}
		if !relative(p.Output) {
			return errors.ConfigError("page output must be a relative path").WithContext("page", p.Name).WithContext("output", p.Output).Build()
		}
		out := filepath.Clean(p.Output)
		if outputs[out] {
			return errors.ConfigError("duplicate page output").WithContext("page", p.Name).WithContext("output", p.Output).Build()
		}
		outputs[out] = true
		switch p.Data {
		case "", catalog.PageHome, catalog.PageTool:
		default:
			return errors.ConfigError("page data must be home or tool").WithContext("page", p.Name).WithContext("data", p.Data).Build()
		}
	}
	return nil
}

func (cv *configurationValidator) validateAssets() error {
	if !cv.config.Minifier.Mode.Valid() {
		return errors.ConfigError("unknown minifier mode").WithContext("mode", string(cv.config.Minifier.Mode)).Build()
	}
	names := make(map[string]bool)
	for _, a := range cv.config.Assets.Sources {
		if a.Source == "" {
			return errors.ConfigError("asset source cannot be empty").WithContext("asset", a.Name).Build()
		}
		if a.Name != "" {
			if names[a.Name] {
				return errors.ConfigError("duplicate asset name").WithContext("asset", a.Name).Build()
			}
			names[a.Name] = true
		}
	}
	return nil
}

func (cv *configurationValidator) validateProfiles() error {
	for name, p := range cv.config.Profiles {
		if name == "" {
			return errors.ConfigError("profile name cannot be empty").Build()
		}
		if p.AssetBase == "" && !builtin(name) {
			return errors.ConfigError("profile requires an asset base").WithContext("profile", name).Build()
		}
	}
	return nil
}

func (cv *configurationValidator) validatePreview() error {
	if _, err := time.ParseDuration(cv.config.Preview.Debounce); err != nil {
		return errors.WrapError(err, errors.CategoryConfig, "invalid preview debounce").
			WithContext("debounce", cv.config.Preview.Debounce).
			Build()
	}
	return nil
}

func relative(p string) bool {
	if p == "" || filepath.IsAbs(p) {
		return false
	}
	clean := filepath.Clean(p)
	return clean != "." && !strings.HasPrefix(clean, "..")
}
