package substitute

import "git.home.luguber.info/inful/pagegen/internal/foundation/errors"

// Environment tokens rewritten by the global pass.
const (
	TokenAssetBase   = "{{ASSERT}}"
	TokenMirrorBase  = "{{MIRROR}}"
	TokenBlankAnchor = "<a blank "
	BlankAnchor      = `<a target="_blank" `
)

// Built-in profile names.
const (
	ProfileProduction = "production"
	ProfileDev        = "dev"
)

// Profile selects the environment-specific base URLs.
type Profile struct {
	Name       string
	AssetBase  string
	MirrorBase string
}

// BuiltinProfiles returns the production and dev profiles.
func BuiltinProfiles() map[string]Profile {
	return map[string]Profile{
		ProfileProduction: {
			Name:       ProfileProduction,
			AssetBase:  "https://cdn.jsdelivr.net/gh/stackinspector/ldtstore-assert@latest",
			MirrorBase: "//r.ldt.pc.wiki/mirror/",
		},
		ProfileDev: {
			Name:       ProfileDev,
			AssetBase:  "/assert",
			MirrorBase: "/mirror/",
		},
	}
}

// Global builds the environment token table for p.
func (p Profile) Global() (*Table, error) {
	if p.AssetBase == "" {
		return nil, errors.ConfigError("profile requires an asset base").WithContext("profile", p.Name).Build()
	}
	t := NewTable()
	for _, pair := range []Pair{
		{TokenAssetBase, p.AssetBase},
		{TokenMirrorBase, p.MirrorBase},
		{TokenBlankAnchor, BlankAnchor},
	} {
		if err := t.Add(pair.Pattern, pair.Replacement); err != nil {
			return nil, err
		}
	}
	return t, nil
}
