package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyBuildID    = "build_id"
	KeyStage      = "stage"
	KeyDurationMS = "duration_ms"
	KeyPage       = "page"
	KeyAsset      = "asset"
	KeyFragment   = "fragment"
	KeyRevision   = "revision"
	KeyProfile    = "profile"
	KeyPath       = "path"
	KeyBytes      = "bytes"
	KeyCount      = "count"
	KeyAddr       = "addr"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func BuildID(id string) slog.Attr     { return slog.String(KeyBuildID, id) }
func Stage(name string) slog.Attr     { return slog.String(KeyStage, name) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Page(name string) slog.Attr      { return slog.String(KeyPage, name) }
func Asset(name string) slog.Attr     { return slog.String(KeyAsset, name) }
func Fragment(name string) slog.Attr  { return slog.String(KeyFragment, name) }
func Revision(rev string) slog.Attr   { return slog.String(KeyRevision, rev) }
func Profile(name string) slog.Attr   { return slog.String(KeyProfile, name) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Bytes(n int) slog.Attr           { return slog.Int(KeyBytes, n) }
func Count(n int) slog.Attr           { return slog.Int(KeyCount, n) }
func Addr(a string) slog.Attr         { return slog.String(KeyAddr, a) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
