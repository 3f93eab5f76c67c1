package assets

import (
	"path/filepath"
	"strings"
)

// Kind is the text format of an emitted artifact.
type Kind string

const (
	KindHTML Kind = "html"
	KindCSS  Kind = "css"
	KindJS   Kind = "js"
	KindText Kind = "txt"
)

// KindOf classifies a source path by extension. TypeScript sources compile to
// JS.
func KindOf(path string) (Kind, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return KindHTML, true
	case ".css":
		return KindCSS, true
	case ".js", ".ts", ".mjs":
		return KindJS, true
	case ".txt":
		return KindText, true
	default:
		return "", false
	}
}

// Ext is the output extension for k, without the dot.
func (k Kind) Ext() string { return string(k) }
