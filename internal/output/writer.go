// Package output writes build artifacts under a destination directory.
//
// Writes are create-only: a build never replaces a file that already exists.
// EnsureEmpty rejects a non-empty destination before anything is written, so
// running twice into the same destination fails without adding files from
// the second build.
package output

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"syscall"

	"git.home.luguber.info/inful/pagegen/internal/foundation/errors"
)

// FileMode is the permission of emitted artifacts. They are served as static
// files, so they are world-readable.
const FileMode os.FileMode = 0o644

// Writer creates files under Root.
type Writer struct {
	Root    string
	written []string
}

// NewWriter returns a Writer rooted at root.
func NewWriter(root string) *Writer {
	return &Writer{Root: root}
}

// Resolve validates rel and returns the full path under Root.
//
// The function ensures:
//   - The output path is relative to Root (no path traversal)
//   - The path names a file below Root, not Root itself
func (w *Writer) Resolve(rel string) (string, error) {
	if w.Root == "" {
		return "", errors.ConfigError("output directory is required").Build()
	}
	if rel == "" {
		return "", errors.ConfigError("output path is required").Build()
	}

	cleanRel := filepath.Clean(filepath.FromSlash(rel))
	if filepath.IsAbs(cleanRel) || cleanRel == "." || strings.HasPrefix(cleanRel, "..") {
		return "", errors.ValidationError("output path must be relative to the output directory").WithContext("path", rel).Build()
	}

	fullPath := filepath.Join(w.Root, cleanRel)
	r, err := filepath.Rel(w.Root, fullPath)
	if err != nil || strings.HasPrefix(r, "..") {
		return "", errors.ValidationError("output path escapes the output directory").WithContext("path", rel).Build()
	}
	return fullPath, nil
}

// EnsureEmpty fails with an already-exists error when Root holds any entry.
// A missing Root is fine; Write creates it.
func (w *Writer) EnsureEmpty() error {
	if w.Root == "" {
		return errors.ConfigError("output directory is required").Build()
	}
	entries, err := os.ReadDir(w.Root)
	switch {
	case stderrors.Is(err, os.ErrNotExist):
		return nil
	case err != nil:
		if fi, statErr := os.Stat(w.Root); statErr == nil && !fi.IsDir() {
			return errors.AlreadyExistsError("output path exists and is not a directory").WithContext("path", w.Root).Build()
		}
		return errors.WrapError(err, errors.CategoryFileSystem, "read output directory").WithContext("path", w.Root).Build()
	case len(entries) > 0:
		return errors.AlreadyExistsError("output directory is not empty").
			WithContext("path", w.Root).
			WithContext("entry", entries[0].Name()).
			Build()
	}
	return nil
}

// Write creates rel with content. An existing file is an error.
func (w *Writer) Write(rel string, content []byte) (string, error) {
	fullPath, err := w.Resolve(rel)
	if err != nil {
		return "", err
	}

	if err = os.MkdirAll(filepath.Dir(fullPath), 0o750); err != nil {
		return "", errors.WrapError(err, errors.CategoryFileSystem, "create output directory").WithContext("path", fullPath).Build()
	}

	// #nosec G304 -- fullPath is validated to stay under Root.
	file, err := os.OpenFile(fullPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, FileMode)
	if err != nil {
		if stderrors.Is(err, os.ErrExist) || stderrors.Is(err, syscall.EEXIST) {
			return "", errors.AlreadyExistsError("output file already exists").WithContext("path", fullPath).Build()
		}
		return "", errors.WrapError(err, errors.CategoryFileSystem, "create output file").WithContext("path", fullPath).Build()
	}
	if _, err := file.Write(content); err != nil {
		_ = file.Close()
		return "", errors.WrapError(err, errors.CategoryFileSystem, "write output file").WithContext("path", fullPath).Build()
	}
	if err := file.Close(); err != nil {
		return "", errors.WrapError(err, errors.CategoryFileSystem, "close output file").WithContext("path", fullPath).Build()
	}

	w.written = append(w.written, filepath.ToSlash(strings.TrimPrefix(fullPath, filepath.Clean(w.Root)+string(filepath.Separator))))
	return fullPath, nil
}

// WriteString is Write for text content.
func (w *Writer) WriteString(rel, content string) (string, error) {
	return w.Write(rel, []byte(content))
}

// Written lists the relative paths created so far, sorted.
func (w *Writer) Written() []string {
	out := append([]string(nil), w.written...)
	sort.Strings(out)
	return out
}
