package testing

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bmatcuk/doublestar/v4"
)

// FileAssertions checks build output relative to a base directory.
type FileAssertions struct {
	t       *testing.T
	baseDir string
}

// NewFileAssertions creates a new file assertions helper
func NewFileAssertions(t *testing.T, baseDir string) *FileAssertions {
	return &FileAssertions{t: t, baseDir: baseDir}
}

// AssertFileExists validates that a file exists
func (fa *FileAssertions) AssertFileExists(relativePath string) *FileAssertions {
	fa.t.Helper()
	fullPath := filepath.Join(fa.baseDir, relativePath)
	if _, err := os.Stat(fullPath); os.IsNotExist(err) {
		fa.t.Errorf("Expected file to exist: %s", fullPath)
	}
	return fa
}

// AssertFileNotExists validates that a file does not exist
func (fa *FileAssertions) AssertFileNotExists(relativePath string) *FileAssertions {
	fa.t.Helper()
	fullPath := filepath.Join(fa.baseDir, relativePath)
	if _, err := os.Stat(fullPath); err == nil {
		fa.t.Errorf("Expected file to not exist: %s", fullPath)
	}
	return fa
}

// AssertFileContains validates that a file contains expected content
func (fa *FileAssertions) AssertFileContains(relativePath, expectedContent string) *FileAssertions {
	fa.t.Helper()
	if content := fa.GetFileContent(relativePath); !strings.Contains(content, expectedContent) {
		fa.t.Errorf("Expected file %s to contain %q\nActual content:\n%s", relativePath, expectedContent, content)
	}
	return fa
}

// AssertFileHasPrefix validates that a file starts with prefix
func (fa *FileAssertions) AssertFileHasPrefix(relativePath, prefix string) *FileAssertions {
	fa.t.Helper()
	if content := fa.GetFileContent(relativePath); !strings.HasPrefix(content, prefix) {
		fa.t.Errorf("Expected file %s to start with %q\nActual content:\n%s", relativePath, prefix, content)
	}
	return fa
}

// FindFile returns the single file matching a doublestar pattern relative to
// the base directory.
func (fa *FileAssertions) FindFile(pattern string) string {
	fa.t.Helper()
	matches, err := doublestar.Glob(os.DirFS(fa.baseDir), pattern, doublestar.WithFilesOnly())
	if err != nil {
		fa.t.Fatalf("Invalid pattern %q: %v", pattern, err)
	}
	if len(matches) != 1 {
		fa.t.Fatalf("Expected exactly one file matching %q in %s, found %v", pattern, fa.baseDir, matches)
	}
	return matches[0]
}

// GetFileContent reads and returns the content of a file
func (fa *FileAssertions) GetFileContent(relativePath string) string {
	fa.t.Helper()
	fullPath := filepath.Join(fa.baseDir, relativePath)
	content, err := os.ReadFile(fullPath)
	if err != nil {
		fa.t.Fatalf("Failed to read file %s: %v", fullPath, err)
	}
	return string(content)
}
