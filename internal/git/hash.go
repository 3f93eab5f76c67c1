package git

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// WorkdirDigest hashes the file contents under root. Paths limits the walk
// to the given relative paths; missing paths are skipped. Hidden files and
// directories are ignored so output and VCS directories do not feed back into
// the digest.
func WorkdirDigest(root string, paths []string) (string, error) {
	if len(paths) == 0 {
		paths = []string{"."}
	}

	var fileHashes []string
	add := func(p string) error {
		// #nosec G304 -- p is produced by walking root.
		content, err := os.ReadFile(p)
		if err != nil {
			return fmt.Errorf("read %s: %w", p, err)
		}
		h := sha256.Sum256(content)
		rel, _ := filepath.Rel(root, p)
		fileHashes = append(fileHashes, filepath.ToSlash(rel)+":"+hex.EncodeToString(h[:]))
		return nil
	}

	for _, path := range paths {
		fullPath := filepath.Join(root, path)
		info, err := os.Stat(fullPath)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return "", fmt.Errorf("stat %s: %w", fullPath, err)
		}
		if !info.IsDir() {
			if err := add(fullPath); err != nil {
				return "", err
			}
			continue
		}
		err = filepath.WalkDir(fullPath, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if p != fullPath && strings.HasPrefix(d.Name(), ".") {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if d.IsDir() {
				return nil
			}
			return add(p)
		})
		if err != nil {
			return "", fmt.Errorf("walk %s: %w", fullPath, err)
		}
	}

	// Sort for deterministic ordering
	sort.Strings(fileHashes)

	h := sha256.New()
	for _, fh := range fileHashes {
		h.Write([]byte(fh))
		h.Write([]byte("\n"))
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
