package git

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/pagegen/internal/foundation/errors"
)

func commitRepo(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pagegen.yaml"), []byte("content:\n  dir: content\n"), 0o600))

	w, err := repo.Worktree()
	require.NoError(t, err)
	_, err = w.Add("pagegen.yaml")
	require.NoError(t, err)
	hash, err := w.Commit("Initial commit", &git.CommitOptions{
		Author: &object.Signature{Name: "Test User", Email: "test@example.com", When: time.Now()},
	})
	require.NoError(t, err)
	return dir, hash.String()
}

func TestHeadRevision(t *testing.T) {
	dir, full := commitRepo(t)

	rev, err := HeadRevision(dir)
	require.NoError(t, err)
	assert.Equal(t, full[:ShortLength], rev)

	sub := filepath.Join(dir, "content")
	require.NoError(t, os.MkdirAll(sub, 0o750))
	rev, err = HeadRevision(sub)
	require.NoError(t, err)
	assert.Equal(t, full[:ShortLength], rev, "repository is detected from a subdirectory")
}

func TestRevisionOverride(t *testing.T) {
	rev, err := Revision(t.TempDir(), RevisionOptions{Override: "release1"})
	require.NoError(t, err)
	assert.Equal(t, "release1", rev)
}

func TestRevisionOutsideRepository(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.yml"), []byte("a"), 0o600))

	_, err := Revision(dir, RevisionOptions{})
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryGit))

	rev, err := Revision(dir, RevisionOptions{WorkdirFallback: true})
	require.NoError(t, err)
	assert.Len(t, rev, ShortLength)

	digest, err := WorkdirDigest(dir, nil)
	require.NoError(t, err)
	assert.Equal(t, digest[:ShortLength], rev)
}
