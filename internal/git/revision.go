package git

import (
	"errors"
	"log/slog"

	"github.com/go-git/go-git/v5"

	ferrors "git.home.luguber.info/inful/pagegen/internal/foundation/errors"
	"git.home.luguber.info/inful/pagegen/internal/logfields"
)

// ShortLength is the number of hex digits kept from a commit hash.
const ShortLength = 7

// RevisionOptions controls how the revision identifier is resolved.
type RevisionOptions struct {
	// Override is used verbatim when set.
	Override string
	// WorkdirFallback digests the working files when dir is not inside a
	// repository.
	WorkdirFallback bool
	// Paths limits the workdir digest.
	Paths []string
}

// Revision returns the revision identifier for the tree at dir.
func Revision(dir string, opts RevisionOptions) (string, error) {
	if opts.Override != "" {
		slog.Debug("Using revision override", logfields.Revision(opts.Override))
		return opts.Override, nil
	}

	rev, err := HeadRevision(dir)
	if err == nil {
		return rev, nil
	}
	if !opts.WorkdirFallback || !errors.Is(err, git.ErrRepositoryNotExists) {
		return "", err
	}

	digest, derr := WorkdirDigest(dir, opts.Paths)
	if derr != nil {
		return "", ferrors.WrapError(derr, ferrors.CategoryFileSystem, "digest working tree").WithContext("path", dir).Build()
	}
	slog.Warn("No git repository found; using working tree digest", logfields.Path(dir), logfields.Revision(digest[:ShortLength]))
	return digest[:ShortLength], nil
}

// HeadRevision returns the abbreviated HEAD commit of the repository
// containing dir.
func HeadRevision(dir string) (string, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", ferrors.WrapError(err, ferrors.CategoryGit, "open repository").WithContext("path", dir).Build()
	}
	head, err := repo.Head()
	if err != nil {
		return "", ferrors.WrapError(err, ferrors.CategoryGit, "resolve HEAD").WithContext("path", dir).Build()
	}
	return head.Hash().String()[:ShortLength], nil
}
