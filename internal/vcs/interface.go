// Package vcs provides the change-set source: the list of revisions in a
// repository and the header-plus-diff text of each one.
package vcs

import (
	"context"
	"errors"
)

// ErrNotRepository is returned when a path is not inside a git repository.
var ErrNotRepository = errors.New("not a git repository")

// Repository provides access to the change-sets of one repository.
type Repository interface {
	// Commits returns every revision reachable from HEAD, newest first.
	Commits(ctx context.Context) ([]string, error)
	// Parents returns the parent revisions of id.
	Parents(ctx context.Context, id string) ([]string, error)
	// Show returns the author/date/message header and the unified diff of id
	// against its first parent, with the a/ and b/ path prefixes removed.
	Show(ctx context.Context, id string) ([]byte, error)
	// RepoPath returns the root path of the repository.
	RepoPath() string
}

// Opener opens git repositories.
type Opener interface {
	// PlainOpen opens an existing git repository.
	PlainOpen(path string) (Repository, error)
}

// DefaultOpener returns the opener used when none is configured:
// native git when native is true, go-git otherwise.
func DefaultOpener(native bool) Opener {
	if native {
		return NewNativeOpener()
	}
	return NewGitOpener()
}
