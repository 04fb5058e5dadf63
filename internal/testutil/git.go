package testutil

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// GitRepo is a throwaway repository built with go-git for tests.
type GitRepo struct {
	Path string
	repo *git.Repository
}

// NewGitRepo initializes an empty repository in a temp directory.
func NewGitRepo(t *testing.T) *GitRepo {
	t.Helper()
	path := t.TempDir()
	repo, err := git.PlainInit(path, false)
	if err != nil {
		t.Fatalf("Failed to init repo: %v", err)
	}
	return &GitRepo{Path: path, repo: repo}
}

// Signature builds an author signature.
func Signature(name, email string, when time.Time) *object.Signature {
	return &object.Signature{Name: name, Email: email, When: when}
}

// Commit writes files (path -> content; empty content removes the file)
// and commits them. It returns the new commit hash.
func (g *GitRepo) Commit(t *testing.T, msg string, author *object.Signature, files map[string]string) string {
	t.Helper()
	w, err := g.repo.Worktree()
	if err != nil {
		t.Fatalf("Worktree() error: %v", err)
	}

	for name, content := range files {
		if content == "" {
			if _, err := w.Remove(name); err != nil {
				t.Fatalf("Remove(%s) error: %v", name, err)
			}
			continue
		}
		WriteFile(t, filepath.Join(g.Path, name), content)
		if _, err := w.Add(name); err != nil {
			t.Fatalf("Add(%s) error: %v", name, err)
		}
	}

	hash, err := w.Commit(msg, &git.CommitOptions{Author: author, Committer: author})
	if err != nil {
		t.Fatalf("Commit(%q) error: %v", msg, err)
	}
	return hash.String()
}
