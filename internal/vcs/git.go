package vcs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/format/diff"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
)

// ShowDateFormat is the date layout git show prints by default.
const ShowDateFormat = "Mon Jan 2 15:04:05 2006 -0700"

// GitOpener opens git repositories using go-git.
type GitOpener struct{}

// NewGitOpener creates a new GitOpener.
func NewGitOpener() *GitOpener {
	return &GitOpener{}
}

// PlainOpen opens a git repository, detecting .git in parent directories.
func (o *GitOpener) PlainOpen(path string) (Repository, error) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, fmt.Errorf("%s: %w", path, ErrNotRepository)
		}
		return nil, err
	}

	root := path
	if wt, err := repo.Worktree(); err == nil {
		root = wt.Filesystem.Root()
	}
	return &gitRepository{repo: repo, root: root}, nil
}

// gitRepository wraps go-git Repository. go-git repositories are not safe
// for concurrent use, so every call holds mu.
type gitRepository struct {
	mu   sync.Mutex
	repo *git.Repository
	root string
}

func (r *gitRepository) RepoPath() string {
	return r.root
}

func (r *gitRepository) Commits(ctx context.Context) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	iter, err := r.repo.Log(&git.LogOptions{Order: git.LogOrderCommitterTime})
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	var ids []string
	err = iter.ForEach(func(c *object.Commit) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		ids = append(ids, c.Hash.String())
		return nil
	})
	if err != nil && !errors.Is(err, storer.ErrStop) {
		return nil, err
	}
	return ids, nil
}

func (r *gitRepository) Parents(_ context.Context, id string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, err := r.commit(id)
	if err != nil {
		return nil, err
	}
	parents := make([]string, len(c.ParentHashes))
	for i, h := range c.ParentHashes {
		parents[i] = h.String()
	}
	return parents, nil
}

// Show renders the commit the way `git show --no-prefix` does: a header
// block, the indented message, then the patch against the first parent.
func (r *gitRepository) Show(ctx context.Context, id string) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, err := r.commit(id)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	writeHeader(&buf, c)

	patch, err := r.patch(ctx, c)
	if err != nil {
		return nil, err
	}
	if len(patch.FilePatches()) == 0 {
		return buf.Bytes(), nil
	}

	buf.WriteString("\n")
	enc := diff.NewUnifiedEncoder(&buf, diff.DefaultContextLines).
		SetSrcPrefix("").
		SetDstPrefix("")
	if err := enc.Encode(patch); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (r *gitRepository) commit(id string) (*object.Commit, error) {
	if plumbing.IsHash(id) {
		return r.repo.CommitObject(plumbing.NewHash(id))
	}
	resolved, err := r.repo.ResolveRevision(plumbing.Revision(id))
	if err != nil {
		return nil, err
	}
	return r.repo.CommitObject(*resolved)
}

// patch diffs c against its first parent, or against the empty tree for a root commit.
func (r *gitRepository) patch(ctx context.Context, c *object.Commit) (*object.Patch, error) {
	if c.NumParents() > 0 {
		parent, err := c.Parent(0)
		if err != nil {
			return nil, err
		}
		return parent.PatchContext(ctx, c)
	}

	tree, err := c.Tree()
	if err != nil {
		return nil, err
	}
	changes, err := object.DiffTreeWithOptions(ctx, nil, tree, object.DefaultDiffTreeOptions)
	if err != nil {
		return nil, err
	}
	return changes.PatchContext(ctx)
}

func writeHeader(buf *bytes.Buffer, c *object.Commit) {
	fmt.Fprintf(buf, "commit %s\n", c.Hash)
	if c.NumParents() > 1 {
		short := make([]string, len(c.ParentHashes))
		for i, h := range c.ParentHashes {
			short[i] = h.String()[:7]
		}
		fmt.Fprintf(buf, "Merge: %s\n", strings.Join(short, " "))
	}
	fmt.Fprintf(buf, "Author: %s <%s>\n", c.Author.Name, c.Author.Email)
	fmt.Fprintf(buf, "Date:   %s\n\n", c.Author.When.Format(ShowDateFormat))

	for _, line := range strings.Split(strings.TrimRight(c.Message, "\n"), "\n") {
		if line == "" {
			buf.WriteString("\n")
			continue
		}
		fmt.Fprintf(buf, "    %s\n", line)
	}
}
