package vcs

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// NativeOpener opens repositories that are read by shelling out to git.
// git show is much faster than rendering patches with go-git on large histories.
type NativeOpener struct {
	binary string
}

// NewNativeOpener creates a NativeOpener using the git found on PATH.
func NewNativeOpener() *NativeOpener {
	return &NativeOpener{binary: "git"}
}

// PlainOpen checks that path is inside a work tree and returns a repository rooted there.
func (o *NativeOpener) PlainOpen(path string) (Repository, error) {
	r := &nativeRepository{binary: o.binary, dir: path}
	out, err := r.run(context.Background(), "rev-parse", "--show-toplevel")
	if err != nil {
		return nil, err
	}
	r.root = strings.TrimSpace(string(out))
	return r, nil
}

type nativeRepository struct {
	binary string
	dir    string
	root   string
}

func (r *nativeRepository) RepoPath() string {
	return r.root
}

func (r *nativeRepository) Commits(ctx context.Context) ([]string, error) {
	out, err := r.run(ctx, "log", "--pretty=format:%H")
	if err != nil {
		return nil, err
	}
	return splitLines(string(out)), nil
}

func (r *nativeRepository) Parents(ctx context.Context, id string) ([]string, error) {
	out, err := r.run(ctx, "rev-list", "--parents", "-n", "1", id)
	if err != nil {
		return nil, err
	}
	fields := strings.Fields(string(out))
	if len(fields) == 0 {
		return nil, nil
	}
	// The first field is id itself.
	return fields[1:], nil
}

func (r *nativeRepository) Show(ctx context.Context, id string) ([]byte, error) {
	return r.run(ctx, "show", "--no-color", "--no-prefix", id)
}

func (r *nativeRepository) run(ctx context.Context, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, r.binary, args...)
	cmd.Dir = r.dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if strings.Contains(stderr.String(), "not a git repository") {
			return nil, fmt.Errorf("%s: %w", r.dir, ErrNotRepository)
		}
		return nil, fmt.Errorf("git %s: %w: %s", args[0], err, strings.TrimSpace(stderr.String()))
	}
	return stdout.Bytes(), nil
}

// splitLines splits text on newlines, dropping blank lines.
func splitLines(s string) []string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
