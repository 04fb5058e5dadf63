// Package analyzer holds the contracts and helpers shared by repository analyzers.
package analyzer

import "context"

// RepoAnalyzer analyzes the history of a repository.
type RepoAnalyzer[T any] interface {
	// Analyze processes the given revisions of the repository at repoPath.
	// A nil ids slice means every revision reachable from HEAD.
	Analyze(ctx context.Context, repoPath string, ids []string) (T, error)
}
