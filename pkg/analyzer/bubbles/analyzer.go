// Package bubbles turns version-control history into churn and test-coverage
// buckets: it classifies changed lines, computes per-commit statistics and
// groups them by year, month and day.
package bubbles

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/panbanda/bubbles/internal/vcs"
	"github.com/panbanda/bubbles/pkg/analyzer"
	"github.com/panbanda/bubbles/pkg/changeset"
	"github.com/panbanda/bubbles/pkg/config"
	"github.com/panbanda/bubbles/pkg/identity"
)

// DefaultParentWorkers bounds concurrent parent lookups.
const DefaultParentWorkers = 8

// Analyzer runs the bubbles pipeline over a repository.
type Analyzer struct {
	cfg        *config.Config
	classifier *Classifier
	normalizer *identity.Normalizer
	opener     vcs.Opener
	logger     logrus.FieldLogger
	workers    int
}

// Compile-time check that Analyzer implements RepoAnalyzer.
var _ analyzer.RepoAnalyzer[*Result] = (*Analyzer)(nil)

// Option is a functional option for configuring Analyzer.
type Option func(*Analyzer)

// WithOpener sets the VCS opener. By default the opener follows the
// native-git configuration key.
func WithOpener(opener vcs.Opener) Option {
	return func(a *Analyzer) {
		a.opener = opener
	}
}

// WithLogger sets the logger used for skipped change-sets.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(a *Analyzer) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithTestPathPredicate replaces the default test-path heuristic.
func WithTestPathPredicate(p TestPathPredicate) Option {
	return func(a *Analyzer) {
		a.classifier = NewClassifier(a.cfg.TestableFileSuffixes, WithTestPredicate(p))
	}
}

// WithParentWorkers sets how many parent lookups run at once.
func WithParentWorkers(n int) Option {
	return func(a *Analyzer) {
		if n > 0 {
			a.workers = n
		}
	}
}

// New creates an analyzer from cfg. Invalid alias rules and an empty
// suffix list are configuration errors.
func New(cfg *config.Config, opts ...Option) (*Analyzer, error) {
	if cfg == nil {
		return nil, errors.New("nil configuration")
	}
	if len(cfg.TestableFileSuffixes) == 0 {
		return nil, &config.ConfigError{Key: config.KeySuffixes, Err: config.ErrMissingKey}
	}
	rules, err := cfg.AliasRules()
	if err != nil {
		return nil, &config.ConfigError{Key: "aliases", Err: err}
	}

	a := &Analyzer{
		cfg:        cfg,
		classifier: NewClassifier(cfg.TestableFileSuffixes),
		normalizer: identity.New(cfg.Redactions, rules),
		opener:     vcs.DefaultOpener(cfg.NativeGit),
		logger:     logrus.StandardLogger(),
		workers:    DefaultParentWorkers,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Analyze processes the change-sets ids of the repository at repoPath, in
// order. When ids is nil the list comes from source-commits-from-file or,
// failing that, from the repository log. Change-sets that cannot be read
// or parsed are logged and skipped.
func (a *Analyzer) Analyze(ctx context.Context, repoPath string, ids []string) (*Result, error) {
	repo, err := a.opener.PlainOpen(repoPath)
	if err != nil {
		return nil, fmt.Errorf("opening repository: %w", err)
	}

	if ids == nil {
		ids, err = a.changeSetList(ctx, repo)
		if err != nil {
			return nil, err
		}
	}
	if a.cfg.MergeCommitParents {
		ids = a.withParents(ctx, repo, ids)
	}

	tracker := analyzer.TrackerFromContext(ctx)
	if tracker != nil {
		tracker.SetTotal(len(ids))
	}

	res := &Result{
		RepoPath:   repo.RepoPath(),
		Total:      len(ids),
		Aggregator: NewAggregator(a.cfg.Description, a.cfg.BaseDiffURL, a.cfg.WriteJSONDiffs),
	}

	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		cs, rec, err := a.process(ctx, repo, id)
		if err != nil {
			a.logger.WithField("id", id).WithError(err).Warn("skipping change-set")
			res.Skipped = append(res.Skipped, id)
			if tracker != nil {
				tracker.Skip(id)
			}
			continue
		}
		if tracker != nil {
			tracker.Tick(id)
		}

		res.Processed++
		if res.Aggregator.Add(rec, cs.When) {
			res.Bucketed++
		}
		if a.cfg.WriteJSONDiffs {
			res.ChangeSets = append(res.ChangeSets, cs)
		}
	}

	return res, nil
}

// process fetches, parses, normalizes and measures one change-set.
func (a *Analyzer) process(ctx context.Context, repo vcs.Repository, id string) (*changeset.ChangeSet, CommitStats, error) {
	raw, err := repo.Show(ctx, id)
	if err != nil {
		return nil, CommitStats{}, fmt.Errorf("show: %w", err)
	}
	cs, err := changeset.Parse(id, raw)
	if err != nil {
		return nil, CommitStats{}, err
	}
	cs.Author = a.normalizer.Normalize(cs.Author)
	return cs, a.classifier.Calculate(cs), nil
}

func (a *Analyzer) changeSetList(ctx context.Context, repo vcs.Repository) ([]string, error) {
	if a.cfg.SourceCommitsFromFile != "" {
		ids, err := ReadChangeSetList(a.cfg.SourceCommitsFromFile)
		if err != nil {
			return nil, &config.ConfigError{Key: "source-commits-from-file", Err: err}
		}
		return ids, nil
	}
	ids, err := repo.Commits(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing change-sets: %w", err)
	}
	return ids, nil
}

// withParents appends every parent of ids that is not already listed.
// Parents that cannot be resolved are left out.
func (a *Analyzer) withParents(ctx context.Context, repo vcs.Repository, ids []string) []string {
	parents := analyzer.MapOrdered(ids, a.workers, func(id string) []string {
		p, err := repo.Parents(ctx, id)
		if err != nil {
			a.logger.WithField("id", id).WithError(err).Debug("parent lookup failed")
			return nil
		}
		return p
	})

	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		seen[id] = struct{}{}
	}
	out := append([]string(nil), ids...)
	for _, ps := range parents {
		for _, p := range ps {
			if _, ok := seen[p]; ok {
				continue
			}
			seen[p] = struct{}{}
			out = append(out, p)
		}
	}
	if added := len(out) - len(ids); added > 0 {
		a.logger.WithField("count", added).Info("added missing parent change-sets")
	}
	return out
}

// ReadChangeSetList reads one change-set id per line, ignoring blank lines.
func ReadChangeSetList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	ids := []string{}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if id := strings.TrimSpace(scanner.Text()); id != "" {
			ids = append(ids, id)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}
