package bubbles

import (
	"strings"

	"github.com/panbanda/bubbles/pkg/changeset"
)

// Classification describes one chunk as seen by the coverage metric.
type Classification struct {
	Testable     bool
	IsTest       bool
	ChangedLines int
}

// TestPathPredicate reports whether a file path belongs to test code.
type TestPathPredicate func(path string) bool

var testPathMarkers = []string{"/test", "test/", ".Test", "tests/"}

// DefaultTestPredicate matches paths containing any of the fixed test
// markers. It is a plain substring match, so "latest/" also counts.
func DefaultTestPredicate(path string) bool {
	for _, marker := range testPathMarkers {
		if strings.Contains(path, marker) {
			return true
		}
	}
	return false
}

// Classifier decides whether chunks are testable and whether they are tests.
type Classifier struct {
	suffixes []string
	isTest   TestPathPredicate
}

// ClassifierOption configures a Classifier.
type ClassifierOption func(*Classifier)

// WithTestPredicate replaces the default test-path predicate.
func WithTestPredicate(p TestPathPredicate) ClassifierOption {
	return func(c *Classifier) {
		if p != nil {
			c.isTest = p
		}
	}
}

// NewClassifier creates a classifier for the given testable file suffixes.
func NewClassifier(suffixes []string, opts ...ClassifierOption) *Classifier {
	c := &Classifier{
		suffixes: append([]string(nil), suffixes...),
		isTest:   DefaultTestPredicate,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Classify inspects a single chunk.
func (c *Classifier) Classify(chunk changeset.Chunk) Classification {
	testable := c.hasTestableSuffix(chunk.From) || c.hasTestableSuffix(chunk.To)
	return Classification{
		Testable:     testable,
		IsTest:       c.isTest(chunk.From) || c.isTest(chunk.To),
		ChangedLines: countChangedLines(chunk.Lines),
	}
}

func (c *Classifier) hasTestableSuffix(path string) bool {
	for _, suffix := range c.suffixes {
		if strings.HasSuffix(path, suffix) {
			return true
		}
	}
	return false
}

// countChangedLines counts additions and deletions.
func countChangedLines(lines []string) int {
	n := 0
	for _, line := range lines {
		if strings.HasPrefix(line, "+") || strings.HasPrefix(line, "-") {
			n++
		}
	}
	return n
}
