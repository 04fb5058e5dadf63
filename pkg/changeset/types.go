// Package changeset parses the textual form of a single revision
// (header block plus unified diff) into a structured record.
package changeset

import (
	"errors"
	"time"
)

var (
	// ErrUndecodable is returned when the raw text of a change-set is not valid UTF-8.
	ErrUndecodable = errors.New("change-set text is not valid UTF-8")
	// ErrMissingHeader is returned when the author or date header cannot be found or read.
	ErrMissingHeader = errors.New("change-set header is incomplete")
)

// ChangeSet is one revision: who made it, when, why, and which files it touched.
type ChangeSet struct {
	ID      string    `json:"hash"`
	Author  string    `json:"who"`
	When    time.Time `json:"when"`
	Message string    `json:"msg"`
	Chunks  []Chunk   `json:"chunks"`
}

// Chunk is the hunk text of one file within a change-set.
type Chunk struct {
	From  string   `json:"from"`
	To    string   `json:"to"`
	Lines []string `json:"lines"`
}

// Date returns the zero-padded year, month, and day used as bucket keys.
func (c *ChangeSet) Date() (year, month, day string) {
	return c.When.Format("2006"), c.When.Format("01"), c.When.Format("02")
}
