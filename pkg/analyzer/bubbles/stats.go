package bubbles

import (
	"encoding/json"
	"strconv"

	"github.com/panbanda/bubbles/pkg/changeset"
)

// WhenFormat is the layout of CommitStats.When: ISO-8601 with a numeric
// offset, never "Z".
const WhenFormat = "2006-01-02T15:04:05-07:00"

// CommitStats is the per-change-set record stored in every bucket.
type CommitStats struct {
	ID       string  `json:"id"`
	Who      string  `json:"who"`
	When     string  `json:"when"`
	All      int     `json:"all"`
	Test     int     `json:"test"`
	Testable int     `json:"testable"`
	Pct      float64 `json:"pct"`
}

// MarshalJSON writes pct with exactly one decimal, so 100 reads "100.0".
func (c CommitStats) MarshalJSON() ([]byte, error) {
	type plain CommitStats
	return json.Marshal(struct {
		plain
		Pct json.RawMessage `json:"pct"`
	}{plain(c), json.RawMessage(strconv.FormatFloat(c.Pct, 'f', 1, 64))})
}

// Calculate classifies every chunk of cs and sums the line counts.
// Test lines are only counted for chunks that are also testable.
func (c *Classifier) Calculate(cs *changeset.ChangeSet) CommitStats {
	rec := CommitStats{
		ID:   cs.ID,
		Who:  cs.Author,
		When: cs.When.Format(WhenFormat),
	}
	for _, chunk := range cs.Chunks {
		cl := c.Classify(chunk)
		rec.All += cl.ChangedLines
		if !cl.Testable {
			continue
		}
		rec.Testable += cl.ChangedLines
		if cl.IsTest {
			rec.Test += cl.ChangedLines
		}
	}
	rec.Pct = Percentage(rec.Test, rec.Testable)
	return rec
}

// Percentage returns test as a percentage of testable rounded to one
// decimal place. It is 0 when testable is 0.
//
// Rounding works on the exact binary value of the quotient and breaks true
// ties to even, so 0.05 (stored slightly above) becomes 0.1 while 0.15
// (stored slightly below) becomes 0.1.
func Percentage(test, testable int) float64 {
	if testable == 0 {
		return 0
	}
	v := float64(test) * 100 / float64(testable)
	rounded, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 1, 64), 64)
	if err != nil {
		return v
	}
	return rounded
}
