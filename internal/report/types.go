package report

import "github.com/panbanda/bubbles/pkg/analyzer/bubbles"

// PageData is everything the index.html template needs.
type PageData struct {
	Title       string
	Description string
	BaseURL     string
	Years       []YearTotals
	Total       YearTotals
	// ActiveYears are the years listed in years.json.
	ActiveYears []string
}

// YearTotals sums the records of one year bucket.
type YearTotals struct {
	Year     string
	Commits  int
	All      int
	Testable int
	Test     int
	Pct      float64
}

// PctClass returns the CSS class for the year's coverage.
func (y YearTotals) PctClass() string {
	switch {
	case y.Pct >= 50:
		return "good"
	case y.Pct >= 20:
		return "warning"
	default:
		return "danger"
	}
}

func (y *YearTotals) add(c bubbles.CommitStats) {
	y.Commits++
	y.All += c.All
	y.Testable += c.Testable
	y.Test += c.Test
}

func (y *YearTotals) finish() {
	y.Pct = bubbles.Percentage(y.Test, y.Testable)
}

// yearBucket is a year's index.json together with its key.
type yearBucket struct {
	Year   string
	Bucket bubbles.Bucket
}
