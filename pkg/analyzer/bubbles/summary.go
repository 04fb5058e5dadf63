package bubbles

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"

	"github.com/dustin/go-humanize"
	"gonum.org/v1/gonum/stat"

	"github.com/panbanda/bubbles/internal/output"
	"github.com/panbanda/bubbles/pkg/stats"
)

// YearSummary aggregates the year bucket of one calendar year.
type YearSummary struct {
	Year     string `json:"year" toon:"year"`
	Commits  int    `json:"commits" toon:"commits"`
	All      int    `json:"all" toon:"all"`
	Testable int    `json:"testable" toon:"testable"`
	Test     int    `json:"test" toon:"test"`
	// Pct is the year's test lines over its testable lines.
	Pct float64 `json:"pct" toon:"pct"`
	// MeanPct, MedianPct and P90Pct are taken over per-commit percentages.
	MeanPct   float64 `json:"mean_pct" toon:"mean_pct"`
	MedianPct float64 `json:"median_pct" toon:"median_pct"`
	P90Pct    float64 `json:"p90_pct" toon:"p90_pct"`
	// ActiveDays counts days with test activity.
	ActiveDays int `json:"active_days" toon:"active_days"`
}

// Summary describes a pipeline run for the terminal.
type Summary struct {
	Description string        `json:"description" toon:"description"`
	Processed   int           `json:"processed" toon:"processed"`
	Skipped     int           `json:"skipped" toon:"skipped"`
	Years       []YearSummary `json:"years" toon:"years"`
	Total       YearSummary   `json:"total" toon:"total"`
	// Trend is the least-squares slope of the yearly percentage, in
	// percentage points per year. It is 0 with fewer than two years.
	Trend float64 `json:"trend" toon:"trend"`
}

// Summarize builds a summary from the year buckets of res.
func Summarize(res *Result, description string) *Summary {
	s := &Summary{
		Description: description,
		Processed:   res.Processed,
		Skipped:     len(res.Skipped),
		Years:       []YearSummary{},
	}

	agg := res.Aggregator
	var allPcts []float64
	for _, key := range agg.Keys() {
		if len(key) != 4 {
			continue
		}
		b, _ := agg.Bucket(key)
		ys, pcts := summarizeBucket(key, b)
		for _, month := range agg.Months(key) {
			ys.ActiveDays += len(agg.Days(key, month))
		}
		s.Years = append(s.Years, ys)
		allPcts = append(allPcts, pcts...)

		s.Total.Commits += ys.Commits
		s.Total.All += ys.All
		s.Total.Testable += ys.Testable
		s.Total.Test += ys.Test
		s.Total.ActiveDays += ys.ActiveDays
	}

	s.Total.Year = "total"
	s.Total.Pct = Percentage(s.Total.Test, s.Total.Testable)
	s.Total.MeanPct, s.Total.MedianPct, s.Total.P90Pct = centre(allPcts)
	s.Trend = trend(s.Years)
	return s
}

func summarizeBucket(year string, b *Bucket) (YearSummary, []float64) {
	ys := YearSummary{Year: year, Commits: len(b.Commits)}
	pcts := make([]float64, 0, len(b.Commits))
	for _, c := range b.Commits {
		ys.All += c.All
		ys.Testable += c.Testable
		ys.Test += c.Test
		pcts = append(pcts, c.Pct)
	}
	ys.Pct = Percentage(ys.Test, ys.Testable)
	ys.MeanPct, ys.MedianPct, ys.P90Pct = centre(pcts)
	return ys, pcts
}

// centre returns the mean, median and 90th percentile of xs, rounded to
// one decimal.
func centre(xs []float64) (mean, median, p90 float64) {
	if len(xs) == 0 {
		return 0, 0, 0
	}
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)
	return round1(stat.Mean(sorted, nil)), round1(stats.Median(sorted)), stats.Percentile(sorted, 90)
}

func trend(years []YearSummary) float64 {
	if len(years) < 2 {
		return 0
	}
	xs := make([]float64, 0, len(years))
	ys := make([]float64, 0, len(years))
	for _, y := range years {
		n, err := strconv.Atoi(y.Year)
		if err != nil {
			continue
		}
		xs = append(xs, float64(n))
		ys = append(ys, y.Pct)
	}
	if len(xs) < 2 {
		return 0
	}
	_, slope := stat.LinearRegression(xs, ys, nil, false)
	return round1(slope)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func (s *Summary) headers() []string {
	return []string{"Year", "Commits", "Lines", "Testable", "Test", "Pct", "Mean", "Median", "Active days"}
}

func (s *Summary) row(y YearSummary, colored bool) []string {
	pct := fmt.Sprintf("%.1f%%", y.Pct)
	if colored {
		pct = output.PctColor(y.Pct, pct)
	}
	return []string{
		y.Year,
		humanize.Comma(int64(y.Commits)),
		humanize.Comma(int64(y.All)),
		humanize.Comma(int64(y.Testable)),
		humanize.Comma(int64(y.Test)),
		pct,
		fmt.Sprintf("%.1f", y.MeanPct),
		fmt.Sprintf("%.1f", y.MedianPct),
		strconv.Itoa(y.ActiveDays),
	}
}

func (s *Summary) table(colored bool) *output.Table {
	rows := make([][]string, 0, len(s.Years))
	for _, y := range s.Years {
		rows = append(rows, s.row(y, colored))
	}
	title := "Commit bubbles"
	if s.Description != "" {
		title += ": " + s.Description
	}
	return output.NewTable(title, s.headers(), rows, s.row(s.Total, false), s)
}

func (s *Summary) footnote() string {
	return fmt.Sprintf("%s change-sets processed, %s skipped, trend %+.1f points/year",
		humanize.Comma(int64(s.Processed)), humanize.Comma(int64(s.Skipped)), s.Trend)
}

func (s *Summary) RenderText(w io.Writer, colored bool) error {
	if err := s.table(colored).RenderText(w, colored); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, s.footnote())
	return err
}

func (s *Summary) RenderMarkdown(w io.Writer) error {
	if err := s.table(false).RenderMarkdown(w); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "_%s_\n", s.footnote())
	return err
}

func (s *Summary) RenderData() any {
	return s
}

var _ output.Renderable = (*Summary)(nil)
