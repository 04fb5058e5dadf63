package bubbles

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/panbanda/bubbles/internal/output"
)

func summaryResult() *Result {
	agg := NewAggregator("Example", "", false)
	add := func(id string, year int, test, testable int) {
		when := time.Date(year, 6, 1, 0, 0, 0, 0, time.UTC)
		agg.Add(CommitStats{ID: id, All: testable, Testable: testable, Test: test, Pct: Percentage(test, testable)}, when)
	}
	add("a", 2018, 0, 10)
	add("b", 2018, 2, 10)
	add("c", 2019, 5, 10)
	add("d", 2020, 1000, 1000)
	return &Result{Aggregator: agg, Processed: 5, Skipped: []string{"x"}}
}

func TestSummarize(t *testing.T) {
	s := Summarize(summaryResult(), "Example")

	require.Len(t, s.Years, 3)
	assert.Equal(t, YearSummary{Year: "2018", Commits: 2, All: 20, Testable: 20, Test: 2, Pct: 10, MeanPct: 10, MedianPct: 10, P90Pct: 20, ActiveDays: 1}, s.Years[0])
	assert.Equal(t, "2019", s.Years[1].Year)
	assert.Equal(t, 50.0, s.Years[1].Pct)
	assert.Equal(t, 100.0, s.Years[2].Pct)

	assert.Equal(t, "total", s.Total.Year)
	assert.Equal(t, 4, s.Total.Commits)
	assert.Equal(t, 1030, s.Total.Testable)
	assert.Equal(t, 1007, s.Total.Test)
	assert.Equal(t, Percentage(1007, 1030), s.Total.Pct)
	assert.Equal(t, 3, s.Total.ActiveDays)
	assert.Equal(t, 5, s.Processed)
	assert.Equal(t, 1, s.Skipped)
	// Yearly pct 10, 50, 100: slope 45.
	assert.Equal(t, 45.0, s.Trend)
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(&Result{Aggregator: NewAggregator("", "", false)}, "")
	assert.Empty(t, s.Years)
	assert.Equal(t, 0.0, s.Trend)
	assert.Equal(t, 0.0, s.Total.Pct)
}

func TestSummary_Render(t *testing.T) {
	s := Summarize(summaryResult(), "Example")

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, output.NewWriterFormatter(output.FormatText, &buf, false).Output(s))
		out := buf.String()
		assert.Contains(t, out, "Commit bubbles: Example")
		assert.Contains(t, out, "2019")
		assert.Contains(t, out, "1,030")
		assert.Contains(t, out, "trend +45.0 points/year")
	})

	t.Run("markdown", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, output.NewWriterFormatter(output.FormatMarkdown, &buf, false).Output(s))
		out := buf.String()
		assert.Contains(t, out, "## Commit bubbles: Example")
		assert.Contains(t, out, "| Year | Commits |")
		assert.Contains(t, out, "| 2018 | 2 | 20 | 20 | 2 | 10.0% |")
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, output.NewWriterFormatter(output.FormatJSON, &buf, false).Output(s))
		var decoded Summary
		require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
		assert.Equal(t, s.Years, decoded.Years)
	})

	t.Run("toon", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, output.NewWriterFormatter(output.FormatTOON, &buf, false).Output(s))
		assert.Contains(t, buf.String(), "description")
	})
}
