package bubbles

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 12, 0, 0, 0, time.UTC)
}

func TestAggregator_Append(t *testing.T) {
	agg := NewAggregator("desc", "https://example.com/commit/", false)
	rec := CommitStats{ID: "a", Testable: 1}

	agg.Append("2020", rec)
	rec.ID = "b"
	agg.Append("2020", rec)

	b, ok := agg.Bucket("2020")
	require.True(t, ok)
	assert.Equal(t, "desc", b.Description)
	assert.Equal(t, "https://example.com/commit/", b.BaseURL)
	require.Len(t, b.Commits, 2)
	assert.Equal(t, "a", b.Commits[0].ID)
	assert.Equal(t, "b", b.Commits[1].ID)
}

func TestAggregator_AddBucketContainment(t *testing.T) {
	agg := NewAggregator("desc", "url", false)

	recs := []struct {
		rec  CommitStats
		when time.Time
	}{
		{CommitStats{ID: "a", All: 4, Testable: 4, Test: 2, Pct: 50}, day(2020, 1, 5)},
		{CommitStats{ID: "b", All: 2, Testable: 2}, day(2020, 1, 5)},
		{CommitStats{ID: "c", All: 3, Testable: 3, Test: 3, Pct: 100}, day(2020, 2, 1)},
		{CommitStats{ID: "d", All: 1, Testable: 1, Test: 1, Pct: 100}, day(2019, 12, 31)},
	}
	for _, r := range recs {
		assert.True(t, agg.Add(r.rec, r.when))
	}

	assert.Equal(t, []string{
		"2019", "2019/12", "2019/12/31",
		"2020", "2020/01", "2020/01/05", "2020/02", "2020/02/01",
	}, agg.Keys())

	for _, key := range agg.Keys() {
		if strings.Count(key, "/") != 2 {
			continue
		}
		dayBucket, _ := agg.Bucket(key)
		month, ok := agg.Bucket(key[:7])
		require.True(t, ok)
		year, ok := agg.Bucket(key[:4])
		require.True(t, ok)
		for _, rec := range dayBucket.Commits {
			assert.Contains(t, month.Commits, rec)
			assert.Contains(t, year.Commits, rec)
		}
	}

	b, _ := agg.Bucket("2020/01/05")
	require.Len(t, b.Commits, 2)
	assert.Equal(t, "a", b.Commits[0].ID)
	assert.Equal(t, "b", b.Commits[1].ID)
}

func TestAggregator_AddGate(t *testing.T) {
	t.Run("zero testable skipped", func(t *testing.T) {
		agg := NewAggregator("", "", false)
		assert.False(t, agg.Add(CommitStats{ID: "a", All: 10}, day(2021, 6, 1)))
		assert.Empty(t, agg.Keys())
		assert.Equal(t, 0, agg.Len())
	})

	t.Run("capture all keeps zero testable", func(t *testing.T) {
		agg := NewAggregator("", "", true)
		assert.True(t, agg.Add(CommitStats{ID: "a", All: 10}, day(2021, 6, 1)))
		assert.Equal(t, []string{"2021", "2021/06", "2021/06/01"}, agg.Keys())
		assert.Empty(t, agg.Years())
	})
}

func TestAggregator_NavigationIndex(t *testing.T) {
	agg := NewAggregator("", "", false)

	agg.Add(CommitStats{ID: "a", Testable: 1, Test: 1}, day(2020, 3, 9))
	agg.Add(CommitStats{ID: "b", Testable: 1, Test: 1}, day(2020, 3, 9))
	agg.Add(CommitStats{ID: "c", Testable: 1, Test: 1}, day(2020, 3, 2))
	agg.Add(CommitStats{ID: "d", Testable: 1, Test: 1}, day(2020, 11, 30))
	agg.Add(CommitStats{ID: "e", Testable: 5}, day(2020, 4, 1))
	agg.Add(CommitStats{ID: "f", Testable: 1, Test: 1}, day(2018, 1, 1))

	assert.Equal(t, []string{"2018", "2020"}, agg.Years())
	assert.Equal(t, []string{"01"}, agg.Months("2018"))
	assert.Equal(t, []string{"03", "11"}, agg.Months("2020"))
	assert.Equal(t, []string{"02", "09"}, agg.Days("2020", "03"))
	assert.Equal(t, []string{"30"}, agg.Days("2020", "11"))
	assert.Empty(t, agg.Days("2020", "04"))
	assert.Empty(t, agg.Months("2019"))
	assert.Empty(t, agg.Months("bogus"))
	assert.Empty(t, agg.Days("2020", "bogus"))

	// Every indexed day has a bucketed record with test > 0.
	for _, y := range agg.Years() {
		for _, m := range agg.Months(y) {
			for _, d := range agg.Days(y, m) {
				b, ok := agg.Bucket(y + "/" + m + "/" + d)
				require.True(t, ok)
				found := false
				for _, rec := range b.Commits {
					if rec.Test > 0 {
						found = true
					}
				}
				assert.True(t, found, "%s/%s/%s", y, m, d)
			}
		}
	}
}

func TestAggregator_MarkActive(t *testing.T) {
	agg := NewAggregator("", "", false)

	require.NoError(t, agg.MarkActive("2022", "07", "04"))
	require.NoError(t, agg.MarkActive("2022", "07", "04"))
	require.NoError(t, agg.MarkActive("2022", "7", "4"))

	assert.Equal(t, []string{"2022"}, agg.Years())
	assert.Equal(t, []string{"07"}, agg.Months("2022"))
	assert.Equal(t, []string{"04"}, agg.Days("2022", "07"))

	assert.Error(t, agg.MarkActive("year", "07", "04"))
	assert.Error(t, agg.MarkActive("2022", "13", "04"))
	assert.Error(t, agg.MarkActive("2022", "07", "0"))
	assert.Error(t, agg.MarkActive("12345", "07", "04"))
}

func TestAggregator_EmptyIndex(t *testing.T) {
	agg := NewAggregator("", "", false)
	assert.NotNil(t, agg.Years())
	assert.Empty(t, agg.Years())
}
