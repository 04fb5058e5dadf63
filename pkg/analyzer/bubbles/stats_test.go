package bubbles

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/panbanda/bubbles/pkg/changeset"
)

func lines(added, removed int) []string {
	out := []string{"@@ -1 +1 @@", " context"}
	for i := 0; i < added; i++ {
		out = append(out, "+added")
	}
	for i := 0; i < removed; i++ {
		out = append(out, "-removed")
	}
	return out
}

func TestCalculate(t *testing.T) {
	when := time.Date(2019, 3, 7, 10, 11, 12, 0, time.FixedZone("", 3600))
	c := NewClassifier([]string{".java"})

	tests := []struct {
		name   string
		chunks []changeset.Chunk
		want   CommitStats
	}{
		{
			name:   "production file only",
			chunks: []changeset.Chunk{{From: "Foo.java", To: "Foo.java", Lines: lines(3, 1)}},
			want:   CommitStats{All: 4, Testable: 4, Test: 0, Pct: 0.0},
		},
		{
			name:   "test file only",
			chunks: []changeset.Chunk{{From: "src/test/FooTest.java", To: "src/test/FooTest.java", Lines: lines(5, 0)}},
			want:   CommitStats{All: 5, Testable: 5, Test: 5, Pct: 100.0},
		},
		{
			name: "testable plus non-testable",
			chunks: []changeset.Chunk{
				{From: "Foo.java", To: "Foo.java", Lines: lines(1, 1)},
				{From: "README.md", To: "README.md", Lines: lines(6, 4)},
			},
			want: CommitStats{All: 12, Testable: 2, Test: 0, Pct: 0.0},
		},
		{
			name: "test lines outside testable files do not count",
			chunks: []changeset.Chunk{
				{From: "test/data.json", To: "test/data.json", Lines: lines(7, 0)},
				{From: "Foo.java", To: "Foo.java", Lines: lines(3, 0)},
			},
			want: CommitStats{All: 10, Testable: 3, Test: 0, Pct: 0.0},
		},
		{
			name: "mixed",
			chunks: []changeset.Chunk{
				{From: "src/Foo.java", To: "src/Foo.java", Lines: lines(2, 0)},
				{From: "src/test/FooTest.java", To: "src/test/FooTest.java", Lines: lines(1, 0)},
			},
			want: CommitStats{All: 3, Testable: 3, Test: 1, Pct: 33.3},
		},
		{
			name: "no chunks",
			want: CommitStats{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cs := &changeset.ChangeSet{ID: "abc123", Author: "Jane", When: when, Chunks: tt.chunks}

			got := c.Calculate(cs)

			want := tt.want
			want.ID = "abc123"
			want.Who = "Jane"
			want.When = "2019-03-07T10:11:12+01:00"
			assert.Equal(t, want, got)
			assert.LessOrEqual(t, 0, got.Test)
			assert.LessOrEqual(t, got.Test, got.Testable)
			assert.LessOrEqual(t, got.Testable, got.All)
		})
	}
}

func TestPercentage(t *testing.T) {
	tests := []struct {
		test, testable int
		want           float64
	}{
		{0, 0, 0.0},
		{5, 0, 0.0},
		{0, 4, 0.0},
		{4, 4, 100.0},
		{1, 3, 33.3},
		{2, 3, 66.7},
		{1, 8, 12.5},
		{1, 16, 6.2},
		{3, 16, 18.8},
		{1, 7, 14.3},
		// Decimal halves that are not exact in binary round by their stored value.
		{1, 2000, 0.1},
		{3, 2000, 0.1},
		{7, 2000, 0.3},
		{1, 40, 2.5},
		{1, 400, 0.2},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Percentage(tt.test, tt.testable), "%d/%d", tt.test, tt.testable)
	}
}

func TestCalculate_UTCOffset(t *testing.T) {
	cs := &changeset.ChangeSet{ID: "u", When: time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)}
	got := NewClassifier([]string{".go"}).Calculate(cs)
	assert.Equal(t, "2020-01-02T03:04:05+00:00", got.When)
}

func TestCommitStats_MarshalJSON(t *testing.T) {
	tests := []struct {
		pct  float64
		want string
	}{
		{100, `"pct":100.0`},
		{0, `"pct":0.0`},
		{33.3, `"pct":33.3`},
	}
	for _, tt := range tests {
		data, err := json.Marshal(CommitStats{ID: "a", Pct: tt.pct})
		require.NoError(t, err)
		assert.Contains(t, string(data), tt.want)
	}

	data, err := json.Marshal(CommitStats{ID: "a", Who: "w", When: "t", All: 3, Test: 1, Testable: 2, Pct: 50})
	require.NoError(t, err)
	assert.Equal(t, `{"id":"a","who":"w","when":"t","all":3,"test":1,"testable":2,"pct":50.0}`, string(data))

	var back CommitStats
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, 50.0, back.Pct)
	assert.Equal(t, 2, back.Testable)
}
