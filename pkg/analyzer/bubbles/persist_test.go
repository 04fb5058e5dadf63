package bubbles

import (
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/panbanda/bubbles/internal/output"
	"github.com/panbanda/bubbles/internal/testutil"
	"github.com/panbanda/bubbles/pkg/changeset"
)

func sampleResult(capture bool) *Result {
	agg := NewAggregator("Example", "https://github.com/acme/app/commit/", capture)
	when := time.Date(2019, 3, 5, 14, 7, 9, 0, time.FixedZone("", 3600))
	agg.Add(CommitStats{ID: "c1", Who: "Jane", When: when.Format(WhenFormat), All: 5, Test: 5, Testable: 5, Pct: 100}, when)
	agg.Add(CommitStats{ID: "c2", Who: "Bob", When: when.Format(WhenFormat), All: 3, Testable: 3}, when.AddDate(0, 1, 0))

	res := &Result{Aggregator: agg, Processed: 2, Bucketed: 2}
	if capture {
		res.ChangeSets = []*changeset.ChangeSet{{
			ID:     "c1",
			Author: "Jane",
			When:   when,
			Chunks: []changeset.Chunk{{From: "a.java", To: "a.java", Lines: []string{"+x"}}},
		}}
	}
	return res
}

func TestResult_Write(t *testing.T) {
	root := filepath.Join(t.TempDir(), "data")
	store := output.NewStore(root)

	require.NoError(t, sampleResult(false).Write(store))

	assert.Equal(t, []string{
		"2019/03/05/index.json",
		"2019/03/days.json",
		"2019/03/index.json",
		"2019/04/05/index.json",
		"2019/04/index.json",
		"2019/index.json",
		"2019/months.json",
		"years.json",
	}, testutil.ListFiles(t, root))

	assert.Equal(t, "[\n  \"2019\"\n]", testutil.ReadFile(t, filepath.Join(root, "years.json")))
	assert.Equal(t, "[\n  \"03\"\n]", testutil.ReadFile(t, filepath.Join(root, "2019", "months.json")))
	assert.Equal(t, "[\n  \"05\"\n]", testutil.ReadFile(t, filepath.Join(root, "2019", "03", "days.json")))

	var bucket Bucket
	require.NoError(t, json.Unmarshal([]byte(testutil.ReadFile(t, filepath.Join(root, "2019", "index.json"))), &bucket))
	assert.Equal(t, "Example", bucket.Description)
	assert.Equal(t, "https://github.com/acme/app/commit/", bucket.BaseURL)
	require.Len(t, bucket.Commits, 2)
	assert.Equal(t, "c1", bucket.Commits[0].ID)

	var raw map[string]any
	require.NoError(t, json.Unmarshal([]byte(testutil.ReadFile(t, filepath.Join(root, "2019", "03", "05", "index.json"))), &raw))
	assert.Contains(t, raw, "commits")
	assert.Contains(t, raw, "description")
	assert.Contains(t, raw, "baseURL")
	commit := raw["commits"].([]any)[0].(map[string]any)
	for _, key := range []string{"id", "who", "when", "all", "test", "testable", "pct"} {
		assert.Contains(t, commit, key)
	}

	day := testutil.ReadFile(t, filepath.Join(root, "2019", "03", "05", "index.json"))
	assert.Contains(t, day, `"pct": 100.0`)
	assert.Contains(t, day, `"when": "2019-03-05T14:07:09+01:00"`)
	month := testutil.ReadFile(t, filepath.Join(root, "2019", "04", "index.json"))
	assert.Contains(t, month, `"pct": 0.0`)
}

func TestResult_WriteIsIdempotent(t *testing.T) {
	root := t.TempDir()

	first := output.NewStore(root)
	require.NoError(t, sampleResult(true).Write(first))
	before := map[string]string{}
	for _, f := range testutil.ListFiles(t, root) {
		before[f] = testutil.ReadFile(t, filepath.Join(root, f))
	}

	second := output.NewStore(root)
	require.NoError(t, sampleResult(true).Write(second))

	assert.Equal(t, 0, second.Written())
	assert.Equal(t, first.Written(), second.Unchanged())
	for f, content := range before {
		assert.Equal(t, content, testutil.ReadFile(t, filepath.Join(root, f)), f)
	}
}

func TestResult_WriteChangeSets(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, sampleResult(true).Write(output.NewStore(root)))

	path := filepath.Join(root, "2019", "03", "05", "14-07-09-c1.commit.json")
	require.True(t, testutil.FileExists(path))

	var cs map[string]any
	require.NoError(t, json.Unmarshal([]byte(testutil.ReadFile(t, path)), &cs))
	assert.Equal(t, "c1", cs["hash"])
	assert.Equal(t, "Jane", cs["who"])
	assert.Contains(t, cs, "chunks")
}

func TestChangeSetPath(t *testing.T) {
	assert.Equal(t, "2020/01/02/03-04-05-abc.commit.json", ChangeSetPath("2020/01/02/03-04-05", "abc"))
}
