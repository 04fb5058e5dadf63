package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimplify(t *testing.T) {
	tests := []struct {
		name       string
		redactions []string
		raw        string
		want       string
	}{
		{
			name: "display name drops email",
			raw:  "Jane Q. Public <jane@example.com>",
			want: "Jane Q. Public",
		},
		{
			name: "single capitalized word keeps email",
			raw:  "Jane <jane@example.com>",
			want: "Jane <jane@example.com>",
		},
		{
			name: "lowercase handle keeps email",
			raw:  "jdoe smith <jdoe@example.com>",
			want: "jdoe smith <jdoe@example.com>",
		},
		{
			name: "no email untouched",
			raw:  "Jane Public",
			want: "Jane Public",
		},
		{
			name:       "redaction applied before heuristic",
			redactions: []string{"[bot]"},
			raw:        "release[bot] <ci@x>",
			want:       "release <ci@x>",
		},
		{
			name:       "redaction can enable heuristic",
			redactions: []string{"(Contractor) "},
			raw:        "Ann (Contractor) Lee <ann@x>",
			want:       "Ann Lee",
		},
		{
			name:       "every occurrence removed",
			redactions: []string{"x-"},
			raw:        "x-Al x-Bo <a@b>",
			want:       "Al Bo",
		},
		{
			name: "non-ascii capitals count",
			raw:  "Émile Zola <ez@example.com>",
			want: "Émile Zola",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := New(tt.redactions, nil)
			assert.Equal(t, tt.want, n.Simplify(tt.raw))
		})
	}
}

func TestApplyAliases(t *testing.T) {
	rules, err := ParseAliasRules([]string{
		"Paul Hammant;paul@hammant.org,phammant",
		"Build Bot;ci@",
		"Everyone Else;Hammant",
	})
	require.NoError(t, err)

	n := New(nil, rules)

	assert.Equal(t, "Build Bot", n.ApplyAliases("release <ci@x>"))
	assert.Equal(t, "nobody <n@x>", n.ApplyAliases("nobody <n@x>"))
	// Rule one matches, then rule three matches the already-aliased value.
	assert.Equal(t, "Everyone Else", n.ApplyAliases("phammant <p@x>"))
}

func TestNormalize(t *testing.T) {
	rules, err := ParseAliasRules([]string{"Jane Public;Jane Q. Public"})
	require.NoError(t, err)

	n := New([]string{"[bot]"}, rules)

	assert.Equal(t, "Jane Public", n.Normalize("Jane Q. Public <jane@example.com>"))
	assert.Equal(t, "release <ci@x>", n.Normalize("release[bot] <ci@x>"))
}

func TestParseAliasRule(t *testing.T) {
	rule, err := ParseAliasRule("Paul;a,b,c")
	require.NoError(t, err)
	assert.Equal(t, "Paul", rule.Preferred)
	assert.Equal(t, []string{"a", "b", "c"}, rule.Terms)

	rule, err = ParseAliasRule("Paul;a,b;c,d")
	require.NoError(t, err)
	assert.Equal(t, "Paul", rule.Preferred)
	assert.Equal(t, []string{"a", "b"}, rule.Terms)

	_, err = ParseAliasRule("no separator")
	assert.Error(t, err)

	_, err = ParseAliasRules([]string{"ok;x", "broken"})
	assert.ErrorContains(t, err, "broken")
}

func TestApplyAliases_EmptyTermIgnored(t *testing.T) {
	rules, err := ParseAliasRules([]string{"Catch All;a@x,"})
	require.NoError(t, err)

	n := New(nil, rules)
	assert.Equal(t, "b <b@x>", n.ApplyAliases("b <b@x>"))
	assert.Equal(t, "Catch All", n.ApplyAliases("a <a@x>"))
}
