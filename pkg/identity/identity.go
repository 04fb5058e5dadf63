// Package identity turns raw "Name <email>" author strings into canonical identities.
package identity

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

const emailDelimiter = " <"

// AliasRule maps any author containing one of Terms to Preferred.
type AliasRule struct {
	Preferred string
	Terms     []string
}

// ParseAliasRule parses "preferred;term1,term2". Fields after a second
// ";" are ignored.
func ParseAliasRule(s string) (AliasRule, error) {
	fields := strings.Split(s, ";")
	if len(fields) < 2 {
		return AliasRule{}, fmt.Errorf("alias %q: expected \"preferred;term1,term2\"", s)
	}
	return AliasRule{Preferred: fields[0], Terms: strings.Split(fields[1], ",")}, nil
}

// ParseAliasRules parses rules in order, failing on the first malformed one.
func ParseAliasRules(rules []string) ([]AliasRule, error) {
	parsed := make([]AliasRule, 0, len(rules))
	for _, r := range rules {
		rule, err := ParseAliasRule(r)
		if err != nil {
			return nil, err
		}
		parsed = append(parsed, rule)
	}
	return parsed, nil
}

// Normalizer applies redactions and alias rules to author strings.
type Normalizer struct {
	redactions []string
	aliases    []AliasRule
}

// New creates a Normalizer. Rules are applied in the order given.
func New(redactions []string, aliases []AliasRule) *Normalizer {
	return &Normalizer{redactions: redactions, aliases: aliases}
}

// Normalize returns the canonical identity for a raw author string.
func (n *Normalizer) Normalize(raw string) string {
	return n.ApplyAliases(n.Simplify(raw))
}

// Simplify removes redactions and drops the email when the name part
// already looks like a real display name (more than one capitalized word).
func (n *Normalizer) Simplify(raw string) string {
	who := raw
	for _, r := range n.redactions {
		if r == "" {
			continue
		}
		who = strings.ReplaceAll(who, r, "")
	}

	name, _, ok := strings.Cut(who, emailDelimiter)
	if !ok {
		return who
	}
	if capitalizedWords(name) > 1 {
		return name
	}
	return who
}

// ApplyAliases runs every rule in order. Each matching term overwrites the
// result, so a later rule can override an earlier one. Empty terms never match.
func (n *Normalizer) ApplyAliases(who string) string {
	for _, rule := range n.aliases {
		for _, term := range rule.Terms {
			if term != "" && strings.Contains(who, term) {
				who = rule.Preferred
			}
		}
	}
	return who
}

func capitalizedWords(s string) int {
	count := 0
	for _, part := range strings.Split(s, " ") {
		r, _ := utf8.DecodeRuneInString(part)
		if part != "" && unicode.IsUpper(r) {
			count++
		}
	}
	return count
}
