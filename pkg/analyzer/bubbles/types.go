package bubbles

import "github.com/panbanda/bubbles/pkg/changeset"

// Result is the outcome of one pipeline run.
type Result struct {
	RepoPath string

	// Total is the number of change-sets considered, parents included.
	Total int
	// Processed counts change-sets that parsed; Bucketed those that were
	// also aggregated.
	Processed int
	Bucketed  int
	// Skipped lists change-sets that could not be read or parsed.
	Skipped []string

	Aggregator *Aggregator

	// ChangeSets holds every parsed change-set when write_json_diffs is on.
	ChangeSets []*changeset.ChangeSet
}
