package mcpserver

func describeSummary() string {
	return `Walks the git history of a repository and reports, per year, how many
changed lines landed in testable source files and how many of those were in
test files.

USE WHEN:
- Checking whether a team writes tests alongside production changes
- Comparing test discipline between years
- Spotting a downward trend before it becomes a coverage problem

INTERPRETING RESULTS:
- pct: test lines / testable lines for the year, one decimal
- mean_pct, median_pct, p90_pct: distribution of per-change-set pct
- trend: least-squares slope of yearly pct in points per year
- A change-set only counts when it touched a testable file

METRICS RETURNED:
- Per-year: commits, all, testable, test, pct, active_days
- Totals across all years
- Processed and skipped change-set counts

Requires a git repository and a .commit-bubbles configuration file (or an explicit config path).`
}

func describeBucket() string {
	return `Returns the change-sets in one time bucket: a year ("2019"), a month
("2019/03") or a day ("2019/03/05").

USE WHEN:
- Drilling into a year or month flagged by coverage_summary
- Listing who changed testable code without tests on a given day

INTERPRETING RESULTS:
- Each commit has id, who, when, all, test, testable and pct
- test > 0 means the change-set touched test files
- baseURL + id links to the change-set in the hosting service

METRICS RETURNED:
- commits: per change-set stats in processing order
- description and baseURL from the configuration

Requires a git repository and a .commit-bubbles configuration file (or an explicit config path).`
}

func describeCommitStats() string {
	return `Computes line counts for specific change-sets, including ones that did
not touch any testable file.

USE WHEN:
- Reviewing a single change-set or a release range
- Explaining why a change-set is missing from the buckets

INTERPRETING RESULTS:
- all: every changed line in the change-set
- testable: changed lines in files with a configured testable suffix
- test: testable lines that are also in test paths
- pct: test / testable, 0 when nothing was testable

METRICS RETURNED:
- One record per change-set id that could be read
- skipped: ids that could not be read or parsed

Requires a git repository and a .commit-bubbles configuration file (or an explicit config path).`
}
