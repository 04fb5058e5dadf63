package changeset

import (
	"fmt"
	"strings"
	"time"
)

// dateLayouts are tried in order. The first is git's default log/show format.
var dateLayouts = []string{
	"Mon Jan _2 15:04:05 2006 -0700",
	time.RFC3339,
	"2006-01-02 15:04:05 -0700",
	"2006-01-02T15:04:05-0700",
	time.RFC1123Z,
	"Mon, _2 Jan 2006 15:04:05 -0700",
	time.UnixDate,
}

// ParseDate parses a header timestamp, keeping its timezone offset.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}
