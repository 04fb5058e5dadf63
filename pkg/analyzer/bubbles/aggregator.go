package bubbles

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/RoaringBitmap/roaring/v2"
)

// Bucket holds every commit record for one calendar period.
type Bucket struct {
	Commits     []CommitStats `json:"commits"`
	Description string        `json:"description"`
	BaseURL     string        `json:"baseURL"`
}

// Aggregator groups commit records into year, month and day buckets and
// keeps the navigation index of days with test activity.
// It is not safe for concurrent use.
type Aggregator struct {
	description string
	baseURL     string
	captureAll  bool

	buckets map[string]*Bucket
	keys    []string
	// active holds yyyymmdd values, so iteration order is calendar order.
	active *roaring.Bitmap
}

// NewAggregator creates an empty aggregator. When captureAll is set every
// record is bucketed, not only those with testable lines.
func NewAggregator(description, baseURL string, captureAll bool) *Aggregator {
	return &Aggregator{
		description: description,
		baseURL:     baseURL,
		captureAll:  captureAll,
		buckets:     make(map[string]*Bucket),
		active:      roaring.New(),
	}
}

// Append adds rec to the bucket for key, creating the bucket on first use.
func (a *Aggregator) Append(key string, rec CommitStats) {
	b, ok := a.buckets[key]
	if !ok {
		b = &Bucket{
			Commits:     []CommitStats{},
			Description: a.description,
			BaseURL:     a.baseURL,
		}
		a.buckets[key] = b
		a.keys = append(a.keys, key)
	}
	b.Commits = append(b.Commits, rec)
}

// MarkActive registers a day in the navigation index. Registering the
// same day twice has no effect.
func (a *Aggregator) MarkActive(year, month, day string) error {
	y, err := strconv.Atoi(year)
	if err != nil {
		return fmt.Errorf("invalid year %q: %w", year, err)
	}
	m, err := strconv.Atoi(month)
	if err != nil || m < 1 || m > 12 {
		return fmt.Errorf("invalid month %q", month)
	}
	d, err := strconv.Atoi(day)
	if err != nil || d < 1 || d > 31 {
		return fmt.Errorf("invalid day %q", day)
	}
	if y < 0 || y > 9999 {
		return fmt.Errorf("invalid year %q", year)
	}
	a.active.Add(uint32(y*10000 + m*100 + d))
	return nil
}

// Add buckets rec under the day, month and year of when. It reports
// whether the record was bucketed.
func (a *Aggregator) Add(rec CommitStats, when time.Time) bool {
	if rec.Testable == 0 && !a.captureAll {
		return false
	}
	year, month, day := when.Format("2006"), when.Format("01"), when.Format("02")

	a.Append(year+"/"+month+"/"+day, rec)
	a.Append(year+"/"+month, rec)
	a.Append(year, rec)

	if rec.Test > 0 {
		// The components come from time.Format and always parse.
		_ = a.MarkActive(year, month, day)
	}
	return true
}

// Keys returns every bucket key in ascending order.
func (a *Aggregator) Keys() []string {
	keys := append([]string(nil), a.keys...)
	sort.Strings(keys)
	return keys
}

// Bucket returns the bucket stored under key.
func (a *Aggregator) Bucket(key string) (*Bucket, bool) {
	b, ok := a.buckets[key]
	return b, ok
}

// Len returns the number of buckets.
func (a *Aggregator) Len() int {
	return len(a.keys)
}

// Years lists the years with test activity.
func (a *Aggregator) Years() []string {
	years := []string{}
	last := -1
	it := a.active.Iterator()
	for it.HasNext() {
		y := int(it.Next() / 10000)
		if y != last {
			years = append(years, fmt.Sprintf("%04d", y))
			last = y
		}
	}
	return years
}

// Months lists the months of year with test activity.
func (a *Aggregator) Months(year string) []string {
	months := []string{}
	y, err := strconv.Atoi(year)
	if err != nil {
		return months
	}
	last := -1
	a.scan(uint32(y*10000), uint32((y+1)*10000), func(v uint32) {
		m := int(v/100) % 100
		if m != last {
			months = append(months, fmt.Sprintf("%02d", m))
			last = m
		}
	})
	return months
}

// Days lists the days of year/month with test activity.
func (a *Aggregator) Days(year, month string) []string {
	days := []string{}
	y, err := strconv.Atoi(year)
	if err != nil {
		return days
	}
	m, err := strconv.Atoi(month)
	if err != nil {
		return days
	}
	lo := uint32(y*10000 + m*100)
	a.scan(lo, lo+100, func(v uint32) {
		days = append(days, fmt.Sprintf("%02d", v%100))
	})
	return days
}

// scan visits the active values in [lo, hi).
func (a *Aggregator) scan(lo, hi uint32, fn func(uint32)) {
	it := a.active.Iterator()
	it.AdvanceIfNeeded(lo)
	for it.HasNext() {
		v := it.Next()
		if v >= hi {
			return
		}
		fn(v)
	}
}
