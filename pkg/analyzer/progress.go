package analyzer

import (
	"context"
	"sync/atomic"
)

// ProgressFunc is called after each revision is processed with the running
// count, the expected total, and the revision id.
type ProgressFunc func(current, total int, id string)

// Tracker counts processed revisions. It is safe for concurrent use.
type Tracker struct {
	total    atomic.Int32
	current  atomic.Int32
	skipped  atomic.Int32
	callback ProgressFunc
}

// NewTracker creates a tracker that invokes callback on each Tick.
func NewTracker(callback ProgressFunc) *Tracker {
	return &Tracker{callback: callback}
}

// SetTotal sets the expected number of revisions.
func (t *Tracker) SetTotal(n int) {
	t.total.Store(int32(n))
}

// Tick marks id as processed.
func (t *Tracker) Tick(id string) {
	current := int(t.current.Add(1))
	if t.callback != nil {
		t.callback(current, int(t.total.Load()), id)
	}
}

// Skip marks id as processed but skipped.
func (t *Tracker) Skip(id string) {
	t.skipped.Add(1)
	t.Tick(id)
}

// Current returns the number of processed revisions.
func (t *Tracker) Current() int {
	return int(t.current.Load())
}

// Skipped returns how many of the processed revisions were skipped.
func (t *Tracker) Skipped() int {
	return int(t.skipped.Load())
}

// Total returns the expected number of revisions.
func (t *Tracker) Total() int {
	return int(t.total.Load())
}

type trackerKey struct{}

// WithTracker returns a context that carries t.
func WithTracker(ctx context.Context, t *Tracker) context.Context {
	return context.WithValue(ctx, trackerKey{}, t)
}

// TrackerFromContext returns the tracker carried by ctx, or nil.
func TrackerFromContext(ctx context.Context) *Tracker {
	if t, ok := ctx.Value(trackerKey{}).(*Tracker); ok {
		return t
	}
	return nil
}
