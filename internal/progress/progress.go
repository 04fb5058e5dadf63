// Package progress draws a progress bar on stderr while change-sets are processed.
package progress

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/schollz/progressbar/v3"
)

// Tracker wraps a progress bar. It starts as a spinner and switches to a
// bar once the total is known.
type Tracker struct {
	mu    sync.Mutex
	bar   *progressbar.ProgressBar
	out   io.Writer
	label string
	max   int
}

// NewTracker creates a tracker writing to stderr.
func NewTracker(label string) *Tracker {
	return NewTrackerTo(os.Stderr, label)
}

// NewTrackerTo creates a tracker writing to w.
func NewTrackerTo(w io.Writer, label string) *Tracker {
	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetWidth(30),
		progressbar.OptionSetDescription(label),
		progressbar.OptionShowCount(),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetElapsedTime(false),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
	return &Tracker{bar: bar, out: w, label: label, max: -1}
}

// Update moves the bar to current of total. Its signature matches
// analyzer.ProgressFunc so it can be handed to an analyzer tracker.
func (t *Tracker) Update(current, total int, _ string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if total > 0 && total != t.max {
		t.bar.ChangeMax(total)
		t.max = total
	}
	_ = t.bar.Set(current)
}

// FinishSuccess clears the bar completely (no output).
func (t *Tracker) FinishSuccess() {
	t.mu.Lock()
	defer t.mu.Unlock()
	_ = t.bar.Finish()
	_ = t.bar.Clear()
}

// FinishError clears the bar and prints an error message.
func (t *Tracker) FinishError(err error) {
	t.FinishSuccess()
	fmt.Fprintf(t.out, "  %s error: %v\n", t.label, err)
}
