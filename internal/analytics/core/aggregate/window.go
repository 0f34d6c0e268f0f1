// Package aggregate holds the per-guild analytics state: the selected date
// window, day-bucketed entity statistics, phrase text and the multi-granularity
// time series. Nothing here is safe for concurrent use; a guild's aggregators
// are owned by a single goroutine.
package aggregate

import "guild-analytics-service/internal/analytics/core/domain"

// DateWindow tracks the selected [from, to] range and the observed data span.
type DateWindow struct {
	from, to         domain.Date
	lastFrom, lastTo domain.Date
	start, end       domain.Date

	observed bool
	// an endpoint is pinned while it still sits on the observed extreme and
	// follows the extreme as it widens
	fromPinned, toPinned bool
}

func NewDateWindow() *DateWindow {
	return &DateWindow{fromPinned: true, toPinned: true}
}

func (w *DateWindow) From() domain.Date  { return w.from }
func (w *DateWindow) To() domain.Date    { return w.to }
func (w *DateWindow) Start() domain.Date { return w.start }
func (w *DateWindow) End() domain.Date   { return w.end }

// Observed reports whether any record has been observed yet.
func (w *DateWindow) Observed() bool { return w.observed }

// Observe widens the observed span to include d. It returns true when the
// span widened.
func (w *DateWindow) Observe(d domain.Date) bool {
	if !w.observed {
		w.observed = true
		w.start, w.end = d, d
		w.from, w.to = d, d
		return true
	}

	widened := false
	if d.Before(w.start) {
		w.start = d
		if w.fromPinned {
			w.from = d
		}
		widened = true
	}
	if d.After(w.end) {
		w.end = d
		if w.toPinned {
			w.to = d
		}
		widened = true
	}
	return widened
}

// SetFrom moves the lower bound, clamped to the current upper bound.
func (w *DateWindow) SetFrom(d domain.Date) {
	if d.After(w.to) {
		d = w.to
	}
	w.from = d
	w.fromPinned = w.observed && !d.After(w.start)
}

// SetTo moves the upper bound, clamped to the current lower bound.
func (w *DateWindow) SetTo(d domain.Date) {
	if d.Before(w.from) {
		d = w.from
	}
	w.to = d
	w.toPinned = w.observed && !d.Before(w.end)
}

// Changed reports whether [from, to] moved since the last Ack.
func (w *DateWindow) Changed() bool {
	return w.from != w.lastFrom || w.to != w.lastTo
}

// Ack records the current range as seen.
func (w *DateWindow) Ack() {
	w.lastFrom, w.lastTo = w.from, w.to
}

func (w *DateWindow) Reset() {
	*w = *NewDateWindow()
}
