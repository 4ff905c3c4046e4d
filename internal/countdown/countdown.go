// Package countdown maintains the recurring "time remaining" projection
// for dated promotions. It is independent of filtering and pagination:
// the tracked list is replaced wholesale on every re-render, so timers
// from a previous page simply stop being updated. There is no per-timer
// cancellation.
package countdown

import (
	"context"
	"fmt"
	"sync"
	"time"

	"promohub/pkg/models"
)

// EndsTodayText is rendered once the end instant has passed; the offer
// still runs until the activation policy drops it on the next load.
const EndsTodayText = "Acaba hoje"

// Entry is one tracked deadline: the promotion code and the instant the
// offer stops, i.e. the end date extended to the last second of its day.
type Entry struct {
	Code int
	End  time.Time
}

// Frame is one rendered label of a tick.
type Frame struct {
	Code int    `json:"codigo"`
	Text string `json:"texto"`
}

// EntriesFor extracts the tracked set for a rendered page. Only dated,
// non-stock-bound promotions carry a countdown.
func EntriesFor(items []models.NormalizedPromotion) []Entry {
	out := make([]Entry, 0, len(items))
	for _, p := range items {
		if !p.HasDeadline() {
			continue
		}
		out = append(out, Entry{Code: p.Code, End: endOfDay(*p.EndDate)})
	}
	return out
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}

// Label renders the remaining-time text for one entry at the given
// instant: "HHhMM restantes" with both parts zero-padded, or the
// ends-today text once the difference is gone.
func Label(e Entry, now time.Time) string {
	d := e.End.Sub(now)
	if d <= 0 {
		return EndsTodayText
	}
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	return fmt.Sprintf("%02dh%02d restantes", hours, minutes)
}

// Render renders every tracked entry at the given instant.
func Render(entries []Entry, now time.Time) []Frame {
	out := make([]Frame, 0, len(entries))
	for _, e := range entries {
		out = append(out, Frame{Code: e.Code, Text: Label(e, now)})
	}
	return out
}

// Tracker holds the tracked list for one viewer.
type Tracker struct {
	mu      sync.Mutex
	entries []Entry
}

func NewTracker() *Tracker {
	return &Tracker{}
}

// Replace swaps the whole tracked list for the given one.
func (t *Tracker) Replace(entries []Entry) {
	t.mu.Lock()
	t.entries = entries
	t.mu.Unlock()
}

// Snapshot returns a copy of the tracked list.
func (t *Tracker) Snapshot() []Entry {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// DefaultInterval is the tick cadence of the live countdown.
const DefaultInterval = 60 * time.Second

// Ticker drives recurring re-renders: emit fires once immediately, then
// at every interval until ctx is done. The ticker itself holds no timer
// state; callers render from their trackers inside emit.
type Ticker struct {
	Interval time.Duration
}

func (tk Ticker) Run(ctx context.Context, emit func(now time.Time)) {
	interval := tk.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}

	emit(time.Now())

	t := time.NewTicker(interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			emit(now)
		}
	}
}
