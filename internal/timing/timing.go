// Package timing measures how long build tool queries take.
package timing

import (
	"fmt"
	"strings"
	"time"
)

// Span is one measured step
type Span struct {
	Label    string
	Duration time.Duration
}

// Timer tracks execution time of operations
type Timer struct {
	now   func() time.Time
	start time.Time
	spans []Span
}

// NewTimer creates a new timer
func NewTimer() *Timer {
	return newTimerWithClock(time.Now)
}

func newTimerWithClock(now func() time.Time) *Timer {
	return &Timer{
		now:   now,
		start: now(),
	}
}

// Track starts measuring a step; call the returned function when the step is done.
// Steps are listed in the order they finish.
func (t *Timer) Track(label string) func() time.Duration {
	begin := t.now()
	return func() time.Duration {
		d := t.now().Sub(begin)
		t.spans = append(t.spans, Span{Label: label, Duration: d})
		return d
	}
}

// Spans returns the finished steps
func (t *Timer) Spans() []Span {
	return t.spans
}

// Elapsed returns total elapsed time since timer creation
func (t *Timer) Elapsed() time.Duration {
	return t.now().Sub(t.start)
}

// Summary returns a formatted summary of all timings
func (t *Timer) Summary() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Total: %s", millis(t.Elapsed()))

	if len(t.spans) > 0 {
		parts := make([]string, 0, len(t.spans))
		for _, s := range t.spans {
			parts = append(parts, fmt.Sprintf("%s: %s", s.Label, millis(s.Duration)))
		}
		fmt.Fprintf(&sb, " (%s)", strings.Join(parts, ", "))
	}

	return sb.String()
}

func millis(d time.Duration) string {
	return fmt.Sprintf("%.3fms", float64(d.Microseconds())/1000.0)
}
