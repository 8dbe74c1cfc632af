// Package analytics holds the pure aggregation functions behind the summary,
// chart, category and target endpoints. Nothing here touches the database.
package analytics

import (
	"errors"
	"strings"
	"time"
)

// DateLayout is the calendar date format accepted and emitted by the API.
const DateLayout = "2006-01-02"

// DefaultBreakdownDays is the trailing window used for category breakdowns.
const DefaultBreakdownDays = 30

var (
	ErrInvalidDate      = errors.New("dates must be formatted as YYYY-MM-DD or RFC 3339")
	ErrIncompleteWindow = errors.New("startDate and endDate must be provided together")
	ErrInvertedWindow   = errors.New("startDate must not be after endDate")
)

// Window is an inclusive time range.
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the window, bounds included.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// ParseDate accepts YYYY-MM-DD (interpreted as UTC midnight) or RFC 3339.
func ParseDate(raw string) (time.Time, error) {
	t, _, err := parseDate(raw)
	return t, err
}

func parseDate(raw string) (t time.Time, dateOnly bool, err error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(DateLayout, raw); err == nil {
		return t, true, nil
	}
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return t, false, nil
	}
	return time.Time{}, false, ErrInvalidDate
}

// ParseBound parses an optional filter bound. Empty input yields nil. A
// date-only upper bound is widened to the end of that day.
func ParseBound(raw string, upper bool) (*time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	t, dateOnly, err := parseDate(raw)
	if err != nil {
		return nil, err
	}
	if upper && dateOnly {
		t = EndOfDay(t)
	}
	return &t, nil
}

// ParseWindow resolves the startDate/endDate query pair. Both empty selects
// the calendar month containing now.
func ParseWindow(startRaw, endRaw string, now time.Time) (Window, error) {
	start, err := ParseBound(startRaw, false)
	if err != nil {
		return Window{}, err
	}
	end, err := ParseBound(endRaw, true)
	if err != nil {
		return Window{}, err
	}

	switch {
	case start == nil && end == nil:
		return CurrentMonth(now), nil
	case start == nil || end == nil:
		return Window{}, ErrIncompleteWindow
	case start.After(*end):
		return Window{}, ErrInvertedWindow
	}
	return Window{Start: *start, End: *end}, nil
}

// CurrentMonth returns the UTC calendar month containing now.
func CurrentMonth(now time.Time) Window {
	now = now.UTC()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	return Window{Start: start, End: EndOfDay(start.AddDate(0, 1, -1))}
}

// PreviousWindow returns the comparison window for w: from the first day of
// the month before w.Start through the same day-of-month as w.End, clipped to
// that month's last day.
func PreviousWindow(w Window) Window {
	start := w.Start.UTC()
	first := time.Date(start.Year(), start.Month()-1, 1, 0, 0, 0, 0, time.UTC)
	lastDay := first.AddDate(0, 1, -1).Day()

	day := w.End.UTC().Day()
	if day > lastDay {
		day = lastDay
	}
	return Window{
		Start: first,
		End:   EndOfDay(time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, time.UTC)),
	}
}

// TrailingDays returns the window covering the last n days up to now.
func TrailingDays(now time.Time, days int) Window {
	if days <= 0 {
		days = DefaultBreakdownDays
	}
	return Window{Start: now.AddDate(0, 0, -days), End: now}
}

// EndOfDay returns the last representable instant of t's calendar day.
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}
