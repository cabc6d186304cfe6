// Package timewindow translates the reporting filter inputs (range presets,
// explicit dates, trailing-days) into concrete [Start, End) bounds so every
// store queries with real timestamps.
package timewindow

import (
	"strconv"
	"time"

	dErrors "taxonline/pkg/domain-errors"
)

const dateLayout = "2006-01-02"

// Window is a half-open [Start, End) interval.
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// ThisMonth is the default reporting window.
func ThisMonth(now time.Time) Window {
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return Window{Start: start, End: start.AddDate(0, 1, 0)}
}

// LastDays covers the trailing n days up to now.
func LastDays(now time.Time, n int) Window {
	return Window{Start: now.AddDate(0, 0, -n), End: now}
}

// Parse resolves the filter inputs in precedence order: an explicit from/to
// pair wins, then a days count, then a named range, then the this-month
// default. Unusable values are an input error, not a silent default.
func Parse(now time.Time, rangeName, from, to, days string) (Window, error) {
	if from != "" || to != "" {
		if from == "" || to == "" {
			return Window{}, dErrors.New(dErrors.CodeInvalidInput, "Both start and end dates are required.")
		}
		start, err := time.ParseInLocation(dateLayout, from, now.Location())
		if err != nil {
			return Window{}, dErrors.New(dErrors.CodeInvalidInput, "Start date must be YYYY-MM-DD.")
		}
		end, err := time.ParseInLocation(dateLayout, to, now.Location())
		if err != nil {
			return Window{}, dErrors.New(dErrors.CodeInvalidInput, "End date must be YYYY-MM-DD.")
		}
		if end.Before(start) {
			return Window{}, dErrors.New(dErrors.CodeInvalidInput, "End date is before start date.")
		}
		return Window{Start: start, End: end.AddDate(0, 0, 1)}, nil
	}

	if days != "" {
		n, err := strconv.Atoi(days)
		if err != nil || n <= 0 {
			return Window{}, dErrors.New(dErrors.CodeInvalidInput, "Days must be a positive number.")
		}
		return LastDays(now, n), nil
	}

	switch rangeName {
	case "", "this_month":
		return ThisMonth(now), nil
	case "last_month":
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -1, 0)
		return Window{Start: start, End: start.AddDate(0, 1, 0)}, nil
	case "this_year":
		start := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())
		return Window{Start: start, End: start.AddDate(1, 0, 0)}, nil
	default:
		return Window{}, dErrors.New(dErrors.CodeInvalidInput, "Unknown date range.")
	}
}
