package domain

import (
	"math"
	"time"
)

// QuietWindow is a span of local wall-clock hours during which the display
// is left alone. StartHour and EndHour are in [0,24). When StartHour is
// greater than EndHour the window wraps past midnight. When they are equal
// the window is empty.
type QuietWindow struct {
	StartHour int
	EndHour   int
}

// Wraps returns true if the window spans midnight.
func (w QuietWindow) Wraps() bool {
	return w.StartHour > w.EndHour
}

// Empty returns true if the window never matches.
func (w QuietWindow) Empty() bool {
	return w.StartHour == w.EndHour
}

// Check reports whether now falls inside the window and how many whole
// seconds remain until the next boundary. While quiet the boundary is the
// window end; otherwise it is the next window start. An empty window
// reports (false, 0).
//
// The hour arithmetic uses now's location, so callers convert to the
// configured timezone first.
func (w QuietWindow) Check(now time.Time) (bool, int) {
	if w.Empty() {
		return false, 0
	}

	hour := now.Hour()
	at := func(dayOffset, h int) time.Time {
		return time.Date(now.Year(), now.Month(), now.Day()+dayOffset, h, 0, 0, 0, now.Location())
	}

	if !w.Wraps() {
		if hour >= w.StartHour && hour < w.EndHour {
			return true, wholeSeconds(at(0, w.EndHour).Sub(now))
		}
		next := at(0, w.StartHour)
		if !now.Before(next) {
			next = at(1, w.StartHour)
		}
		return false, wholeSeconds(next.Sub(now))
	}

	switch {
	case hour >= w.StartHour:
		// Started today, ends tomorrow.
		return true, wholeSeconds(at(1, w.EndHour).Sub(now))
	case hour < w.EndHour:
		// Started yesterday, ends today.
		return true, wholeSeconds(at(0, w.EndHour).Sub(now))
	default:
		return false, wholeSeconds(at(0, w.StartHour).Sub(now))
	}
}

// wholeSeconds rounds d up to whole seconds, never below one.
func wholeSeconds(d time.Duration) int {
	s := int(math.Ceil(d.Seconds()))
	if s < 1 {
		return 1
	}
	return s
}
