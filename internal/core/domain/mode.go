package domain

import (
	"fmt"
	"strings"
)

const unknownDescription = "Unknown"

// ModeKind identifies a display mode variant.
type ModeKind int

// Available mode kinds.
const (
	ModeKindDashboard ModeKind = iota
	ModeKindQuote
	ModeKindPoetry
	ModeKindWallpaper
	ModeKindHoliday
	ModeKindYearEnd
)

// String returns the configuration name of the kind.
func (k ModeKind) String() string {
	switch k {
	case ModeKindDashboard:
		return "dashboard"
	case ModeKindQuote:
		return "quote"
	case ModeKindPoetry:
		return "poetry"
	case ModeKindWallpaper:
		return "wallpaper"
	case ModeKindHoliday:
		return "holiday"
	case ModeKindYearEnd:
		return "year_end"
	default:
		return "unknown"
	}
}

// Description returns a human-readable description of the kind.
func (k ModeKind) Description() string {
	switch k {
	case ModeKindDashboard:
		return "Dashboard (weather, stats, todo, stories)"
	case ModeKindQuote:
		return "Quote of the moment"
	case ModeKindPoetry:
		return "Classical poetry"
	case ModeKindWallpaper:
		return "Full-screen wallpaper"
	case ModeKindHoliday:
		return "Holiday greeting"
	case ModeKindYearEnd:
		return "Year-end summary"
	default:
		return unknownDescription
	}
}

// Configurable returns true if the kind may be chosen in configuration.
// Holiday and YearEnd are only ever selected from the calendar.
func (k ModeKind) Configurable() bool {
	switch k {
	case ModeKindDashboard, ModeKindQuote, ModeKindPoetry, ModeKindWallpaper:
		return true
	default:
		return false
	}
}

// ParseModeKind converts a configuration name into a ModeKind.
func ParseModeKind(s string) (ModeKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "dashboard", "":
		return ModeKindDashboard, nil
	case "quote":
		return ModeKindQuote, nil
	case "poetry":
		return ModeKindPoetry, nil
	case "wallpaper":
		return ModeKindWallpaper, nil
	case "holiday":
		return ModeKindHoliday, nil
	case "year_end", "yearend":
		return ModeKindYearEnd, nil
	default:
		return 0, fmt.Errorf("%w: unknown display mode %q", ErrInvalidInput, s)
	}
}

// DisplayMode is the content category selected for one refresh cycle.
// The set of implementations is closed: DashboardMode, QuoteMode,
// PoetryMode, WallpaperMode, HolidayMode and YearEndMode.
type DisplayMode interface {
	Kind() ModeKind
	displayMode()
}

// DashboardMode shows weather, statistics, todo lists and stories.
type DashboardMode struct{}

// QuoteMode shows a single quote.
type QuoteMode struct{}

// PoetryMode shows a single poem.
type PoetryMode struct{}

// WallpaperMode shows a wallpaper. An empty Name picks one at random.
type WallpaperMode struct {
	Name string
}

// HolidayMode shows a greeting for the holiday active today.
type HolidayMode struct {
	Holiday Holiday
}

// YearEndMode shows the yearly contribution summary on December 31.
type YearEndMode struct{}

func (DashboardMode) Kind() ModeKind { return ModeKindDashboard }
func (QuoteMode) Kind() ModeKind     { return ModeKindQuote }
func (PoetryMode) Kind() ModeKind    { return ModeKindPoetry }
func (WallpaperMode) Kind() ModeKind { return ModeKindWallpaper }
func (HolidayMode) Kind() ModeKind   { return ModeKindHoliday }
func (YearEndMode) Kind() ModeKind   { return ModeKindYearEnd }

func (DashboardMode) displayMode() {}
func (QuoteMode) displayMode()     {}
func (PoetryMode) displayMode()    {}
func (WallpaperMode) displayMode() {}
func (HolidayMode) displayMode()   {}
func (YearEndMode) displayMode()   {}

// ConfiguredMode builds the DisplayMode for a configurable kind.
// Calendar-only kinds fall back to DashboardMode.
func ConfiguredMode(kind ModeKind, wallpaper string) DisplayMode {
	switch kind {
	case ModeKindQuote:
		return QuoteMode{}
	case ModeKindPoetry:
		return PoetryMode{}
	case ModeKindWallpaper:
		return WallpaperMode{Name: wallpaper}
	default:
		return DashboardMode{}
	}
}
