package domain

import (
	"image"
	"time"
)

// DefaultRandomWallpaperInterval is used for random wallpapers when no
// wallpaper interval is configured, so a new one is drawn every hour.
const DefaultRandomWallpaperInterval = time.Hour

// Settings are the configuration values the core reads on every cycle.
// A reload swaps the whole value; it is never mutated in place.
type Settings struct {
	Display    DisplaySettings
	Intervals  RefreshIntervals
	Quiet      QuietWindow
	Location   *time.Location
	Pagination PaginationSettings
	Personal   PersonalSettings
}

// DisplaySettings describe the panel and the configured mode.
type DisplaySettings struct {
	Mode       ModeKind
	Wallpaper  string
	Width      int
	Height     int
	Screenshot bool
}

// PaginationSettings configure the story pagination task.
type PaginationSettings struct {
	Enabled  bool
	PageSize int
	Interval time.Duration
	// Region is the sub-rectangle updated by partial refreshes.
	Region image.Rectangle
}

// PersonalSettings hold the user details used by greetings.
type PersonalSettings struct {
	Name string
	// Birthday is "MM-DD"; empty disables the birthday greeting.
	Birthday string
}

// Now returns the current time in the configured location.
func (s Settings) Now(clock func() time.Time) time.Time {
	if clock == nil {
		clock = time.Now
	}
	if s.Location == nil {
		return clock()
	}
	return clock().In(s.Location)
}

// RefreshIntervals hold the wait after a cycle of each mode.
// A zero interval means the orchestrator waits for a reload only.
type RefreshIntervals struct {
	Dashboard time.Duration
	Quote     time.Duration
	Poetry    time.Duration
	Wallpaper time.Duration
	Holiday   time.Duration
	YearEnd   time.Duration
}

// For returns the wait that follows a cycle drawn in mode.
func (r RefreshIntervals) For(mode DisplayMode) time.Duration {
	switch m := mode.(type) {
	case DashboardMode:
		return r.Dashboard
	case QuoteMode:
		return r.Quote
	case PoetryMode:
		return r.Poetry
	case WallpaperMode:
		if r.Wallpaper == 0 && m.Name == "" {
			return DefaultRandomWallpaperInterval
		}
		return r.Wallpaper
	case HolidayMode:
		return r.Holiday
	case YearEndMode:
		return r.YearEnd
	default:
		return r.Dashboard
	}
}

// DefaultSettings returns sensible defaults for an 800x480 panel.
func DefaultSettings() Settings {
	return Settings{
		Display: DisplaySettings{
			Mode:   ModeKindDashboard,
			Width:  800,
			Height: 480,
		},
		Intervals: RefreshIntervals{
			Dashboard: 10 * time.Minute,
			Quote:     time.Hour,
			Poetry:    time.Hour,
			Wallpaper: 0,
			Holiday:   time.Hour,
			YearEnd:   time.Hour,
		},
		Quiet:    QuietWindow{StartHour: 1, EndHour: 6},
		Location: time.Local,
		Pagination: PaginationSettings{
			Enabled:  true,
			PageSize: 5,
			Interval: time.Minute,
			Region:   image.Rect(400, 240, 800, 480),
		},
	}
}
