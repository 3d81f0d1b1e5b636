package file

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/inkpanel/internal/core/domain"
	"github.com/custodia-labs/inkpanel/internal/logger"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0600))
	return path
}

func newTestLoader(t *testing.T, path string) *Loader {
	t.Helper()
	l, err := NewLoader(path, logger.Discard())
	require.NoError(t, err)
	return l
}

func TestLoader_MissingFileUsesDefaults(t *testing.T) {
	l := newTestLoader(t, filepath.Join(t.TempDir(), "absent.toml"))

	cfg, err := l.Load()
	require.NoError(t, err)

	assert.Equal(t, "dashboard", cfg.Display.Mode)
	assert.Equal(t, 600, cfg.Intervals.Dashboard)
	assert.Equal(t, time.Hour, cfg.Cache.QuoteTTL)
	assert.Equal(t, "hackernews", cfg.Pagination.Source)

	s := l.Current()
	assert.Equal(t, domain.ModeKindDashboard, s.Display.Mode)
	assert.Equal(t, domain.QuietWindow{StartHour: 1, EndHour: 6}, s.Quiet)
	assert.Equal(t, 10*time.Minute, s.Intervals.Dashboard)
}

func TestLoader_ReadsFile(t *testing.T) {
	path := writeConfig(t, `
[display]
mode = "quote"
width = 640
height = 384

[intervals]
quote = 900
wallpaper = 0

[quiet]
start_hour = 23
end_hour = 7
timezone = "Asia/Shanghai"

[cache]
quote_ttl = "30m"

[pagination]
page_size = 8
interval = "2m"

[personal]
name = "Ada"
birthday = "12-10"

[todo]
goals = ["ship", "rest"]
`)
	l := newTestLoader(t, path)

	cfg, err := l.Load()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Minute, cfg.Cache.QuoteTTL)
	assert.Equal(t, []string{"ship", "rest"}, cfg.Todo.Goals)

	s := l.Current()
	assert.Equal(t, domain.ModeKindQuote, s.Display.Mode)
	assert.Equal(t, 15*time.Minute, s.Intervals.Quote)
	assert.Equal(t, domain.QuietWindow{StartHour: 23, EndHour: 7}, s.Quiet)
	assert.Equal(t, "Asia/Shanghai", s.Location.String())
	assert.Equal(t, 8, s.Pagination.PageSize)
	assert.Equal(t, 2*time.Minute, s.Pagination.Interval)
	assert.Equal(t, 320, s.Pagination.Region.Min.X)
	assert.Equal(t, 384, s.Pagination.Region.Max.Y)
	assert.Equal(t, "12-10", s.Personal.Birthday)
	// untouched keys keep their defaults
	assert.Equal(t, 10*time.Minute, s.Intervals.Dashboard)
}

func TestLoader_EnvironmentOverrides(t *testing.T) {
	t.Setenv("INKPANEL_DISPLAY_MODE", "poetry")
	t.Setenv("INKPANEL_QUIET_START_HOUR", "22")

	l := newTestLoader(t, writeConfig(t, "[display]\nmode = \"quote\"\n"))
	_, err := l.Load()
	require.NoError(t, err)

	assert.Equal(t, domain.ModeKindPoetry, l.Current().Display.Mode)
	assert.Equal(t, 22, l.Current().Quiet.StartHour)
}

func TestLoader_RejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown mode", "[display]\nmode = \"holiday\"\n"},
		{"hour out of range", "[quiet]\nstart_hour = 24\n"},
		{"negative interval", "[intervals]\nquote = -1\n"},
		{"feed without url", "[pagination]\nsource = \"feed\"\n"},
		{"notion without token", "[todo]\nsource = \"notion\"\n"},
		{"bad birthday", "[personal]\nbirthday = \"13-40\"\n"},
		{"bad timezone", "[quiet]\ntimezone = \"Mars/Olympus\"\n"},
		{"malformed toml", "[display\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := newTestLoader(t, writeConfig(t, tt.body))
			_, err := l.Load()
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidConfig)
			// defaults stay active
			assert.Equal(t, domain.ModeKindDashboard, l.Current().Display.Mode)
		})
	}
}

func TestLoader_ReloadNotifiesCallbacks(t *testing.T) {
	path := writeConfig(t, "[display]\nmode = \"dashboard\"\n")
	l := newTestLoader(t, path)
	_, err := l.Load()
	require.NoError(t, err)

	var got []domain.Settings
	l.OnReload(func(s domain.Settings) { got = append(got, s) })

	require.NoError(t, os.WriteFile(path, []byte("[display]\nmode = \"quote\"\n"), 0600))
	l.Reload()

	require.Len(t, got, 1)
	assert.Equal(t, domain.ModeKindQuote, got[0].Display.Mode)
	assert.Equal(t, domain.ModeKindQuote, l.Current().Display.Mode)
}

func TestLoader_CallbackRegisteredDuringReloadRunsNextTime(t *testing.T) {
	path := writeConfig(t, "[display]\nmode = \"dashboard\"\n")
	l := newTestLoader(t, path)
	_, err := l.Load()
	require.NoError(t, err)

	var first, late int
	l.OnReload(func(domain.Settings) {
		first++
		if first == 1 {
			l.OnReload(func(domain.Settings) { late++ })
		}
	})

	l.Reload()
	assert.Equal(t, 1, first)
	assert.Equal(t, 0, late)

	l.Reload()
	assert.Equal(t, 2, first)
	assert.Equal(t, 1, late)
}

func TestLoader_ReloadKeepsPreviousOnInvalid(t *testing.T) {
	path := writeConfig(t, "[display]\nmode = \"quote\"\n")
	l := newTestLoader(t, path)
	_, err := l.Load()
	require.NoError(t, err)

	called := false
	l.OnReload(func(domain.Settings) { called = true })

	require.NoError(t, os.WriteFile(path, []byte("[display]\nmode = \"nonsense\"\n"), 0600))
	l.Reload()

	assert.False(t, called)
	assert.Equal(t, domain.ModeKindQuote, l.Current().Display.Mode)
}

func TestLoader_WatchWithoutFile(t *testing.T) {
	l := newTestLoader(t, filepath.Join(t.TempDir(), "absent.toml"))
	assert.NotPanics(t, l.Watch)
}

func TestDefaultPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot determine home directory")
	}

	path, err := DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".inkpanel", "config.toml"), path)
}
