package file

import (
	"fmt"
	"image"
	"strings"
	"time"

	"github.com/custodia-labs/inkpanel/internal/core/domain"
)

// Config mirrors config.toml.
type Config struct {
	Display    DisplayConfig    `mapstructure:"display"`
	Intervals  IntervalsConfig  `mapstructure:"intervals"`
	Quiet      QuietConfig      `mapstructure:"quiet"`
	Cache      CacheConfig      `mapstructure:"cache"`
	Pagination PaginationConfig `mapstructure:"pagination"`
	Providers  ProvidersConfig  `mapstructure:"providers"`
	Todo       TodoConfig       `mapstructure:"todo"`
	Personal   PersonalConfig   `mapstructure:"personal"`
	MCP        MCPConfig        `mapstructure:"mcp"`
	Log        LogConfig        `mapstructure:"log"`
}

// DisplayConfig is the [display] table.
type DisplayConfig struct {
	Mode       string `mapstructure:"mode" validate:"omitempty,oneof=dashboard quote poetry wallpaper"`
	Wallpaper  string `mapstructure:"wallpaper"`
	Width      int    `mapstructure:"width" validate:"gt=0,lte=4096"`
	Height     int    `mapstructure:"height" validate:"gt=0,lte=4096"`
	Driver     string `mapstructure:"driver" validate:"oneof=mock png"`
	OutputDir  string `mapstructure:"output_dir"`
	Screenshot bool   `mapstructure:"screenshot"`
}

// IntervalsConfig is the [intervals] table, in seconds. Zero waits for a
// reload only.
type IntervalsConfig struct {
	Dashboard int `mapstructure:"dashboard" validate:"gte=0"`
	Quote     int `mapstructure:"quote" validate:"gte=0"`
	Poetry    int `mapstructure:"poetry" validate:"gte=0"`
	Wallpaper int `mapstructure:"wallpaper" validate:"gte=0"`
	Holiday   int `mapstructure:"holiday" validate:"gte=0"`
	YearEnd   int `mapstructure:"year_end" validate:"gte=0"`
}

// QuietConfig is the [quiet] table.
type QuietConfig struct {
	StartHour int    `mapstructure:"start_hour" validate:"gte=0,lte=23"`
	EndHour   int    `mapstructure:"end_hour" validate:"gte=0,lte=23"`
	Timezone  string `mapstructure:"timezone"`
}

// CacheConfig is the [cache] table.
type CacheConfig struct {
	QuoteTTL   time.Duration `mapstructure:"quote_ttl" validate:"gt=0"`
	PoetryTTL  time.Duration `mapstructure:"poetry_ttl" validate:"gt=0"`
	VPSTTL     time.Duration `mapstructure:"vps_ttl" validate:"gt=0"`
	StoriesTTL time.Duration `mapstructure:"stories_ttl" validate:"gt=0"`
}

// PaginationConfig is the [pagination] table.
type PaginationConfig struct {
	Enabled    bool          `mapstructure:"enabled"`
	Source     string        `mapstructure:"source" validate:"oneof=hackernews feed"`
	FeedURL    string        `mapstructure:"feed_url" validate:"required_if=Source feed,omitempty,url"`
	PageSize   int           `mapstructure:"page_size" validate:"gt=0,lte=50"`
	Interval   time.Duration `mapstructure:"interval" validate:"gt=0"`
	StoryCount int           `mapstructure:"story_count" validate:"gt=0,lte=100"`
}

// ProvidersConfig is the [providers] table.
type ProvidersConfig struct {
	Weather WeatherConfig `mapstructure:"weather"`
	GitHub  GitHubConfig  `mapstructure:"github"`
	VPS     VPSConfig     `mapstructure:"vps"`
	BTC     BTCConfig     `mapstructure:"btc"`
}

// WeatherConfig configures the OpenWeather provider.
type WeatherConfig struct {
	APIKey string `mapstructure:"api_key"`
	City   string `mapstructure:"city"`
}

// GitHubConfig configures contribution statistics.
type GitHubConfig struct {
	Token    string `mapstructure:"token"`
	Username string `mapstructure:"username" validate:"required_with=Token"`
}

// VPSConfig configures the bandwidth usage provider.
type VPSConfig struct {
	VEID   string `mapstructure:"veid"`
	APIKey string `mapstructure:"api_key" validate:"required_with=VEID"`
}

// BTCConfig toggles the market price provider.
type BTCConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// TodoConfig is the [todo] table.
type TodoConfig struct {
	Source         string   `mapstructure:"source" validate:"oneof=config gist notion sheets"`
	GistID         string   `mapstructure:"gist_id" validate:"required_if=Source gist"`
	GitHubToken    string   `mapstructure:"github_token"`
	NotionToken    string   `mapstructure:"notion_token" validate:"required_if=Source notion"`
	NotionDatabase string   `mapstructure:"notion_database" validate:"required_if=Source notion"`
	SheetsID       string   `mapstructure:"sheets_id" validate:"required_if=Source sheets"`
	SheetsAPIKey   string   `mapstructure:"sheets_api_key" validate:"required_if=Source sheets"`
	Goals          []string `mapstructure:"goals"`
	Must           []string `mapstructure:"must"`
	Optional       []string `mapstructure:"optional"`
}

// PersonalConfig is the [personal] table.
type PersonalConfig struct {
	Name     string `mapstructure:"name"`
	Birthday string `mapstructure:"birthday" validate:"omitempty,datetime=01-02"`
}

// MCPConfig is the [mcp] table. Port 0 disables the server.
type MCPConfig struct {
	Port int `mapstructure:"port" validate:"gte=0,lte=65535"`
}

// LogConfig is the [log] table.
type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=text json"`
}

// Defaults returns the configuration used when no file exists.
func Defaults() *Config {
	s := domain.DefaultSettings()
	return &Config{
		Display: DisplayConfig{
			Mode:   s.Display.Mode.String(),
			Width:  s.Display.Width,
			Height: s.Display.Height,
			Driver: "mock",
		},
		Intervals: IntervalsConfig{
			Dashboard: seconds(s.Intervals.Dashboard),
			Quote:     seconds(s.Intervals.Quote),
			Poetry:    seconds(s.Intervals.Poetry),
			Wallpaper: seconds(s.Intervals.Wallpaper),
			Holiday:   seconds(s.Intervals.Holiday),
			YearEnd:   seconds(s.Intervals.YearEnd),
		},
		Quiet: QuietConfig{
			StartHour: s.Quiet.StartHour,
			EndHour:   s.Quiet.EndHour,
		},
		Cache: CacheConfig{
			QuoteTTL:   time.Hour,
			PoetryTTL:  time.Hour,
			VPSTTL:     10 * time.Minute,
			StoriesTTL: 15 * time.Minute,
		},
		Pagination: PaginationConfig{
			Enabled:    s.Pagination.Enabled,
			Source:     "hackernews",
			PageSize:   s.Pagination.PageSize,
			Interval:   s.Pagination.Interval,
			StoryCount: 20,
		},
		Todo: TodoConfig{
			Source: "config",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Settings converts the file representation into core settings.
func (c *Config) Settings() (domain.Settings, error) {
	kind, err := domain.ParseModeKind(c.Display.Mode)
	if err != nil {
		return domain.Settings{}, fmt.Errorf("%w: display.mode: %v", domain.ErrInvalidConfig, err)
	}

	loc := time.Local
	if tz := strings.TrimSpace(c.Quiet.Timezone); tz != "" {
		loc, err = time.LoadLocation(tz)
		if err != nil {
			return domain.Settings{}, fmt.Errorf("%w: quiet.timezone: %v", domain.ErrInvalidConfig, err)
		}
	}

	return domain.Settings{
		Display: domain.DisplaySettings{
			Mode:       kind,
			Wallpaper:  c.Display.Wallpaper,
			Width:      c.Display.Width,
			Height:     c.Display.Height,
			Screenshot: c.Display.Screenshot,
		},
		Intervals: domain.RefreshIntervals{
			Dashboard: time.Duration(c.Intervals.Dashboard) * time.Second,
			Quote:     time.Duration(c.Intervals.Quote) * time.Second,
			Poetry:    time.Duration(c.Intervals.Poetry) * time.Second,
			Wallpaper: time.Duration(c.Intervals.Wallpaper) * time.Second,
			Holiday:   time.Duration(c.Intervals.Holiday) * time.Second,
			YearEnd:   time.Duration(c.Intervals.YearEnd) * time.Second,
		},
		Quiet:    domain.QuietWindow{StartHour: c.Quiet.StartHour, EndHour: c.Quiet.EndHour},
		Location: loc,
		Pagination: domain.PaginationSettings{
			Enabled:  c.Pagination.Enabled,
			PageSize: c.Pagination.PageSize,
			Interval: c.Pagination.Interval,
			Region:   storyRegion(c.Display.Width, c.Display.Height),
		},
		Personal: domain.PersonalSettings{
			Name:     c.Personal.Name,
			Birthday: c.Personal.Birthday,
		},
	}, nil
}

// storyRegion is the bottom-right quadrant of the panel, where the
// dashboard draws its story list.
func storyRegion(width, height int) image.Rectangle {
	return image.Rect(width/2, height/2, width, height)
}

func seconds(d time.Duration) int {
	return int(d / time.Second)
}
