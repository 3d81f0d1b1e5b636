package domain

import (
	"math/rand/v2"
	"time"
)

// Content is a short text piece: a quote or a poem.
type Content struct {
	Content string `json:"content"`
	Author  string `json:"author"`
	Source  string `json:"source,omitempty"`
	Type    string `json:"type,omitempty"`
}

// Story is one entry of the paged story list.
type Story struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
	Score int    `json:"score"`
	URL   string `json:"url,omitempty"`
}

// Weather is the current conditions for the configured city.
type Weather struct {
	Temp        string `json:"temp"`
	Description string `json:"desc"`
	Icon        string `json:"icon"`
}

// DefaultWeather is shown when the weather provider is disabled.
func DefaultWeather() Weather {
	return Weather{Temp: "13.9", Description: "Sunny", Icon: "Clear"}
}

// Contributions counts GitHub contributions over rolling calendar spans.
type Contributions struct {
	Day   int `json:"day"`
	Week  int `json:"week"`
	Month int `json:"month"`
	Year  int `json:"year"`
}

// YearSummary is the data drawn on December 31.
type YearSummary struct {
	Year          int    `json:"year"`
	Total         int    `json:"total"`
	Commits       int    `json:"commits"`
	PullRequests  int    `json:"pull_requests"`
	Issues        int    `json:"issues"`
	Reviews       int    `json:"reviews"`
	ActiveDays    int    `json:"active_days"`
	LongestStreak int    `json:"longest_streak"`
	BusiestDay    string `json:"busiest_day,omitempty"`
	BusiestCount  int    `json:"busiest_count,omitempty"`
}

// MarketPrice is a spot price with its 24h change in percent.
type MarketPrice struct {
	USD       float64 `json:"usd"`
	Change24h float64 `json:"usd_24h_change"`
}

// TodoLists are the three lists drawn on the dashboard.
type TodoLists struct {
	Goals    []string `json:"goals"`
	Must     []string `json:"must"`
	Optional []string `json:"optional"`
}

// Empty returns true if every list is empty.
func (t TodoLists) Empty() bool {
	return len(t.Goals) == 0 && len(t.Must) == 0 && len(t.Optional) == 0
}

// WeekProgress returns the elapsed share of the ISO week (Monday start) in percent.
func WeekProgress(now time.Time) float64 {
	weekday := (int(now.Weekday()) + 6) % 7
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	elapsed := time.Duration(weekday)*24*time.Hour + now.Sub(midnight)
	return elapsed.Hours() / (7 * 24) * 100
}

// DataBundle carries everything a renderer needs for one frame.
// Optional fields left at their zero value are drawn empty.
type DataBundle struct {
	Date          time.Time
	Weather       Weather
	Contributions Contributions
	VPSUsage      int
	Market        MarketPrice
	WeekProgress  float64
	Todo          TodoLists
	Stories       *StoryPage
	Quote         *Content
	YearSummary   *YearSummary
	Holiday       *Holiday
	Wallpaper     string
}

// CachedContent is a fetched payload and the time it was fetched.
type CachedContent[T any] struct {
	Payload   T
	FetchedAt time.Time
}

// Valid returns true if the content is younger than ttl at now.
func (c CachedContent[T]) Valid(now time.Time, ttl time.Duration) bool {
	return now.Sub(c.FetchedAt) < ttl
}

// Age returns how long ago the content was fetched.
func (c CachedContent[T]) Age(now time.Time) time.Duration {
	return now.Sub(c.FetchedAt)
}

// FallbackPool is a static list of bundled content used when both the live
// fetch and the cache fail.
type FallbackPool[T any] []T

// NewFallbackPool copies items into a pool.
func NewFallbackPool[T any](items ...T) FallbackPool[T] {
	return append(FallbackPool[T](nil), items...)
}

// Pick returns a uniformly random member. It returns false on an empty pool.
// A nil r uses the global source.
func (p FallbackPool[T]) Pick(r *rand.Rand) (T, bool) {
	var zero T
	if len(p) == 0 {
		return zero, false
	}
	if r == nil {
		return p[rand.IntN(len(p))], true
	}
	return p[r.IntN(len(p))], true
}

// Resolution records which tier of the content cache produced a value.
type Resolution int

// Cache resolution tiers.
const (
	ResolvedCache Resolution = iota
	ResolvedLive
	ResolvedFallback
)

// String returns the tier name.
func (r Resolution) String() string {
	switch r {
	case ResolvedCache:
		return "cache"
	case ResolvedLive:
		return "live"
	case ResolvedFallback:
		return "fallback"
	default:
		return "unknown"
	}
}
