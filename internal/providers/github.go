package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	gh "github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"

	"github.com/custodia-labs/inkpanel/internal/core/domain"
	"github.com/custodia-labs/inkpanel/internal/core/ports/driven"
)

const githubProvider = "github"

// GitHubConfig configures the GitHub provider.
type GitHubConfig struct {
	Token    string
	Username string
	// BaseURL overrides https://api.github.com/.
	BaseURL string
	// Now returns the current time in the configured location.
	Now func() time.Time
	// HTTPClient is wrapped by the oauth2 transport. Optional.
	HTTPClient *http.Client
}

// GitHub counts contributions through the GraphQL API.
type GitHub struct {
	gh       *gh.Client
	limiter  *RateLimiter
	username string
	now      func() time.Time
}

// NewGitHub creates the provider. Without a token or username every fetch
// reports domain.ErrProviderDisabled.
func NewGitHub(cfg GitHubConfig) (*GitHub, error) {
	g := &GitHub{
		limiter:  NewRateLimiter(1, 2),
		username: cfg.Username,
		now:      cfg.Now,
	}
	if g.now == nil {
		g.now = time.Now
	}
	if cfg.Token == "" || cfg.Username == "" {
		return g, nil
	}

	base := cfg.HTTPClient
	if base == nil {
		base = &http.Client{Timeout: DefaultTimeout}
	}
	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, base)
	tc := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token}))
	tc.Timeout = DefaultTimeout
	g.gh = gh.NewClient(tc)

	if cfg.BaseURL != "" {
		u, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("%w: github base url: %v", domain.ErrInvalidConfig, err)
		}
		g.gh.BaseURL = u
	}
	return g, nil
}

// Contributions returns a fetcher for rolling contribution counts.
func (g *GitHub) Contributions() driven.Fetcher[domain.Contributions] {
	return driven.FetcherFunc[domain.Contributions](g.fetchContributions)
}

// YearSummary returns a fetcher for the current year's summary.
func (g *GitHub) YearSummary() driven.Fetcher[domain.YearSummary] {
	return driven.FetcherFunc[domain.YearSummary](g.fetchYearSummary)
}

type collectionTotals struct {
	Commits      int `json:"totalCommitContributions"`
	Issues       int `json:"totalIssueContributions"`
	PullRequests int `json:"totalPullRequestContributions"`
	Reviews      int `json:"totalPullRequestReviewContributions"`
}

func (c collectionTotals) sum() int {
	return c.Commits + c.Issues + c.PullRequests + c.Reviews
}

const contributionsQuery = `
query($login: String!, $day: DateTime!, $week: DateTime!, $month: DateTime!, $year: DateTime!, $to: DateTime!) {
  user(login: $login) {
    day: contributionsCollection(from: $day, to: $to) { ...totals }
    week: contributionsCollection(from: $week, to: $to) { ...totals }
    month: contributionsCollection(from: $month, to: $to) { ...totals }
    year: contributionsCollection(from: $year, to: $to) { ...totals }
  }
}
fragment totals on ContributionsCollection {
  totalCommitContributions
  totalIssueContributions
  totalPullRequestContributions
  totalPullRequestReviewContributions
}`

func (g *GitHub) fetchContributions(ctx context.Context) (domain.Contributions, error) {
	if g.gh == nil {
		return domain.Contributions{}, domain.ErrProviderDisabled
	}

	now := g.now()
	day := startOfDay(now)
	week := day.AddDate(0, 0, -((int(now.Weekday()) + 6) % 7))
	month := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	year := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())

	var data struct {
		User *struct {
			Day   collectionTotals `json:"day"`
			Week  collectionTotals `json:"week"`
			Month collectionTotals `json:"month"`
			Year  collectionTotals `json:"year"`
		} `json:"user"`
	}
	err := g.graphql(ctx, contributionsQuery, map[string]any{
		"login": g.username,
		"day":   utc(day),
		"week":  utc(week),
		"month": utc(month),
		"year":  utc(year),
		"to":    utc(now),
	}, &data)
	if err != nil {
		return domain.Contributions{}, err
	}
	if data.User == nil {
		return domain.Contributions{}, badResponse(githubProvider, "user %q not found", g.username)
	}

	return domain.Contributions{
		Day:   data.User.Day.sum(),
		Week:  data.User.Week.sum(),
		Month: data.User.Month.sum(),
		Year:  data.User.Year.sum(),
	}, nil
}

const yearSummaryQuery = `
query($login: String!, $from: DateTime!, $to: DateTime!) {
  user(login: $login) {
    contributionsCollection(from: $from, to: $to) {
      totalCommitContributions
      totalIssueContributions
      totalPullRequestContributions
      totalPullRequestReviewContributions
      contributionCalendar {
        totalContributions
        weeks { contributionDays { date contributionCount } }
      }
    }
  }
}`

// ContributionDay is one cell of the contribution calendar.
type ContributionDay struct {
	Date  string `json:"date"`
	Count int    `json:"contributionCount"`
}

func (g *GitHub) fetchYearSummary(ctx context.Context) (domain.YearSummary, error) {
	if g.gh == nil {
		return domain.YearSummary{}, domain.ErrProviderDisabled
	}

	now := g.now()
	from := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())

	var data struct {
		User *struct {
			Collection struct {
				collectionTotals
				Calendar struct {
					Total int `json:"totalContributions"`
					Weeks []struct {
						Days []ContributionDay `json:"contributionDays"`
					} `json:"weeks"`
				} `json:"contributionCalendar"`
			} `json:"contributionsCollection"`
		} `json:"user"`
	}
	err := g.graphql(ctx, yearSummaryQuery, map[string]any{
		"login": g.username,
		"from":  utc(from),
		"to":    utc(now),
	}, &data)
	if err != nil {
		return domain.YearSummary{}, err
	}
	if data.User == nil {
		return domain.YearSummary{}, badResponse(githubProvider, "user %q not found", g.username)
	}

	c := data.User.Collection
	var days []ContributionDay
	for _, w := range c.Calendar.Weeks {
		days = append(days, w.Days...)
	}

	summary := Summarize(days)
	summary.Year = now.Year()
	summary.Total = c.Calendar.Total
	summary.Commits = c.Commits
	summary.Issues = c.Issues
	summary.PullRequests = c.PullRequests
	summary.Reviews = c.Reviews
	return summary, nil
}

// Summarize derives active days, the longest streak and the busiest day
// from calendar cells in date order.
func Summarize(days []ContributionDay) domain.YearSummary {
	var s domain.YearSummary
	streak := 0
	for _, d := range days {
		if d.Count <= 0 {
			streak = 0
			continue
		}
		s.ActiveDays++
		streak++
		s.LongestStreak = max(s.LongestStreak, streak)
		if d.Count > s.BusiestCount {
			s.BusiestCount = d.Count
			s.BusiestDay = d.Date
		}
	}
	return s
}

type graphqlError struct {
	Message string `json:"message"`
}

func (g *GitHub) graphql(ctx context.Context, query string, vars map[string]any, out any) error {
	if err := g.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%s: rate limit wait: %w", githubProvider, err)
	}

	req, err := g.gh.NewRequest(http.MethodPost, "graphql", map[string]any{
		"query":     query,
		"variables": vars,
	})
	if err != nil {
		return badResponse(githubProvider, "building request: %v", err)
	}

	var envelope struct {
		Data   json.RawMessage `json:"data"`
		Errors []graphqlError  `json:"errors"`
	}
	resp, err := g.gh.Do(ctx, req, &envelope)
	if resp != nil {
		g.limiter.UpdateFromResponse(resp.Response)
	}
	if err != nil {
		return g.wrapError(err)
	}
	if len(envelope.Errors) > 0 {
		return badResponse(githubProvider, "graphql: %s", envelope.Errors[0].Message)
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return badResponse(githubProvider, "decoding data: %v", err)
	}
	return nil
}

// wrapError converts go-github errors to provider error types.
func (g *GitHub) wrapError(err error) error {
	var rateLimitErr *gh.RateLimitError
	if errors.As(err, &rateLimitErr) {
		return &RateLimitError{
			ResetAt:   rateLimitErr.Rate.Reset.Time,
			Remaining: rateLimitErr.Rate.Remaining,
			Limit:     rateLimitErr.Rate.Limit,
		}
	}

	var abuseErr *gh.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		reset := time.Now().Add(time.Minute)
		if abuseErr.RetryAfter != nil {
			reset = time.Now().Add(*abuseErr.RetryAfter)
		}
		return &RateLimitError{ResetAt: reset}
	}

	var ghErr *gh.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		apiErr := &APIError{
			Provider:   githubProvider,
			StatusCode: ghErr.Response.StatusCode,
			Message:    ghErr.Message,
		}
		if ghErr.Response.Request != nil {
			apiErr.URL = redactURL(ghErr.Response.Request.URL)
		}
		return apiErr
	}

	return fmt.Errorf("%s: %w", githubProvider, err)
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func utc(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
