package providers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/inkpanel/internal/core/domain"
)

type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

func newGitHubServer(t *testing.T, respond func(req graphqlRequest) (int, string)) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/graphql", r.URL.Path)
		assert.Equal(t, "Bearer token", r.Header.Get("Authorization"))

		var req graphqlRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		status, body := respond(req)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func fixedNow() time.Time {
	loc := time.FixedZone("CST", 8*3600)
	// Wednesday
	return time.Date(2025, time.March, 12, 15, 0, 0, 0, loc)
}

func TestGitHub_Disabled(t *testing.T) {
	g, err := NewGitHub(GitHubConfig{Username: "octocat"})
	require.NoError(t, err)

	_, err = g.Contributions().Fetch(context.Background())
	assert.ErrorIs(t, err, domain.ErrProviderDisabled)
	_, err = g.YearSummary().Fetch(context.Background())
	assert.ErrorIs(t, err, domain.ErrProviderDisabled)
}

func TestGitHub_Contributions(t *testing.T) {
	var vars map[string]any
	srv := newGitHubServer(t, func(req graphqlRequest) (int, string) {
		vars = req.Variables
		return http.StatusOK, `{"data":{"user":{
			"day":{"totalCommitContributions":2,"totalIssueContributions":1,"totalPullRequestContributions":0,"totalPullRequestReviewContributions":0},
			"week":{"totalCommitContributions":10,"totalIssueContributions":1,"totalPullRequestContributions":2,"totalPullRequestReviewContributions":1},
			"month":{"totalCommitContributions":30,"totalIssueContributions":0,"totalPullRequestContributions":0,"totalPullRequestReviewContributions":0},
			"year":{"totalCommitContributions":100,"totalIssueContributions":5,"totalPullRequestContributions":5,"totalPullRequestReviewContributions":10}
		}}}`
	})

	g, err := NewGitHub(GitHubConfig{Token: "token", Username: "octocat", BaseURL: srv.URL, Now: fixedNow})
	require.NoError(t, err)

	got, err := g.Contributions().Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.Contributions{Day: 3, Week: 14, Month: 30, Year: 120}, got)

	assert.Equal(t, "octocat", vars["login"])
	// local midnight in UTC+8
	assert.Equal(t, "2025-03-11T16:00:00Z", vars["day"])
	// Monday March 10
	assert.Equal(t, "2025-03-09T16:00:00Z", vars["week"])
	assert.Equal(t, "2025-02-28T16:00:00Z", vars["month"])
	assert.Equal(t, "2024-12-31T16:00:00Z", vars["year"])
}

func TestGitHub_GraphQLErrors(t *testing.T) {
	srv := newGitHubServer(t, func(graphqlRequest) (int, string) {
		return http.StatusOK, `{"data":null,"errors":[{"message":"Could not resolve to a User"}]}`
	})

	g, err := NewGitHub(GitHubConfig{Token: "token", Username: "ghost", BaseURL: srv.URL, Now: fixedNow})
	require.NoError(t, err)

	_, err = g.Contributions().Fetch(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrBadResponse)
	assert.Contains(t, err.Error(), "Could not resolve")
}

func TestGitHub_Unauthorized(t *testing.T) {
	srv := newGitHubServer(t, func(graphqlRequest) (int, string) {
		return http.StatusUnauthorized, `{"message":"Bad credentials"}`
	})

	g, err := NewGitHub(GitHubConfig{Token: "token", Username: "octocat", BaseURL: srv.URL, Now: fixedNow})
	require.NoError(t, err)

	_, err = g.Contributions().Fetch(context.Background())
	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))
	assert.ErrorIs(t, err, domain.ErrBadResponse)
}

func TestGitHub_YearSummary(t *testing.T) {
	srv := newGitHubServer(t, func(req graphqlRequest) (int, string) {
		assert.Equal(t, "2024-12-31T16:00:00Z", req.Variables["from"])
		return http.StatusOK, `{"data":{"user":{"contributionsCollection":{
			"totalCommitContributions":9,"totalIssueContributions":1,"totalPullRequestContributions":2,"totalPullRequestReviewContributions":3,
			"contributionCalendar":{"totalContributions":15,"weeks":[
				{"contributionDays":[{"date":"2025-01-01","contributionCount":1},{"date":"2025-01-02","contributionCount":4}]},
				{"contributionDays":[{"date":"2025-01-03","contributionCount":0},{"date":"2025-01-04","contributionCount":10}]}
			]}
		}}}}`
	})

	g, err := NewGitHub(GitHubConfig{Token: "token", Username: "octocat", BaseURL: srv.URL, Now: fixedNow})
	require.NoError(t, err)

	got, err := g.YearSummary().Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2025, got.Year)
	assert.Equal(t, 15, got.Total)
	assert.Equal(t, 9, got.Commits)
	assert.Equal(t, 3, got.Reviews)
	assert.Equal(t, 3, got.ActiveDays)
	assert.Equal(t, 2, got.LongestStreak)
	assert.Equal(t, "2025-01-04", got.BusiestDay)
	assert.Equal(t, 10, got.BusiestCount)
}

func TestSummarize(t *testing.T) {
	days := []ContributionDay{
		{"d1", 1}, {"d2", 2}, {"d3", 3}, {"d4", 0}, {"d5", 1},
	}
	s := Summarize(days)
	assert.Equal(t, 4, s.ActiveDays)
	assert.Equal(t, 3, s.LongestStreak)
	assert.Equal(t, "d3", s.BusiestDay)

	assert.Equal(t, domain.YearSummary{}, Summarize(nil))
}
