package models

import (
	"fmt"
	"time"
)

// RawProfile is the flattened upstream response for a single account.
// Count fields that the upstream omits are left at zero.
type RawProfile struct {
	Name                          string    `json:"name"`
	Login                         string    `json:"login"`
	CreatedAt                     string    `json:"created_at"`
	TotalRepositories             int       `json:"total_repositories"`
	Repositories                  []RawRepo `json:"repositories"`
	Followers                     int       `json:"followers"`
	Following                     int       `json:"following"`
	PullRequests                  int       `json:"pull_requests"`
	Issues                        int       `json:"issues"`
	Gists                         int       `json:"gists"`
	CommitContributions           int       `json:"commit_contributions"`
	RestrictedCommitContributions int       `json:"restricted_commit_contributions"`
}

type RawRepo struct {
	StargazerCount int           `json:"stargazer_count"`
	Languages      []RawLanguage `json:"languages"`
}

// RawLanguage is one language edge of a repository. Color is empty when
// the upstream has no color for the language.
type RawLanguage struct {
	Name  string `json:"name"`
	Size  int64  `json:"size"`
	Color string `json:"color"`
}

type LanguageShare struct {
	Name    string  `json:"name"`
	Percent float64 `json:"percent"`
	Color   string  `json:"color"`
}

type AccountAge struct {
	Years  int `json:"years"`
	Months int `json:"months"`
	Days   int `json:"days"`
}

// Compact renders the age as "3y 2m", or "2m" for accounts younger than a year.
func (a AccountAge) Compact() string {
	if a.Years > 0 {
		return fmt.Sprintf("%dy %dm", a.Years, a.Months)
	}
	return fmt.Sprintf("%dm", a.Months)
}

func (a AccountAge) Long() string {
	return fmt.Sprintf("%d %s, %d %s, %d %s",
		a.Years, plural(a.Years, "year"),
		a.Months, plural(a.Months, "month"),
		a.Days, plural(a.Days, "day"),
	)
}

func plural(n int, unit string) string {
	if n == 1 {
		return unit
	}
	return unit + "s"
}

// ProfileMetrics is the presentation-ready summary of a profile. Renderers
// choose which of the fields they display.
type ProfileMetrics struct {
	DisplayName  string          `json:"display_name"`
	Login        string          `json:"login"`
	AccountAge   AccountAge      `json:"account_age"`
	RepoCount    int             `json:"repo_count"`
	TotalStars   int             `json:"total_stars"`
	TotalCommits int             `json:"total_commits"`
	Followers    int             `json:"followers"`
	Following    int             `json:"following"`
	PullRequests int             `json:"pull_requests"`
	Issues       int             `json:"issues"`
	Gists        int             `json:"gists"`
	Languages    []LanguageShare `json:"languages"`
	GeneratedAt  time.Time       `json:"generated_at"`
}
