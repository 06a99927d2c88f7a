// Package metrics turns a raw upstream profile into the figures shown on a
// card. Everything here is pure: no I/O, no logging, no shared state.
package metrics

import (
	"math"
	"sort"
	"time"

	"github.com/noelukwa/devcard/internal/card/models"
)

const (
	// TopLanguages is the number of languages kept on a card.
	TopLanguages = 5

	// DefaultLanguageColor stands in for a language upstream gives no color.
	DefaultLanguageColor = "#8b949e"
)

// Aggregate builds the metrics for raw as of now. Only a missing, malformed
// or future creation timestamp is an error; every other gap becomes zero.
func Aggregate(raw *models.RawProfile, now time.Time) (*models.ProfileMetrics, error) {
	if raw == nil {
		return nil, &MalformedInputError{Field: "profile", Reason: "missing"}
	}

	createdAt, err := ParseCreatedAt(raw.CreatedAt)
	if err != nil {
		return nil, err
	}

	age, err := ComputeAccountAge(createdAt, now)
	if err != nil {
		return nil, err
	}

	repoCount := raw.TotalRepositories
	if repoCount == 0 {
		repoCount = len(raw.Repositories)
	}

	return &models.ProfileMetrics{
		DisplayName:  ResolveDisplayName(raw.Name, raw.Login),
		Login:        raw.Login,
		AccountAge:   age,
		RepoCount:    repoCount,
		TotalStars:   SumStars(raw.Repositories),
		TotalCommits: SumCommits(raw.CommitContributions, raw.RestrictedCommitContributions),
		Followers:    raw.Followers,
		Following:    raw.Following,
		PullRequests: raw.PullRequests,
		Issues:       raw.Issues,
		Gists:        raw.Gists,
		Languages:    AggregateLanguages(raw.Repositories),
		GeneratedAt:  now,
	}, nil
}

type languageTotal struct {
	name  string
	size  int64
	color string
}

// AggregateLanguages sums language bytes across repos and returns the
// largest TopLanguages entries, each as a share of the retained total.
// Ties on size are ordered by name. The first color seen for a language
// is kept.
func AggregateLanguages(repos []models.RawRepo) []models.LanguageShare {
	index := make(map[string]int)
	var totals []languageTotal

	for _, repo := range repos {
		for _, lang := range repo.Languages {
			if i, ok := index[lang.Name]; ok {
				totals[i].size += lang.Size
				continue
			}
			color := lang.Color
			if color == "" {
				color = DefaultLanguageColor
			}
			index[lang.Name] = len(totals)
			totals = append(totals, languageTotal{name: lang.Name, size: lang.Size, color: color})
		}
	}

	sort.Slice(totals, func(i, j int) bool {
		if totals[i].size != totals[j].size {
			return totals[i].size > totals[j].size
		}
		return totals[i].name < totals[j].name
	})

	if len(totals) > TopLanguages {
		totals = totals[:TopLanguages]
	}

	var retained int64
	for _, t := range totals {
		retained += t.size
	}

	shares := make([]models.LanguageShare, 0, len(totals))
	if retained <= 0 {
		return shares
	}

	for _, t := range totals {
		shares = append(shares, models.LanguageShare{
			Name:    t.name,
			Percent: roundTenth(100 * float64(t.size) / float64(retained)),
			Color:   t.color,
		})
	}
	return shares
}

// SumStars totals the stargazers of repos.
func SumStars(repos []models.RawRepo) int {
	var total int
	for _, r := range repos {
		total += r.StargazerCount
	}
	return total
}

// SumCommits adds public and restricted commit contributions. The upstream
// is assumed to count them in disjoint buckets.
func SumCommits(commits, restricted int) int {
	return commits + restricted
}

// ResolveDisplayName returns name, or login when name is empty.
func ResolveDisplayName(name, login string) string {
	if name != "" {
		return name
	}
	return login
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
