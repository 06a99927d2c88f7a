package metrics_test

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/noelukwa/devcard/internal/card/metrics"
	"github.com/noelukwa/devcard/internal/card/models"
	"github.com/test-go/testify/assert"
	"github.com/test-go/testify/require"
)

const percentTolerance = 0.1 + 1e-9

var now = time.Date(2026, time.October, 19, 12, 0, 0, 0, time.UTC)

func repo(stars int, langs ...models.RawLanguage) models.RawRepo {
	return models.RawRepo{StargazerCount: stars, Languages: langs}
}

func lang(name string, size int64, color string) models.RawLanguage {
	return models.RawLanguage{Name: name, Size: size, Color: color}
}

func sumPercent(shares []models.LanguageShare) float64 {
	var total float64
	for _, s := range shares {
		total += s.Percent
	}
	return total
}

func TestAggregateLanguages(t *testing.T) {
	repos := []models.RawRepo{
		repo(0, lang("A", 100, "#aaa"), lang("B", 50, "#bbb")),
		repo(0, lang("A", 50, "#aaa")),
	}

	got := metrics.AggregateLanguages(repos)
	want := []models.LanguageShare{
		{Name: "A", Percent: 75.0, Color: "#aaa"},
		{Name: "B", Percent: 25.0, Color: "#bbb"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("AggregateLanguages mismatch (-want +got):\n%s", diff)
	}
}

func TestAggregateLanguages_Empty(t *testing.T) {
	assert.Empty(t, metrics.AggregateLanguages(nil))
	assert.Empty(t, metrics.AggregateLanguages([]models.RawRepo{repo(3), repo(1)}))
}

func TestAggregateLanguages_ZeroBytes(t *testing.T) {
	repos := []models.RawRepo{
		repo(0, lang("Go", 0, "#00ADD8"), lang("Shell", 0, "#89e051")),
	}
	assert.Empty(t, metrics.AggregateLanguages(repos))
}

func TestAggregateLanguages_KeepsTopFive(t *testing.T) {
	repos := []models.RawRepo{
		repo(0, lang("Go", 400, "#00ADD8"), lang("Shell", 20, "#89e051")),
		repo(0, lang("Python", 300, "#3572A5"), lang("Makefile", 30, "#427819")),
		repo(0, lang("Rust", 150, "#dea584"), lang("HTML", 100, "#e34c26")),
		repo(0, lang("CSS", 50, "#563d7c")),
	}

	got := metrics.AggregateLanguages(repos)
	want := []models.LanguageShare{
		{Name: "Go", Percent: 40.0, Color: "#00ADD8"},
		{Name: "Python", Percent: 30.0, Color: "#3572A5"},
		{Name: "Rust", Percent: 15.0, Color: "#dea584"},
		{Name: "HTML", Percent: 10.0, Color: "#e34c26"},
		{Name: "CSS", Percent: 5.0, Color: "#563d7c"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("AggregateLanguages mismatch (-want +got):\n%s", diff)
	}
	assert.InDelta(t, 100.0, sumPercent(got), percentTolerance)
}

func TestAggregateLanguages_PercentSum(t *testing.T) {
	cases := map[string][]models.RawRepo{
		"thirds": {
			repo(0, lang("A", 1, ""), lang("B", 1, ""), lang("C", 1, "")),
		},
		"uneven": {
			repo(0, lang("A", 7, ""), lang("B", 3, "")),
			repo(0, lang("C", 11, ""), lang("A", 2, "")),
		},
		"single": {
			repo(0, lang("Go", 12345, "#00ADD8")),
		},
	}

	for name, repos := range cases {
		t.Run(name, func(t *testing.T) {
			shares := metrics.AggregateLanguages(repos)
			require.NotEmpty(t, shares)
			assert.InDelta(t, 100.0, sumPercent(shares), percentTolerance)
		})
	}
}

func TestAggregateLanguages_FirstColorWins(t *testing.T) {
	repos := []models.RawRepo{
		repo(0, lang("Go", 10, "#first")),
		repo(0, lang("Go", 10, "#second")),
		repo(0, lang("Lua", 5, ""), lang("go", 1, "#lower")),
		repo(0, lang("Lua", 5, "#000080")),
	}

	got := metrics.AggregateLanguages(repos)
	require.Len(t, got, 3)
	assert.Equal(t, "Go", got[0].Name)
	assert.Equal(t, "#first", got[0].Color)
	assert.Equal(t, "Lua", got[1].Name)
	assert.Equal(t, metrics.DefaultLanguageColor, got[1].Color)
	assert.Equal(t, "go", got[2].Name)
}

func TestAggregateLanguages_TieBreaksByName(t *testing.T) {
	forward := []models.RawRepo{
		repo(0, lang("Zig", 10, ""), lang("Ada", 10, ""), lang("Nim", 10, "")),
	}
	backward := []models.RawRepo{
		repo(0, lang("Nim", 10, ""), lang("Ada", 10, ""), lang("Zig", 10, "")),
	}

	a := metrics.AggregateLanguages(forward)
	b := metrics.AggregateLanguages(backward)
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("ranking depends on input order (-forward +backward):\n%s", diff)
	}
	assert.Equal(t, "Ada", a[0].Name)
	assert.Equal(t, "Nim", a[1].Name)
	assert.Equal(t, "Zig", a[2].Name)
}

func TestSumStars(t *testing.T) {
	assert.Equal(t, 0, metrics.SumStars(nil))
	assert.Equal(t, 12, metrics.SumStars([]models.RawRepo{repo(5), repo(0), repo(7)}))
}

func TestSumCommits(t *testing.T) {
	assert.Equal(t, 10, metrics.SumCommits(10, 0))
	assert.Equal(t, 15, metrics.SumCommits(10, 5))
}

func TestResolveDisplayName(t *testing.T) {
	assert.Equal(t, "octocat", metrics.ResolveDisplayName("", "octocat"))
	assert.Equal(t, "Ada", metrics.ResolveDisplayName("Ada", "octocat"))
}

func TestAggregate(t *testing.T) {
	raw := &models.RawProfile{
		Login:     "octocat",
		CreatedAt: now.AddDate(0, 0, -400).Format(time.RFC3339),
		Repositories: []models.RawRepo{
			repo(4, lang("Go", 300, "#00ADD8")),
			repo(6, lang("Go", 100, "#00ADD8"), lang("Shell", 100, "#89e051")),
		},
		Followers:           9,
		Gists:               2,
		CommitContributions: 120,
	}

	m, err := metrics.Aggregate(raw, now)
	require.NoError(t, err)
	assert.Equal(t, "octocat", m.DisplayName)
	assert.Equal(t, "octocat", m.Login)
	assert.Equal(t, models.AccountAge{Years: 1, Months: 1, Days: 5}, m.AccountAge)
	assert.Equal(t, 2, m.RepoCount)
	assert.Equal(t, 10, m.TotalStars)
	assert.Equal(t, 120, m.TotalCommits)
	assert.Equal(t, 9, m.Followers)
	assert.Equal(t, 0, m.Following)
	assert.Equal(t, 2, m.Gists)
	assert.Equal(t, now, m.GeneratedAt)
	require.Len(t, m.Languages, 2)
	assert.Equal(t, 80.0, m.Languages[0].Percent)
	assert.Equal(t, 20.0, m.Languages[1].Percent)
}

func TestAggregate_PrefersUpstreamRepoCount(t *testing.T) {
	raw := &models.RawProfile{
		Login:             "octocat",
		CreatedAt:         "2011-01-25T18:44:36Z",
		TotalRepositories: 140,
		Repositories:      []models.RawRepo{repo(1)},
	}

	m, err := metrics.Aggregate(raw, now)
	require.NoError(t, err)
	assert.Equal(t, 140, m.RepoCount)
}

func TestAggregate_MalformedCreatedAt(t *testing.T) {
	cases := map[string]string{
		"missing":    "",
		"unparsable": "last tuesday",
		"future":     now.Add(time.Hour).Format(time.RFC3339),
	}

	for name, createdAt := range cases {
		t.Run(name, func(t *testing.T) {
			m, err := metrics.Aggregate(&models.RawProfile{Login: "octocat", CreatedAt: createdAt}, now)
			assert.Nil(t, m)
			assert.Error(t, err)
			assert.True(t, errors.Is(err, metrics.ErrMalformedInput))

			var malformed *metrics.MalformedInputError
			require.True(t, errors.As(err, &malformed))
			assert.Equal(t, "createdAt", malformed.Field)
		})
	}
}

func TestAggregate_NilProfile(t *testing.T) {
	m, err := metrics.Aggregate(nil, now)
	assert.Nil(t, m)
	assert.True(t, errors.Is(err, metrics.ErrMalformedInput))
}
