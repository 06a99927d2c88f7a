package render_test

import (
	"encoding/xml"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/noelukwa/devcard/internal/card/models"
	"github.com/noelukwa/devcard/internal/card/render"
	"github.com/test-go/testify/assert"
	"github.com/test-go/testify/require"
)

func sampleMetrics() *models.ProfileMetrics {
	return &models.ProfileMetrics{
		DisplayName:  "Ada <Lovelace>",
		Login:        "ada",
		AccountAge:   models.AccountAge{Years: 4, Months: 3, Days: 2},
		RepoCount:    42,
		TotalStars:   1234,
		TotalCommits: 98765,
		Followers:    10,
		Following:    3,
		PullRequests: 77,
		Issues:       8,
		Gists:        4,
		Languages: []models.LanguageShare{
			{Name: "Go", Percent: 75.0, Color: "#00ADD8"},
			{Name: "C++", Percent: 25.0, Color: "#f34b7d"},
		},
		GeneratedAt: time.Date(2026, time.October, 19, 8, 0, 0, 0, time.UTC),
	}
}

// wellFormed fails the test when svg is not parseable XML.
func wellFormed(t *testing.T, svg []byte) {
	t.Helper()
	dec := xml.NewDecoder(strings.NewReader(string(svg)))
	for {
		_, err := dec.Token()
		if err == io.EOF {
			return
		}
		require.NoError(t, err)
	}
}

func TestRender_Neofetch(t *testing.T) {
	r := render.New(render.Options{Tagline: "Building developer tools"})

	svg, err := r.Render(sampleMetrics(), models.DarkTheme, models.NeofetchVariant)
	require.NoError(t, err)
	wellFormed(t, svg)

	out := string(svg)
	assert.Contains(t, out, `width="600" height="340"`)
	assert.Contains(t, out, `fill="#0d1117"`)
	assert.Contains(t, out, "ada@github")
	assert.Contains(t, out, "Ada &lt;Lovelace&gt;")
	assert.Contains(t, out, "4y 3m")
	assert.Contains(t, out, "98,765")
	assert.Contains(t, out, "1,234")
	assert.Contains(t, out, "75.0%")
	assert.Contains(t, out, `<rect x="320" y="185" width="112" height="12" fill="#00ADD8" rx="2"/>`)
	assert.Contains(t, out, ">C++<")
	assert.Contains(t, out, "Building developer tools")
	assert.Contains(t, out, "Updated: 2026-10-19")
	assert.NotContains(t, out, "following")
}

func TestRender_Themes(t *testing.T) {
	r := render.New(render.Options{})

	dark, err := r.Render(sampleMetrics(), models.DarkTheme, models.NeofetchVariant)
	require.NoError(t, err)
	light, err := r.Render(sampleMetrics(), models.LightTheme, models.NeofetchVariant)
	require.NoError(t, err)

	assert.Contains(t, string(light), `fill="#ffffff"`)
	assert.NotEqual(t, string(dark), string(light))
}

func TestRender_Variants(t *testing.T) {
	r := render.New(render.Options{Art: []string{"<art>"}})

	compact, err := r.Render(sampleMetrics(), models.LightTheme, models.CompactVariant)
	require.NoError(t, err)
	wellFormed(t, compact)
	assert.NotContains(t, string(compact), "&lt;art&gt;")

	extended, err := r.Render(sampleMetrics(), models.DarkTheme, models.ExtendedVariant)
	require.NoError(t, err)
	wellFormed(t, extended)
	out := string(extended)
	assert.Contains(t, out, "&lt;art&gt;")
	assert.Contains(t, out, "4 years, 3 months, 2 days")
	assert.Contains(t, out, "following")
	assert.Contains(t, out, ">77<")
	assert.Contains(t, out, "gists")
}

func TestRender_NoLanguages(t *testing.T) {
	m := sampleMetrics()
	m.Languages = nil

	svg, err := render.New(render.Options{}).Render(m, models.DarkTheme, models.NeofetchVariant)
	require.NoError(t, err)
	wellFormed(t, svg)
	assert.NotContains(t, string(svg), "%<")
}

func TestRender_EscapesLanguageColor(t *testing.T) {
	m := sampleMetrics()
	m.Languages[0].Color = `#fff" onload="alert(1)`

	svg, err := render.New(render.Options{}).Render(m, models.DarkTheme, models.NeofetchVariant)
	require.NoError(t, err)
	wellFormed(t, svg)
	assert.Contains(t, string(svg), `fill="#fff&#34; onload=&#34;alert(1)"`)
	assert.NotContains(t, string(svg), `onload="`)
}

func TestRender_Errors(t *testing.T) {
	r := render.New(render.Options{})

	_, err := r.Render(nil, models.DarkTheme, models.NeofetchVariant)
	assert.True(t, errors.Is(err, render.ErrNoMetrics))

	_, err = r.Render(sampleMetrics(), models.Theme("sepia"), models.NeofetchVariant)
	assert.True(t, errors.Is(err, render.ErrUnknownTheme))

	_, err = r.Render(sampleMetrics(), models.DarkTheme, models.Variant("poster"))
	assert.True(t, errors.Is(err, render.ErrUnknownVariant))
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "dark_mode.svg", render.FileName(models.DarkTheme, models.NeofetchVariant))
	assert.Equal(t, "light_mode.svg", render.FileName(models.LightTheme, models.NeofetchVariant))
	assert.Equal(t, "compact_light_mode.svg", render.FileName(models.LightTheme, models.CompactVariant))
}
