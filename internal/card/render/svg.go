// Package render draws profile metrics as themed SVG cards.
package render

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"text/template"

	"github.com/noelukwa/devcard/internal/card/models"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	barScale   = 1.5
	barSpacing = 22
)

var (
	ErrUnknownTheme   = errors.New("unknown theme")
	ErrUnknownVariant = errors.New("unknown variant")
	ErrNoMetrics      = errors.New("no metrics to render")
)

//go:embed templates/*.svg.tmpl
var templates embed.FS

var printer = message.NewPrinter(language.English)

var cardTmpl = template.Must(
	template.New("card").
		Funcs(template.FuncMap{
			"num":  func(n int) string { return printer.Sprintf("%d", n) },
			"pct":  func(f float64) string { return fmt.Sprintf("%.1f", f) },
			"add":  func(a, b int) int { return a + b },
			"half": func(n int) int { return n / 2 },
			"row":  newRow,
		}).
		ParseFS(templates, "templates/*.svg.tmpl"),
)

type layout struct {
	template    string
	width       int
	height      int
	languagesY  int
	footerY     int
	contentLeft int
}

var layouts = map[models.Variant]layout{
	models.NeofetchVariant: {template: "neofetch.svg.tmpl", width: 600, height: 340, languagesY: 195, footerY: 320, contentLeft: 230},
	models.CompactVariant:  {template: "compact.svg.tmpl", width: 460, height: 300, languagesY: 150, footerY: 285, contentLeft: 20},
	models.ExtendedVariant: {template: "extended.svg.tmpl", width: 600, height: 400, languagesY: 255, footerY: 380, contentLeft: 230},
}

type Options struct {
	// Tagline is printed bottom left. Empty leaves it out.
	Tagline string
	// Art replaces DefaultArt.
	Art []string
}

type Renderer struct {
	tagline string
	art     []string
}

func New(opts Options) *Renderer {
	art := opts.Art
	if len(art) == 0 {
		art = DefaultArt
	}
	return &Renderer{tagline: opts.Tagline, art: art}
}

type languageBar struct {
	Name    string
	Percent float64
	Color   string
	Y       int
	Width   int
}

type cardViewModel struct {
	Width       int
	Height      int
	Left        int
	FooterY     int
	LanguagesY  int
	Art         []string
	Palette     Palette
	Title       string
	Login       string
	Uptime      string
	UptimeLong  string
	Repos       int
	Stars       int
	Commits     int
	Followers   int
	Following   int
	PRs         int
	Issues      int
	Gists       int
	Languages   []languageBar
	Tagline     string
	UpdatedDate string
}

type rowView struct {
	X       int
	Y       int
	Label   string
	Value   string
	Palette Palette
}

func newRow(vm cardViewModel, x, y int, label, value string) rowView {
	return rowView{X: x, Y: y, Label: label, Value: value, Palette: vm.Palette}
}

// Render draws m in the given theme and layout variant.
func (r *Renderer) Render(m *models.ProfileMetrics, theme models.Theme, variant models.Variant) ([]byte, error) {
	if m == nil {
		return nil, ErrNoMetrics
	}
	palette, ok := PaletteFor(theme)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTheme, theme)
	}
	l, ok := layouts[variant]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownVariant, variant)
	}

	bars := make([]languageBar, 0, len(m.Languages))
	for i, lang := range m.Languages {
		bars = append(bars, languageBar{
			Name:    lang.Name,
			Percent: lang.Percent,
			Color:   lang.Color,
			Y:       l.languagesY + i*barSpacing,
			Width:   int(lang.Percent * barScale),
		})
	}

	vm := cardViewModel{
		Width:       l.width,
		Height:      l.height,
		Left:        l.contentLeft,
		FooterY:     l.footerY,
		LanguagesY:  l.languagesY,
		Art:         r.art,
		Palette:     palette,
		Title:       m.DisplayName,
		Login:       m.Login,
		Uptime:      m.AccountAge.Compact(),
		UptimeLong:  m.AccountAge.Long(),
		Repos:       m.RepoCount,
		Stars:       m.TotalStars,
		Commits:     m.TotalCommits,
		Followers:   m.Followers,
		Following:   m.Following,
		PRs:         m.PullRequests,
		Issues:      m.Issues,
		Gists:       m.Gists,
		Languages:   bars,
		Tagline:     r.tagline,
		UpdatedDate: m.GeneratedAt.Format("2006-01-02"),
	}

	var buf bytes.Buffer
	if err := cardTmpl.ExecuteTemplate(&buf, l.template, vm); err != nil {
		return nil, fmt.Errorf("render svg: %w", err)
	}
	return buf.Bytes(), nil
}

// FileName is the output name of a card: dark_mode.svg and light_mode.svg
// for the neofetch layout, compact_dark_mode.svg and so on for the others.
func FileName(theme models.Theme, variant models.Variant) string {
	if variant == models.NeofetchVariant || variant == "" {
		return fmt.Sprintf("%s_mode.svg", theme)
	}
	return fmt.Sprintf("%s_%s_mode.svg", variant, theme)
}
