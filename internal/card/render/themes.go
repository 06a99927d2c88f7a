package render

import "github.com/noelukwa/devcard/internal/card/models"

type Palette struct {
	Background string
	Foreground string
	Accent     string
	Secondary  string
	Purple     string
	Green      string
	Yellow     string
	Red        string
}

var palettes = map[models.Theme]Palette{
	models.DarkTheme: {
		Background: "#0d1117",
		Foreground: "#c9d1d9",
		Accent:     "#70a5fd",
		Secondary:  "#8b949e",
		Purple:     "#bf91f3",
		Green:      "#3fb950",
		Yellow:     "#d29922",
		Red:        "#f85149",
	},
	models.LightTheme: {
		Background: "#ffffff",
		Foreground: "#24292f",
		Accent:     "#0969da",
		Secondary:  "#57606a",
		Purple:     "#8250df",
		Green:      "#1a7f37",
		Yellow:     "#9a6700",
		Red:        "#cf222e",
	},
}

func PaletteFor(theme models.Theme) (Palette, bool) {
	p, ok := palettes[theme]
	return p, ok
}

// DefaultArt is the banner drawn by the neofetch and extended layouts when
// no custom art is configured.
var DefaultArt = []string{
	"     _                             _",
	"  __| | _____   _____ __ _ _ __ __| |",
	" / _` |/ _ \\ \\ / / __/ _` | '__/ _` |",
	"| (_| |  __/\\ V / (_| (_| | | | (_| |",
	" \\__,_|\\___| \\_/ \\___\\__,_|_|  \\__,_|",
}
