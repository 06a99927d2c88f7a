package config

import "time"

// GeneratorConfig drives the one-shot card generator. The token is also
// read from a bare GITHUB_TOKEN when the prefixed variable is unset.
type GeneratorConfig struct {
	GitHubToken string        `envconfig:"GITHUB_TOKEN" required:"true"`
	Login       string        `split_words:"true" required:"true"`
	OutputDir   string        `split_words:"true" default:"."`
	Variant     string        `split_words:"true" default:"neofetch"`
	Tagline     string        `split_words:"true"`
	Timeout     time.Duration `split_words:"true" default:"30s"`
	Debug       bool          `split_words:"true"`
}
