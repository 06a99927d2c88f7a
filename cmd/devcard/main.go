package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"
	"github.com/kelseyhightower/envconfig"
	"github.com/noelukwa/devcard/internal/card"
	"github.com/noelukwa/devcard/internal/card/github"
	"github.com/noelukwa/devcard/internal/card/models"
	"github.com/noelukwa/devcard/internal/card/render"
	"github.com/noelukwa/devcard/internal/card/repository/filestore"
	"github.com/noelukwa/devcard/internal/pkg/config"
	"github.com/noelukwa/devcard/internal/pkg/logging"
	"github.com/rs/zerolog/log"
)

func main() {
	var cfg config.GeneratorConfig
	if err := envconfig.Process("devcard", &cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}
	logging.Setup("devcard", cfg.Debug)

	if err := run(cfg); err != nil {
		log.Error().Err(err).Str("login", cfg.Login).Msg("card generation failed")
		os.Exit(1)
	}
}

func run(cfg config.GeneratorConfig) error {
	variant, err := models.ParseVariant(cfg.Variant)
	if err != nil {
		return err
	}

	store, err := filestore.New(cfg.OutputDir, cfg.Login)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	service := card.NewService(
		github.New(cfg.GitHubToken),
		render.New(render.Options{Tagline: cfg.Tagline}),
		store,
	)

	cards, err := service.Generate(ctx, cfg.Login, variant)
	if err != nil {
		return err
	}

	for _, c := range cards {
		log.Info().Str("file", render.FileName(c.Theme, c.Variant)).Msg("card ready")
	}
	return nil
}
