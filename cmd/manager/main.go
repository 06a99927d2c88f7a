package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/kelseyhightower/envconfig"
	"github.com/labstack/echo/v4"
	"github.com/noelukwa/devcard/internal/card"
	"github.com/noelukwa/devcard/internal/card/api"
	"github.com/noelukwa/devcard/internal/card/github"
	"github.com/noelukwa/devcard/internal/card/render"
	"github.com/noelukwa/devcard/internal/card/repository/postgres"
	"github.com/noelukwa/devcard/internal/events"
	"github.com/noelukwa/devcard/internal/pkg/config"
	"github.com/noelukwa/devcard/internal/pkg/logging"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

func main() {
	var cfg config.ManagerConfig
	err := envconfig.Process("manager_service", &cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}
	logging.Setup("manager", cfg.Debug)

	conn, err := amqp.Dial(cfg.RabbitMQURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to RabbitMQ")
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open a channel")
	}
	defer ch.Close()

	if _, err := events.DeclareQueue(ch, cfg.RefreshQueueName); err != nil {
		log.Fatal().Err(err).Msg("failed to declare publish queue")
	}
	cq, err := events.DeclareQueue(ch, cfg.RenderedQueueName)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to declare consumer queue")
	}
	msgs, err := events.Consume(ch, cq.Name)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to register a consumer")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dataStore, err := postgres.NewStore(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to establish DB connection")
	}
	defer dataStore.Close()

	service := card.NewService(
		github.New(cfg.GitHubToken),
		render.New(render.Options{}),
		dataStore,
		card.WithRefreshes(dataStore, events.NewPublisher(ch, cfg.RefreshQueueName)),
	)

	e := echo.New()
	e.HideBanner = true
	handler := api.SetupRoutes(service, cfg.Login, e)

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: handler,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Int("port", cfg.ServerPort).Msg("server listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		for {
			select {
			case <-gctx.Done():
				return nil
			case d, ok := <-msgs:
				if !ok {
					return errors.New("rendered queue closed")
				}
				handleRendered(gctx, service, d.Body)
			}
		}
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("manager stopped")
		os.Exit(1)
	}
	log.Info().Msg("server exiting")
}

func handleRendered(ctx context.Context, service *card.Service, body []byte) {
	ev, err := events.ParseCardsRendered(body)
	if err != nil {
		log.Error().Err(err).Msg("failed to parse rendered event")
		return
	}

	refresh, err := service.CompleteRefresh(ctx, *ev)
	if err != nil {
		log.Error().Err(err).Str("refresh", ev.RefreshID.String()).Msg("failed to complete refresh")
		return
	}
	log.Info().
		Str("refresh", refresh.ID.String()).
		Str("status", string(refresh.Status)).
		Msg("refresh completed")
}
