package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/kelseyhightower/envconfig"
	"github.com/noelukwa/devcard/internal/card"
	"github.com/noelukwa/devcard/internal/card/github"
	"github.com/noelukwa/devcard/internal/card/render"
	"github.com/noelukwa/devcard/internal/card/repository/postgres"
	"github.com/noelukwa/devcard/internal/events"
	"github.com/noelukwa/devcard/internal/pkg/config"
	"github.com/noelukwa/devcard/internal/pkg/logging"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

func main() {
	var cfg config.RendererConfig
	err := envconfig.Process("renderer_service", &cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}
	logging.Setup("renderer", cfg.Debug)

	redisClient := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})
	defer redisClient.Close()

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

	cq, err := events.DeclareQueue(ch, cfg.RabbitMQConsumeQueue)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to declare consumer queue")
	}
	if _, err := events.DeclareQueue(ch, cfg.RabbitMQPublishQueue); err != nil {
		log.Fatal().Err(err).Msg("failed to declare producer queue")
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
		render.New(render.Options{Tagline: cfg.Tagline}),
		dataStore,
	)

	handler := &refreshHandler{
		generator: service,
		locker:    &redisLocker{client: redisClient, ttl: cfg.LockTTL},
		publisher: events.NewPublisher(ch, cfg.RabbitMQPublishQueue),
		timeout:   cfg.RenderTimeout,
		now:       func() time.Time { return time.Now().UTC() },
	}

	var inflight sync.WaitGroup
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		for {
			select {
			case <-gctx.Done():
				return nil
			case d, ok := <-msgs:
				if !ok {
					return errors.New("refresh queue closed")
				}
				inflight.Add(1)
				go func(body []byte) {
					defer inflight.Done()
					handler.handle(gctx, body)
				}(d.Body)
			}
		}
	})

	err = g.Wait()
	inflight.Wait()
	if err != nil {
		log.Error().Err(err).Msg("renderer stopped")
		os.Exit(1)
	}
	log.Info().Msg("shutting down renderer")
}
