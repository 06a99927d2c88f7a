package main

import (
	"context"
	"errors"
	"time"

	"github.com/noelukwa/devcard/internal/card"
	"github.com/noelukwa/devcard/internal/card/models"
	"github.com/noelukwa/devcard/internal/events"
	"github.com/rs/zerolog/log"
)

const replyTimeout = 5 * time.Second

var errRenderInProgress = errors.New("another render for this login is in progress")

type locker interface {
	Acquire(ctx context.Context, login, token string) (bool, error)
	Release(ctx context.Context, login, token string) error
}

type generator interface {
	Generate(ctx context.Context, login string, variant models.Variant) ([]models.Card, error)
}

type refreshHandler struct {
	generator generator
	locker    locker
	publisher card.Publisher
	timeout   time.Duration
	now       func() time.Time
}

// handle renders the cards a RefreshCommand asks for and reports the
// outcome. Every parsed command gets exactly one CardsRendered reply.
func (h *refreshHandler) handle(ctx context.Context, body []byte) {
	cmd, err := events.ParseRefreshCommand(body)
	if err != nil {
		log.Error().Err(err).Msg("failed to parse refresh command")
		return
	}

	logger := log.With().Str("refresh", cmd.ID.String()).Str("login", cmd.Login).Logger()

	reply := events.CardsRendered{
		Kind:      events.CardsRenderedKind,
		RefreshID: cmd.ID,
		Login:     cmd.Login,
	}

	themes, err := h.render(ctx, cmd)
	if err != nil {
		logger.Error().Err(err).Msg("render failed")
		reply.Kind = events.RenderFailedKind
		reply.Error = err.Error()
	} else {
		reply.Themes = themes
		logger.Info().Int("cards", len(themes)).Msg("cards rendered")
	}
	reply.RenderedAt = h.now()

	// Shutdown cancels ctx; the reply still has to go out.
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), replyTimeout)
	defer cancel()
	if err := h.publisher.Publish(pubCtx, reply); err != nil {
		logger.Error().Err(err).Msg("failed to publish render result")
	}
}

func (h *refreshHandler) render(ctx context.Context, cmd *events.RefreshCommand) ([]models.Theme, error) {
	token := cmd.ID.String()
	ok, err := h.locker.Acquire(ctx, cmd.Login, token)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errRenderInProgress
	}
	defer func() {
		if err := h.locker.Release(context.WithoutCancel(ctx), cmd.Login, token); err != nil {
			log.Warn().Err(err).Str("login", cmd.Login).Msg("failed to release lock")
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	cards, err := h.generator.Generate(ctx, cmd.Login, cmd.Variant)
	if err != nil {
		return nil, err
	}

	themes := make([]models.Theme, 0, len(cards))
	for _, c := range cards {
		themes = append(themes, c.Theme)
	}
	return themes, nil
}
