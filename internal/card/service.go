package card

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/noelukwa/devcard/internal/card/metrics"
	"github.com/noelukwa/devcard/internal/card/models"
	"github.com/noelukwa/devcard/internal/card/repository"
	"github.com/noelukwa/devcard/internal/events"
	"github.com/rs/zerolog/log"
)

var (
	ErrInvalidVariant   error = errors.New("invalid variant: must be one of neofetch, compact, extended")
	ErrRefreshesDisabled error = errors.New("refreshes are not configured for this service")
)

type ProfileFetcher interface {
	FetchProfile(ctx context.Context, login string) (*models.RawProfile, error)
}

type Renderer interface {
	Render(m *models.ProfileMetrics, theme models.Theme, variant models.Variant) ([]byte, error)
}

type Publisher interface {
	Publish(ctx context.Context, payload any) error
}

type Service struct {
	fetcher   ProfileFetcher
	renderer  Renderer
	cards     repository.CardStore
	refreshes repository.RefreshStore
	publisher Publisher
	now       func() time.Time
}

type Option func(*Service)

// WithRefreshes enables the refresh workflow: refreshes are recorded in
// store and announced through publisher.
func WithRefreshes(store repository.RefreshStore, publisher Publisher) Option {
	return func(svc *Service) {
		svc.refreshes = store
		svc.publisher = publisher
	}
}

func WithClock(now func() time.Time) Option {
	return func(svc *Service) { svc.now = now }
}

func NewService(fetcher ProfileFetcher, renderer Renderer, cards repository.CardStore, opts ...Option) *Service {
	svc := &Service{
		fetcher:  fetcher,
		renderer: renderer,
		cards:    cards,
		now:      func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// Metrics fetches the profile of login and aggregates it as of now.
func (svc *Service) Metrics(ctx context.Context, login string) (*models.ProfileMetrics, error) {
	raw, err := svc.fetcher.FetchProfile(ctx, login)
	if err != nil {
		return nil, fmt.Errorf("fetch profile: %w", err)
	}

	m, err := metrics.Aggregate(raw, svc.now())
	if err != nil {
		return nil, err
	}
	if m.Login == "" {
		m.Login = login
		m.DisplayName = metrics.ResolveDisplayName(m.DisplayName, login)
	}

	log.Debug().
		Str("login", m.Login).
		Int("repos", m.RepoCount).
		Int("stars", m.TotalStars).
		Int("commits", m.TotalCommits).
		Int("languages", len(m.Languages)).
		Msg("metrics aggregated")
	return m, nil
}

// CardLogin is the key cards of login are stored under. GitHub logins are
// case-insensitive, so the key is the lowercased login.
func CardLogin(login string) string {
	return strings.ToLower(login)
}

// Generate renders the cards of login in every theme and saves them
// together under CardLogin(login). Nothing is saved unless every theme
// rendered.
func (svc *Service) Generate(ctx context.Context, login string, variant models.Variant) ([]models.Card, error) {
	m, err := svc.Metrics(ctx, login)
	if err != nil {
		return nil, err
	}

	cards := make([]models.Card, 0, len(models.Themes))
	for _, theme := range models.Themes {
		svg, err := svc.renderer.Render(m, theme, variant)
		if err != nil {
			return nil, fmt.Errorf("render %s card: %w", theme, err)
		}
		cards = append(cards, models.Card{
			ID:         uuid.New(),
			Login:      CardLogin(login),
			Theme:      theme,
			Variant:    variant,
			SVG:        svg,
			RenderedAt: m.GeneratedAt,
		})
	}

	if err := svc.cards.SaveCards(ctx, cards); err != nil {
		return nil, fmt.Errorf("save cards: %w", err)
	}

	log.Info().Str("login", m.Login).Str("variant", string(variant)).Int("cards", len(cards)).Msg("cards generated")
	return cards, nil
}

func (svc *Service) GetCard(ctx context.Context, login string, theme models.Theme, variant models.Variant) (*models.Card, error) {
	return svc.cards.GetCard(ctx, CardLogin(login), theme, variant)
}

func (svc *Service) GetCards(ctx context.Context, filter models.CardFilter, page, perPage int) (repository.Paginated[models.Card], error) {
	if filter.Login != nil {
		login := CardLogin(*filter.Login)
		filter.Login = &login
	}
	return svc.cards.FindCards(ctx, filter, repository.Pagination{
		Page:    page,
		PerPage: perPage,
	})
}

// RequestRefresh records a pending refresh and publishes it for a renderer.
func (svc *Service) RequestRefresh(ctx context.Context, login, variant string) (*models.Refresh, error) {
	if svc.refreshes == nil || svc.publisher == nil {
		return nil, ErrRefreshesDisabled
	}

	v, err := models.ParseVariant(variant)
	if err != nil {
		return nil, ErrInvalidVariant
	}

	id, err := uuid.NewRandom()
	if err != nil {
		return nil, err
	}
	refresh, err := svc.refreshes.SaveRefresh(ctx, models.Refresh{
		ID:          id,
		Login:       login,
		Variant:     v,
		Status:      models.PendingRefresh,
		RequestedAt: svc.now(),
	})
	if err != nil {
		return nil, err
	}

	err = svc.publisher.Publish(ctx, events.RefreshCommand{
		Kind:        events.RefreshRequestedKind,
		ID:          refresh.ID,
		Login:       refresh.Login,
		Variant:     refresh.Variant,
		RequestedAt: refresh.RequestedAt,
	})
	if err != nil {
		log.Error().Err(err).Str("refresh", refresh.ID.String()).Msg("failed to publish refresh")
		pending := models.PendingRefresh
		status := models.FailedRefresh
		msg := err.Error()
		done := svc.now()
		if _, uerr := svc.refreshes.UpdateRefresh(ctx, models.RefreshUpdate{
			ID:           refresh.ID,
			ExpectStatus: &pending,
			Status:       &status,
			Error:        &msg,
			CompletedAt:  &done,
		}); uerr != nil {
			log.Error().Err(uerr).Str("refresh", refresh.ID.String()).Msg("failed to mark refresh as failed")
		}
		return nil, fmt.Errorf("publish refresh: %w", err)
	}

	// A refresh the renderer already finished keeps its status.
	pending := models.PendingRefresh
	status := models.PublishedRefresh
	published, err := svc.refreshes.UpdateRefresh(ctx, models.RefreshUpdate{
		ID:           refresh.ID,
		ExpectStatus: &pending,
		Status:       &status,
	})
	if errors.Is(err, repository.ErrRefreshConflict) {
		return svc.refreshes.FindRefresh(ctx, refresh.ID)
	}
	return published, err
}

// CompleteRefresh closes the refresh named by a renderer's report.
func (svc *Service) CompleteRefresh(ctx context.Context, ev events.CardsRendered) (*models.Refresh, error) {
	if svc.refreshes == nil {
		return nil, ErrRefreshesDisabled
	}

	status := models.RenderedRefresh
	update := models.RefreshUpdate{
		ID:          ev.RefreshID,
		Status:      &status,
		CompletedAt: &ev.RenderedAt,
	}
	if ev.Kind == events.RenderFailedKind {
		status = models.FailedRefresh
		update.Error = &ev.Error
	}
	return svc.refreshes.UpdateRefresh(ctx, update)
}

func (svc *Service) GetRefresh(ctx context.Context, id uuid.UUID) (*models.Refresh, error) {
	if svc.refreshes == nil {
		return nil, ErrRefreshesDisabled
	}
	return svc.refreshes.FindRefresh(ctx, id)
}
