package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/noelukwa/devcard/internal/card/models"
)

var (
	ErrCardNotFound    = errors.New("card not found")
	ErrRefreshNotFound = errors.New("refresh not found")
	ErrRefreshConflict = errors.New("refresh is no longer in the expected status")
)

type Paginated[T any] struct {
	Data       []T
	TotalCount int64
	Page       int
	PerPage    int
}

type Pagination struct {
	Page    int
	PerPage int
}

// Offset is the number of rows before the first row of the page. Pages
// start at 1.
func (p Pagination) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.PerPage
}

// CardStore holds the latest rendered card per login, theme and variant.
// SaveCards replaces existing cards with the same key.
type CardStore interface {
	SaveCards(ctx context.Context, cards []models.Card) error
	GetCard(ctx context.Context, login string, theme models.Theme, variant models.Variant) (*models.Card, error)
	FindCards(ctx context.Context, filter models.CardFilter, pag Pagination) (Paginated[models.Card], error)
}

type RefreshStore interface {
	SaveRefresh(ctx context.Context, refresh models.Refresh) (*models.Refresh, error)
	UpdateRefresh(ctx context.Context, update models.RefreshUpdate) (*models.Refresh, error)
	FindRefresh(ctx context.Context, id uuid.UUID) (*models.Refresh, error)
}
