package events

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/noelukwa/devcard/internal/card/models"
)

type RefreshKind string

const (
	RefreshRequestedKind RefreshKind = "refresh_requested"
)

// RefreshCommand asks a renderer to regenerate the cards of a login.
type RefreshCommand struct {
	Kind        RefreshKind    `json:"kind"`
	ID          uuid.UUID      `json:"id"`
	Login       string         `json:"login"`
	Variant     models.Variant `json:"variant"`
	RequestedAt time.Time      `json:"requested_at"`
}

type RenderedKind string

const (
	CardsRenderedKind RenderedKind = "cards_rendered"
	RenderFailedKind  RenderedKind = "render_failed"
)

// CardsRendered reports the outcome of a RefreshCommand.
type CardsRendered struct {
	Kind       RenderedKind   `json:"kind"`
	RefreshID  uuid.UUID      `json:"refresh_id"`
	Login      string         `json:"login"`
	Themes     []models.Theme `json:"themes,omitempty"`
	Error      string         `json:"error,omitempty"`
	RenderedAt time.Time      `json:"rendered_at"`
}

func ParseRefreshCommand(data []byte) (*RefreshCommand, error) {
	var cmd RefreshCommand
	if err := json.Unmarshal(data, &cmd); err != nil {
		return nil, err
	}
	return &cmd, nil
}

func ParseCardsRendered(data []byte) (*CardsRendered, error) {
	var ev CardsRendered
	if err := json.Unmarshal(data, &ev); err != nil {
		return nil, err
	}
	return &ev, nil
}
