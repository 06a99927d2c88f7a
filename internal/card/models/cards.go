package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Theme string

const (
	DarkTheme  Theme = "dark"
	LightTheme Theme = "light"
)

// Themes lists every theme a card set is rendered in, in output order.
var Themes = []Theme{DarkTheme, LightTheme}

func ParseTheme(s string) (Theme, error) {
	switch Theme(s) {
	case DarkTheme, LightTheme:
		return Theme(s), nil
	}
	return "", fmt.Errorf("unknown theme %q", s)
}

type Variant string

const (
	NeofetchVariant Variant = "neofetch"
	CompactVariant  Variant = "compact"
	ExtendedVariant Variant = "extended"
)

func ParseVariant(s string) (Variant, error) {
	switch Variant(s) {
	case "":
		return NeofetchVariant, nil
	case NeofetchVariant, CompactVariant, ExtendedVariant:
		return Variant(s), nil
	}
	return "", fmt.Errorf("unknown variant %q", s)
}

type Card struct {
	ID         uuid.UUID `json:"id"`
	Login      string    `json:"login"`
	Theme      Theme     `json:"theme"`
	Variant    Variant   `json:"variant"`
	SVG        []byte    `json:"-"`
	RenderedAt time.Time `json:"rendered_at"`
}

type CardFilter struct {
	Login   *string  `json:"login"`
	Theme   *Theme   `json:"theme"`
	Variant *Variant `json:"variant"`
}
