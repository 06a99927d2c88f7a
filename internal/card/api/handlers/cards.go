package handlers

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/noelukwa/devcard/internal/card"
	"github.com/noelukwa/devcard/internal/card/github"
	"github.com/noelukwa/devcard/internal/card/metrics"
	"github.com/noelukwa/devcard/internal/card/models"
	"github.com/noelukwa/devcard/internal/card/repository"
	"github.com/rs/zerolog/log"
)

const defaultPerPage = 20

type CardHandler struct {
	service   *card.Service
	login     string
	validator *validator.Validate
}

func NewCardHandler(service *card.Service, login string) *CardHandler {
	return &CardHandler{
		service:   service,
		login:     login,
		validator: validator.New(),
	}
}

// FetchMetrics godoc
// @Summary Live profile metrics
// @Description Fetch and aggregate the metrics of the configured login
// @Tags cards
// @Produce json
// @Success 200 {object} models.ProfileMetrics
// @Failure 404 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /metrics [get]
func (h *CardHandler) FetchMetrics(c echo.Context) error {
	m, err := h.service.Metrics(c.Request().Context(), h.login)
	if err != nil {
		switch {
		case errors.Is(err, github.ErrUserNotFound):
			return c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		case errors.Is(err, metrics.ErrMalformedInput):
			return c.JSON(http.StatusBadGateway, ErrorResponse{Error: err.Error()})
		}
		log.Error().Err(err).Str("login", h.login).Msg("error fetching metrics")
		return c.JSON(http.StatusBadGateway, ErrorResponse{Error: "Failed to fetch metrics"})
	}

	return c.JSON(http.StatusOK, m)
}

// FetchCardsRequest represents the query parameters for listing cards
type FetchCardsRequest struct {
	Login   string `query:"login"`
	Theme   string `query:"theme" validate:"omitempty,oneof=dark light"`
	Variant string `query:"variant" validate:"omitempty,oneof=neofetch compact extended"`
	Page    int    `query:"page" validate:"min=1"`
	PerPage int    `query:"per_page" validate:"min=1,max=100"`
}

// FetchCards godoc
// @Summary List rendered cards
// @Tags cards
// @Produce json
// @Param theme query string false "Filter by theme" Enums(dark, light)
// @Param variant query string false "Filter by variant" Enums(neofetch, compact, extended)
// @Param page query int false "Page number" minimum(1)
// @Param per_page query int false "Items per page" minimum(1) maximum(100)
// @Success 200 {object} PaginatedResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /cards [get]
func (h *CardHandler) FetchCards(c echo.Context) error {
	request := FetchCardsRequest{Page: 1, PerPage: defaultPerPage}
	if err := c.Bind(&request); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters"})
	}

	if err := h.validator.Struct(request); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}

	var filter models.CardFilter
	if request.Login != "" {
		filter.Login = &request.Login
	}
	if request.Theme != "" {
		theme := models.Theme(request.Theme)
		filter.Theme = &theme
	}
	if request.Variant != "" {
		variant := models.Variant(request.Variant)
		filter.Variant = &variant
	}

	cards, err := h.service.GetCards(c.Request().Context(), filter, request.Page, request.PerPage)
	if err != nil {
		log.Error().Err(err).Msg("error fetching cards")
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to fetch cards"})
	}

	return c.JSON(http.StatusOK, PaginatedResponse{
		Data:       cards.Data,
		TotalCount: cards.TotalCount,
		Page:       cards.Page,
		PerPage:    cards.PerPage,
	})
}

// FetchCard godoc
// @Summary Rendered card image
// @Tags cards
// @Produce image/svg+xml
// @Param theme path string true "Theme" Enums(dark, light)
// @Param variant query string false "Variant" Enums(neofetch, compact, extended)
// @Success 200 {string} string
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /cards/{theme} [get]
func (h *CardHandler) FetchCard(c echo.Context) error {
	theme, err := models.ParseTheme(c.Param("theme"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}
	variant, err := models.ParseVariant(c.QueryParam("variant"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}

	login := c.QueryParam("login")
	if login == "" {
		login = h.login
	}

	found, err := h.service.GetCard(c.Request().Context(), login, theme, variant)
	if err != nil {
		if errors.Is(err, repository.ErrCardNotFound) {
			return c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		}
		log.Error().Err(err).Str("login", login).Msg("error fetching card")
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to fetch card"})
	}

	c.Response().Header().Set("Cache-Control", "max-age=300")
	return c.Blob(http.StatusOK, "image/svg+xml", found.SVG)
}
