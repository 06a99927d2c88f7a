package handlers

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/noelukwa/devcard/internal/card"
	"github.com/noelukwa/devcard/internal/card/repository"
	"github.com/rs/zerolog/log"
)

type RefreshHandler struct {
	service   *card.Service
	login     string
	validator *validator.Validate
}

func NewRefreshHandler(service *card.Service, login string) *RefreshHandler {
	return &RefreshHandler{
		service:   service,
		login:     login,
		validator: validator.New(),
	}
}

// CreateRefreshRequest represents the request body for queueing a refresh
type CreateRefreshRequest struct {
	Variant string `json:"variant" validate:"omitempty,oneof=neofetch compact extended"`
}

// CreateRefresh godoc
// @Summary Queue a card refresh
// @Description Queue regeneration of the configured login's cards
// @Tags refreshes
// @Accept json
// @Produce json
// @Param request body CreateRefreshRequest false "Refresh request"
// @Success 202 {object} models.Refresh
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /refreshes [post]
func (h *RefreshHandler) CreateRefresh(c echo.Context) error {
	var request CreateRefreshRequest
	if err := c.Bind(&request); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
	}

	if err := h.validator.Struct(request); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}

	refresh, err := h.service.RequestRefresh(c.Request().Context(), h.login, request.Variant)
	if err != nil {
		if errors.Is(err, card.ErrInvalidVariant) {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		}
		log.Error().Err(err).Str("login", h.login).Msg("error requesting refresh")
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to queue refresh"})
	}

	return c.JSON(http.StatusAccepted, refresh)
}

// FetchRefresh godoc
// @Summary Fetch a refresh
// @Tags refreshes
// @Produce json
// @Param id path string true "Refresh ID"
// @Success 200 {object} models.Refresh
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /refreshes/{id} [get]
func (h *RefreshHandler) FetchRefresh(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid refresh ID"})
	}

	refresh, err := h.service.GetRefresh(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrRefreshNotFound) {
			return c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		}
		log.Error().Err(err).Str("refresh", id.String()).Msg("error fetching refresh")
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to fetch refresh"})
	}

	return c.JSON(http.StatusOK, refresh)
}
