package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jamesruscoe/dog-kennel/internal/common"
	"github.com/jamesruscoe/dog-kennel/internal/services"
)

type SettingsHandlers struct {
	settings services.KennelSettingsService
}

func NewSettingsHandlers(settings services.KennelSettingsService) *SettingsHandlers {
	return &SettingsHandlers{settings: settings}
}

func (h *SettingsHandlers) GetSettings(c echo.Context) error {
	settings, err := h.settings.Get(c.Request().Context())
	if err != nil {
		return common.RespondDomainError(c, err)
	}
	return c.JSON(http.StatusOK, settings)
}

func (h *SettingsHandlers) CreateSettings(c echo.Context) error {
	var req services.SettingsRequest
	if err := c.Bind(&req); err != nil {
		return common.RespondError(c, http.StatusBadRequest, "invalid request body")
	}

	settings, err := h.settings.Create(c.Request().Context(), &req)
	if err != nil {
		return common.RespondDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, settings)
}

func (h *SettingsHandlers) UpdateSettings(c echo.Context) error {
	var req services.SettingsRequest
	if err := c.Bind(&req); err != nil {
		return common.RespondError(c, http.StatusBadRequest, "invalid request body")
	}

	settings, err := h.settings.Update(c.Request().Context(), &req)
	if err != nil {
		return common.RespondDomainError(c, err)
	}
	return c.JSON(http.StatusOK, settings)
}
