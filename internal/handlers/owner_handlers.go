package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/jamesruscoe/dog-kennel/internal/common"
	"github.com/jamesruscoe/dog-kennel/internal/models"
	"github.com/jamesruscoe/dog-kennel/internal/services"
)

type OwnerHandlers struct {
	owners services.OwnerService
}

func NewOwnerHandlers(owners services.OwnerService) *OwnerHandlers {
	return &OwnerHandlers{owners: owners}
}

func (h *OwnerHandlers) CreateOwner(c echo.Context) error {
	var owner models.Owner
	if err := c.Bind(&owner); err != nil {
		return common.RespondError(c, http.StatusBadRequest, "invalid request body")
	}

	if err := h.owners.Create(c.Request().Context(), &owner); err != nil {
		return common.RespondDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, owner)
}

func (h *OwnerHandlers) GetOwner(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return common.RespondError(c, http.StatusBadRequest, "invalid owner id")
	}

	owner, err := h.owners.GetByID(c.Request().Context(), id)
	if err != nil {
		return common.RespondDomainError(c, err)
	}
	return c.JSON(http.StatusOK, owner)
}

func (h *OwnerHandlers) UpdateOwner(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return common.RespondError(c, http.StatusBadRequest, "invalid owner id")
	}

	existing, err := h.owners.GetByID(c.Request().Context(), id)
	if err != nil {
		return common.RespondDomainError(c, err)
	}

	var owner models.Owner
	if err := c.Bind(&owner); err != nil {
		return common.RespondError(c, http.StatusBadRequest, "invalid request body")
	}
	owner.ID = existing.ID
	owner.CompanyID = existing.CompanyID

	if err := h.owners.Update(c.Request().Context(), &owner); err != nil {
		return common.RespondDomainError(c, err)
	}
	return c.JSON(http.StatusOK, owner)
}

func (h *OwnerHandlers) ListOwners(c echo.Context) error {
	owners, err := h.owners.List(c.Request().Context(),
		intQueryParam(c, "limit", 50), intQueryParam(c, "offset", 0))
	if err != nil {
		return common.RespondDomainError(c, err)
	}
	return c.JSON(http.StatusOK, owners)
}
