package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/jamesruscoe/dog-kennel/internal/common"
	"github.com/jamesruscoe/dog-kennel/internal/models"
	"github.com/jamesruscoe/dog-kennel/internal/services"
)

type DogHandlers struct {
	dogs services.DogService
}

func NewDogHandlers(dogs services.DogService) *DogHandlers {
	return &DogHandlers{dogs: dogs}
}

func (h *DogHandlers) CreateDog(c echo.Context) error {
	var dog models.Dog
	if err := c.Bind(&dog); err != nil {
		return common.RespondError(c, http.StatusBadRequest, "invalid request body")
	}

	if err := h.dogs.Create(c.Request().Context(), &dog); err != nil {
		return common.RespondDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, dog)
}

func (h *DogHandlers) GetDog(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return common.RespondError(c, http.StatusBadRequest, "invalid dog id")
	}

	dog, err := h.dogs.GetByID(c.Request().Context(), id)
	if err != nil {
		return common.RespondDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dog)
}

func (h *DogHandlers) UpdateDog(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return common.RespondError(c, http.StatusBadRequest, "invalid dog id")
	}

	existing, err := h.dogs.GetByID(c.Request().Context(), id)
	if err != nil {
		return common.RespondDomainError(c, err)
	}

	var dog models.Dog
	if err := c.Bind(&dog); err != nil {
		return common.RespondError(c, http.StatusBadRequest, "invalid request body")
	}
	dog.ID = existing.ID
	dog.CompanyID = existing.CompanyID
	if dog.OwnerID == uuid.Nil {
		dog.OwnerID = existing.OwnerID
	}

	if err := h.dogs.Update(c.Request().Context(), &dog); err != nil {
		return common.RespondDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dog)
}

func (h *DogHandlers) DeleteDog(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return common.RespondError(c, http.StatusBadRequest, "invalid dog id")
	}

	if err := h.dogs.Delete(c.Request().Context(), id); err != nil {
		return common.RespondDomainError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *DogHandlers) ListDogs(c echo.Context) error {
	var ownerID *uuid.UUID
	if v := c.QueryParam("owner_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return common.RespondError(c, http.StatusBadRequest, "invalid owner_id")
		}
		ownerID = &id
	}

	dogs, err := h.dogs.List(c.Request().Context(), ownerID,
		intQueryParam(c, "limit", 50), intQueryParam(c, "offset", 0))
	if err != nil {
		return common.RespondDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dogs)
}
