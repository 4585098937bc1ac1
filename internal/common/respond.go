// Package common holds the shared HTTP response envelope and the mapping
// from domain errors to status codes.
package common

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jamesruscoe/dog-kennel/internal/models"
	"github.com/jamesruscoe/dog-kennel/internal/scope"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

func RespondError(c echo.Context, status int, message string) error {
	return c.JSON(status, ErrorResponse{Error: message})
}

// RespondDomainError translates a domain error into the matching HTTP
// status. Validation failures are 422, conflicts with current state 409,
// missing records 404; anything unrecognised is a 500 with a generic body.
func RespondDomainError(c echo.Context, err error) error {
	var (
		validationErr *models.ValidationError
		dateErr       *models.InvalidDateRangeError
		dayErr        *models.OperatingDayError
		capacityErr   *models.CapacityConflictError
		transitionErr *models.InvalidTransitionError
		stateErr      *models.StateError
	)

	switch {
	case errors.As(err, &validationErr), errors.As(err, &dateErr), errors.As(err, &dayErr):
		return RespondError(c, http.StatusUnprocessableEntity, err.Error())
	case errors.As(err, &capacityErr), errors.As(err, &transitionErr), errors.As(err, &stateErr):
		return RespondError(c, http.StatusConflict, err.Error())
	case errors.Is(err, models.ErrBookingNotFound),
		errors.Is(err, models.ErrDogNotFound),
		errors.Is(err, models.ErrOwnerNotFound),
		errors.Is(err, models.ErrCompanyNotFound),
		errors.Is(err, models.ErrSettingsNotFound):
		return RespondError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, scope.ErrNoCompany):
		return RespondError(c, http.StatusUnauthorized, "no company in request context")
	default:
		return RespondError(c, http.StatusInternalServerError, "internal server error")
	}
}
