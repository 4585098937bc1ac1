package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/jamesruscoe/dog-kennel/internal/common"
	"github.com/jamesruscoe/dog-kennel/internal/middleware"
	"github.com/jamesruscoe/dog-kennel/internal/models"
	"github.com/jamesruscoe/dog-kennel/internal/services"
)

type CompanyHandlers struct {
	companies services.CompanyService
	owners    services.OwnerService
	jwtSecret string
	tokenTTL  time.Duration
}

func NewCompanyHandlers(companies services.CompanyService, owners services.OwnerService, jwtSecret string, tokenTTL time.Duration) *CompanyHandlers {
	return &CompanyHandlers{
		companies: companies,
		owners:    owners,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
	}
}

type signupResponse struct {
	Company *models.Company `json:"company"`
	Token   string          `json:"token"`
}

// Signup registers a new kennel company and returns a staff token for it.
func (h *CompanyHandlers) Signup(c echo.Context) error {
	var req services.SignupRequest
	if err := c.Bind(&req); err != nil {
		return common.RespondError(c, http.StatusBadRequest, "invalid request body")
	}

	company, err := h.companies.Signup(c.Request().Context(), &req)
	if err != nil {
		return common.RespondDomainError(c, err)
	}

	token, err := middleware.GenerateToken(h.jwtSecret, company.ID, nil, middleware.RoleStaff, h.tokenTTL)
	if err != nil {
		return common.RespondError(c, http.StatusInternalServerError, "failed to issue token")
	}

	return c.JSON(http.StatusCreated, signupResponse{Company: company, Token: token})
}

func (h *CompanyHandlers) GetCompany(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return common.RespondError(c, http.StatusBadRequest, "invalid company id")
	}

	company, err := h.companies.GetByID(c.Request().Context(), id)
	if err != nil {
		return common.RespondDomainError(c, err)
	}
	return c.JSON(http.StatusOK, company)
}

type enablePaymentsPayload struct {
	StripeAccountID string `json:"stripe_account_id"`
}

func (h *CompanyHandlers) EnablePayments(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return common.RespondError(c, http.StatusBadRequest, "invalid company id")
	}

	var payload enablePaymentsPayload
	if err := c.Bind(&payload); err != nil {
		return common.RespondError(c, http.StatusBadRequest, "invalid request body")
	}
	if payload.StripeAccountID == "" {
		return common.RespondError(c, http.StatusUnprocessableEntity, "stripe_account_id is required")
	}

	if err := h.companies.EnablePayments(c.Request().Context(), id, payload.StripeAccountID); err != nil {
		return common.RespondDomainError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

type ownerTokenResponse struct {
	Token string `json:"token"`
}

// IssueOwnerToken mints a customer token for an owner. Staff hand these out
// so customers can view and manage their own bookings.
func (h *CompanyHandlers) IssueOwnerToken(c echo.Context) error {
	ownerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return common.RespondError(c, http.StatusBadRequest, "invalid owner id")
	}

	owner, err := h.owners.GetByID(c.Request().Context(), ownerID)
	if err != nil {
		return common.RespondDomainError(c, err)
	}

	token, err := middleware.GenerateToken(h.jwtSecret, owner.CompanyID, &owner.ID, middleware.RoleCustomer, h.tokenTTL)
	if err != nil {
		return common.RespondError(c, http.StatusInternalServerError, "failed to issue token")
	}
	return c.JSON(http.StatusOK, ownerTokenResponse{Token: token})
}
