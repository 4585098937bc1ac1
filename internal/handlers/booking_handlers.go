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

type BookingHandlers struct {
	bookings services.BookingService
	dogs     services.DogService
	careLogs services.CareLogService
	payments services.PaymentService
}

func NewBookingHandlers(
	bookings services.BookingService,
	dogs services.DogService,
	careLogs services.CareLogService,
	payments services.PaymentService,
) *BookingHandlers {
	return &BookingHandlers{
		bookings: bookings,
		dogs:     dogs,
		careLogs: careLogs,
		payments: payments,
	}
}

type createBookingPayload struct {
	DogID               uuid.UUID `json:"dog_id"`
	CheckInDate         string    `json:"check_in_date"`
	CheckOutDate        string    `json:"check_out_date"`
	Notes               *string   `json:"notes"`
	SpecialRequirements *string   `json:"special_requirements"`
}

func (h *BookingHandlers) CreateBooking(c echo.Context) error {
	var payload createBookingPayload
	if err := c.Bind(&payload); err != nil {
		return common.RespondError(c, http.StatusBadRequest, "invalid request body")
	}

	checkIn, err := time.Parse(time.DateOnly, payload.CheckInDate)
	if err != nil {
		return common.RespondError(c, http.StatusBadRequest, "check_in_date must be YYYY-MM-DD")
	}
	checkOut, err := time.Parse(time.DateOnly, payload.CheckOutDate)
	if err != nil {
		return common.RespondError(c, http.StatusBadRequest, "check_out_date must be YYYY-MM-DD")
	}

	ctx := c.Request().Context()

	// Customers can only book their own dogs. Staff book any dog in the
	// company.
	if role, _ := middleware.RoleFromContext(ctx); role == middleware.RoleCustomer {
		ownerID, ok := middleware.OwnerIDFromContext(ctx)
		if !ok {
			return common.RespondError(c, http.StatusForbidden, "token has no owner")
		}
		owned, err := h.dogs.OwnedBy(ctx, payload.DogID, ownerID)
		if err != nil {
			return common.RespondDomainError(c, err)
		}
		if !owned {
			return common.RespondError(c, http.StatusForbidden, "dog does not belong to you")
		}
	}

	booking, err := h.bookings.Create(ctx, &services.CreateBookingRequest{
		DogID:               payload.DogID,
		CheckInDate:         checkIn,
		CheckOutDate:        checkOut,
		Notes:               payload.Notes,
		SpecialRequirements: payload.SpecialRequirements,
	})
	if err != nil {
		return common.RespondDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, booking)
}

func (h *BookingHandlers) ListBookings(c echo.Context) error {
	filter := &models.BookingSearchFilter{
		Search: c.QueryParam("search"),
	}
	if s := c.QueryParam("status"); s != "" {
		status := models.BookingStatus(s)
		filter.Status = &status
	}
	if v := c.QueryParam("date_from"); v != "" {
		t, err := time.Parse(time.DateOnly, v)
		if err != nil {
			return common.RespondError(c, http.StatusBadRequest, "date_from must be YYYY-MM-DD")
		}
		filter.DateFrom = &t
	}
	if v := c.QueryParam("date_to"); v != "" {
		t, err := time.Parse(time.DateOnly, v)
		if err != nil {
			return common.RespondError(c, http.StatusBadRequest, "date_to must be YYYY-MM-DD")
		}
		filter.DateTo = &t
	}
	filter.Limit = intQueryParam(c, "limit", 50)
	filter.Offset = intQueryParam(c, "offset", 0)

	ctx := c.Request().Context()

	// Customers see only bookings for their own dogs.
	if role, _ := middleware.RoleFromContext(ctx); role == middleware.RoleCustomer {
		ownerID, ok := middleware.OwnerIDFromContext(ctx)
		if !ok {
			return common.RespondError(c, http.StatusForbidden, "token has no owner")
		}
		bookings, err := h.bookings.ListForOwner(ctx, ownerID, filter)
		if err != nil {
			return common.RespondDomainError(c, err)
		}
		return c.JSON(http.StatusOK, bookings)
	}

	bookings, err := h.bookings.List(ctx, filter)
	if err != nil {
		return common.RespondDomainError(c, err)
	}
	return c.JSON(http.StatusOK, bookings)
}

func (h *BookingHandlers) GetBooking(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return common.RespondError(c, http.StatusBadRequest, "invalid booking id")
	}

	booking, err := h.bookings.GetByID(c.Request().Context(), id)
	if err != nil {
		return common.RespondDomainError(c, err)
	}
	return c.JSON(http.StatusOK, booking)
}

func (h *BookingHandlers) ApproveBooking(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return common.RespondError(c, http.StatusBadRequest, "invalid booking id")
	}

	booking, err := h.bookings.Approve(c.Request().Context(), id)
	if err != nil {
		return common.RespondDomainError(c, err)
	}
	return c.JSON(http.StatusOK, booking)
}

type reasonPayload struct {
	Reason *string `json:"reason"`
}

func (h *BookingHandlers) RejectBooking(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return common.RespondError(c, http.StatusBadRequest, "invalid booking id")
	}

	var payload reasonPayload
	if err := c.Bind(&payload); err != nil {
		return common.RespondError(c, http.StatusBadRequest, "invalid request body")
	}

	booking, err := h.bookings.Reject(c.Request().Context(), id, payload.Reason)
	if err != nil {
		return common.RespondDomainError(c, err)
	}
	return c.JSON(http.StatusOK, booking)
}

func (h *BookingHandlers) CancelBooking(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return common.RespondError(c, http.StatusBadRequest, "invalid booking id")
	}

	var payload reasonPayload
	if err := c.Bind(&payload); err != nil {
		return common.RespondError(c, http.StatusBadRequest, "invalid request body")
	}

	ctx := c.Request().Context()

	// Customers may cancel their own bookings only.
	if role, _ := middleware.RoleFromContext(ctx); role == middleware.RoleCustomer {
		ownerID, ok := middleware.OwnerIDFromContext(ctx)
		if !ok {
			return common.RespondError(c, http.StatusForbidden, "token has no owner")
		}
		booking, err := h.bookings.GetByID(ctx, id)
		if err != nil {
			return common.RespondDomainError(c, err)
		}
		owned, err := h.dogs.OwnedBy(ctx, booking.DogID, ownerID)
		if err != nil {
			return common.RespondDomainError(c, err)
		}
		if !owned {
			return common.RespondError(c, http.StatusForbidden, "booking does not belong to you")
		}
	}

	booking, err := h.bookings.Cancel(ctx, id, payload.Reason)
	if err != nil {
		return common.RespondDomainError(c, err)
	}
	return c.JSON(http.StatusOK, booking)
}

func (h *BookingHandlers) CompleteBooking(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return common.RespondError(c, http.StatusBadRequest, "invalid booking id")
	}

	booking, err := h.bookings.Complete(c.Request().Context(), id)
	if err != nil {
		return common.RespondDomainError(c, err)
	}
	return c.JSON(http.StatusOK, booking)
}

func (h *BookingHandlers) DeleteBooking(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return common.RespondError(c, http.StatusBadRequest, "invalid booking id")
	}

	if err := h.bookings.Delete(c.Request().Context(), id); err != nil {
		return common.RespondDomainError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

type addCareLogPayload struct {
	Activity   string     `json:"activity"`
	Notes      *string    `json:"notes"`
	OccurredAt *time.Time `json:"occurred_at"`
}

func (h *BookingHandlers) AddCareLog(c echo.Context) error {
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return common.RespondError(c, http.StatusBadRequest, "invalid booking id")
	}

	var payload addCareLogPayload
	if err := c.Bind(&payload); err != nil {
		return common.RespondError(c, http.StatusBadRequest, "invalid request body")
	}

	entry, err := h.careLogs.Add(c.Request().Context(), &services.AddCareLogRequest{
		BookingID:  bookingID,
		Activity:   payload.Activity,
		Notes:      payload.Notes,
		OccurredAt: payload.OccurredAt,
	})
	if err != nil {
		return common.RespondDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, entry)
}

func (h *BookingHandlers) ListCareLogs(c echo.Context) error {
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return common.RespondError(c, http.StatusBadRequest, "invalid booking id")
	}

	logs, err := h.careLogs.ListForBooking(c.Request().Context(), bookingID)
	if err != nil {
		return common.RespondDomainError(c, err)
	}
	return c.JSON(http.StatusOK, logs)
}

type recordPaymentPayload struct {
	AmountPence int     `json:"amount_pence"`
	Method      string  `json:"method"`
	Reference   *string `json:"reference"`
}

func (h *BookingHandlers) RecordPayment(c echo.Context) error {
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return common.RespondError(c, http.StatusBadRequest, "invalid booking id")
	}

	var payload recordPaymentPayload
	if err := c.Bind(&payload); err != nil {
		return common.RespondError(c, http.StatusBadRequest, "invalid request body")
	}

	payment, err := h.payments.Record(c.Request().Context(), &services.RecordPaymentRequest{
		BookingID:   bookingID,
		AmountPence: payload.AmountPence,
		Method:      payload.Method,
		Reference:   payload.Reference,
	})
	if err != nil {
		return common.RespondDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, payment)
}

func (h *BookingHandlers) ListPayments(c echo.Context) error {
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return common.RespondError(c, http.StatusBadRequest, "invalid booking id")
	}

	payments, err := h.payments.ListForBooking(c.Request().Context(), bookingID)
	if err != nil {
		return common.RespondDomainError(c, err)
	}
	return c.JSON(http.StatusOK, payments)
}
