package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/jamesruscoe/dog-kennel/internal/common"
	"github.com/jamesruscoe/dog-kennel/internal/services"
)

type CalendarHandlers struct {
	capacity services.CapacityService
	settings services.KennelSettingsService
}

func NewCalendarHandlers(capacity services.CapacityService, settings services.KennelSettingsService) *CalendarHandlers {
	return &CalendarHandlers{capacity: capacity, settings: settings}
}

type calendarResponse struct {
	From        string         `json:"from"`
	To          string         `json:"to"`
	MaxCapacity int            `json:"max_capacity"`
	Occupancy   map[string]int `json:"occupancy"`
}

// GetCalendar returns per-date occupancy for a date window, defaulting to
// the current month.
func (h *CalendarHandlers) GetCalendar(c echo.Context) error {
	now := time.Now().UTC()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, -1)

	if v := c.QueryParam("from"); v != "" {
		t, err := time.Parse(time.DateOnly, v)
		if err != nil {
			return common.RespondError(c, http.StatusBadRequest, "from must be YYYY-MM-DD")
		}
		from = t
	}
	if v := c.QueryParam("to"); v != "" {
		t, err := time.Parse(time.DateOnly, v)
		if err != nil {
			return common.RespondError(c, http.StatusBadRequest, "to must be YYYY-MM-DD")
		}
		to = t
	}
	if to.Before(from) {
		return common.RespondError(c, http.StatusBadRequest, "to must not be before from")
	}
	if to.Sub(from) > 366*24*time.Hour {
		return common.RespondError(c, http.StatusBadRequest, "window too large; one year maximum")
	}

	ctx := c.Request().Context()

	settings, err := h.settings.Get(ctx)
	if err != nil {
		return common.RespondDomainError(c, err)
	}

	occupancy, err := h.capacity.OccupancyByDate(ctx, from, to)
	if err != nil {
		return common.RespondDomainError(c, err)
	}

	return c.JSON(http.StatusOK, calendarResponse{
		From:        from.Format(time.DateOnly),
		To:          to.Format(time.DateOnly),
		MaxCapacity: settings.MaxCapacity,
		Occupancy:   occupancy,
	})
}
