package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/Astemirdum/rental-service/gateway/internal/model"
	"github.com/labstack/echo/v4"
)

// ListBookings godoc
// @Summary list the signed-in user's bookings
// @Tags bookings
// @Param status query string false "booking status"
// @Param role query string false "TENANT | OWNER, defaults to the user's role"
// @Param page query int false "page"
// @Param limit query int false "page size, at most 100"
// @Router /bookings [get]
func (h *Handler) ListBookings(c echo.Context) error {
	actor, _ := actorFrom(c)
	var q model.BookingQuery
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if q.Role == "" {
		q.Role = actor.Role
	}
	list, err := h.bookingSvc.List(c.Request().Context(), q)
	if err != nil {
		return h.fail(err)
	}
	return c.JSON(http.StatusOK, bookingListResponse{
		Items:      newBookingViews(list.Items, actor),
		Pagination: list.Pagination,
	})
}

func (h *Handler) GetBooking(c echo.Context) error {
	actor, _ := actorFrom(c)
	b, err := h.loadBooking(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newBookingView(b, actor))
}

type createBookingBody struct {
	PropertyID string  `json:"propertyId" validate:"required"`
	StartDate  string  `json:"startDate" validate:"required"`
	EndDate    string  `json:"endDate" validate:"required"`
	Message    *string `json:"message"`
}

var dayLayouts = []string{time.RFC3339Nano, "2006-01-02"}

func parseDay(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dayLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// CreateBooking godoc
// @Summary request a booking
// @Tags bookings
// @Accept json
// @Produce json
// @Router /bookings [post]
func (h *Handler) CreateBooking(c echo.Context) error {
	actor, _ := actorFrom(c)
	var body createBookingBody
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	start, ok := parseDay(body.StartDate)
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "startDate must be a date")
	}
	end, ok := parseDay(body.EndDate)
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "endDate must be a date")
	}
	b, err := h.bookingSvc.Create(c.Request().Context(), actor, body.PropertyID, start, end, body.Message)
	if err != nil {
		return h.fail(err)
	}
	return c.JSON(http.StatusCreated, newBookingView(b, actor))
}

func (h *Handler) ApproveBooking(c echo.Context) error {
	return h.decide(c, func(ctx context.Context, actor model.Actor, b model.Booking, _ *string) (model.Booking, error) {
		return h.bookingSvc.Approve(ctx, actor, b)
	})
}

func (h *Handler) RejectBooking(c echo.Context) error {
	return h.decide(c, h.bookingSvc.Reject)
}

func (h *Handler) CancelBooking(c echo.Context) error {
	return h.decide(c, h.bookingSvc.Cancel)
}

type decision func(ctx context.Context, actor model.Actor, b model.Booking, reason *string) (model.Booking, error)

// decide loads the current booking and applies a lifecycle action to it. When
// the action is not allowed in the booking's state the booking comes back as is.
func (h *Handler) decide(c echo.Context, apply decision) error {
	actor, _ := actorFrom(c)
	var body model.BookingDecision
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	b, err := h.loadBooking(c)
	if err != nil {
		return err
	}
	updated, err := apply(c.Request().Context(), actor, b, body.Reason)
	if err != nil {
		return h.fail(err)
	}
	return c.JSON(http.StatusOK, newBookingView(updated, actor))
}

func (h *Handler) loadBooking(c echo.Context) (model.Booking, error) {
	id := c.Param("id")
	if id == "" {
		return model.Booking{}, echo.NewHTTPError(http.StatusBadRequest, "empty id")
	}
	b, err := h.bookingSvc.Get(c.Request().Context(), id)
	if err != nil {
		return model.Booking{}, h.fail(err)
	}
	return b, nil
}
