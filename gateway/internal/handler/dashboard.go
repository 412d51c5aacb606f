package handler

import (
	"net/http"

	"github.com/Astemirdum/rental-service/gateway/internal/filter"
	"github.com/Astemirdum/rental-service/gateway/internal/model"
	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"
)

const dashboardLimit = 100

// Dashboard godoc
// @Summary booking and listing overview for the signed-in user
// @Tags dashboard
// @Router /dashboard [get]
func (h *Handler) Dashboard(c echo.Context) error {
	actor, _ := actorFrom(c)
	ctx := c.Request().Context()

	var (
		bookings  model.BookingList
		props     model.PropertyList
		favorites []string
	)
	gg, gctx := errgroup.WithContext(ctx)
	gg.Go(func() error {
		var err error
		bookings, err = h.bookingSvc.List(gctx, model.BookingQuery{Role: actor.Role, Limit: dashboardLimit})
		return err
	})
	if actor.Role == model.RoleOwner {
		gg.Go(func() error {
			var err error
			props, err = h.propertySvc.ListProperties(gctx, 0, dashboardLimit)
			return err
		})
	} else {
		gg.Go(func() error {
			var err error
			favorites, err = h.propertySvc.ListFavorites(gctx)
			return err
		})
	}
	if err := gg.Wait(); err != nil {
		return h.fail(err)
	}

	resp := dashboardResponse{
		Role:          actor.Role,
		BookingCounts: make(map[model.BookingStatus]int, len(model.BookingStatuses())),
		Pending:       newBookingViews(filter.BookingsByStatus(bookings.Items, model.BookingStatusPending), actor),
		Upcoming:      newBookingViews(filter.BookingsByStatus(bookings.Items, model.BookingStatusApproved), actor),
		Favorites:     len(favorites),
	}
	for _, st := range model.BookingStatuses() {
		resp.BookingCounts[st] = len(filter.BookingsByStatus(bookings.Items, st))
	}
	if actor.Role == model.RoleOwner {
		own := make([]model.Property, 0, len(props.Items))
		for _, p := range props.Items {
			if p.OwnerID == actor.UserID {
				own = append(own, p)
			}
		}
		resp.PropertyCounts = map[model.PropertyStatus]int{
			model.PropertyStatusPendingReview: len(filter.PropertiesByStatus(own, model.PropertyStatusPendingReview)),
			model.PropertyStatusApproved:      len(filter.PropertiesByStatus(own, model.PropertyStatusApproved)),
			model.PropertyStatusRejected:      len(filter.PropertiesByStatus(own, model.PropertyStatusRejected)),
		}
	}
	return c.JSON(http.StatusOK, resp)
}
