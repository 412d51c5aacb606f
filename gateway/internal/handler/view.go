package handler

import (
	"github.com/Astemirdum/rental-service/gateway/internal/booking"
	"github.com/Astemirdum/rental-service/gateway/internal/format"
	"github.com/Astemirdum/rental-service/gateway/internal/model"
)

type bookingView struct {
	model.Booking
	RentDisplay    string `json:"rentDisplay"`
	DepositDisplay string `json:"depositDisplay,omitempty"`
	Period         string `json:"period"`
	CanApprove     bool   `json:"canApprove"`
	CanReject      bool   `json:"canReject"`
	CanCancel      bool   `json:"canCancel"`
}

func newBookingView(b model.Booking, actor model.Actor) bookingView {
	v := bookingView{
		Booking:     b,
		RentDisplay: format.CurrencyDecimal(b.RentAmount),
		Period:      format.DateRange(b.StartDate, b.EndDate),
		CanCancel:   booking.CanCancel(b, actor),
	}
	if b.SecurityDeposit.Valid {
		v.DepositDisplay = format.CurrencyDecimal(b.SecurityDeposit.Decimal)
	}
	if booking.CanDecide(b, actor) {
		v.CanApprove = booking.CanApprove(b)
		v.CanReject = booking.CanReject(b)
	}
	return v
}

func newBookingViews(bs []model.Booking, actor model.Actor) []bookingView {
	out := make([]bookingView, 0, len(bs))
	for _, b := range bs {
		out = append(out, newBookingView(b, actor))
	}
	return out
}

type bookingListResponse struct {
	Items      []bookingView    `json:"items"`
	Pagination model.Pagination `json:"pagination"`
}

type propertyView struct {
	model.Property
	PriceDisplay string `json:"priceDisplay"`
	ListedOn     string `json:"listedOn"`
}

func newPropertyViews(ps []model.Property) []propertyView {
	out := make([]propertyView, 0, len(ps))
	for _, p := range ps {
		out = append(out, newPropertyView(p))
	}
	return out
}

func newPropertyView(p model.Property) propertyView {
	return propertyView{
		Property:     p,
		PriceDisplay: format.CurrencyDecimal(p.Price),
		ListedOn:     format.Date(p.CreatedAt),
	}
}

type propertyListResponse struct {
	Items      []propertyView   `json:"items"`
	Pagination model.Pagination `json:"pagination"`
}

type predictionResponse struct {
	model.PredictionResponse
	PriceDisplay string `json:"priceDisplay"`
	RangeDisplay string `json:"rangeDisplay,omitempty"`
}

type dashboardResponse struct {
	Role           model.Role                   `json:"role"`
	BookingCounts  map[model.BookingStatus]int  `json:"bookingCounts"`
	Pending        []bookingView                `json:"pending"`
	Upcoming       []bookingView                `json:"upcoming"`
	PropertyCounts map[model.PropertyStatus]int `json:"propertyCounts,omitempty"`
	Favorites      int                          `json:"favorites"`
}
