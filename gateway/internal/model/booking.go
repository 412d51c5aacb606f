package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Booking struct {
	ID              string              `json:"id"`
	PropertyID      string              `json:"propertyId"`
	TenantID        string              `json:"tenantId"`
	LandlordID      string              `json:"landlordId"`
	StartDate       time.Time           `json:"startDate"`
	EndDate         time.Time           `json:"endDate"`
	RentAmount      decimal.Decimal     `json:"rentAmount"`
	Currency        string              `json:"currency"`
	SecurityDeposit decimal.NullDecimal `json:"securityDeposit"`
	Status          BookingStatus       `json:"status"`
	Notes           *string             `json:"notes,omitempty"`
	CreatedAt       time.Time           `json:"createdAt"`
	UpdatedAt       time.Time           `json:"updatedAt"`
	Property        *PropertySummary    `json:"property,omitempty"`
}

type PropertySummary struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Address string `json:"address"`
	City    string `json:"city"`
}

type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

type BookingList struct {
	Items      []Booking  `json:"items"`
	Pagination Pagination `json:"pagination"`
}

// BookingQuery selects bookings from the core service. Zero values are not sent.
type BookingQuery struct {
	Status BookingStatus `query:"status" validate:"omitempty,bookingstatus"`
	Role   Role          `query:"role" validate:"omitempty,oneof=TENANT OWNER"`
	Page   int           `query:"page" validate:"gte=0"`
	Limit  int           `query:"limit" validate:"gte=0,lte=100"`
}

// ISOTime serializes as a UTC timestamp with millisecond precision,
// e.g. 2026-10-15T00:00:00.000Z.
type ISOTime struct {
	time.Time
}

const isoLayout = "2006-01-02T15:04:05.000Z07:00"

func (t ISOTime) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.UTC().Format(isoLayout) + `"`), nil
}

func (t *ISOTime) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		t.Time = time.Time{}
		return nil
	}
	parsed, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

func (t ISOTime) String() string {
	return t.UTC().Format(isoLayout)
}

// CreateBookingRequest is the payload sent to the core service. Message is
// left out of the JSON entirely when nil.
type CreateBookingRequest struct {
	PropertyID string  `json:"propertyId" validate:"required"`
	StartDate  ISOTime `json:"startDate"`
	EndDate    ISOTime `json:"endDate"`
	Message    *string `json:"message,omitempty"`
}

// BookingDecision is the body of reject and cancel calls.
type BookingDecision struct {
	Reason *string `json:"reason,omitempty"`
}
