package booking

import (
	"strings"
	"time"

	"github.com/Astemirdum/rental-service/gateway/internal/model"
	"github.com/Astemirdum/rental-service/gateway/internal/validation"
)

const (
	msgStartInPast = "Start date cannot be in the past"
	msgEndNotAfter = "End date must be after start date"
)

// ValidateDates checks a requested term against the engine clock. The start
// may be any time today; the end must be strictly after the start.
func (e *Engine) ValidateDates(start, end time.Time) validation.Result {
	var errs []string
	y, m, d := e.now().In(start.Location()).Date()
	if start.Before(time.Date(y, m, d, 0, 0, 0, 0, start.Location())) {
		errs = append(errs, msgStartInPast)
	}
	if !end.After(start) {
		errs = append(errs, msgEndNotAfter)
	}
	return validation.Result{IsValid: len(errs) == 0, Errors: errs}
}

func ValidateBookingDates(start, end time.Time) validation.Result {
	return NewEngine().ValidateDates(start, end)
}

// NewCreateBookingRequest builds the create payload; a nil or blank message
// is left out of the request body.
func NewCreateBookingRequest(propertyID string, start, end time.Time, message *string) model.CreateBookingRequest {
	req := model.CreateBookingRequest{
		PropertyID: propertyID,
		StartDate:  model.ISOTime{Time: start},
		EndDate:    model.ISOTime{Time: end},
	}
	if message != nil && strings.TrimSpace(*message) != "" {
		msg := *message
		req.Message = &msg
	}
	return req
}
