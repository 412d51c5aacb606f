package model

import "time"

// Event is one stored booking lifecycle transition.
type Event struct {
	EventID    string    `json:"eventId" db:"event_id"`
	Type       string    `json:"type" db:"type"`
	BookingID  string    `json:"bookingId" db:"booking_id"`
	PropertyID string    `json:"propertyId" db:"property_id"`
	FromStatus *string   `json:"fromStatus,omitempty" db:"from_status"`
	ToStatus   string    `json:"toStatus" db:"to_status"`
	ActorID    *string   `json:"actorId,omitempty" db:"actor_id"`
	ActorRole  *string   `json:"actorRole,omitempty" db:"actor_role"`
	Reason     *string   `json:"reason,omitempty" db:"reason"`
	OccurredAt time.Time `json:"occurredAt" db:"occurred_at"`
}

type Count struct {
	Key   string `db:"key"`
	Count int    `db:"count"`
}

// Stats summarises the journal. ByStatus counts bookings by their latest
// status, ByType counts events.
type Stats struct {
	Events   int            `json:"events"`
	Bookings int            `json:"bookings"`
	ByStatus map[string]int `json:"byStatus"`
	ByType   map[string]int `json:"byType"`
}

type History struct {
	BookingID string  `json:"bookingId"`
	Status    string  `json:"status"`
	Events    []Event `json:"events"`
}
