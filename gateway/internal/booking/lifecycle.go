// Package booking holds the booking state machine.
//
//	PENDING  --approve-->          APPROVED
//	PENDING  --reject(reason?)-->  REJECTED
//	PENDING  --cancel-->           REJECTED   (tenant, reason defaulted)
//	APPROVED|ACTIVE --cancel-->    CANCELLED  (tenant, own booking)
//	APPROVED --term start-->       ACTIVE --term end--> COMPLETED   (server side)
//
// REJECTED, CANCELLED and COMPLETED are terminal. A transition whose guard
// fails returns the booking unchanged; it is not an error.
package booking

import (
	"strings"
	"time"

	"github.com/Astemirdum/rental-service/gateway/internal/model"
)

const DefaultCancelReason = "Cancelled by tenant"

func CanApprove(b model.Booking) bool {
	return b.Status == model.BookingStatusPending
}

func CanReject(b model.Booking) bool {
	return b.Status == model.BookingStatusPending
}

// CanDecide reports whether actor is the landlord of b and so may approve
// or reject it.
func CanDecide(b model.Booking, actor model.Actor) bool {
	return actor.Role == model.RoleOwner && actor.UserID != "" && actor.UserID == b.LandlordID
}

// CanCancel reports whether actor may cancel b: only the booking's own
// tenant, and only while the booking is not terminal.
func CanCancel(b model.Booking, actor model.Actor) bool {
	if actor.Role != model.RoleTenant || actor.UserID == "" || actor.UserID != b.TenantID {
		return false
	}
	return !b.Status.IsTerminal()
}

type Engine struct {
	now func() time.Time
}

type Option func(e *Engine)

func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

func NewEngine(opts ...Option) *Engine {
	e := &Engine{now: time.Now}
	for _, op := range opts {
		op(e)
	}
	return e
}

func (e *Engine) touch(b model.Booking, status model.BookingStatus) model.Booking {
	b.Status = status
	b.UpdatedAt = e.now().UTC()
	return b
}

func (e *Engine) ApplyApproval(b model.Booking) model.Booking {
	if !CanApprove(b) {
		return b
	}
	return e.touch(b, model.BookingStatusApproved)
}

// ApplyRejection sets Notes to reason when one is given.
func (e *Engine) ApplyRejection(b model.Booking, reason *string) model.Booking {
	if !CanReject(b) {
		return b
	}
	out := e.touch(b, model.BookingStatusRejected)
	if r, ok := supplied(reason); ok {
		out.Notes = &r
	}
	return out
}

// ApplyCancellation withdraws a pending request (REJECTED, with a default
// reason) or cancels an approved or active booking (CANCELLED).
func (e *Engine) ApplyCancellation(b model.Booking, actor model.Actor, reason *string) model.Booking {
	if !CanCancel(b, actor) {
		return b
	}
	r, ok := supplied(reason)
	if b.Status == model.BookingStatusPending {
		if !ok {
			r = DefaultCancelReason
		}
		out := e.touch(b, model.BookingStatusRejected)
		out.Notes = &r
		return out
	}
	out := e.touch(b, model.BookingStatusCancelled)
	if ok {
		out.Notes = &r
	}
	return out
}

// RejectReason is the reason sent to the core service for a rejection. It is
// nil when none was given; existing notes are never resent.
func RejectReason(reason *string) *string {
	if r, ok := supplied(reason); ok {
		return &r
	}
	return nil
}

// CancelReason is the reason sent to the core service for a cancellation.
func CancelReason(b model.Booking, reason *string) *string {
	if r, ok := supplied(reason); ok {
		return &r
	}
	if b.Status == model.BookingStatusPending {
		r := DefaultCancelReason
		return &r
	}
	return nil
}

func supplied(reason *string) (string, bool) {
	if reason == nil || strings.TrimSpace(*reason) == "" {
		return "", false
	}
	return *reason, true
}
