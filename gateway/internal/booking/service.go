package booking

import (
	"context"
	"time"

	"github.com/Astemirdum/rental-service/gateway/internal/errs"
	"github.com/Astemirdum/rental-service/gateway/internal/model"
	"github.com/Astemirdum/rental-service/pkg/kafka"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go

type API interface {
	ListBookings(ctx context.Context, q model.BookingQuery) (model.BookingList, error)
	GetBooking(ctx context.Context, id string) (model.Booking, error)
	CreateBooking(ctx context.Context, req model.CreateBookingRequest) (model.Booking, error)
	ApproveBooking(ctx context.Context, id string) (model.Booking, error)
	RejectBooking(ctx context.Context, id string, reason *string) (model.Booking, error)
	CancelBooking(ctx context.Context, id string, reason *string) (model.Booking, error)
}

type Publisher interface {
	Publish(ctx context.Context, event kafka.BookingEvent) error
}

// Service runs lifecycle actions against the core service. Guards and the
// actor's right to act are checked locally first; a failed check returns the
// booking as given without a round trip.
type Service struct {
	api    API
	pub    Publisher
	engine *Engine
	log    *zap.Logger
}

func NewService(api API, pub Publisher, log *zap.Logger, opts ...Option) *Service {
	return &Service{
		api:    api,
		pub:    pub,
		engine: NewEngine(opts...),
		log:    log.Named("booking"),
	}
}

func (s *Service) Engine() *Engine {
	return s.engine
}

func (s *Service) List(ctx context.Context, q model.BookingQuery) (model.BookingList, error) {
	return s.api.ListBookings(ctx, q)
}

func (s *Service) Get(ctx context.Context, id string) (model.Booking, error) {
	return s.api.GetBooking(ctx, id)
}

func (s *Service) Create(ctx context.Context, actor model.Actor, propertyID string, start, end time.Time, message *string) (model.Booking, error) {
	if res := s.engine.ValidateDates(start, end); !res.IsValid {
		return model.Booking{}, errs.NewValidationError(res.Errors)
	}
	created, err := s.api.CreateBooking(ctx, NewCreateBookingRequest(propertyID, start, end, message))
	if err != nil {
		return model.Booking{}, err
	}
	s.publish(ctx, kafka.EventCreated, "", created, actor, nil)
	return created, nil
}

func (s *Service) Approve(ctx context.Context, actor model.Actor, b model.Booking) (model.Booking, error) {
	if !CanDecide(b, actor) || !CanApprove(b) {
		return b, nil
	}
	expected := s.engine.ApplyApproval(b)
	updated, err := s.api.ApproveBooking(ctx, b.ID)
	if err != nil {
		return b, err
	}
	s.reconcile(expected, updated)
	s.publish(ctx, kafka.EventApproved, b.Status, updated, actor, nil)
	return updated, nil
}

func (s *Service) Reject(ctx context.Context, actor model.Actor, b model.Booking, reason *string) (model.Booking, error) {
	if !CanDecide(b, actor) || !CanReject(b) {
		return b, nil
	}
	expected := s.engine.ApplyRejection(b, reason)
	r := RejectReason(reason)
	updated, err := s.api.RejectBooking(ctx, b.ID, r)
	if err != nil {
		return b, err
	}
	s.reconcile(expected, updated)
	s.publish(ctx, kafka.EventRejected, b.Status, updated, actor, r)
	return updated, nil
}

func (s *Service) Cancel(ctx context.Context, actor model.Actor, b model.Booking, reason *string) (model.Booking, error) {
	if !CanCancel(b, actor) {
		return b, nil
	}
	expected := s.engine.ApplyCancellation(b, actor, reason)
	r := CancelReason(b, reason)
	updated, err := s.api.CancelBooking(ctx, b.ID, r)
	if err != nil {
		return b, err
	}
	s.reconcile(expected, updated)
	s.publish(ctx, kafka.EventCancelled, b.Status, updated, actor, r)
	return updated, nil
}

// reconcile logs when the core service settles on a different status than
// the local state machine predicted. The server record always wins.
func (s *Service) reconcile(expected, actual model.Booking) {
	if expected.Status != actual.Status {
		s.log.Warn("booking status drift",
			zap.String("id", actual.ID),
			zap.String("expected", string(expected.Status)),
			zap.String("actual", string(actual.Status)))
	}
}

func (s *Service) publish(ctx context.Context, typ kafka.EventType, from model.BookingStatus, b model.Booking, actor model.Actor, reason *string) {
	if s.pub == nil {
		return
	}
	ev := kafka.BookingEvent{
		EventID:    uuid.NewString(),
		Type:       typ,
		BookingID:  b.ID,
		PropertyID: b.PropertyID,
		FromStatus: string(from),
		ToStatus:   string(b.Status),
		ActorID:    actor.UserID,
		ActorRole:  string(actor.Role),
		Reason:     reason,
		Timestamp:  s.engine.now().UTC(),
	}
	if err := s.pub.Publish(ctx, ev); err != nil {
		s.log.Warn("publish booking event", zap.String("type", string(typ)), zap.Error(err))
	}
}
