package service

import (
	"context"
	"time"

	"github.com/Astemirdum/rental-service/pkg/kafka"
	"github.com/Astemirdum/rental-service/stats/internal/errs"
	"github.com/Astemirdum/rental-service/stats/internal/model"
	statsRepo "github.com/Astemirdum/rental-service/stats/internal/repository"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type Service struct {
	log  *zap.Logger
	repo statsRepo.Repository
	now  func() time.Time
}

func NewService(repo statsRepo.Repository, log *zap.Logger) *Service {
	return &Service{
		log:  log.Named("service"),
		repo: repo,
		now:  time.Now,
	}
}

// Record journals one booking event. Replays of an already stored event are
// accepted and dropped.
func (s *Service) Record(ctx context.Context, ev kafka.BookingEvent) error {
	if err := check(ev); err != nil {
		return err
	}
	occurred := ev.Timestamp
	if occurred.IsZero() {
		occurred = s.now()
	}
	err := s.repo.Record(ctx, model.Event{
		EventID:    ev.EventID,
		Type:       string(ev.Type),
		BookingID:  ev.BookingID,
		PropertyID: ev.PropertyID,
		FromStatus: optional(ev.FromStatus),
		ToStatus:   ev.ToStatus,
		ActorID:    optional(ev.ActorID),
		ActorRole:  optional(ev.ActorRole),
		Reason:     ev.Reason,
		OccurredAt: occurred.UTC(),
	})
	if errors.Is(err, errs.ErrDuplicate) {
		s.log.Debug("duplicate event", zap.String("eventId", ev.EventID))
		return nil
	}
	return err
}

func check(ev kafka.BookingEvent) error {
	switch {
	case ev.EventID == "":
		return errors.Wrap(errs.ErrBadEvent, "no event id")
	case ev.BookingID == "":
		return errors.Wrap(errs.ErrBadEvent, "no booking id")
	case ev.ToStatus == "":
		return errors.Wrap(errs.ErrBadEvent, "no target status")
	}
	switch ev.Type {
	case kafka.EventCreated, kafka.EventApproved, kafka.EventRejected, kafka.EventCancelled:
		return nil
	}
	return errors.Wrapf(errs.ErrBadEvent, "unknown type %q", ev.Type)
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func (s *Service) GetStats(ctx context.Context) (model.Stats, error) {
	var byType, byStatus []model.Count
	gg, gctx := errgroup.WithContext(ctx)
	gg.Go(func() error {
		var err error
		byType, err = s.repo.CountByType(gctx)
		return err
	})
	gg.Go(func() error {
		var err error
		byStatus, err = s.repo.CountByLatestStatus(gctx)
		return err
	})
	if err := gg.Wait(); err != nil {
		return model.Stats{}, err
	}

	st := model.Stats{
		ByStatus: make(map[string]int, len(byStatus)),
		ByType:   make(map[string]int, len(byType)),
	}
	for _, c := range byType {
		st.ByType[c.Key] = c.Count
		st.Events += c.Count
	}
	for _, c := range byStatus {
		st.ByStatus[c.Key] = c.Count
		st.Bookings += c.Count
	}
	return st, nil
}

func (s *Service) History(ctx context.Context, bookingID string) (model.History, error) {
	events, err := s.repo.History(ctx, bookingID)
	if err != nil {
		return model.History{}, err
	}
	return model.History{
		BookingID: bookingID,
		Status:    events[len(events)-1].ToStatus,
		Events:    events,
	}, nil
}
