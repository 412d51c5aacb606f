package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"

	"github.com/Astemirdum/rental-service/stats/internal/errs"
	"github.com/Astemirdum/rental-service/stats/internal/model"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

//go:generate go run github.com/golang/mock/mockgen -source=repository.go -destination=mocks/mock.go

type Repository interface {
	Record(ctx context.Context, ev model.Event) error
	CountByType(ctx context.Context) ([]model.Count, error)
	CountByLatestStatus(ctx context.Context) ([]model.Count, error)
	History(ctx context.Context, bookingID string) ([]model.Event, error)
}

type repository struct {
	db  *sqlx.DB
	log *zap.Logger
}

func NewRepository(db *sqlx.DB, log *zap.Logger) (*repository, error) {
	return &repository{
		db:  db,
		log: log.Named("repo"),
	}, nil
}

const eventsTableName = `booking_events`

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var eventColumns = []string{
	"event_id", "type", "booking_id", "property_id", "from_status",
	"to_status", "actor_id", "actor_role", "reason", "occurred_at",
}

// Record stores ev once; a second event with the same id yields errs.ErrDuplicate.
func (r *repository) Record(ctx context.Context, ev model.Event) error {
	query, args, err := qb.Insert(eventsTableName).
		Columns(eventColumns...).
		Values(ev.EventID, ev.Type, ev.BookingID, ev.PropertyID, ev.FromStatus,
			ev.ToStatus, ev.ActorID, ev.ActorRole, ev.Reason, ev.OccurredAt).
		ToSql()
	if err != nil {
		return err
	}
	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return errs.ErrDuplicate
		}
		r.log.Error("Record", zap.String("q", query), zap.String("eventId", ev.EventID))
		return errors.Wrap(err, "insert event")
	}
	return nil
}

func (r *repository) CountByType(ctx context.Context) ([]model.Count, error) {
	query, args, err := qb.Select("type as key", "count(*) as count").
		From(eventsTableName).
		GroupBy("type").
		OrderBy("type").
		ToSql()
	if err != nil {
		return nil, err
	}
	var counts []model.Count
	if err = r.db.SelectContext(ctx, &counts, query, args...); err != nil {
		return nil, errors.Wrap(err, "count by type")
	}
	return counts, nil
}

// CountByLatestStatus counts bookings by the target status of their most recent event.
func (r *repository) CountByLatestStatus(ctx context.Context) ([]model.Count, error) {
	latest := qb.Select("booking_id", "to_status").
		Options("distinct on (booking_id)").
		From(eventsTableName).
		OrderBy("booking_id", "occurred_at desc", "id desc")
	query, args, err := qb.Select("to_status as key", "count(*) as count").
		FromSelect(latest, "latest").
		GroupBy("to_status").
		OrderBy("to_status").
		ToSql()
	if err != nil {
		return nil, err
	}
	var counts []model.Count
	if err = r.db.SelectContext(ctx, &counts, query, args...); err != nil {
		return nil, errors.Wrap(err, "count by status")
	}
	return counts, nil
}

func (r *repository) History(ctx context.Context, bookingID string) ([]model.Event, error) {
	query, args, err := qb.Select(eventColumns...).
		From(eventsTableName).
		Where(sq.Eq{"booking_id": bookingID}).
		OrderBy("occurred_at", "id").
		ToSql()
	if err != nil {
		return nil, err
	}
	var events []model.Event
	if err = r.db.SelectContext(ctx, &events, query, args...); err != nil {
		return nil, errors.Wrap(err, "history")
	}
	if len(events) == 0 {
		return nil, errs.ErrNotFound
	}
	return events, nil
}
