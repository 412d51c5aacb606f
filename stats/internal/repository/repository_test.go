package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/Astemirdum/rental-service/stats/internal/errs"
	"github.com/Astemirdum/rental-service/stats/internal/model"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newMockRepo(t *testing.T) (*repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	repo, err := NewRepository(sqlx.NewDb(db, "sqlmock"), zap.NewNop())
	require.NoError(t, err)
	return repo, mock
}

func strPtr(s string) *string { return &s }

var occurred = time.Date(2026, time.October, 15, 9, 30, 0, 0, time.UTC)

func approvedEvent() model.Event {
	return model.Event{
		EventID:    "1b7a3f4e-5d2c-4f61-9a0e-2f8c6d1e7b90",
		Type:       "APPROVED",
		BookingID:  "b-1",
		PropertyID: "p-1",
		FromStatus: strPtr("PENDING"),
		ToStatus:   "APPROVED",
		ActorID:    strPtr("o-1"),
		ActorRole:  strPtr("OWNER"),
		OccurredAt: occurred,
	}
}

func TestRepository_Record(t *testing.T) {
	t.Parallel()
	insert := regexp.QuoteMeta("INSERT INTO booking_events (event_id,type,booking_id,property_id,from_status,to_status,actor_id,actor_role,reason,occurred_at)")

	tests := []struct {
		name    string
		result  func(e *sqlmock.ExpectedExec)
		wantErr error
	}{
		{
			name:   "ok",
			result: func(e *sqlmock.ExpectedExec) { e.WillReturnResult(sqlmock.NewResult(1, 1)) },
		},
		{
			name: "duplicate",
			result: func(e *sqlmock.ExpectedExec) {
				e.WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation})
			},
			wantErr: errs.ErrDuplicate,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			repo, mock := newMockRepo(t)
			ev := approvedEvent()
			tt.result(mock.ExpectExec(insert).
				WithArgs(ev.EventID, "APPROVED", "b-1", "p-1", "PENDING", "APPROVED", "o-1", "OWNER", nil, sqlmock.AnyArg()))

			err := repo.Record(context.Background(), ev)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_Record_DBDown(t *testing.T) {
	t.Parallel()
	repo, mock := newMockRepo(t)
	mock.ExpectExec("INSERT INTO booking_events").WillReturnError(errors.New("connection refused"))

	err := repo.Record(context.Background(), approvedEvent())
	require.Error(t, err)
	require.NotErrorIs(t, err, errs.ErrDuplicate)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Counts(t *testing.T) {
	t.Parallel()
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT type as key, count(*) as count FROM booking_events GROUP BY type")).
		WillReturnRows(sqlmock.NewRows([]string{"key", "count"}).
			AddRow("APPROVED", 2).
			AddRow("CREATED", 3))
	byType, err := repo.CountByType(context.Background())
	require.NoError(t, err)
	require.Equal(t, []model.Count{{Key: "APPROVED", Count: 2}, {Key: "CREATED", Count: 3}}, byType)

	mock.ExpectQuery(regexp.QuoteMeta("FROM (SELECT distinct on (booking_id) booking_id, to_status FROM booking_events")).
		WillReturnRows(sqlmock.NewRows([]string{"key", "count"}).
			AddRow("APPROVED", 2).
			AddRow("PENDING", 1))
	byStatus, err := repo.CountByLatestStatus(context.Background())
	require.NoError(t, err)
	require.Equal(t, []model.Count{{Key: "APPROVED", Count: 2}, {Key: "PENDING", Count: 1}}, byStatus)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_History(t *testing.T) {
	t.Parallel()
	query := regexp.QuoteMeta("FROM booking_events WHERE booking_id = $1 ORDER BY occurred_at, id")
	columns := []string{"event_id", "type", "booking_id", "property_id", "from_status", "to_status", "actor_id", "actor_role", "reason", "occurred_at"}

	t.Run("ok", func(t *testing.T) {
		t.Parallel()
		repo, mock := newMockRepo(t)
		mock.ExpectQuery(query).WithArgs("b-1").
			WillReturnRows(sqlmock.NewRows(columns).
				AddRow("e-1", "CREATED", "b-1", "p-1", nil, "PENDING", "t-1", "TENANT", nil, occurred.Add(-time.Hour)).
				AddRow("e-2", "APPROVED", "b-1", "p-1", "PENDING", "APPROVED", "o-1", "OWNER", nil, occurred))

		events, err := repo.History(context.Background(), "b-1")
		require.NoError(t, err)
		require.Len(t, events, 2)
		require.Nil(t, events[0].FromStatus)
		require.Equal(t, "APPROVED", events[1].ToStatus)
		require.Equal(t, "PENDING", *events[1].FromStatus)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()
		repo, mock := newMockRepo(t)
		mock.ExpectQuery(query).WithArgs("b-404").WillReturnRows(sqlmock.NewRows(columns))

		_, err := repo.History(context.Background(), "b-404")
		require.ErrorIs(t, err, errs.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
