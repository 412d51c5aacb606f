package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Astemirdum/rental-service/stats/internal/errs"
	"github.com/Astemirdum/rental-service/stats/internal/handler"
	"github.com/Astemirdum/rental-service/stats/internal/model"
	"github.com/golang/mock/gomock"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	service_mocks "github.com/Astemirdum/rental-service/stats/internal/handler/mocks"
)

func TestHandler_GetStats(t *testing.T) {
	t.Parallel()
	type mockBehavior func(r *service_mocks.MockStatsService)

	tests := []struct {
		name         string
		mockBehavior mockBehavior
		expectedCode int
		expectedBody string
	}{
		{
			name: "ok",
			mockBehavior: func(r *service_mocks.MockStatsService) {
				r.EXPECT().GetStats(gomock.Any()).Return(model.Stats{
					Events:   3,
					Bookings: 2,
					ByStatus: map[string]int{"APPROVED": 1, "PENDING": 1},
					ByType:   map[string]int{"APPROVED": 1, "CREATED": 2},
				}, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: `{"events":3,"bookings":2,"byStatus":{"APPROVED":1,"PENDING":1},"byType":{"APPROVED":1,"CREATED":2}}`,
		},
		{
			name: "err. internal",
			mockBehavior: func(r *service_mocks.MockStatsService) {
				r.EXPECT().GetStats(gomock.Any()).Return(model.Stats{}, errors.New("db internal"))
			},
			expectedCode: http.StatusInternalServerError,
			expectedBody: `{"message":"stats unavailable"}`,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := gomock.NewController(t)
			defer c.Finish()
			svc := service_mocks.NewMockStatsService(c)
			tt.mockBehavior(svc)

			h := handler.New(svc, zap.NewNop())
			req := httptest.NewRequest(http.MethodGet, "/api/v1/stats", nil)
			rec := httptest.NewRecorder()
			h.NewRouter().ServeHTTP(rec, req)

			require.Equal(t, tt.expectedCode, rec.Code)
			require.JSONEq(t, tt.expectedBody, rec.Body.String())
		})
	}
}

func TestHandler_GetHistory(t *testing.T) {
	t.Parallel()
	occurred := time.Date(2026, time.October, 15, 9, 30, 0, 0, time.UTC)
	type mockBehavior func(r *service_mocks.MockStatsService, id string)

	tests := []struct {
		name         string
		id           string
		mockBehavior mockBehavior
		expectedCode int
		expectedBody string
	}{
		{
			name: "ok",
			id:   "b-1",
			mockBehavior: func(r *service_mocks.MockStatsService, id string) {
				r.EXPECT().History(gomock.Any(), id).Return(model.History{
					BookingID: id,
					Status:    "PENDING",
					Events: []model.Event{
						{EventID: "e-1", Type: "CREATED", BookingID: id, PropertyID: "p-1", ToStatus: "PENDING", OccurredAt: occurred},
					},
				}, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: `{"bookingId":"b-1","status":"PENDING","events":[{"eventId":"e-1","type":"CREATED","bookingId":"b-1","propertyId":"p-1","toStatus":"PENDING","occurredAt":"2026-10-15T09:30:00Z"}]}`,
		},
		{
			name: "err. not found",
			id:   "b-404",
			mockBehavior: func(r *service_mocks.MockStatsService, id string) {
				r.EXPECT().History(gomock.Any(), id).Return(model.History{}, errs.ErrNotFound)
			},
			expectedCode: http.StatusNotFound,
			expectedBody: `{"message":"no events recorded for booking"}`,
		},
		{
			name: "err. internal",
			id:   "b-1",
			mockBehavior: func(r *service_mocks.MockStatsService, id string) {
				r.EXPECT().History(gomock.Any(), id).Return(model.History{}, errors.New("db internal"))
			},
			expectedCode: http.StatusInternalServerError,
			expectedBody: `{"message":"history unavailable"}`,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := gomock.NewController(t)
			defer c.Finish()
			svc := service_mocks.NewMockStatsService(c)
			tt.mockBehavior(svc, tt.id)

			h := handler.New(svc, zap.NewNop())
			req := httptest.NewRequest(http.MethodGet, "/api/v1/stats/bookings/"+tt.id, nil)
			rec := httptest.NewRecorder()
			h.NewRouter().ServeHTTP(rec, req)

			require.Equal(t, tt.expectedCode, rec.Code)
			require.JSONEq(t, tt.expectedBody, rec.Body.String())
		})
	}
}

func TestHandler_Health(t *testing.T) {
	t.Parallel()
	c := gomock.NewController(t)
	defer c.Finish()
	h := handler.New(service_mocks.NewMockStatsService(c), zap.NewNop())

	rec := httptest.NewRecorder()
	h.NewRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/manage/health", nil).WithContext(context.Background()))
	require.Equal(t, http.StatusOK, rec.Code)
}
