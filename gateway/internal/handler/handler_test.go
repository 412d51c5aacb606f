package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Astemirdum/rental-service/gateway/internal/errs"
	"github.com/Astemirdum/rental-service/gateway/internal/handler"
	"github.com/Astemirdum/rental-service/gateway/internal/model"
	"github.com/Astemirdum/rental-service/gateway/internal/tokenstore"
	"github.com/golang-jwt/jwt/v5"
	"github.com/golang/mock/gomock"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	service_mocks "github.com/Astemirdum/rental-service/gateway/internal/handler/mocks"
)

var (
	tenant = model.Actor{UserID: "t-1", Role: model.RoleTenant}
	owner  = model.Actor{UserID: "o-1", Role: model.RoleOwner}
)

type services struct {
	auth     *service_mocks.MockAuthService
	props    *service_mocks.MockPropertyService
	bookings *service_mocks.MockBookingService
	predict  *service_mocks.MockPredictService
}

// setup builds a router whose session belongs to actor, or to nobody when actor is nil.
func setup(t *testing.T, actor *model.Actor) (services, http.Handler) {
	t.Helper()
	c := gomock.NewController(t)
	svc := services{
		auth:     service_mocks.NewMockAuthService(c),
		props:    service_mocks.NewMockPropertyService(c),
		bookings: service_mocks.NewMockBookingService(c),
		predict:  service_mocks.NewMockPredictService(c),
	}
	sessions := tokenstore.NewMemoryStore()
	if actor != nil {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenstore.Claims{
			UserID: actor.UserID,
			Role:   string(actor.Role),
		}).SignedString([]byte("core-secret"))
		require.NoError(t, err)
		require.NoError(t, sessions.Set(context.Background(), token))
	}
	h := handler.New(zap.NewNop(), handler.Services{
		Auth:       svc.auth,
		Properties: svc.props,
		Bookings:   svc.bookings,
		Predict:    svc.predict,
		Sessions:   sessions,
	})
	return svc, h.NewRouter()
}

func serve(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	out := map[string]any{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newBooking(status model.BookingStatus) model.Booking {
	return model.Booking{
		ID:              "b-1",
		PropertyID:      "p-1",
		TenantID:        tenant.UserID,
		LandlordID:      owner.UserID,
		StartDate:       day(2026, time.November, 1),
		EndDate:         day(2027, time.April, 30),
		RentAmount:      decimal.NewFromInt(1500),
		Currency:        "MYR",
		SecurityDeposit: decimal.NewNullDecimal(decimal.NewFromInt(3000)),
		Status:          status,
	}
}

func TestHandler_Login(t *testing.T) {
	t.Parallel()
	type mockBehavior func(r *service_mocks.MockAuthService)

	tests := []struct {
		name         string
		body         string
		mockBehavior mockBehavior
		expectedCode int
		expectedBody string
	}{
		{
			name: "ok",
			body: `{"email":"a@b.co","password":"secret1"}`,
			mockBehavior: func(r *service_mocks.MockAuthService) {
				r.EXPECT().
					Login(gomock.Any(), model.Credentials{Email: "a@b.co", Password: "secret1"}).
					Return(model.AuthResponse{
						Token: "tok",
						User:  model.User{ID: "u-1", Email: "a@b.co", Role: model.RoleTenant},
					}, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: `{"token":"tok","user":{"id":"u-1","email":"a@b.co","firstName":"","lastName":"","role":"TENANT"}}`,
		},
		{
			name:         "err. validation",
			body:         `{"email":"a@b","password":"123"}`,
			mockBehavior: func(r *service_mocks.MockAuthService) {},
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"code":"VALIDATION_ERROR","errors":["Please enter a valid email address","Password must be at least 6 characters"]}`,
		},
		{
			name:         "err. not an object",
			body:         `[1,2]`,
			mockBehavior: func(r *service_mocks.MockAuthService) {},
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"message":"request body must be a JSON object"}`,
		},
		{
			name: "err. bad credentials",
			body: `{"email":"a@b.co","password":"secret1"}`,
			mockBehavior: func(r *service_mocks.MockAuthService) {
				r.EXPECT().Login(gomock.Any(), gomock.Any()).
					Return(model.AuthResponse{}, &errs.APIError{Status: http.StatusUnauthorized, Code: errs.CodeHTTP, Message: "Invalid credentials"})
			},
			expectedCode: http.StatusUnauthorized,
			expectedBody: `{"message":"Invalid credentials"}`,
		},
		{
			name: "err. network",
			body: `{"email":"a@b.co","password":"secret1"}`,
			mockBehavior: func(r *service_mocks.MockAuthService) {
				r.EXPECT().Login(gomock.Any(), gomock.Any()).
					Return(model.AuthResponse{}, &errs.APIError{
						Status:  errs.StatusNetwork,
						Code:    errs.CodeNetwork,
						Message: "Network error. Please check your internet connection.",
					})
			},
			expectedCode: http.StatusBadGateway,
			expectedBody: `{"message":"Network error. Please check your internet connection."}`,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc, h := setup(t, nil)
			tt.mockBehavior(svc.auth)

			rec := serve(h, http.MethodPost, "/api/v1/auth/login", tt.body)
			require.Equal(t, tt.expectedCode, rec.Code)
			require.JSONEq(t, tt.expectedBody, rec.Body.String())
		})
	}
}

func TestHandler_Logout(t *testing.T) {
	t.Parallel()
	svc, h := setup(t, &tenant)
	svc.auth.EXPECT().Logout(gomock.Any()).Return(nil)

	rec := serve(h, http.MethodPost, "/api/v1/auth/logout", "")
	require.Equal(t, http.StatusNoContent, rec.Code)
}

func TestHandler_RequireSession(t *testing.T) {
	t.Parallel()
	_, h := setup(t, nil)
	for _, target := range []string{"/api/v1/bookings", "/api/v1/bookings/b-1", "/api/v1/dashboard"} {
		rec := serve(h, http.MethodGet, target, "")
		require.Equal(t, http.StatusUnauthorized, rec.Code, target)
		require.JSONEq(t, `{"message":"Authentication required. Please log in again."}`, rec.Body.String())
	}
}

func TestHandler_ListBookings(t *testing.T) {
	t.Parallel()
	svc, h := setup(t, &tenant)
	svc.bookings.EXPECT().
		List(gomock.Any(), model.BookingQuery{Status: model.BookingStatusPending, Role: model.RoleTenant, Page: 1}).
		Return(model.BookingList{
			Items:      []model.Booking{newBooking(model.BookingStatusPending)},
			Pagination: model.Pagination{Page: 1, Limit: 10, Total: 1, TotalPages: 1},
		}, nil)

	rec := serve(h, http.MethodGet, "/api/v1/bookings?status=PENDING&page=1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode(t, rec)
	items := body["items"].([]any)
	require.Len(t, items, 1)
	item := items[0].(map[string]any)
	require.Equal(t, "RM 1,500.00", item["rentDisplay"])
	require.Equal(t, "RM 3,000.00", item["depositDisplay"])
	require.Equal(t, "1 Nov 2026 - 30 Apr 2027", item["period"])
	require.Equal(t, true, item["canCancel"])
	require.Equal(t, false, item["canApprove"])
	require.Equal(t, false, item["canReject"])
}

func TestHandler_ListBookings_BadStatus(t *testing.T) {
	t.Parallel()
	_, h := setup(t, &tenant)
	rec := serve(h, http.MethodGet, "/api/v1/bookings?status=UNKNOWN", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_CreateBooking(t *testing.T) {
	t.Parallel()
	type mockBehavior func(r *service_mocks.MockBookingService)

	tests := []struct {
		name         string
		body         string
		mockBehavior mockBehavior
		expectedCode int
		expectedBody string
	}{
		{
			name: "ok",
			body: `{"propertyId":"p-1","startDate":"2026-11-01","endDate":"2027-04-30"}`,
			mockBehavior: func(r *service_mocks.MockBookingService) {
				r.EXPECT().
					Create(gomock.Any(), tenant, "p-1", day(2026, time.November, 1), day(2027, time.April, 30), (*string)(nil)).
					Return(newBooking(model.BookingStatusPending), nil)
			},
			expectedCode: http.StatusCreated,
		},
		{
			name:         "err. bad date",
			body:         `{"propertyId":"p-1","startDate":"tomorrow","endDate":"2027-04-30"}`,
			mockBehavior: func(r *service_mocks.MockBookingService) {},
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"message":"startDate must be a date"}`,
		},
		{
			name: "err. dates rejected",
			body: `{"propertyId":"p-1","startDate":"2026-01-01","endDate":"2025-12-01"}`,
			mockBehavior: func(r *service_mocks.MockBookingService) {
				r.EXPECT().Create(gomock.Any(), tenant, "p-1", gomock.Any(), gomock.Any(), gomock.Any()).
					Return(model.Booking{}, errs.NewValidationError([]string{
						"Start date cannot be in the past",
						"End date must be after start date",
					}))
			},
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"code":"VALIDATION_ERROR","errors":["Start date cannot be in the past","End date must be after start date"]}`,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc, h := setup(t, &tenant)
			tt.mockBehavior(svc.bookings)

			rec := serve(h, http.MethodPost, "/api/v1/bookings", tt.body)
			require.Equal(t, tt.expectedCode, rec.Code)
			if tt.expectedBody != "" {
				require.JSONEq(t, tt.expectedBody, rec.Body.String())
			}
		})
	}
}

func TestHandler_RejectBooking(t *testing.T) {
	t.Parallel()
	svc, h := setup(t, &owner)
	pending := newBooking(model.BookingStatusPending)
	reason := "Dates unavailable"
	rejected := pending
	rejected.Status = model.BookingStatusRejected
	rejected.Notes = &reason

	gomock.InOrder(
		svc.bookings.EXPECT().Get(gomock.Any(), "b-1").Return(pending, nil),
		svc.bookings.EXPECT().Reject(gomock.Any(), owner, pending, &reason).Return(rejected, nil),
	)

	rec := serve(h, http.MethodPost, "/api/v1/bookings/b-1/reject", `{"reason":"Dates unavailable"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	require.Equal(t, "REJECTED", body["status"])
	require.Equal(t, reason, body["notes"])
	require.Equal(t, false, body["canApprove"])
	require.Equal(t, false, body["canReject"])
}

func TestHandler_ApproveBooking_NotFound(t *testing.T) {
	t.Parallel()
	svc, h := setup(t, &owner)
	svc.bookings.EXPECT().Get(gomock.Any(), "b-404").
		Return(model.Booking{}, &errs.APIError{Status: http.StatusNotFound, Code: errs.CodeHTTP, Message: "Booking not found"})

	rec := serve(h, http.MethodPost, "/api/v1/bookings/b-404/approve", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.JSONEq(t, `{"message":"Booking not found"}`, rec.Body.String())
}

func property(id, owner, title, typ string, price int64, status model.PropertyStatus) model.Property {
	return model.Property{
		ID:           id,
		OwnerID:      owner,
		Title:        title,
		City:         "Kuala Lumpur",
		Price:        decimal.NewFromInt(price),
		Status:       status,
		PropertyType: model.PropertyTypeRef{ID: typ, Name: typ},
		CreatedAt:    time.Date(2026, time.October, 1, 8, 0, 0, 0, time.UTC),
	}
}

func TestHandler_ListProperties(t *testing.T) {
	t.Parallel()
	list := model.PropertyList{
		Items: []model.Property{
			property("p-1", "o-1", "Cozy Condo near KLCC", "Condominium", 2500, model.PropertyStatusApproved),
			property("p-2", "o-1", "Bangsar Townhouse", "Townhouse", 4200, model.PropertyStatusApproved),
			property("p-3", "o-2", "Studio Condo", "Condominium", 1200, model.PropertyStatusApproved),
		},
		Pagination: model.Pagination{Page: 1, Limit: 10, Total: 3, TotalPages: 1},
	}

	t.Run("anonymous", func(t *testing.T) {
		t.Parallel()
		svc, h := setup(t, nil)
		svc.props.EXPECT().ListProperties(gomock.Any(), 0, 0).Return(list, nil)

		rec := serve(h, http.MethodGet, "/api/v1/properties?category=Condominium&minPrice=2000", "")
		require.Equal(t, http.StatusOK, rec.Code)
		items := decode(t, rec)["items"].([]any)
		require.Len(t, items, 1)
		item := items[0].(map[string]any)
		require.Equal(t, "p-1", item["id"])
		require.Equal(t, "RM 2,500.00", item["priceDisplay"])
		require.Equal(t, "1 Oct 2026", item["listedOn"])
		require.Equal(t, false, item["isFavorite"])
	})

	t.Run("favorites", func(t *testing.T) {
		t.Parallel()
		svc, h := setup(t, &tenant)
		svc.props.EXPECT().ListProperties(gomock.Any(), 2, 10).Return(list, nil)
		svc.props.EXPECT().ListFavorites(gomock.Any()).Return([]string{"p-3"}, nil)

		rec := serve(h, http.MethodGet, "/api/v1/properties?q=condo&page=2&limit=10", "")
		require.Equal(t, http.StatusOK, rec.Code)
		items := decode(t, rec)["items"].([]any)
		require.Len(t, items, 2)
		require.Equal(t, false, items[0].(map[string]any)["isFavorite"])
		require.Equal(t, true, items[1].(map[string]any)["isFavorite"])
	})

	t.Run("favorites unavailable", func(t *testing.T) {
		t.Parallel()
		svc, h := setup(t, &tenant)
		svc.props.EXPECT().ListProperties(gomock.Any(), 0, 0).Return(list, nil)
		svc.props.EXPECT().ListFavorites(gomock.Any()).
			Return(nil, &errs.APIError{Status: http.StatusServiceUnavailable, Code: errs.CodeHTTP, Message: "down"})

		rec := serve(h, http.MethodGet, "/api/v1/properties", "")
		require.Equal(t, http.StatusOK, rec.Code)
		require.Len(t, decode(t, rec)["items"].([]any), 3)
	})

	t.Run("err. bad price", func(t *testing.T) {
		t.Parallel()
		_, h := setup(t, nil)
		rec := serve(h, http.MethodGet, "/api/v1/properties?maxPrice=cheap", "")
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.JSONEq(t, `{"message":"maxPrice must be a number"}`, rec.Body.String())
	})
}

func TestHandler_GetProperty_Errors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name         string
		err          error
		expectedCode int
		expectedBody string
	}{
		{
			name:         "not found",
			err:          &errs.APIError{Status: http.StatusNotFound, Code: errs.CodeHTTP, Message: "The requested resource was not found."},
			expectedCode: http.StatusNotFound,
			expectedBody: `{"message":"The requested resource was not found."}`,
		},
		{
			name:         "unknown",
			err:          &errs.APIError{Status: errs.StatusUnknown, Code: errs.CodeUnknown, Message: "An unexpected error occurred."},
			expectedCode: http.StatusBadGateway,
			expectedBody: `{"message":"An unexpected error occurred."}`,
		},
		{
			name:         "circuit open",
			err:          &errs.APIError{Status: http.StatusServiceUnavailable, Code: errs.CodeHTTP, Message: "Service unavailable. Please try again later."},
			expectedCode: http.StatusServiceUnavailable,
			expectedBody: `{"message":"Service unavailable. Please try again later."}`,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc, h := setup(t, nil)
			svc.props.EXPECT().GetProperty(gomock.Any(), "p-1").Return(model.Property{}, tt.err)

			rec := serve(h, http.MethodGet, "/api/v1/properties/p-1", "")
			require.Equal(t, tt.expectedCode, rec.Code)
			require.JSONEq(t, tt.expectedBody, rec.Body.String())
		})
	}
}

func TestHandler_ValidateListing(t *testing.T) {
	t.Parallel()
	_, h := setup(t, nil)

	rec := serve(h, http.MethodPost, "/api/v1/listings/validate", `{"title":"Condo","price":-1}`)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	require.Equal(t, false, body["isValid"])
	require.Nil(t, body["listing"])
	fieldErrs := body["errors"].(map[string]any)
	require.Equal(t, "Price must be a positive number", fieldErrs["price"])
	require.NotContains(t, fieldErrs, "title")
}

func TestHandler_Predict(t *testing.T) {
	t.Parallel()
	lo, hi := 2300.0, 2700.0

	t.Run("ok", func(t *testing.T) {
		t.Parallel()
		svc, h := setup(t, nil)
		svc.predict.EXPECT().
			Predict(gomock.Any(), model.PredictionRequest{
				PropertyType: model.PropertyTypeCondominium,
				Bedrooms:     3,
				Bathrooms:    2,
				Area:         1200,
				Furnished:    model.AIFurnished("Yes"),
				Location:     "Kuala Lumpur",
			}).
			Return(model.PredictionResponse{PredictedPrice: 2500.5, Currency: "MYR", LowerBound: &lo, UpperBound: &hi}, nil)

		rec := serve(h, http.MethodPost, "/api/v1/predict",
			`{"propertyType":"Condominium","bedrooms":3,"bathrooms":2,"area":1200,"furnished":"Yes","location":"Kuala Lumpur"}`)
		require.Equal(t, http.StatusOK, rec.Code)
		body := decode(t, rec)
		require.Equal(t, "RM 2,500.50", body["priceDisplay"])
		require.Equal(t, "RM 2,300.00 - RM 2,700.00", body["rangeDisplay"])
	})

	t.Run("err. validation", func(t *testing.T) {
		t.Parallel()
		_, h := setup(t, nil)
		rec := serve(h, http.MethodPost, "/api/v1/predict",
			`{"propertyType":"Bungalow","bedrooms":0,"bathrooms":1,"area":800,"furnished":"Partially","location":"Penang"}`)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.JSONEq(t,
			`{"code":"VALIDATION_ERROR","errors":["Property type must be one of: Apartment, Condominium, Service Residence, Townhouse","Bedrooms must be at least 1"]}`,
			rec.Body.String())
	})
}

func TestHandler_Dashboard(t *testing.T) {
	t.Parallel()
	approved := newBooking(model.BookingStatusApproved)
	approved.ID = "b-2"

	t.Run("owner", func(t *testing.T) {
		t.Parallel()
		svc, h := setup(t, &owner)
		svc.bookings.EXPECT().
			List(gomock.Any(), model.BookingQuery{Role: model.RoleOwner, Limit: 100}).
			Return(model.BookingList{Items: []model.Booking{newBooking(model.BookingStatusPending), approved}}, nil)
		svc.props.EXPECT().ListProperties(gomock.Any(), 0, 100).Return(model.PropertyList{Items: []model.Property{
			property("p-1", "o-1", "A", "Condominium", 2000, model.PropertyStatusApproved),
			property("p-2", "o-1", "B", "Townhouse", 3000, model.PropertyStatusPendingReview),
			property("p-3", "o-2", "C", "Townhouse", 3000, model.PropertyStatusApproved),
		}}, nil)

		rec := serve(h, http.MethodGet, "/api/v1/dashboard", "")
		require.Equal(t, http.StatusOK, rec.Code)
		body := decode(t, rec)
		require.Equal(t, "OWNER", body["role"])
		counts := body["bookingCounts"].(map[string]any)
		require.EqualValues(t, 1, counts["PENDING"])
		require.EqualValues(t, 1, counts["APPROVED"])
		require.EqualValues(t, 0, counts["CANCELLED"])
		pending := body["pending"].([]any)
		require.Len(t, pending, 1)
		require.Equal(t, true, pending[0].(map[string]any)["canApprove"])
		require.Len(t, body["upcoming"].([]any), 1)
		require.Equal(t, map[string]any{"PENDING_REVIEW": 1.0, "APPROVED": 1.0, "REJECTED": 0.0}, body["propertyCounts"])
	})

	t.Run("tenant", func(t *testing.T) {
		t.Parallel()
		svc, h := setup(t, &tenant)
		svc.bookings.EXPECT().
			List(gomock.Any(), model.BookingQuery{Role: model.RoleTenant, Limit: 100}).
			Return(model.BookingList{Items: []model.Booking{approved}}, nil)
		svc.props.EXPECT().ListFavorites(gomock.Any()).Return([]string{"p-1", "p-9"}, nil)

		rec := serve(h, http.MethodGet, "/api/v1/dashboard", "")
		require.Equal(t, http.StatusOK, rec.Code)
		body := decode(t, rec)
		require.EqualValues(t, 2, body["favorites"])
		require.NotContains(t, body, "propertyCounts")
		require.Equal(t, true, body["upcoming"].([]any)[0].(map[string]any)["canCancel"])
	})
}

func TestHandler_Health(t *testing.T) {
	t.Parallel()
	_, h := setup(t, nil)
	rec := serve(h, http.MethodGet, "/manage/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "OK", rec.Body.String())
}
