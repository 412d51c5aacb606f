// Package core talks to the REST backend that owns users, properties and
// bookings. Every call carries the stored session token.
package core

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/Astemirdum/rental-service/gateway/config"
	"github.com/Astemirdum/rental-service/gateway/internal/errs"
	"github.com/Astemirdum/rental-service/gateway/internal/model"
	"github.com/Astemirdum/rental-service/gateway/internal/tokenstore"
	"github.com/Astemirdum/rental-service/gateway/internal/validation"
	"github.com/Astemirdum/rental-service/pkg/circuit_breaker"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

type envelope[T any] struct {
	Success    bool              `json:"success"`
	Message    string            `json:"message"`
	Data       T                 `json:"data"`
	Pagination *model.Pagination `json:"pagination,omitempty"`
}

type Service struct {
	log    *zap.Logger
	client *resty.Client
	store  tokenstore.Store
	cb     circuit_breaker.CircuitBreaker
}

func NewService(log *zap.Logger, cfg config.Config, store tokenstore.Store) *Service {
	s := &Service{
		log:   log.Named("core"),
		store: store,
		cb:    circuit_breaker.New(100, time.Second, 0.2, 2, circuit_breaker.WithFailurePredicate(isOutage)),
	}
	s.client = resty.New().
		SetBaseURL(cfg.CoreAPI.BaseURL).
		SetTimeout(cfg.CoreAPI.Timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		OnBeforeRequest(s.authorize)
	return s
}

func (s *Service) CB() circuit_breaker.CircuitBreaker {
	return s.cb
}

// authorize attaches the stored session token. A missing token is not an
// error; the core service answers 401 where one is required.
func (s *Service) authorize(_ *resty.Client, r *resty.Request) error {
	token, err := s.store.Get(r.Context())
	switch {
	case err == nil:
		r.SetAuthToken(token)
	case !errors.Is(err, tokenstore.ErrNoToken):
		s.log.Warn("token store get", zap.Error(err))
	}
	return nil
}

// isOutage reports whether err says the core service is unreachable or failing,
// as opposed to refusing a particular request.
func isOutage(err error) bool {
	var apiErr *errs.APIError
	if !errors.As(err, &apiErr) {
		return true
	}
	return apiErr.Status <= 0 || apiErr.Status >= http.StatusInternalServerError
}

func do[T any](ctx context.Context, s *Service, method, path string, body any, query url.Values) (envelope[T], error) {
	var env envelope[T]
	err := s.cb.Call(func() error {
		req := s.client.R().SetContext(ctx).SetResult(&env)
		if body != nil {
			req.SetBody(body)
		}
		if len(query) > 0 {
			req.SetQueryParamsFromValues(query)
		}
		resp, err := req.Execute(method, path)
		if apiErr := errs.Classify(resp, err); apiErr != nil {
			return apiErr
		}
		if !env.Success {
			msg := env.Message
			if msg == "" {
				msg = "The server could not complete the request."
			}
			return &errs.APIError{Status: errs.StatusUnknown, Code: errs.CodeUnknown, Message: msg}
		}
		return nil
	})
	if errors.Is(err, circuit_breaker.ErrOpenCB) {
		return env, &errs.APIError{
			Status:  http.StatusServiceUnavailable,
			Code:    errs.CodeHTTP,
			Message: errs.DefaultMessage(http.StatusServiceUnavailable),
			Err:     err,
		}
	}
	if err != nil {
		s.log.Debug("core call failed", zap.String("method", method), zap.String("path", path), zap.Error(err))
	}
	return env, err
}

// Login checks the credentials locally, signs in and stores the session token.
func (s *Service) Login(ctx context.Context, cr model.Credentials) (model.AuthResponse, error) {
	if res := validation.ValidateCredentials(cr); !res.IsValid {
		return model.AuthResponse{}, errs.NewValidationError(res.Errors)
	}
	env, err := do[model.AuthResponse](ctx, s, http.MethodPost, "/auth/login", cr, nil)
	if err != nil {
		return model.AuthResponse{}, err
	}
	if err = s.store.Set(ctx, env.Data.Token); err != nil {
		return model.AuthResponse{}, err
	}
	return env.Data, nil
}

func (s *Service) Register(ctx context.Context, r model.Registration) (model.AuthResponse, error) {
	if res := validation.ValidateRegistrationData(r); !res.IsValid {
		return model.AuthResponse{}, errs.NewValidationError(res.Errors)
	}
	env, err := do[model.AuthResponse](ctx, s, http.MethodPost, "/auth/register", r, nil)
	if err != nil {
		return model.AuthResponse{}, err
	}
	if err = s.store.Set(ctx, env.Data.Token); err != nil {
		return model.AuthResponse{}, err
	}
	return env.Data, nil
}

// Logout tells the core service and always drops the local token, even when
// the remote call fails.
func (s *Service) Logout(ctx context.Context) error {
	if _, err := do[any](ctx, s, http.MethodPost, "/auth/logout", nil, nil); err != nil {
		s.log.Info("remote logout", zap.Error(err))
	}
	return s.store.Remove(ctx)
}

func (s *Service) ListBookings(ctx context.Context, q model.BookingQuery) (model.BookingList, error) {
	query := url.Values{}
	if q.Status != "" {
		query.Set("status", string(q.Status))
	}
	if q.Role != "" {
		query.Set("role", string(q.Role))
	}
	setPage(query, q.Page, q.Limit)
	env, err := do[[]model.Booking](ctx, s, http.MethodGet, "/bookings", nil, query)
	if err != nil {
		return model.BookingList{}, err
	}
	return model.BookingList{Items: env.Data, Pagination: pagination(env.Pagination, len(env.Data))}, nil
}

func (s *Service) GetBooking(ctx context.Context, id string) (model.Booking, error) {
	env, err := do[model.Booking](ctx, s, http.MethodGet, "/bookings/"+url.PathEscape(id), nil, nil)
	return env.Data, err
}

func (s *Service) CreateBooking(ctx context.Context, req model.CreateBookingRequest) (model.Booking, error) {
	env, err := do[model.Booking](ctx, s, http.MethodPost, "/bookings", req, nil)
	return env.Data, err
}

func (s *Service) ApproveBooking(ctx context.Context, id string) (model.Booking, error) {
	env, err := do[model.Booking](ctx, s, http.MethodPatch, "/bookings/"+url.PathEscape(id)+"/approve", nil, nil)
	return env.Data, err
}

func (s *Service) RejectBooking(ctx context.Context, id string, reason *string) (model.Booking, error) {
	env, err := do[model.Booking](ctx, s, http.MethodPatch, "/bookings/"+url.PathEscape(id)+"/reject",
		model.BookingDecision{Reason: reason}, nil)
	return env.Data, err
}

func (s *Service) CancelBooking(ctx context.Context, id string, reason *string) (model.Booking, error) {
	env, err := do[model.Booking](ctx, s, http.MethodPatch, "/bookings/"+url.PathEscape(id)+"/cancel",
		model.BookingDecision{Reason: reason}, nil)
	return env.Data, err
}

func (s *Service) ListProperties(ctx context.Context, page, limit int) (model.PropertyList, error) {
	query := url.Values{}
	setPage(query, page, limit)
	env, err := do[[]model.Property](ctx, s, http.MethodGet, "/properties", nil, query)
	if err != nil {
		return model.PropertyList{}, err
	}
	return model.PropertyList{Items: env.Data, Pagination: pagination(env.Pagination, len(env.Data))}, nil
}

func (s *Service) GetProperty(ctx context.Context, id string) (model.Property, error) {
	env, err := do[model.Property](ctx, s, http.MethodGet, "/properties/"+url.PathEscape(id), nil, nil)
	return env.Data, err
}

// ListFavorites returns the ids of the signed-in user's favorite properties.
func (s *Service) ListFavorites(ctx context.Context) ([]string, error) {
	env, err := do[[]model.Property](ctx, s, http.MethodGet, "/favorites", nil, nil)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(env.Data))
	for _, p := range env.Data {
		ids = append(ids, p.ID)
	}
	return ids, nil
}

func setPage(q url.Values, page, limit int) {
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
}

func pagination(p *model.Pagination, n int) model.Pagination {
	if p != nil {
		return *p
	}
	return model.Pagination{Page: 1, Limit: n, Total: n, TotalPages: 1}
}
