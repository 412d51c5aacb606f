package handler

import (
	"context"
	"time"

	"github.com/Astemirdum/rental-service/gateway/internal/booking"
	"github.com/Astemirdum/rental-service/gateway/internal/model"
	"github.com/Astemirdum/rental-service/gateway/internal/service/core"
	"github.com/Astemirdum/rental-service/gateway/internal/service/predict"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go

type AuthService interface {
	Login(ctx context.Context, cr model.Credentials) (model.AuthResponse, error)
	Register(ctx context.Context, r model.Registration) (model.AuthResponse, error)
	Logout(ctx context.Context) error
}

type PropertyService interface {
	ListProperties(ctx context.Context, page, limit int) (model.PropertyList, error)
	GetProperty(ctx context.Context, id string) (model.Property, error)
	ListFavorites(ctx context.Context) ([]string, error)
}

type BookingService interface {
	List(ctx context.Context, q model.BookingQuery) (model.BookingList, error)
	Get(ctx context.Context, id string) (model.Booking, error)
	Create(ctx context.Context, actor model.Actor, propertyID string, start, end time.Time, message *string) (model.Booking, error)
	Approve(ctx context.Context, actor model.Actor, b model.Booking) (model.Booking, error)
	Reject(ctx context.Context, actor model.Actor, b model.Booking, reason *string) (model.Booking, error)
	Cancel(ctx context.Context, actor model.Actor, b model.Booking, reason *string) (model.Booking, error)
}

type PredictService interface {
	Predict(ctx context.Context, req model.PredictionRequest) (model.PredictionResponse, error)
}

var (
	_ AuthService     = (*core.Service)(nil)
	_ PropertyService = (*core.Service)(nil)
	_ BookingService  = (*booking.Service)(nil)
	_ PredictService  = (*predict.Service)(nil)
	_ booking.API     = (*core.Service)(nil)
)
