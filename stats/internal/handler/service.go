package handler

import (
	"context"

	"github.com/Astemirdum/rental-service/pkg/kafka"
	statsModel "github.com/Astemirdum/rental-service/stats/internal/model"
	"github.com/Astemirdum/rental-service/stats/internal/service"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go

type StatsService interface {
	GetStats(ctx context.Context) (statsModel.Stats, error)
	History(ctx context.Context, bookingID string) (statsModel.History, error)
	Record(ctx context.Context, ev kafka.BookingEvent) error
}

var _ StatsService = (*service.Service)(nil)
