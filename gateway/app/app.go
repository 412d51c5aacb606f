package app

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Astemirdum/rental-service/gateway/config"
	"github.com/Astemirdum/rental-service/gateway/internal/booking"
	"github.com/Astemirdum/rental-service/gateway/internal/handler"
	"github.com/Astemirdum/rental-service/gateway/internal/server"
	"github.com/Astemirdum/rental-service/gateway/internal/service/core"
	"github.com/Astemirdum/rental-service/gateway/internal/service/predict"
	"github.com/Astemirdum/rental-service/gateway/internal/tokenstore"
	"github.com/Astemirdum/rental-service/pkg/kafka"
	"github.com/Astemirdum/rental-service/pkg/logger"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func Run(cfg config.Config) {
	log := logger.NewLogger(cfg.Log, "gateway")

	sessions, closeSessions := newSessions(cfg, log)
	defer closeSessions()

	producer, err := kafka.NewProducer(cfg.Kafka)
	if err != nil {
		log.Warn("kafka producer unavailable, booking events are dropped", zap.Error(err))
		producer = nil
	}

	coreSvc := core.NewService(log, cfg, sessions)
	h := handler.New(log, handler.Services{
		Auth:       coreSvc,
		Properties: coreSvc,
		Bookings:   booking.NewService(coreSvc, handler.NewPublisher(producer), log),
		Predict:    predict.NewService(log, cfg),
		Sessions:   sessions,
	})

	srv := server.NewServer(cfg.Server, h.NewRouter())
	log.Info("http server start ON: ",
		zap.String("addr",
			net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)))
	go func() {
		if err := srv.Run(); err != nil {
			log.Error("server run", zap.Error(err))
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	termSig := <-sig

	log.Debug("Graceful shutdown", zap.Any("signal", termSig))

	closeCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if err := srv.Stop(closeCtx); err != nil {
		log.DPanic("srv.Stop", zap.Error(err))
	}
	if producer != nil {
		if err := producer.Close(); err != nil {
			log.Error("producer close", zap.Error(err))
		}
	}
	log.Info("Graceful shutdown finished")
}

// newSessions keeps the session token in redis when it is configured and in
// process memory otherwise.
func newSessions(cfg config.Config, log *zap.Logger) (tokenstore.Store, func()) {
	if cfg.Redis.Addr == "" {
		log.Info("session token kept in memory")
		return tokenstore.NewMemoryStore(), func() {}
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn("redis ping", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
	}
	return tokenstore.NewRedisStore(client, cfg.TokenKeyPrefix, cfg.Redis.TokenTTL), func() {
		if err := client.Close(); err != nil {
			log.Error("redis close", zap.Error(err))
		}
	}
}
