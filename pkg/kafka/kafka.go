package kafka

import (
	"context"
	"errors"
	"time"

	"github.com/IBM/sarama"
	"go.uber.org/zap"
)

const (
	BookingEventsTopic = "booking-events"
	StatsConsumerGroup = "stats-group"
)

type Config struct {
	Addrs []string `envconfig:"KAFKA_ADDRS" default:"localhost:29092"`
}

func NewProducer(cfg Config) (sarama.SyncProducer, error) {
	defaultCfg := sarama.NewConfig()

	defaultCfg.Producer.RequiredAcks = sarama.WaitForAll
	defaultCfg.Producer.Return.Successes = true

	return sarama.NewSyncProducer(cfg.Addrs, defaultCfg)
}

func NewConsumer(cfg Config, group string) (sarama.ConsumerGroup, error) {
	defaultCfg := sarama.NewConfig()
	defaultCfg.Consumer.Offsets.Initial = sarama.OffsetOldest
	defaultCfg.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{sarama.NewBalanceStrategyRoundRobin()}

	return sarama.NewConsumerGroup(cfg.Addrs, group, defaultCfg)
}

// Consume blocks, rejoining the group after every rebalance, until ctx is done
// or the group is closed.
func Consume(ctx context.Context, group sarama.ConsumerGroup, handler sarama.ConsumerGroupHandler, log *zap.Logger, topics ...string) {
	for {
		if err := group.Consume(ctx, topics, handler); err != nil {
			if errors.Is(err, sarama.ErrClosedConsumerGroup) {
				return
			}
			log.Error("kafka consume", zap.Error(err))
			time.Sleep(time.Second)
		}
		if ctx.Err() != nil {
			return
		}
	}
}

type EventType string

const (
	EventCreated   EventType = "CREATED"
	EventApproved  EventType = "APPROVED"
	EventRejected  EventType = "REJECTED"
	EventCancelled EventType = "CANCELLED"
)

// BookingEvent records one booking lifecycle transition accepted by the core service.
type BookingEvent struct {
	EventID    string    `json:"eventId"`
	Type       EventType `json:"type"`
	BookingID  string    `json:"bookingId"`
	PropertyID string    `json:"propertyId"`
	FromStatus string    `json:"fromStatus,omitempty"`
	ToStatus   string    `json:"toStatus"`
	ActorID    string    `json:"actorId,omitempty"`
	ActorRole  string    `json:"actorRole,omitempty"`
	Reason     *string   `json:"reason,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}
