package handler

import (
	"context"
	"encoding/json"

	"github.com/Astemirdum/rental-service/pkg/kafka"
	"github.com/Astemirdum/rental-service/stats/internal/errs"
	"github.com/IBM/sarama"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type record func(ctx context.Context, ev kafka.BookingEvent) error

type Consumer struct {
	record record
	log    *zap.Logger
}

func NewConsumer(record record, log *zap.Logger) *Consumer {
	return &Consumer{
		record: record,
		log:    log.Named("consumer"),
	}
}

func (consumer *Consumer) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

func (consumer *Consumer) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

// ConsumeClaim marks a message once it is stored or can never be stored.
// Storage failures leave it unmarked so it is redelivered after a rebalance.
func (consumer *Consumer) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok {
				consumer.log.Warn("message channel was closed")
				return nil
			}
			var event kafka.BookingEvent
			if err := json.Unmarshal(message.Value, &event); err != nil {
				consumer.log.Error("undecodable event", zap.Int64("offset", message.Offset), zap.Error(err))
				session.MarkMessage(message, "")
				continue
			}

			if err := consumer.record(session.Context(), event); err != nil {
				if errors.Is(err, errs.ErrBadEvent) {
					consumer.log.Error("rejected event", zap.String("eventId", event.EventID), zap.Error(err))
					session.MarkMessage(message, "")
					continue
				}
				consumer.log.Error("consumer.record", zap.Error(err))
				continue
			}

			consumer.log.Debug("Message claimed:", zap.String("value", string(message.Value)), zap.Time("timestamp", message.Timestamp), zap.String("topic", message.Topic))
			session.MarkMessage(message, "")
		case <-session.Context().Done():
			return nil
		}
	}
}
