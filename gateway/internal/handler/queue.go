package handler

import (
	"context"
	"encoding/json"

	"github.com/Astemirdum/rental-service/gateway/internal/booking"
	"github.com/Astemirdum/rental-service/pkg/kafka"
	"github.com/IBM/sarama"
)

// NewPublisher sends booking events to kafka. A nil producer yields a
// publisher that drops events.
func NewPublisher(producer sarama.SyncProducer) booking.Publisher {
	if producer == nil {
		return noopPublisher{}
	}
	return &publisherImpl{
		producer: producer,
		topic:    kafka.BookingEventsTopic,
	}
}

type publisherImpl struct {
	producer sarama.SyncProducer
	topic    string
}

func (q *publisherImpl) Publish(_ context.Context, ev kafka.BookingEvent) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	msg := &sarama.ProducerMessage{
		Topic: q.topic,
		Key:   sarama.StringEncoder(ev.BookingID),
		Value: sarama.ByteEncoder(data),
	}
	if _, _, err = q.producer.SendMessage(msg); err != nil {
		return err
	}
	return nil
}

type noopPublisher struct{}

func (noopPublisher) Publish(context.Context, kafka.BookingEvent) error { return nil }
