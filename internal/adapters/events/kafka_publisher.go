package events

import (
	"context"
	"encoding/json"
	"fmt"
	"map-route-service/internal/domain"
	"map-route-service/internal/platform/obs"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// DefaultTopic receives route.saved events.
const DefaultTopic = "route.events"

// messageWriter is the part of kafka.Writer the publisher needs.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher publishes route events to a Kafka topic, keyed by event id.
type KafkaPublisher struct {
	writer messageWriter
	topic  string
	logger *zap.Logger
}

func NewKafkaPublisher(brokers []string, topic string, logger *zap.Logger) *KafkaPublisher {
	if topic == "" {
		topic = DefaultTopic
	}
	w := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: 10 * time.Millisecond,
	}
	return newKafkaPublisher(w, topic, logger)
}

func newKafkaPublisher(w messageWriter, topic string, logger *zap.Logger) *KafkaPublisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &KafkaPublisher{writer: w, topic: topic, logger: logger}
}

func (p *KafkaPublisher) PublishRouteSaved(ctx context.Context, evt domain.RouteSavedEvent) (err error) {
	defer obs.Time(ctx, "events.kafka.PublishRouteSaved")(&err)

	value, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("publish %s: encode: %w", evt.Type, err)
	}

	msg := kafka.Message{
		Key:   []byte(evt.ID.String()),
		Value: value,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(evt.Type)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish %s to %s: %w", evt.Type, p.topic, err)
	}

	p.logger.Debug("published route event",
		zap.String("topic", p.topic),
		zap.String("event_id", evt.ID.String()),
	)
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NoopPublisher drops every event. Used when no brokers are configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishRouteSaved(context.Context, domain.RouteSavedEvent) error { return nil }

func (NoopPublisher) Close() error { return nil }
