package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kgo"
)

// StatusEvent is the record shape published for every lead status transition.
// Consumers key on the lead's external user ID so all events for one lead land
// on the same partition, preserving order.
type StatusEvent struct {
	ExternalUserID string    `json:"external_user_id"`
	ApplicantID    string    `json:"applicant_id,omitempty"`
	Status         string    `json:"status"`
	Details        string    `json:"details,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
}

// Producer publishes lead status events to a Kafka topic. It is optional
// infrastructure: callers hold a nil *Producer when Kafka is not configured
// and every method is nil-safe.
type Producer struct {
	client *kgo.Client
	topic  string
	logger *slog.Logger
}

// NewProducer connects to the brokers and makes sure the topic exists.
func NewProducer(ctx context.Context, brokers []string, topic string, logger *slog.Logger) (*Producer, error) {
	if len(brokers) == 0 {
		return nil, nil
	}

	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.AllowAutoTopicCreation(),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}

	adm := kadm.NewClient(client)
	if _, err := adm.CreateTopic(ctx, 1, 1, nil, topic); err != nil {
		// Already-exists is fine; anything else is logged but not fatal,
		// the broker may auto-create on first produce.
		logger.Warn("kafka topic create", "topic", topic, "error", err)
	}

	return &Producer{client: client, topic: topic, logger: logger}, nil
}

// PublishStatus emits a status transition asynchronously. Publishing is
// best-effort: a broker outage must never fail webhook processing.
func (p *Producer) PublishStatus(ctx context.Context, event StatusEvent) {
	if p == nil {
		return
	}
	value, err := json.Marshal(event)
	if err != nil {
		p.logger.ErrorContext(ctx, "marshal status event", "error", err)
		return
	}
	record := &kgo.Record{
		Topic: p.topic,
		Key:   []byte(event.ExternalUserID),
		Value: value,
	}
	p.client.Produce(ctx, record, func(_ *kgo.Record, err error) {
		if err != nil {
			p.logger.Error("publish status event",
				"external_user_id", event.ExternalUserID,
				"status", event.Status,
				"error", err,
			)
		}
	})
}

// Close flushes buffered records and releases the client.
func (p *Producer) Close(ctx context.Context) {
	if p == nil {
		return
	}
	if err := p.client.Flush(ctx); err != nil {
		p.logger.Warn("kafka flush on close", "error", err)
	}
	p.client.Close()
}
