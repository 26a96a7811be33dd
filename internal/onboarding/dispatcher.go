package onboarding

import (
	"context"
	"log/slog"
	"time"

	"kycbridge/internal/partner"
	"kycbridge/internal/platform/kafka"
)

// Dispatcher consumes generated payloads from a channel and delivers them to
// the partner, recording the outcome on each record. Delivery failures mark
// the record FAILED and keep the loop running; only context cancellation
// stops it.
type Dispatcher struct {
	store     Store
	client    partner.Client
	inbox     <-chan *Record
	publisher *kafka.Producer
	logger    *slog.Logger
	now       func() time.Time
}

func NewDispatcher(store Store, client partner.Client, inbox <-chan *Record, publisher *kafka.Producer, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		store:     store,
		client:    client,
		inbox:     inbox,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

// Run blocks until ctx is cancelled. Call it in its own goroutine.
func (d *Dispatcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case record := <-d.inbox:
			d.deliver(ctx, record)
		}
	}
}

// Recover re-queues records that were persisted but never delivered, for use
// at startup.
func (d *Dispatcher) Recover(ctx context.Context) error {
	pending, err := d.store.ListPending(ctx)
	if err != nil {
		return err
	}
	for _, record := range pending {
		d.deliver(ctx, record)
	}
	if len(pending) > 0 {
		d.logger.InfoContext(ctx, "redelivered pending onboardings", "count", len(pending))
	}
	return nil
}

func (d *Dispatcher) deliver(ctx context.Context, record *Record) {
	response, err := d.client.SendOnboarding(ctx, record.Payload)
	if err != nil {
		d.logger.ErrorContext(ctx, "onboarding delivery failed",
			"external_user_id", record.ExternalUserID,
			"record_id", record.ID,
			"error", err,
		)
		record.MarkFailed(err.Error(), d.now().UTC())
	} else {
		d.logger.InfoContext(ctx, "onboarding delivered",
			"external_user_id", record.ExternalUserID,
			"record_id", record.ID,
		)
		record.MarkSent(response, d.now().UTC())
	}

	if err := d.store.Update(ctx, record); err != nil {
		d.logger.ErrorContext(ctx, "failed to persist delivery outcome",
			"record_id", record.ID, "error", err)
	}

	d.publisher.PublishStatus(ctx, kafka.StatusEvent{
		ExternalUserID: record.ExternalUserID,
		ApplicantID:    record.ApplicantID,
		Status:         "ONBOARDING_" + record.Status,
		Details:        record.ErrorDetails,
		Timestamp:      record.UpdatedAt,
	})
}
