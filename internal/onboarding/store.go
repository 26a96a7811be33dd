package onboarding

import "context"

// Store persists onboarding records. Implementations return
// sentinel.ErrNotFound for missing records.
type Store interface {
	Create(ctx context.Context, r *Record) error
	Update(ctx context.Context, r *Record) error
	FindByExternalID(ctx context.Context, externalUserID string) (*Record, error)
	// ListPending returns undelivered records oldest first, for redelivery
	// after a restart.
	ListPending(ctx context.Context) ([]*Record, error)
}
