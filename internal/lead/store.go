package lead

import "context"

// Store persists leads. Implementations return sentinel.ErrNotFound for
// missing leads and sentinel.ErrDuplicate when another lead already holds the
// same (email, phone) pair.
type Store interface {
	Create(ctx context.Context, l *Lead) error
	Update(ctx context.Context, l *Lead) error
	FindByExternalID(ctx context.Context, externalUserID string) (*Lead, error)
	FindByEmail(ctx context.Context, email string) (*Lead, error)
	FindByPhone(ctx context.Context, phone string) (*Lead, error)
	List(ctx context.Context) ([]*Lead, error)
}
