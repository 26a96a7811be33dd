package webhook

import (
	"context"
	"fmt"
	"sync"
	"time"

	platformredis "kycbridge/internal/platform/redis"
	"kycbridge/pkg/sentinel"
)

// ProcessedStore is the replay guard for terminal GREEN events. A replayed
// approval must not regenerate or resend a payload.
type ProcessedStore interface {
	// MarkProcessed records the (externalUserID, applicantID) approval.
	// It returns sentinel.ErrAlreadyProcessed when an earlier call already
	// recorded the pair.
	MarkProcessed(ctx context.Context, externalUserID, applicantID string) error
}

// Replayed approvals are harmless once the onboarding record exists, so the
// guard entries can expire.
const processedTTL = 7 * 24 * time.Hour

func processedKey(externalUserID, applicantID string) string {
	return fmt.Sprintf("wh:processed:%s:%s", externalUserID, applicantID)
}

// InMemoryProcessedStore is the single-instance fallback guard.
type InMemoryProcessedStore struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

func NewInMemoryProcessedStore() *InMemoryProcessedStore {
	return &InMemoryProcessedStore{seen: make(map[string]struct{})}
}

func (s *InMemoryProcessedStore) MarkProcessed(_ context.Context, externalUserID, applicantID string) error {
	key := processedKey(externalUserID, applicantID)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.seen[key]; ok {
		return sentinel.ErrAlreadyProcessed
	}
	s.seen[key] = struct{}{}
	return nil
}

// RedisProcessedStore guards replays across instances with SET NX.
type RedisProcessedStore struct {
	client *platformredis.Client
}

func NewRedisProcessedStore(client *platformredis.Client) *RedisProcessedStore {
	return &RedisProcessedStore{client: client}
}

func (s *RedisProcessedStore) MarkProcessed(ctx context.Context, externalUserID, applicantID string) error {
	first, err := s.client.SetNX(ctx, processedKey(externalUserID, applicantID), time.Now().UTC().Format(time.RFC3339), processedTTL).Result()
	if err != nil {
		return fmt.Errorf("mark webhook processed: %w", err)
	}
	if !first {
		return sentinel.ErrAlreadyProcessed
	}
	return nil
}
