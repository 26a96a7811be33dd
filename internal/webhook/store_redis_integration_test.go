//go:build integration

package webhook_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	platformredis "kycbridge/internal/platform/redis"
	"kycbridge/internal/webhook"
	"kycbridge/pkg/sentinel"
	"kycbridge/pkg/testutil/containers"
)

type RedisProcessedStoreSuite struct {
	suite.Suite
	container *containers.RedisContainer
	store     *webhook.RedisProcessedStore
}

func TestRedisProcessedStoreSuite(t *testing.T) {
	suite.Run(t, new(RedisProcessedStoreSuite))
}

func (s *RedisProcessedStoreSuite) SetupSuite() {
	s.container = containers.NewRedisContainer(s.T())

	client, err := platformredis.New(s.container.URL)
	s.Require().NoError(err)
	s.store = webhook.NewRedisProcessedStore(client)
}

func (s *RedisProcessedStoreSuite) TearDownSuite() {
	s.container.Terminate(context.Background())
}

func (s *RedisProcessedStoreSuite) SetupTest() {
	s.Require().NoError(s.container.FlushAll(context.Background()))
}

func (s *RedisProcessedStoreSuite) TestFirstMarkWins() {
	ctx := context.Background()

	s.Require().NoError(s.store.MarkProcessed(ctx, "ext-1", "app-1"))

	err := s.store.MarkProcessed(ctx, "ext-1", "app-1")
	s.Require().ErrorIs(err, sentinel.ErrAlreadyProcessed)
}

func (s *RedisProcessedStoreSuite) TestDistinctPairsAreIndependent() {
	ctx := context.Background()

	s.Require().NoError(s.store.MarkProcessed(ctx, "ext-1", "app-1"))
	s.Require().NoError(s.store.MarkProcessed(ctx, "ext-1", "app-2"))
}

func (s *RedisProcessedStoreSuite) TestGuardKeyCarriesTTL() {
	ctx := context.Background()

	s.Require().NoError(s.store.MarkProcessed(ctx, "ext-1", "app-1"))

	ttl, err := s.container.Client.TTL(ctx, "wh:processed:ext-1:app-1").Result()
	s.Require().NoError(err)
	s.Positive(ttl)
}
