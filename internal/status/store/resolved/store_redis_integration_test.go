//go:build integration

package resolved_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"statusgate/internal/status/models"
	"statusgate/internal/status/store/resolved"
	"statusgate/pkg/domain"
	"statusgate/pkg/platform/sentinel"
	"statusgate/pkg/requestcontext"
	"statusgate/pkg/testutil/containers"
)

type RedisStoreSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	store *resolved.RedisStore
}

func TestRedisStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisStoreSuite))
}

func (s *RedisStoreSuite) SetupSuite() {
	s.redis = containers.GetManager().GetRedis(s.T())
	s.store = resolved.NewRedisStore(s.redis.Client)
}

func (s *RedisStoreSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func (s *RedisStoreSuite) TestRoundTrip() {
	ctx := context.Background()
	rec := &models.ResolvedStatus{
		SubjectID:      domain.MustSubjectID("+919876543210"),
		Message:        "Negative",
		Classification: models.ClassificationApproved,
		ColorCode:      "#00FF00",
		ExpiresAt:      time.Now().Add(time.Hour).UTC().Truncate(time.Second),
	}
	s.Require().NoError(s.store.Save(ctx, rec))

	found, err := s.store.Find(ctx, rec.SubjectID)
	s.Require().NoError(err)
	s.Equal(rec.Message, found.Message)
	s.Equal(rec.Classification, found.Classification)
	s.Equal(rec.ColorCode, found.ColorCode)
	s.True(rec.ExpiresAt.Equal(found.ExpiresAt))
}

func (s *RedisStoreSuite) TestKeyTTLFollowsExpiry() {
	ctx := context.Background()
	rec := &models.ResolvedStatus{
		SubjectID:      domain.MustSubjectID("+919876543211"),
		Message:        "Negative",
		Classification: models.ClassificationApproved,
		ExpiresAt:      time.Now().Add(10 * time.Minute),
	}
	s.Require().NoError(s.store.Save(ctx, rec))

	ttl, err := s.redis.Client.TTL(ctx, "status:resolved:+919876543211").Result()
	s.Require().NoError(err)
	s.Greater(ttl, 9*time.Minute)
	s.LessOrEqual(ttl, 10*time.Minute)
}

func (s *RedisStoreSuite) TestKeyTTLUsesRequestTime() {
	requestTime := time.Now().Add(-5 * time.Minute)
	ctx := requestcontext.WithTime(context.Background(), requestTime)
	rec := &models.ResolvedStatus{
		SubjectID:      domain.MustSubjectID("+919876543213"),
		Message:        "Negative",
		Classification: models.ClassificationApproved,
		ExpiresAt:      requestTime.Add(10 * time.Minute),
	}
	s.Require().NoError(s.store.Save(ctx, rec))

	ttl, err := s.redis.Client.TTL(ctx, "status:resolved:+919876543213").Result()
	s.Require().NoError(err)
	s.Greater(ttl, 9*time.Minute)
}

func (s *RedisStoreSuite) TestKeyPrefixNamespacesKeys() {
	ctx := context.Background()
	other := resolved.NewRedisStore(s.redis.Client, resolved.WithKeyPrefix("tenant-b:resolved:"))
	id := domain.MustSubjectID("+919876543214")
	s.Require().NoError(other.Save(ctx, &models.ResolvedStatus{SubjectID: id, Message: "m", ExpiresAt: time.Now().Add(time.Hour)}))

	_, err := s.store.Find(ctx, id)
	s.ErrorIs(err, sentinel.ErrNotFound)
	found, err := other.Find(ctx, id)
	s.Require().NoError(err)
	s.Equal("m", found.Message)

	exists, err := s.redis.Client.Exists(ctx, "tenant-b:resolved:+919876543214").Result()
	s.Require().NoError(err)
	s.EqualValues(1, exists)
}

func (s *RedisStoreSuite) TestMissingAndDelete() {
	ctx := context.Background()
	id := domain.MustSubjectID("+919876543212")

	_, err := s.store.Find(ctx, id)
	s.ErrorIs(err, sentinel.ErrNotFound)

	s.Require().NoError(s.store.Save(ctx, &models.ResolvedStatus{SubjectID: id, Message: "m", ExpiresAt: time.Now().Add(time.Hour)}))
	s.Require().NoError(s.store.Delete(ctx, id))

	_, err = s.store.Find(ctx, id)
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *RedisStoreSuite) TestList() {
	ctx := context.Background()
	for _, id := range []string{"+919000000003", "+919000000001", "+919000000002"} {
		s.Require().NoError(s.store.Save(ctx, &models.ResolvedStatus{
			SubjectID:      domain.MustSubjectID(id),
			Message:        "m",
			Classification: models.ClassificationRejected,
			ExpiresAt:      time.Now().Add(time.Hour),
		}))
	}

	list, err := s.store.List(ctx)
	s.Require().NoError(err)
	s.Require().Len(list, 3)
	s.Equal("+919000000001", list[0].SubjectID.String())
	s.Equal("+919000000003", list[2].SubjectID.String())
}
