//go:build integration

package resolved_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"statusgate/internal/platform/postgres"
	"statusgate/internal/status/models"
	"statusgate/internal/status/store/resolved"
	"statusgate/pkg/domain"
	"statusgate/pkg/platform/sentinel"
	"statusgate/pkg/testutil/containers"
)

const (
	resolvedTable = "user_status"
	pendingTable  = "pending_requests"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *resolved.PostgresStore
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.postgres = containers.GetManager().GetPostgres(s.T())
	err := postgres.EnsureSchema(context.Background(), s.postgres.Pool, postgres.Tables{
		Resolved: resolvedTable,
		Pending:  pendingTable,
	})
	s.Require().NoError(err)
	s.store = resolved.NewPostgresStore(s.postgres.Pool, resolvedTable)
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.postgres.Truncate(context.Background(), resolvedTable))
}

func (s *PostgresStoreSuite) TestUpsert() {
	ctx := context.Background()
	id := domain.MustSubjectID("+919876543210")
	expires := time.Now().Add(time.Hour).UTC().Truncate(time.Microsecond)

	s.Require().NoError(s.store.Save(ctx, &models.ResolvedStatus{
		SubjectID:      id,
		Message:        "User has denied request. Please make a new request",
		Classification: models.ClassificationRejected,
		ColorCode:      models.NeutralColor,
		ExpiresAt:      expires,
	}))
	s.Require().NoError(s.store.Save(ctx, &models.ResolvedStatus{
		SubjectID:      id,
		Message:        "Negative",
		Classification: models.ClassificationApproved,
		ColorCode:      "#00FF00",
		ExpiresAt:      expires,
	}))

	found, err := s.store.Find(ctx, id)
	s.Require().NoError(err)
	s.Equal("Negative", found.Message)
	s.Equal(models.ClassificationApproved, found.Classification)
	s.True(expires.Equal(found.ExpiresAt))

	list, err := s.store.List(ctx)
	s.Require().NoError(err)
	s.Len(list, 1)
}

func (s *PostgresStoreSuite) TestDelete() {
	ctx := context.Background()
	id := domain.MustSubjectID("+919876543211")

	s.Require().NoError(s.store.Save(ctx, &models.ResolvedStatus{SubjectID: id, Message: "m", Classification: models.ClassificationApproved, ExpiresAt: time.Now()}))
	s.Require().NoError(s.store.Delete(ctx, id))

	_, err := s.store.Find(ctx, id)
	s.ErrorIs(err, sentinel.ErrNotFound)
}
