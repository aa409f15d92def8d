package resolved

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"statusgate/internal/status/models"
	"statusgate/pkg/domain"
	"statusgate/pkg/platform/sentinel"
)

func record(id string, class models.Classification, expires time.Time) *models.ResolvedStatus {
	return &models.ResolvedStatus{
		SubjectID:      domain.MustSubjectID(id),
		Message:        "Negative",
		Classification: class,
		ColorCode:      "#00FF00",
		ExpiresAt:      expires,
	}
}

func TestInMemoryStore(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	id := domain.MustSubjectID("+919876543210")

	t.Run("find missing", func(t *testing.T) {
		store := NewInMemoryStore()
		_, err := store.Find(ctx, id)
		require.ErrorIs(t, err, sentinel.ErrNotFound)
	})

	t.Run("save then find", func(t *testing.T) {
		store := NewInMemoryStore()
		rec := record(id.String(), models.ClassificationApproved, now.Add(time.Hour))
		require.NoError(t, store.Save(ctx, rec))

		found, err := store.Find(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, rec, found)
	})

	t.Run("save overwrites", func(t *testing.T) {
		store := NewInMemoryStore()
		require.NoError(t, store.Save(ctx, record(id.String(), models.ClassificationApproved, now)))
		require.NoError(t, store.Save(ctx, record(id.String(), models.ClassificationRejected, now.Add(time.Hour))))

		found, err := store.Find(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, models.ClassificationRejected, found.Classification)
	})

	t.Run("expired records are still returned", func(t *testing.T) {
		store := NewInMemoryStore()
		require.NoError(t, store.Save(ctx, record(id.String(), models.ClassificationApproved, now.Add(-time.Hour))))

		found, err := store.Find(ctx, id)
		require.NoError(t, err)
		assert.True(t, found.IsExpired(now))
	})

	t.Run("returned record is a copy", func(t *testing.T) {
		store := NewInMemoryStore()
		require.NoError(t, store.Save(ctx, record(id.String(), models.ClassificationApproved, now)))

		found, err := store.Find(ctx, id)
		require.NoError(t, err)
		found.Message = "mutated"

		again, err := store.Find(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "Negative", again.Message)
	})

	t.Run("delete", func(t *testing.T) {
		store := NewInMemoryStore()
		require.NoError(t, store.Save(ctx, record(id.String(), models.ClassificationApproved, now)))
		require.NoError(t, store.Delete(ctx, id))
		require.NoError(t, store.Delete(ctx, id), "deleting a missing key is not an error")

		_, err := store.Find(ctx, id)
		require.ErrorIs(t, err, sentinel.ErrNotFound)
	})

	t.Run("list is ordered", func(t *testing.T) {
		store := NewInMemoryStore()
		require.NoError(t, store.Save(ctx, record("+919000000002", models.ClassificationApproved, now)))
		require.NoError(t, store.Save(ctx, record("+919000000001", models.ClassificationRejected, now)))

		list, err := store.List(ctx)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "+919000000001", list[0].SubjectID.String())
		assert.Equal(t, "+919000000002", list[1].SubjectID.String())
	})
}

func TestInMemoryStoreConcurrentKeys(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()
	expires := time.Now().Add(time.Hour)

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("+91900000%04d", i)
			_ = store.Save(ctx, record(id, models.ClassificationApproved, expires))
			_, _ = store.Find(ctx, domain.MustSubjectID(id))
		}(i)
	}
	wg.Wait()

	list, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 50)
}
