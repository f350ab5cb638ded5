package sqlite_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/fwojciec/mailpress"
	"github.com/fwojciec/mailpress/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db := sqlite.NewDB(":memory:")
	require.NoError(t, db.Open())
	t.Cleanup(func() { db.Close() })
	return db
}

func TestDeliveryService_CreateDelivery(t *testing.T) {
	t.Parallel()

	t.Run("creates delivery with generated ID and timestamps", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewDeliveryService(db)
		ctx := context.Background()

		delivery := &mailpress.Delivery{
			CampaignID:    "abc123",
			CampaignTitle: "Spring Launch",
			ContentHash:   "deadbeef",
			Status:        mailpress.DeliveryPending,
		}

		err := svc.CreateDelivery(ctx, delivery)
		require.NoError(t, err)

		assert.NotEmpty(t, delivery.ID, "ID should be generated")
		assert.False(t, delivery.CreatedAt.IsZero(), "CreatedAt should be set")
		assert.False(t, delivery.UpdatedAt.IsZero(), "UpdatedAt should be set")
	})

	t.Run("returns error for invalid delivery", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewDeliveryService(db)
		ctx := context.Background()

		delivery := &mailpress.Delivery{} // missing required fields

		err := svc.CreateDelivery(ctx, delivery)
		require.Error(t, err)
		assert.Equal(t, mailpress.EINVALID, mailpress.ErrorCode(err))
	})
}

func TestDeliveryService_FindDeliveryByID(t *testing.T) {
	t.Parallel()

	t.Run("returns delivery when found", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewDeliveryService(db)
		ctx := context.Background()

		delivery := &mailpress.Delivery{
			CampaignID:     "abc123",
			CampaignTitle:  "Spring Launch",
			ContentHash:    "deadbeef",
			PostID:         7,
			PostURL:        "https://blog.example.com/?p=7",
			Status:         mailpress.DeliveryPublished,
			ImagesUploaded: 3,
		}
		require.NoError(t, svc.CreateDelivery(ctx, delivery))

		found, err := svc.FindDeliveryByID(ctx, delivery.ID)
		require.NoError(t, err)
		assert.Equal(t, delivery.ID, found.ID)
		assert.Equal(t, delivery.CampaignID, found.CampaignID)
		assert.Equal(t, delivery.CampaignTitle, found.CampaignTitle)
		assert.Equal(t, delivery.ContentHash, found.ContentHash)
		assert.Equal(t, delivery.PostID, found.PostID)
		assert.Equal(t, delivery.PostURL, found.PostURL)
		assert.Equal(t, delivery.Status, found.Status)
		assert.Equal(t, delivery.ImagesUploaded, found.ImagesUploaded)
		assert.WithinDuration(t, delivery.CreatedAt, found.CreatedAt, time.Second)
	})

	t.Run("returns ENOTFOUND when not found", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewDeliveryService(db)
		ctx := context.Background()

		_, err := svc.FindDeliveryByID(ctx, "nonexistent-id")
		require.Error(t, err)
		assert.Equal(t, mailpress.ENOTFOUND, mailpress.ErrorCode(err))
	})
}

func TestDeliveryService_FindDeliveries(t *testing.T) {
	t.Parallel()

	t.Run("returns all deliveries with empty filter", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewDeliveryService(db)
		ctx := context.Background()

		for i := 0; i < 3; i++ {
			delivery := &mailpress.Delivery{
				CampaignID: fmt.Sprintf("campaign%d", i+1),
				Status:     mailpress.DeliveryPending,
			}
			require.NoError(t, svc.CreateDelivery(ctx, delivery))
		}

		deliveries, err := svc.FindDeliveries(ctx, mailpress.DeliveryFilter{})
		require.NoError(t, err)
		assert.Len(t, deliveries, 3)
	})

	t.Run("filters by campaign ID", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewDeliveryService(db)
		ctx := context.Background()

		d1 := &mailpress.Delivery{CampaignID: "abc123", Status: mailpress.DeliveryPublished}
		d2 := &mailpress.Delivery{CampaignID: "def456", Status: mailpress.DeliveryPublished}
		require.NoError(t, svc.CreateDelivery(ctx, d1))
		require.NoError(t, svc.CreateDelivery(ctx, d2))

		campaignID := "abc123"
		deliveries, err := svc.FindDeliveries(ctx, mailpress.DeliveryFilter{CampaignID: &campaignID})
		require.NoError(t, err)
		require.Len(t, deliveries, 1)
		assert.Equal(t, "abc123", deliveries[0].CampaignID)
	})

	t.Run("filters by content hash and status", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewDeliveryService(db)
		ctx := context.Background()

		// Same filter shape the publisher uses to decide whether a
		// campaign's content has already gone out.
		require.NoError(t, svc.CreateDelivery(ctx, &mailpress.Delivery{
			CampaignID: "abc123", ContentHash: "hash1", Status: mailpress.DeliveryPublished,
		}))
		require.NoError(t, svc.CreateDelivery(ctx, &mailpress.Delivery{
			CampaignID: "abc123", ContentHash: "hash1", Status: mailpress.DeliveryFailed,
		}))
		require.NoError(t, svc.CreateDelivery(ctx, &mailpress.Delivery{
			CampaignID: "abc123", ContentHash: "hash2", Status: mailpress.DeliveryPublished,
		}))

		hash := "hash1"
		status := mailpress.DeliveryPublished
		deliveries, err := svc.FindDeliveries(ctx, mailpress.DeliveryFilter{
			ContentHash: &hash,
			Status:      &status,
			Limit:       1,
		})
		require.NoError(t, err)
		require.Len(t, deliveries, 1)
		assert.Equal(t, "hash1", deliveries[0].ContentHash)
		assert.Equal(t, mailpress.DeliveryPublished, deliveries[0].Status)
	})

	t.Run("returns newest first", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewDeliveryService(db)
		ctx := context.Background()

		ids := make([]string, 3)
		for i := range ids {
			delivery := &mailpress.Delivery{
				CampaignID: fmt.Sprintf("campaign%d", i+1),
				Status:     mailpress.DeliveryPending,
			}
			require.NoError(t, svc.CreateDelivery(ctx, delivery))
			ids[i] = delivery.ID
		}

		deliveries, err := svc.FindDeliveries(ctx, mailpress.DeliveryFilter{})
		require.NoError(t, err)
		require.Len(t, deliveries, 3)
		assert.Equal(t, ids[2], deliveries[0].ID)
		assert.Equal(t, ids[1], deliveries[1].ID)
		assert.Equal(t, ids[0], deliveries[2].ID)
	})

	t.Run("respects limit and offset", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewDeliveryService(db)
		ctx := context.Background()

		for i := 0; i < 5; i++ {
			delivery := &mailpress.Delivery{
				CampaignID: fmt.Sprintf("campaign%d", i+1),
				Status:     mailpress.DeliveryPending,
			}
			require.NoError(t, svc.CreateDelivery(ctx, delivery))
		}

		deliveries, err := svc.FindDeliveries(ctx, mailpress.DeliveryFilter{Limit: 2, Offset: 1})
		require.NoError(t, err)
		assert.Len(t, deliveries, 2)
	})
}

func TestDeliveryService_UpdateDelivery(t *testing.T) {
	t.Parallel()

	t.Run("updates status and post fields", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewDeliveryService(db)
		ctx := context.Background()

		delivery := &mailpress.Delivery{
			CampaignID: "abc123",
			Status:     mailpress.DeliveryPending,
		}
		require.NoError(t, svc.CreateDelivery(ctx, delivery))

		status := mailpress.DeliveryPublished
		postID := 7
		postURL := "https://blog.example.com/?p=7"
		images := 2
		updated, err := svc.UpdateDelivery(ctx, delivery.ID, mailpress.DeliveryUpdate{
			Status:         &status,
			PostID:         &postID,
			PostURL:        &postURL,
			ImagesUploaded: &images,
		})
		require.NoError(t, err)

		assert.Equal(t, mailpress.DeliveryPublished, updated.Status)
		assert.Equal(t, 7, updated.PostID)
		assert.Equal(t, postURL, updated.PostURL)
		assert.Equal(t, 2, updated.ImagesUploaded)

		found, err := svc.FindDeliveryByID(ctx, delivery.ID)
		require.NoError(t, err)
		assert.Equal(t, mailpress.DeliveryPublished, found.Status)
		assert.Equal(t, 7, found.PostID)
	})

	t.Run("records failure message", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewDeliveryService(db)
		ctx := context.Background()

		delivery := &mailpress.Delivery{
			CampaignID: "abc123",
			Status:     mailpress.DeliveryPending,
		}
		require.NoError(t, svc.CreateDelivery(ctx, delivery))

		status := mailpress.DeliveryFailed
		msg := "wordpress returned HTTP 500"
		updated, err := svc.UpdateDelivery(ctx, delivery.ID, mailpress.DeliveryUpdate{
			Status: &status,
			Error:  &msg,
		})
		require.NoError(t, err)

		assert.Equal(t, mailpress.DeliveryFailed, updated.Status)
		assert.Equal(t, msg, updated.Error)
	})

	t.Run("partial update leaves other fields untouched", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewDeliveryService(db)
		ctx := context.Background()

		delivery := &mailpress.Delivery{
			CampaignID:    "abc123",
			CampaignTitle: "Spring Launch",
			ContentHash:   "deadbeef",
			Status:        mailpress.DeliveryPending,
		}
		require.NoError(t, svc.CreateDelivery(ctx, delivery))

		status := mailpress.DeliverySkipped
		updated, err := svc.UpdateDelivery(ctx, delivery.ID, mailpress.DeliveryUpdate{Status: &status})
		require.NoError(t, err)

		assert.Equal(t, mailpress.DeliverySkipped, updated.Status)
		assert.Equal(t, "Spring Launch", updated.CampaignTitle)
		assert.Equal(t, "deadbeef", updated.ContentHash)
	})

	t.Run("returns ENOTFOUND when not found", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewDeliveryService(db)
		ctx := context.Background()

		status := mailpress.DeliveryPublished
		_, err := svc.UpdateDelivery(ctx, "nonexistent-id", mailpress.DeliveryUpdate{Status: &status})
		require.Error(t, err)
		assert.Equal(t, mailpress.ENOTFOUND, mailpress.ErrorCode(err))
	})
}
