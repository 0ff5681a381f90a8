package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/stockroomhq/stockroom-api/internal/models"
)

func TestNotificationListNewestFirstWithCap(t *testing.T) {
	db := openTestDB(t)
	org := seedOrganization(t, db, "Acme")
	user := seedUser(t, db, org.ID, "owner@acme.test", "ADMIN")

	repo := NewNotificationRepository(db)
	ctx := context.Background()

	base := time.Now().UTC().Add(-time.Hour)
	for i := 0; i < 25; i++ {
		notification := models.Notification{
			UserID:    user.ID,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, repo.Create(ctx, &notification))
	}

	listed, err := repo.ListByUser(ctx, user.ID, 0)
	require.NoError(t, err)
	require.Len(t, listed, 20)

	for i := 1; i < len(listed); i++ {
		require.False(t, listed[i].CreatedAt.After(listed[i-1].CreatedAt))
	}
}

func TestNotificationListScopedToOwner(t *testing.T) {
	db := openTestDB(t)
	org := seedOrganization(t, db, "Acme")
	alice := seedUser(t, db, org.ID, "alice@acme.test", "ADMIN")
	bob := seedUser(t, db, org.ID, "bob@acme.test", "STAFF")

	repo := NewNotificationRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.Notification{UserID: alice.ID}))
	require.NoError(t, repo.Create(ctx, &models.Notification{UserID: bob.ID}))

	listed, err := repo.ListByUser(ctx, alice.ID, 20)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	require.Equal(t, alice.ID, listed[0].UserID)
}

func TestNotificationMarkReadIdempotent(t *testing.T) {
	db := openTestDB(t)
	org := seedOrganization(t, db, "Acme")
	user := seedUser(t, db, org.ID, "owner@acme.test", "ADMIN")

	repo := NewNotificationRepository(db)
	ctx := context.Background()

	notification := models.Notification{UserID: user.ID}
	require.NoError(t, repo.Create(ctx, &notification))

	first, err := repo.MarkRead(ctx, notification.ID, user.ID)
	require.NoError(t, err)
	require.True(t, first.Read)

	second, err := repo.MarkRead(ctx, notification.ID, user.ID)
	require.NoError(t, err)
	require.True(t, second.Read)

	count, err := repo.CountUnread(ctx, user.ID)
	require.NoError(t, err)
	require.Zero(t, count)
}

func TestNotificationMarkManyReadExcludesForeignRecords(t *testing.T) {
	db := openTestDB(t)
	org := seedOrganization(t, db, "Acme")
	alice := seedUser(t, db, org.ID, "alice@acme.test", "ADMIN")
	bob := seedUser(t, db, org.ID, "bob@acme.test", "STAFF")

	repo := NewNotificationRepository(db)
	ctx := context.Background()

	var aliceIDs []uint
	for i := 0; i < 3; i++ {
		notification := models.Notification{UserID: alice.ID}
		require.NoError(t, repo.Create(ctx, &notification))
		aliceIDs = append(aliceIDs, notification.ID)
	}

	foreign := models.Notification{UserID: bob.ID}
	require.NoError(t, repo.Create(ctx, &foreign))

	// Bob's id rides along in the request but must stay untouched.
	updated, err := repo.MarkManyRead(ctx, append(aliceIDs, foreign.ID), alice.ID)
	require.NoError(t, err)
	require.EqualValues(t, 3, updated)

	var reloaded models.Notification
	require.NoError(t, db.First(&reloaded, foreign.ID).Error)
	require.False(t, reloaded.Read)

	count, err := repo.CountUnread(ctx, bob.ID)
	require.NoError(t, err)
	require.EqualValues(t, 1, count)
}

func TestNotificationMarkManyReadSkipsAlreadyRead(t *testing.T) {
	db := openTestDB(t)
	org := seedOrganization(t, db, "Acme")
	user := seedUser(t, db, org.ID, "owner@acme.test", "ADMIN")

	repo := NewNotificationRepository(db)
	ctx := context.Background()

	var ids []uint
	for i := 0; i < 4; i++ {
		notification := models.Notification{UserID: user.ID}
		require.NoError(t, repo.Create(ctx, &notification))
		ids = append(ids, notification.ID)
	}

	_, err := repo.MarkRead(ctx, ids[0], user.ID)
	require.NoError(t, err)

	updated, err := repo.MarkManyRead(ctx, ids, user.ID)
	require.NoError(t, err)
	require.EqualValues(t, 3, updated)
}

func TestNotificationCreateBatchPreloadsActivity(t *testing.T) {
	db := openTestDB(t)
	org := seedOrganization(t, db, "Acme")
	actor := seedUser(t, db, org.ID, "actor@acme.test", "STAFF")
	recipient := seedUser(t, db, org.ID, "admin@acme.test", "ADMIN")

	activityRepo := NewActivityRepository(db)
	repo := NewNotificationRepository(db)
	ctx := context.Background()

	record := models.ActivityRecord{UserID: actor.ID, Action: "PRODUCT_CREATED", Details: "created Widget"}
	require.NoError(t, activityRepo.Create(ctx, &record))

	batch := []models.Notification{
		{UserID: recipient.ID, ActivityID: &record.ID},
	}
	require.NoError(t, repo.CreateBatch(ctx, batch))

	listed, err := repo.ListByUser(ctx, recipient.ID, 20)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	require.NotNil(t, listed[0].Activity)
	require.Equal(t, "PRODUCT_CREATED", listed[0].Activity.Action)
}

func TestNotificationCountUnread(t *testing.T) {
	db := openTestDB(t)
	org := seedOrganization(t, db, "Acme")
	user := seedUser(t, db, org.ID, "owner@acme.test", "ADMIN")

	repo := NewNotificationRepository(db)
	ctx := context.Background()

	for i := 0; i < 12; i++ {
		notification := models.Notification{UserID: user.ID}
		require.NoError(t, repo.Create(ctx, &notification))
		if i%2 == 0 {
			_, err := repo.MarkRead(ctx, notification.ID, user.ID)
			require.NoError(t, err)
		}
	}

	count, err := repo.CountUnread(ctx, user.ID)
	require.NoError(t, err)
	require.EqualValues(t, 6, count)
}

func TestNotificationCreateBatchEmptyIsNoop(t *testing.T) {
	db := openTestDB(t)
	repo := NewNotificationRepository(db)

	require.NoError(t, repo.CreateBatch(context.Background(), nil))
}
