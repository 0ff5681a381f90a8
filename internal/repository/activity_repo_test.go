package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/stockroomhq/stockroom-api/internal/models"
)

func TestActivityFeedScopedByOrganization(t *testing.T) {
	db := openTestDB(t)
	orgA := seedOrganization(t, db, "Acme")
	orgB := seedOrganization(t, db, "Globex")
	alice := seedUser(t, db, orgA.ID, "alice@acme.test", "ADMIN")
	carol := seedUser(t, db, orgB.ID, "carol@globex.test", "ADMIN")

	repo := NewActivityRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.ActivityRecord{UserID: alice.ID, Action: "PRODUCT_CREATED", Details: "created Widget"}))
	require.NoError(t, repo.Create(ctx, &models.ActivityRecord{UserID: carol.ID, Action: "ORDER_CREATED", Details: "created order"}))

	feedA, totalA, err := repo.ListByOrganization(ctx, orgA.ID, 1, 20)
	require.NoError(t, err)
	require.EqualValues(t, 1, totalA)
	require.Len(t, feedA, 1)
	require.Equal(t, "PRODUCT_CREATED", feedA[0].Action)
	require.Equal(t, "alice", feedA[0].ActorName)
	require.Equal(t, "alice@acme.test", feedA[0].ActorEmail)

	feedB, totalB, err := repo.ListByOrganization(ctx, orgB.ID, 1, 20)
	require.NoError(t, err)
	require.EqualValues(t, 1, totalB)
	require.Equal(t, "ORDER_CREATED", feedB[0].Action)
}

func TestActivityFeedNewestFirstPagination(t *testing.T) {
	db := openTestDB(t)
	org := seedOrganization(t, db, "Acme")
	user := seedUser(t, db, org.ID, "alice@acme.test", "ADMIN")

	repo := NewActivityRepository(db)
	ctx := context.Background()

	base := time.Now().UTC().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		record := models.ActivityRecord{
			UserID:    user.ID,
			Action:    "PRODUCT_UPDATED",
			Details:   "touched product",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, repo.Create(ctx, &record))
	}

	firstPage, total, err := repo.ListByOrganization(ctx, org.ID, 1, 2)
	require.NoError(t, err)
	require.EqualValues(t, 5, total)
	require.Len(t, firstPage, 2)
	require.True(t, firstPage[0].CreatedAt.After(firstPage[1].CreatedAt))

	secondPage, _, err := repo.ListByOrganization(ctx, org.ID, 2, 2)
	require.NoError(t, err)
	require.Len(t, secondPage, 2)
	require.True(t, firstPage[1].CreatedAt.After(secondPage[0].CreatedAt))
}

// Records do not store the tenant; moving a user between organizations moves
// their history into the new organization's feed.
func TestActivityFeedFollowsUserReassignment(t *testing.T) {
	db := openTestDB(t)
	orgA := seedOrganization(t, db, "Acme")
	orgB := seedOrganization(t, db, "Globex")
	user := seedUser(t, db, orgA.ID, "mover@acme.test", "STAFF")

	repo := NewActivityRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.ActivityRecord{UserID: user.ID, Action: "ORDER_CREATED", Details: "created order"}))

	_, totalBefore, err := repo.ListByOrganization(ctx, orgA.ID, 1, 20)
	require.NoError(t, err)
	require.EqualValues(t, 1, totalBefore)

	require.NoError(t, db.Model(&models.User{}).Where("id = ?", user.ID).Update("organization_id", orgB.ID).Error)

	_, totalAfterA, err := repo.ListByOrganization(ctx, orgA.ID, 1, 20)
	require.NoError(t, err)
	require.Zero(t, totalAfterA)

	_, totalAfterB, err := repo.ListByOrganization(ctx, orgB.ID, 1, 20)
	require.NoError(t, err)
	require.EqualValues(t, 1, totalAfterB)
}
