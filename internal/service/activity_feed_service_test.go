package service

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/stockroomhq/stockroom-api/internal/models"
	"github.com/stockroomhq/stockroom-api/internal/repository"
)

func TestActivityFeedCachesPerPage(t *testing.T) {
	mini, err := miniredis.Run()
	require.NoError(t, err)
	defer mini.Close()

	cache := redis.NewClient(&redis.Options{Addr: mini.Addr()})

	db := openTestDB(t)
	org := seedOrganization(t, db, "Acme")
	user := seedUser(t, db, org.ID, "actor@acme.test", "STAFF")

	record := models.ActivityRecord{UserID: user.ID, Action: ActionProductCreated, Details: "created Widget"}
	require.NoError(t, db.Create(&record).Error)

	svc := NewActivityFeedService(repository.NewActivityRepository(db), cache, time.Minute, zerolog.Nop())
	ctx := context.Background()

	first, err := svc.ListForOrganization(ctx, org.ID, 1, 20)
	require.NoError(t, err)
	require.False(t, first.CacheHit)
	require.Len(t, first.Items, 1)
	require.Equal(t, "actor", first.Items[0].ActorName)

	// A second request inside the TTL is served from cache even after the
	// underlying rows change.
	extra := models.ActivityRecord{UserID: user.ID, Action: ActionProductUpdated, Details: "touched Widget"}
	require.NoError(t, db.Create(&extra).Error)

	second, err := svc.ListForOrganization(ctx, org.ID, 1, 20)
	require.NoError(t, err)
	require.True(t, second.CacheHit)
	require.Len(t, second.Items, 1)

	mini.FastForward(2 * time.Minute)

	third, err := svc.ListForOrganization(ctx, org.ID, 1, 20)
	require.NoError(t, err)
	require.False(t, third.CacheHit)
	require.Len(t, third.Items, 2)
}

func TestActivityFeedWorksWithoutCache(t *testing.T) {
	db := openTestDB(t)
	org := seedOrganization(t, db, "Acme")
	user := seedUser(t, db, org.ID, "actor@acme.test", "ADMIN")

	record := models.ActivityRecord{UserID: user.ID, Action: ActionOrderCreated, Details: "created order"}
	require.NoError(t, db.Create(&record).Error)

	svc := NewActivityFeedService(repository.NewActivityRepository(db), nil, time.Minute, zerolog.Nop())

	feed, err := svc.ListForOrganization(context.Background(), org.ID, 0, 0)
	require.NoError(t, err)
	require.False(t, feed.CacheHit)
	require.Len(t, feed.Items, 1)
	require.Equal(t, 1, feed.Pagination.Page)
	require.Equal(t, 20, feed.Pagination.PageSize)
	require.EqualValues(t, 1, feed.Pagination.TotalItems)
	require.Equal(t, 1, feed.Pagination.TotalPages)
}

func TestActivityFeedClampsPageSize(t *testing.T) {
	db := openTestDB(t)
	org := seedOrganization(t, db, "Acme")

	svc := NewActivityFeedService(repository.NewActivityRepository(db), nil, time.Minute, zerolog.Nop())

	feed, err := svc.ListForOrganization(context.Background(), org.ID, 1, 500)
	require.NoError(t, err)
	require.Equal(t, 100, feed.Pagination.PageSize)
}
