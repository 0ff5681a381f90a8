package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/stockroomhq/stockroom-api/internal/models"
	"github.com/stockroomhq/stockroom-api/internal/repository"
)

type failingActivityRepo struct{}

func (f *failingActivityRepo) Create(context.Context, *models.ActivityRecord) error {
	return errors.New("store down")
}

func (f *failingActivityRepo) ListByOrganization(context.Context, uint, int, int) ([]repository.ActivityWithActor, int64, error) {
	return nil, 0, errors.New("store down")
}

func TestRecordPersistsSanitizedEntry(t *testing.T) {
	db := openTestDB(t)
	org := seedOrganization(t, db, "Acme")
	user := seedUser(t, db, org.ID, "actor@acme.test", "STAFF")

	svc := NewActivityService(repository.NewActivityRepository(db), zerolog.Nop())

	record, err := svc.Record(context.Background(), ActivityEntry{
		UserID:  user.ID,
		Action:  ActionProductCreated,
		Details: `created <script>alert("x")</script>Widget`,
	})
	require.NoError(t, err)
	require.NotZero(t, record.ID)
	require.Equal(t, ActionProductCreated, record.Action)
	require.NotContains(t, record.Details, "<script>")
	require.Contains(t, record.Details, "Widget")
	require.False(t, record.Read)
}

func TestRecordMasksSensitiveMetadata(t *testing.T) {
	db := openTestDB(t)
	org := seedOrganization(t, db, "Acme")
	user := seedUser(t, db, org.ID, "actor@acme.test", "ADMIN")

	svc := NewActivityService(repository.NewActivityRepository(db), zerolog.Nop())

	record, err := svc.Record(context.Background(), ActivityEntry{
		UserID:  user.ID,
		Action:  ActionUserCreated,
		Details: "created account",
		Metadata: map[string]interface{}{
			"email":         "new@acme.test",
			"temp_password": "hunter2",
			"api_token":     "abc123",
		},
	})
	require.NoError(t, err)
	require.Equal(t, "new@acme.test", record.Metadata["email"])
	require.Equal(t, "***", record.Metadata["temp_password"])
	require.Equal(t, "***", record.Metadata["api_token"])
}

func TestRecordRequiresActionAndActor(t *testing.T) {
	svc := NewActivityService(&failingActivityRepo{}, zerolog.Nop())
	ctx := context.Background()

	_, err := svc.Record(ctx, ActivityEntry{UserID: 1, Action: "   "})
	require.Error(t, err)

	_, err = svc.Record(ctx, ActivityEntry{UserID: 0, Action: ActionOrderCreated})
	require.Error(t, err)
}

// A failed append must surface as an error, never be silently dropped.
func TestRecordPropagatesStorageFailure(t *testing.T) {
	svc := NewActivityService(&failingActivityRepo{}, zerolog.Nop())

	_, err := svc.Record(context.Background(), ActivityEntry{UserID: 1, Action: ActionOrderDeleted})
	require.Error(t, err)
}
