package service

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/stockroomhq/stockroom-api/internal/dto"
	"github.com/stockroomhq/stockroom-api/internal/models"
	"github.com/stockroomhq/stockroom-api/internal/repository"
)

func newUserFixture(t *testing.T) (UserService, *gorm.DB, models.Organization, models.User) {
	t.Helper()

	db := openTestDB(t)
	org := seedOrganization(t, db, "Acme")
	admin := seedUser(t, db, org.ID, "admin@acme.test", "ADMIN")

	userRepo := repository.NewUserRepository(db)
	recorder := NewActivityService(repository.NewActivityRepository(db), zerolog.Nop())

	svc := NewUserService(userRepo, recorder, validator.New(validator.WithRequiredStructEnabled()), zerolog.Nop())
	return svc, db, org, admin
}

func TestUserCreateHashesPasswordAndAudits(t *testing.T) {
	svc, db, org, admin := newUserFixture(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, admin.ID, org.ID, dto.UserCreateRequest{
		Name:     "Dana",
		Email:    "Dana@Acme.Test",
		Password: "correct-horse",
		Role:     "STAFF",
	})
	require.NoError(t, err)
	require.Equal(t, "dana@acme.test", created.Email)
	require.Equal(t, "STAFF", created.Role)

	stored, err := repository.NewUserRepository(db).FindByEmail(ctx, "dana@acme.test")
	require.NoError(t, err)
	require.NotEqual(t, "correct-horse", stored.PasswordHash)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("correct-horse")))

	feed, total, err := repository.NewActivityRepository(db).ListByOrganization(ctx, org.ID, 1, 10)
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Len(t, feed, 1)
	require.Equal(t, ActionUserCreated, feed[0].Action)
	require.Equal(t, admin.ID, feed[0].UserID)
}

func TestUserCreateRejectsRoleOutsideClosedSet(t *testing.T) {
	svc, _, org, admin := newUserFixture(t)

	_, err := svc.Create(context.Background(), admin.ID, org.ID, dto.UserCreateRequest{
		Name:     "Eve",
		Email:    "eve@acme.test",
		Password: "longenough",
		Role:     "SUPERUSER",
	})
	require.Error(t, err)
}

func TestUserListScopedToOrganization(t *testing.T) {
	svc, db, org, _ := newUserFixture(t)
	ctx := context.Background()

	other := seedOrganization(t, db, "Globex")
	seedUser(t, db, other.ID, "outsider@globex.test", "ADMIN")

	users, err := svc.List(ctx, org.ID)
	require.NoError(t, err)
	require.Len(t, users, 1)
	require.Equal(t, "admin@acme.test", users[0].Email)
}
