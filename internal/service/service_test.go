package service

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/stockroomhq/stockroom-api/internal/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:svc_%s?mode=memory&cache=shared", name)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Organization{},
		&models.User{},
		&models.ActivityRecord{},
		&models.Notification{},
		&models.Product{},
		&models.Warehouse{},
		&models.Vendor{},
		&models.Customer{},
		&models.Order{},
		&models.OrderItem{},
	))

	return db
}

func seedOrganization(t *testing.T, db *gorm.DB, name string) models.Organization {
	t.Helper()

	org := models.Organization{Name: name, Slug: strings.ToLower(name)}
	require.NoError(t, db.Create(&org).Error)
	return org
}

func seedUser(t *testing.T, db *gorm.DB, orgID uint, email, role string) models.User {
	t.Helper()

	user := models.User{
		OrganizationID: orgID,
		Name:           strings.Split(email, "@")[0],
		Email:          email,
		PasswordHash:   "x",
		Role:           role,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}
