package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/stockroomhq/stockroom-api/internal/models"
)

// UserRepository handles persistence for users and organizations.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id uint) (models.User, error)
	FindByEmail(ctx context.Context, email string) (models.User, error)
	ListByOrganization(ctx context.Context, orgID uint) ([]models.User, error)
	ListByOrganizationRoles(ctx context.Context, orgID uint, roles []string) ([]models.User, error)
	CreateOrganization(ctx context.Context, org *models.Organization) error
	FindOrganization(ctx context.Context, id uint) (models.Organization, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository constructs a repository backed by GORM.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, id uint) (models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (r *userRepository) ListByOrganization(ctx context.Context, orgID uint) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).
		Where("organization_id = ?", orgID).
		Order("created_at ASC").
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) ListByOrganizationRoles(ctx context.Context, orgID uint, roles []string) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).
		Where("organization_id = ? AND role IN ?", orgID, roles).
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) CreateOrganization(ctx context.Context, org *models.Organization) error {
	return r.db.WithContext(ctx).Create(org).Error
}

func (r *userRepository) FindOrganization(ctx context.Context, id uint) (models.Organization, error) {
	var org models.Organization
	if err := r.db.WithContext(ctx).First(&org, id).Error; err != nil {
		return models.Organization{}, err
	}
	return org, nil
}
