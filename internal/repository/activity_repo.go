package repository

import (
	"context"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/stockroomhq/stockroom-api/internal/models"
)

// ActivityWithActor is an activity record enriched with the acting user's
// identity, produced by joining through the user's current organization.
type ActivityWithActor struct {
	ID         uint              `json:"id"`
	UserID     uint              `json:"user_id"`
	Action     string            `json:"action"`
	Details    string            `json:"details"`
	Metadata   datatypes.JSONMap `json:"metadata"`
	Read       bool              `json:"read"`
	CreatedAt  time.Time         `json:"created_at"`
	ActorName  string            `json:"actor_name"`
	ActorEmail string            `json:"actor_email"`
}

// ActivityRepository persists the audit trail.
type ActivityRepository interface {
	Create(ctx context.Context, record *models.ActivityRecord) error
	ListByOrganization(ctx context.Context, orgID uint, page, pageSize int) ([]ActivityWithActor, int64, error)
}

type activityRepository struct {
	db *gorm.DB
}

// NewActivityRepository constructs the activity repository.
func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) Create(ctx context.Context, record *models.ActivityRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

// ListByOrganization scopes the feed by the acting user's CURRENT
// organization. Reassigning a user moves their historical records into the
// new organization's feed; the record itself never stores the tenant.
func (r *activityRepository) ListByOrganization(ctx context.Context, orgID uint, page, pageSize int) ([]ActivityWithActor, int64, error) {
	base := r.db.WithContext(ctx).
		Table("activity_records").
		Joins("JOIN users ON users.id = activity_records.user_id").
		Where("users.organization_id = ?", orgID)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := base.Session(&gorm.Session{}).
		Select("activity_records.*, users.name AS actor_name, users.email AS actor_email").
		Order("activity_records.created_at DESC")

	if pageSize > 0 {
		if page <= 0 {
			page = 1
		}
		query = query.Offset((page - 1) * pageSize).Limit(pageSize)
	}

	var rows []ActivityWithActor
	if err := query.Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	return rows, total, nil
}
