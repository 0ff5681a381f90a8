package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/stockroomhq/stockroom-api/internal/models"
)

// ErrInsufficientStock indicates an order line requested more units than a
// product currently has on hand.
var ErrInsufficientStock = errors.New("insufficient stock")

// OrderRepository handles persistence for orders and their stock effects.
type OrderRepository interface {
	CreateWithStock(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id, orgID uint) (models.Order, error)
	ListByOrganization(ctx context.Context, orgID uint, page, pageSize int) ([]models.Order, int64, error)
	UpdateStatus(ctx context.Context, id, orgID uint, status string) (models.Order, error)
	Delete(ctx context.Context, id, orgID uint) error
}

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository constructs the order repository.
func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

// CreateWithStock persists the order and decrements product quantities in one
// transaction. The guarded UPDATE keeps stock from going negative under
// concurrent orders for the same product.
func (r *orderRepository) CreateWithStock(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, item := range order.Items {
			result := tx.Model(&models.Product{}).
				Where("id = ? AND organization_id = ? AND quantity >= ?", item.ProductID, order.OrganizationID, item.Quantity).
				Update("quantity", gorm.Expr("quantity - ?", item.Quantity))
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return ErrInsufficientStock
			}
		}

		return tx.Create(order).Error
	})
}

func (r *orderRepository) FindByID(ctx context.Context, id, orgID uint) (models.Order, error) {
	var order models.Order
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("id = ? AND organization_id = ?", id, orgID).
		First(&order).Error; err != nil {
		return models.Order{}, err
	}
	return order, nil
}

func (r *orderRepository) ListByOrganization(ctx context.Context, orgID uint, page, pageSize int) ([]models.Order, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Order{}).Where("organization_id = ?", orgID)

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if pageSize > 0 {
		if page <= 0 {
			page = 1
		}
		query = query.Offset((page - 1) * pageSize).Limit(pageSize)
	}

	var orders []models.Order
	if err := query.Preload("Items").Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id, orgID uint, status string) (models.Order, error) {
	var order models.Order
	if err := r.db.WithContext(ctx).
		Where("id = ? AND organization_id = ?", id, orgID).
		First(&order).Error; err != nil {
		return models.Order{}, err
	}

	order.Status = status
	if err := r.db.WithContext(ctx).Save(&order).Error; err != nil {
		return models.Order{}, err
	}

	return order, nil
}

func (r *orderRepository) Delete(ctx context.Context, id, orgID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ? AND organization_id = ?", id, orgID).Delete(&models.Order{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Where("order_id = ?", id).Delete(&models.OrderItem{}).Error
	})
}
