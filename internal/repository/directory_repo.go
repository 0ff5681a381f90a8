package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/stockroomhq/stockroom-api/internal/models"
)

// WarehouseRepository handles persistence for warehouses.
type WarehouseRepository interface {
	Create(ctx context.Context, warehouse *models.Warehouse) error
	ListByOrganization(ctx context.Context, orgID uint) ([]models.Warehouse, error)
	Delete(ctx context.Context, id, orgID uint) error
}

// VendorRepository handles persistence for vendors.
type VendorRepository interface {
	Create(ctx context.Context, vendor *models.Vendor) error
	ListByOrganization(ctx context.Context, orgID uint) ([]models.Vendor, error)
	Delete(ctx context.Context, id, orgID uint) error
}

// CustomerRepository handles persistence for customers.
type CustomerRepository interface {
	Create(ctx context.Context, customer *models.Customer) error
	FindByID(ctx context.Context, id, orgID uint) (models.Customer, error)
	ListByOrganization(ctx context.Context, orgID uint) ([]models.Customer, error)
	Delete(ctx context.Context, id, orgID uint) error
}

type warehouseRepository struct{ db *gorm.DB }
type vendorRepository struct{ db *gorm.DB }
type customerRepository struct{ db *gorm.DB }

// NewWarehouseRepository constructs the warehouse repository.
func NewWarehouseRepository(db *gorm.DB) WarehouseRepository { return &warehouseRepository{db: db} }

// NewVendorRepository constructs the vendor repository.
func NewVendorRepository(db *gorm.DB) VendorRepository { return &vendorRepository{db: db} }

// NewCustomerRepository constructs the customer repository.
func NewCustomerRepository(db *gorm.DB) CustomerRepository { return &customerRepository{db: db} }

func (r *warehouseRepository) Create(ctx context.Context, warehouse *models.Warehouse) error {
	return r.db.WithContext(ctx).Create(warehouse).Error
}

func (r *warehouseRepository) ListByOrganization(ctx context.Context, orgID uint) ([]models.Warehouse, error) {
	var warehouses []models.Warehouse
	if err := r.db.WithContext(ctx).
		Where("organization_id = ?", orgID).
		Order("name ASC").
		Find(&warehouses).Error; err != nil {
		return nil, err
	}
	return warehouses, nil
}

func (r *warehouseRepository) Delete(ctx context.Context, id, orgID uint) error {
	return deleteScoped(r.db.WithContext(ctx), &models.Warehouse{}, id, orgID)
}

func (r *vendorRepository) Create(ctx context.Context, vendor *models.Vendor) error {
	return r.db.WithContext(ctx).Create(vendor).Error
}

func (r *vendorRepository) ListByOrganization(ctx context.Context, orgID uint) ([]models.Vendor, error) {
	var vendors []models.Vendor
	if err := r.db.WithContext(ctx).
		Where("organization_id = ?", orgID).
		Order("name ASC").
		Find(&vendors).Error; err != nil {
		return nil, err
	}
	return vendors, nil
}

func (r *vendorRepository) Delete(ctx context.Context, id, orgID uint) error {
	return deleteScoped(r.db.WithContext(ctx), &models.Vendor{}, id, orgID)
}

func (r *customerRepository) Create(ctx context.Context, customer *models.Customer) error {
	return r.db.WithContext(ctx).Create(customer).Error
}

func (r *customerRepository) FindByID(ctx context.Context, id, orgID uint) (models.Customer, error) {
	var customer models.Customer
	if err := r.db.WithContext(ctx).
		Where("id = ? AND organization_id = ?", id, orgID).
		First(&customer).Error; err != nil {
		return models.Customer{}, err
	}
	return customer, nil
}

func (r *customerRepository) ListByOrganization(ctx context.Context, orgID uint) ([]models.Customer, error) {
	var customers []models.Customer
	if err := r.db.WithContext(ctx).
		Where("organization_id = ?", orgID).
		Order("name ASC").
		Find(&customers).Error; err != nil {
		return nil, err
	}
	return customers, nil
}

func (r *customerRepository) Delete(ctx context.Context, id, orgID uint) error {
	return deleteScoped(r.db.WithContext(ctx), &models.Customer{}, id, orgID)
}

func deleteScoped(db *gorm.DB, model interface{}, id, orgID uint) error {
	result := db.Where("id = ? AND organization_id = ?", id, orgID).Delete(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
