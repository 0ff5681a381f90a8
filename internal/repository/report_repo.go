package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/stockroomhq/stockroom-api/internal/models"
)

// StockSummary aggregates the catalog for one organization.
type StockSummary struct {
	ProductCount  int64 `json:"product_count"`
	TotalQuantity int64 `json:"total_quantity"`
	LowStockCount int64 `json:"low_stock_count"`
}

// OrderStatusCount aggregates orders grouped by status.
type OrderStatusCount struct {
	Status       string `json:"status"`
	Count        int64  `json:"count"`
	RevenueCents int64  `json:"revenue_cents"`
}

// ReportRepository exposes read-only aggregates for reporting.
type ReportRepository interface {
	StockSummary(ctx context.Context, orgID uint, lowStockThreshold int) (StockSummary, error)
	OrderStatusCounts(ctx context.Context, orgID uint) ([]OrderStatusCount, error)
}

type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository constructs a GORM-backed report repository.
func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) StockSummary(ctx context.Context, orgID uint, lowStockThreshold int) (StockSummary, error) {
	var summary StockSummary

	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("organization_id = ?", orgID).
		Select("COUNT(*) AS product_count, COALESCE(SUM(quantity), 0) AS total_quantity").
		Scan(&summary).Error
	if err != nil {
		return StockSummary{}, err
	}

	err = r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("organization_id = ? AND quantity < ?", orgID, lowStockThreshold).
		Count(&summary.LowStockCount).Error
	if err != nil {
		return StockSummary{}, err
	}

	return summary, nil
}

func (r *reportRepository) OrderStatusCounts(ctx context.Context, orgID uint) ([]OrderStatusCount, error) {
	var counts []OrderStatusCount

	err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("organization_id = ?", orgID).
		Select("status, COUNT(*) AS count, COALESCE(SUM(total_cents), 0) AS revenue_cents").
		Group("status").
		Order("status ASC").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}

	return counts, nil
}
