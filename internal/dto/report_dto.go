package dto

import "github.com/stockroomhq/stockroom-api/internal/repository"

// InventoryReportResponse summarizes stock levels for an organization.
type InventoryReportResponse struct {
	ProductCount      int64 `json:"product_count"`
	TotalQuantity     int64 `json:"total_quantity"`
	LowStockCount     int64 `json:"low_stock_count"`
	LowStockThreshold int   `json:"low_stock_threshold"`
}

// OrderReportResponse breaks orders down by status with revenue totals.
type OrderReportResponse struct {
	Statuses          []repository.OrderStatusCount `json:"statuses"`
	TotalOrders       int64                         `json:"total_orders"`
	TotalRevenueCents int64                         `json:"total_revenue_cents"`
}
