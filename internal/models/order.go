package models

import "time"

// Order lifecycle states.
const (
	OrderStatusPending   = "PENDING"
	OrderStatusPaid      = "PAID"
	OrderStatusShipped   = "SHIPPED"
	OrderStatusCancelled = "CANCELLED"
)

// Order records a customer purchase within an organization.
type Order struct {
	ID             uint        `gorm:"primaryKey" json:"id"`
	OrganizationID uint        `gorm:"index;not null" json:"organization_id"`
	CustomerID     uint        `gorm:"index;not null" json:"customer_id"`
	CreatedByID    uint        `gorm:"index;not null" json:"created_by_id"`
	Status         string      `gorm:"size:32;not null;default:PENDING" json:"status"`
	TotalCents     int64       `gorm:"not null;default:0" json:"total_cents"`
	Items          []OrderItem `json:"items"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

// OrderItem is a single product line on an order. The unit price is captured
// at order time so later catalog edits do not rewrite history.
type OrderItem struct {
	ID             uint  `gorm:"primaryKey" json:"id"`
	OrderID        uint  `gorm:"index;not null" json:"order_id"`
	ProductID      uint  `gorm:"index;not null" json:"product_id"`
	Quantity       int   `gorm:"not null" json:"quantity"`
	UnitPriceCents int64 `gorm:"not null" json:"unit_price_cents"`
}
