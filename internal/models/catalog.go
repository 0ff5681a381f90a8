package models

import "time"

// Product is a sellable item tracked per organization. Prices are stored in
// cents to avoid floating point drift.
type Product struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	OrganizationID uint      `gorm:"index;not null" json:"organization_id"`
	SKU            string    `gorm:"size:64;uniqueIndex;not null" json:"sku"`
	Name           string    `gorm:"size:255;not null" json:"name"`
	Description    string    `gorm:"type:text" json:"description"`
	ImageURL       string    `gorm:"size:512" json:"image_url"`
	PriceCents     int64     `gorm:"not null;default:0" json:"price_cents"`
	Quantity       int       `gorm:"not null;default:0" json:"quantity"`
	WarehouseID    *uint     `gorm:"index" json:"warehouse_id"`
	VendorID       *uint     `gorm:"index" json:"vendor_id"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Warehouse is a stock location within an organization.
type Warehouse struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	OrganizationID uint      `gorm:"index;not null" json:"organization_id"`
	Name           string    `gorm:"size:255;not null" json:"name"`
	Location       string    `gorm:"size:255" json:"location"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Vendor supplies products to an organization.
type Vendor struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	OrganizationID uint      `gorm:"index;not null" json:"organization_id"`
	Name           string    `gorm:"size:255;not null" json:"name"`
	Email          string    `gorm:"size:255" json:"email"`
	Phone          string    `gorm:"size:32" json:"phone"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Customer is a buyer registered with an organization.
type Customer struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	OrganizationID uint      `gorm:"index;not null" json:"organization_id"`
	Name           string    `gorm:"size:255;not null" json:"name"`
	Email          string    `gorm:"size:255" json:"email"`
	Phone          string    `gorm:"size:32" json:"phone"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
