package dto

import (
	"time"

	"github.com/stockroomhq/stockroom-api/internal/models"
)

// ProductCreateRequest is the payload to add a catalog product.
type ProductCreateRequest struct {
	SKU         string `json:"sku" validate:"omitempty,max=64"`
	Name        string `json:"name" validate:"required,min=1,max=255"`
	Description string `json:"description" validate:"omitempty,max=10000"`
	PriceCents  int64  `json:"price_cents" validate:"gte=0"`
	Quantity    int    `json:"quantity" validate:"gte=0"`
	WarehouseID *uint  `json:"warehouse_id"`
	VendorID    *uint  `json:"vendor_id"`
}

// ProductUpdateRequest mutates an existing product; nil fields are left as-is.
type ProductUpdateRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=255"`
	Description *string `json:"description" validate:"omitempty,max=10000"`
	PriceCents  *int64  `json:"price_cents" validate:"omitempty,gte=0"`
	Quantity    *int    `json:"quantity" validate:"omitempty,gte=0"`
	WarehouseID *uint   `json:"warehouse_id"`
	VendorID    *uint   `json:"vendor_id"`
}

// ProductResponse is the serialized representation of a product.
type ProductResponse struct {
	ID          uint      `json:"id"`
	SKU         string    `json:"sku"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	PriceCents  int64     `json:"price_cents"`
	Quantity    int       `json:"quantity"`
	WarehouseID *uint     `json:"warehouse_id,omitempty"`
	VendorID    *uint     `json:"vendor_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProductListResponse is a paginated product collection.
type ProductListResponse struct {
	Items      []ProductResponse `json:"items"`
	Pagination PaginationMeta    `json:"pagination"`
}

// ProductDescriptionResponse carries an AI-suggested product description.
type ProductDescriptionResponse struct {
	ProductID   uint   `json:"product_id"`
	Description string `json:"description"`
}

// NewProductResponse converts a product model to a DTO.
func NewProductResponse(model models.Product) ProductResponse {
	return ProductResponse{
		ID:          model.ID,
		SKU:         model.SKU,
		Name:        model.Name,
		Description: model.Description,
		ImageURL:    model.ImageURL,
		PriceCents:  model.PriceCents,
		Quantity:    model.Quantity,
		WarehouseID: model.WarehouseID,
		VendorID:    model.VendorID,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}

// NewProductResponseSlice converts a slice of products to DTOs.
func NewProductResponseSlice(items []models.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(items))
	for _, item := range items {
		out = append(out, NewProductResponse(item))
	}
	return out
}
