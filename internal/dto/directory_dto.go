package dto

import (
	"time"

	"github.com/stockroomhq/stockroom-api/internal/models"
)

// WarehouseCreateRequest adds a stock location.
type WarehouseCreateRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=255"`
	Location string `json:"location" validate:"omitempty,max=255"`
}

// VendorCreateRequest adds a supplier.
type VendorCreateRequest struct {
	Name  string `json:"name" validate:"required,min=1,max=255"`
	Email string `json:"email" validate:"omitempty,email"`
	Phone string `json:"phone" validate:"omitempty,max=32"`
}

// CustomerCreateRequest registers a buyer.
type CustomerCreateRequest struct {
	Name  string `json:"name" validate:"required,min=1,max=255"`
	Email string `json:"email" validate:"omitempty,email"`
	Phone string `json:"phone" validate:"omitempty,max=32"`
}

// WarehouseResponse is the serialized representation of a warehouse.
type WarehouseResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Location  string    `json:"location,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// VendorResponse is the serialized representation of a vendor.
type VendorResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// CustomerResponse is the serialized representation of a customer.
type CustomerResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// NewWarehouseResponse converts a warehouse model to a DTO.
func NewWarehouseResponse(model models.Warehouse) WarehouseResponse {
	return WarehouseResponse{ID: model.ID, Name: model.Name, Location: model.Location, CreatedAt: model.CreatedAt}
}

// NewVendorResponse converts a vendor model to a DTO.
func NewVendorResponse(model models.Vendor) VendorResponse {
	return VendorResponse{ID: model.ID, Name: model.Name, Email: model.Email, Phone: model.Phone, CreatedAt: model.CreatedAt}
}

// NewCustomerResponse converts a customer model to a DTO.
func NewCustomerResponse(model models.Customer) CustomerResponse {
	return CustomerResponse{ID: model.ID, Name: model.Name, Email: model.Email, Phone: model.Phone, CreatedAt: model.CreatedAt}
}

// NewWarehouseResponseSlice converts warehouses to DTOs.
func NewWarehouseResponseSlice(items []models.Warehouse) []WarehouseResponse {
	out := make([]WarehouseResponse, 0, len(items))
	for _, item := range items {
		out = append(out, NewWarehouseResponse(item))
	}
	return out
}

// NewVendorResponseSlice converts vendors to DTOs.
func NewVendorResponseSlice(items []models.Vendor) []VendorResponse {
	out := make([]VendorResponse, 0, len(items))
	for _, item := range items {
		out = append(out, NewVendorResponse(item))
	}
	return out
}

// NewCustomerResponseSlice converts customers to DTOs.
func NewCustomerResponseSlice(items []models.Customer) []CustomerResponse {
	out := make([]CustomerResponse, 0, len(items))
	for _, item := range items {
		out = append(out, NewCustomerResponse(item))
	}
	return out
}
