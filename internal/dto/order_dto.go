package dto

import (
	"time"

	"github.com/stockroomhq/stockroom-api/internal/models"
)

// OrderItemRequest is a single line on an order creation payload.
type OrderItemRequest struct {
	ProductID uint `json:"product_id" validate:"required,gt=0"`
	Quantity  int  `json:"quantity" validate:"required,gt=0"`
}

// OrderCreateRequest is the payload to place an order.
type OrderCreateRequest struct {
	CustomerID uint               `json:"customer_id" validate:"required,gt=0"`
	Items      []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

// OrderStatusUpdateRequest transitions an order between lifecycle states.
type OrderStatusUpdateRequest struct {
	Status string `json:"status" validate:"required,oneof=PENDING PAID SHIPPED CANCELLED"`
}

// OrderItemResponse is a serialized order line.
type OrderItemResponse struct {
	ProductID      uint  `json:"product_id"`
	Quantity       int   `json:"quantity"`
	UnitPriceCents int64 `json:"unit_price_cents"`
}

// OrderResponse is the serialized representation of an order.
type OrderResponse struct {
	ID          uint                `json:"id"`
	CustomerID  uint                `json:"customer_id"`
	CreatedByID uint                `json:"created_by_id"`
	Status      string              `json:"status"`
	TotalCents  int64               `json:"total_cents"`
	Items       []OrderItemResponse `json:"items"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// OrderListResponse is a paginated order collection.
type OrderListResponse struct {
	Items      []OrderResponse `json:"items"`
	Pagination PaginationMeta  `json:"pagination"`
}

// NewOrderResponse converts an order model to a DTO.
func NewOrderResponse(model models.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(model.Items))
	for _, item := range model.Items {
		items = append(items, OrderItemResponse{
			ProductID:      item.ProductID,
			Quantity:       item.Quantity,
			UnitPriceCents: item.UnitPriceCents,
		})
	}

	return OrderResponse{
		ID:          model.ID,
		CustomerID:  model.CustomerID,
		CreatedByID: model.CreatedByID,
		Status:      model.Status,
		TotalCents:  model.TotalCents,
		Items:       items,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}

// NewOrderResponseSlice converts a slice of orders to DTOs.
func NewOrderResponseSlice(items []models.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(items))
	for _, item := range items {
		out = append(out, NewOrderResponse(item))
	}
	return out
}
