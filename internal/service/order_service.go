package service

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/stockroomhq/stockroom-api/internal/dto"
	"github.com/stockroomhq/stockroom-api/internal/models"
	"github.com/stockroomhq/stockroom-api/internal/repository"
)

// OrderService manages the order lifecycle.
type OrderService interface {
	Create(ctx context.Context, actorID, orgID uint, payload dto.OrderCreateRequest) (dto.OrderResponse, error)
	UpdateStatus(ctx context.Context, actorID, orgID, id uint, payload dto.OrderStatusUpdateRequest) (dto.OrderResponse, error)
	Delete(ctx context.Context, actorID, orgID, id uint) error
	Get(ctx context.Context, orgID, id uint) (dto.OrderResponse, error)
	List(ctx context.Context, orgID uint, page, pageSize int) (dto.OrderListResponse, error)
}

type orderService struct {
	orders    repository.OrderRepository
	products  repository.ProductRepository
	customers repository.CustomerRepository
	recorder  ActivityRecorder
	notifier  NotificationService
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewOrderService constructs the order service.
func NewOrderService(orders repository.OrderRepository, products repository.ProductRepository, customers repository.CustomerRepository, recorder ActivityRecorder, notifier NotificationService, validate *validator.Validate, logger zerolog.Logger) OrderService {
	return &orderService{
		orders:    orders,
		products:  products,
		customers: customers,
		recorder:  recorder,
		notifier:  notifier,
		validator: validate,
		logger:    logger.With().Str("component", "order_service").Logger(),
	}
}

// Create places an order for a customer of the caller's organization. Unit
// prices are captured from the catalog at order time and stock is adjusted
// in the same transaction as the order insert.
func (s *orderService) Create(ctx context.Context, actorID, orgID uint, payload dto.OrderCreateRequest) (dto.OrderResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.OrderResponse{}, err
	}

	if _, err := s.customers.FindByID(ctx, payload.CustomerID, orgID); err != nil {
		return dto.OrderResponse{}, fmt.Errorf("customer lookup failed: %w", err)
	}

	order := models.Order{
		OrganizationID: orgID,
		CustomerID:     payload.CustomerID,
		CreatedByID:    actorID,
		Status:         models.OrderStatusPending,
	}

	for _, line := range payload.Items {
		product, err := s.products.FindByID(ctx, line.ProductID, orgID)
		if err != nil {
			return dto.OrderResponse{}, fmt.Errorf("product %d lookup failed: %w", line.ProductID, err)
		}

		order.Items = append(order.Items, models.OrderItem{
			ProductID:      product.ID,
			Quantity:       line.Quantity,
			UnitPriceCents: product.PriceCents,
		})
		order.TotalCents += product.PriceCents * int64(line.Quantity)
	}

	if err := s.orders.CreateWithStock(ctx, &order); err != nil {
		return dto.OrderResponse{}, err
	}

	if err := s.audit(ctx, actorID, orgID, ActionOrderCreated, order); err != nil {
		return dto.OrderResponse{}, err
	}

	return dto.NewOrderResponse(order), nil
}

func (s *orderService) UpdateStatus(ctx context.Context, actorID, orgID, id uint, payload dto.OrderStatusUpdateRequest) (dto.OrderResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.OrderResponse{}, err
	}

	order, err := s.orders.UpdateStatus(ctx, id, orgID, payload.Status)
	if err != nil {
		return dto.OrderResponse{}, err
	}

	if err := s.audit(ctx, actorID, orgID, ActionOrderUpdated, order); err != nil {
		return dto.OrderResponse{}, err
	}

	return dto.NewOrderResponse(order), nil
}

func (s *orderService) Delete(ctx context.Context, actorID, orgID, id uint) error {
	order, err := s.orders.FindByID(ctx, id, orgID)
	if err != nil {
		return err
	}

	if err := s.orders.Delete(ctx, id, orgID); err != nil {
		return err
	}

	return s.audit(ctx, actorID, orgID, ActionOrderDeleted, order)
}

func (s *orderService) Get(ctx context.Context, orgID, id uint) (dto.OrderResponse, error) {
	order, err := s.orders.FindByID(ctx, id, orgID)
	if err != nil {
		return dto.OrderResponse{}, err
	}
	return dto.NewOrderResponse(order), nil
}

func (s *orderService) List(ctx context.Context, orgID uint, page, pageSize int) (dto.OrderListResponse, error) {
	if page <= 0 {
		page = 1
	}
	pageSize = clampPageSize(pageSize)

	orders, total, err := s.orders.ListByOrganization(ctx, orgID, page, pageSize)
	if err != nil {
		return dto.OrderListResponse{}, err
	}

	pagination := dto.PaginationMeta{Page: page, PageSize: pageSize, TotalItems: total}
	if pageSize > 0 {
		pagination.TotalPages = int((total + int64(pageSize) - 1) / int64(pageSize))
	} else {
		pagination.TotalPages = 1
	}

	return dto.OrderListResponse{
		Items:      dto.NewOrderResponseSlice(orders),
		Pagination: pagination,
	}, nil
}

func (s *orderService) audit(ctx context.Context, actorID, orgID uint, action string, order models.Order) error {
	activity, err := s.recorder.Record(ctx, ActivityEntry{
		UserID:  actorID,
		Action:  action,
		Details: fmt.Sprintf("order #%d (%s)", order.ID, order.Status),
		Metadata: map[string]interface{}{
			"order_id":    order.ID,
			"status":      order.Status,
			"total_cents": order.TotalCents,
		},
	})
	if err != nil {
		return err
	}

	if s.notifier != nil {
		if err := s.notifier.Dispatch(ctx, activity, orgID); err != nil {
			s.logger.Warn().Err(err).Uint("activity_id", activity.ID).Msg("notification fan-out failed")
		}
	}

	return nil
}
