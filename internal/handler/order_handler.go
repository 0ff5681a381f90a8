package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/stockroomhq/stockroom-api/internal/dto"
	"github.com/stockroomhq/stockroom-api/internal/repository"
	"github.com/stockroomhq/stockroom-api/internal/service"
	"github.com/stockroomhq/stockroom-api/internal/utils"
)

// OrderHandler serves order lifecycle endpoints.
type OrderHandler struct {
	service service.OrderService
	logger  zerolog.Logger
}

// NewOrderHandler constructs the handler instance.
func NewOrderHandler(svc service.OrderService, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		service: svc,
		logger:  logger.With().Str("component", "order_handler").Logger(),
	}
}

func (h *OrderHandler) List(c *fiber.Ctx) error {
	orgID := orgIDFromContext(c)
	if orgID == 0 {
		return utils.SendError(c, fiber.StatusUnauthorized, "session lacks organization context")
	}

	page, err := parseQueryInt(c, "page")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page")
	}
	pageSize, err := parseQueryInt(c, "pageSize")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page size")
	}

	result, err := h.service.List(c.UserContext(), orgID, page, pageSize)
	if err != nil {
		h.logger.Error().Err(err).Uint("org_id", orgID).Msg("failed to list orders")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to fetch orders")
	}

	return utils.SendSuccess(c, "orders retrieved", result)
}

func (h *OrderHandler) Get(c *fiber.Ctx) error {
	orgID := orgIDFromContext(c)
	if orgID == 0 {
		return utils.SendError(c, fiber.StatusUnauthorized, "session lacks organization context")
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid order id")
	}

	order, err := h.service.Get(c.UserContext(), orgID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "order not found")
		}
		h.logger.Error().Err(err).Uint("order_id", id).Msg("failed to load order")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to fetch order")
	}

	return utils.SendSuccess(c, "order retrieved", order)
}

func (h *OrderHandler) Create(c *fiber.Ctx) error {
	actorID := userIDFromContext(c)
	orgID := orgIDFromContext(c)
	if actorID == 0 || orgID == 0 {
		return utils.SendError(c, fiber.StatusUnauthorized, "session lacks identity context")
	}

	var payload dto.OrderCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	created, err := h.service.Create(c.UserContext(), actorID, orgID, payload)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrInsufficientStock):
			return utils.SendError(c, fiber.StatusConflict, "insufficient stock for one or more items")
		case errors.Is(err, gorm.ErrRecordNotFound):
			return utils.SendError(c, fiber.StatusBadRequest, "order references an unknown customer or product")
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		default:
			h.logger.Error().Err(err).Uint("org_id", orgID).Msg("failed to create order")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to create order")
		}
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "order created", created)
}

func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	actorID := userIDFromContext(c)
	orgID := orgIDFromContext(c)
	if actorID == 0 || orgID == 0 {
		return utils.SendError(c, fiber.StatusUnauthorized, "session lacks identity context")
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid order id")
	}

	var payload dto.OrderStatusUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	updated, err := h.service.UpdateStatus(c.UserContext(), actorID, orgID, id, payload)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "order not found")
		}
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		h.logger.Error().Err(err).Uint("order_id", id).Msg("failed to update order status")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to update order")
	}

	return utils.SendSuccess(c, "order updated", updated)
}

func (h *OrderHandler) Delete(c *fiber.Ctx) error {
	actorID := userIDFromContext(c)
	orgID := orgIDFromContext(c)
	if actorID == 0 || orgID == 0 {
		return utils.SendError(c, fiber.StatusUnauthorized, "session lacks identity context")
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid order id")
	}

	if err := h.service.Delete(c.UserContext(), actorID, orgID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "order not found")
		}
		h.logger.Error().Err(err).Uint("order_id", id).Msg("failed to delete order")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to delete order")
	}

	return utils.SendSuccess(c, "order deleted", fiber.Map{"id": id})
}
