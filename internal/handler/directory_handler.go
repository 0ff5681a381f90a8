package handler

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/stockroomhq/stockroom-api/internal/dto"
	"github.com/stockroomhq/stockroom-api/internal/service"
	"github.com/stockroomhq/stockroom-api/internal/utils"
)

// DirectoryHandler serves warehouse, vendor and customer endpoints.
type DirectoryHandler struct {
	service service.DirectoryService
	logger  zerolog.Logger
}

// NewDirectoryHandler constructs the handler instance.
func NewDirectoryHandler(svc service.DirectoryService, logger zerolog.Logger) *DirectoryHandler {
	return &DirectoryHandler{
		service: svc,
		logger:  logger.With().Str("component", "directory_handler").Logger(),
	}
}

func (h *DirectoryHandler) ListWarehouses(c *fiber.Ctx) error {
	orgID := orgIDFromContext(c)
	if orgID == 0 {
		return utils.SendError(c, fiber.StatusUnauthorized, "session lacks organization context")
	}

	warehouses, err := h.service.ListWarehouses(c.UserContext(), orgID)
	if err != nil {
		h.logger.Error().Err(err).Uint("org_id", orgID).Msg("failed to list warehouses")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to fetch warehouses")
	}

	return utils.SendSuccess(c, "warehouses retrieved", warehouses)
}

func (h *DirectoryHandler) CreateWarehouse(c *fiber.Ctx) error {
	orgID := orgIDFromContext(c)
	if orgID == 0 {
		return utils.SendError(c, fiber.StatusUnauthorized, "session lacks organization context")
	}

	var payload dto.WarehouseCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	created, err := h.service.CreateWarehouse(c.UserContext(), orgID, payload)
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		h.logger.Error().Err(err).Uint("org_id", orgID).Msg("failed to create warehouse")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to create warehouse")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "warehouse created", created)
}

func (h *DirectoryHandler) DeleteWarehouse(c *fiber.Ctx) error {
	return h.deleteScoped(c, "warehouse", h.service.DeleteWarehouse)
}

func (h *DirectoryHandler) ListVendors(c *fiber.Ctx) error {
	orgID := orgIDFromContext(c)
	if orgID == 0 {
		return utils.SendError(c, fiber.StatusUnauthorized, "session lacks organization context")
	}

	vendors, err := h.service.ListVendors(c.UserContext(), orgID)
	if err != nil {
		h.logger.Error().Err(err).Uint("org_id", orgID).Msg("failed to list vendors")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to fetch vendors")
	}

	return utils.SendSuccess(c, "vendors retrieved", vendors)
}

func (h *DirectoryHandler) CreateVendor(c *fiber.Ctx) error {
	actorID := userIDFromContext(c)
	orgID := orgIDFromContext(c)
	if actorID == 0 || orgID == 0 {
		return utils.SendError(c, fiber.StatusUnauthorized, "session lacks identity context")
	}

	var payload dto.VendorCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	created, err := h.service.CreateVendor(c.UserContext(), actorID, orgID, payload)
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		h.logger.Error().Err(err).Uint("org_id", orgID).Msg("failed to create vendor")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to create vendor")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "vendor created", created)
}

func (h *DirectoryHandler) DeleteVendor(c *fiber.Ctx) error {
	return h.deleteScoped(c, "vendor", h.service.DeleteVendor)
}

func (h *DirectoryHandler) ListCustomers(c *fiber.Ctx) error {
	orgID := orgIDFromContext(c)
	if orgID == 0 {
		return utils.SendError(c, fiber.StatusUnauthorized, "session lacks organization context")
	}

	customers, err := h.service.ListCustomers(c.UserContext(), orgID)
	if err != nil {
		h.logger.Error().Err(err).Uint("org_id", orgID).Msg("failed to list customers")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to fetch customers")
	}

	return utils.SendSuccess(c, "customers retrieved", customers)
}

func (h *DirectoryHandler) CreateCustomer(c *fiber.Ctx) error {
	orgID := orgIDFromContext(c)
	if orgID == 0 {
		return utils.SendError(c, fiber.StatusUnauthorized, "session lacks organization context")
	}

	var payload dto.CustomerCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	created, err := h.service.CreateCustomer(c.UserContext(), orgID, payload)
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		h.logger.Error().Err(err).Uint("org_id", orgID).Msg("failed to create customer")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to create customer")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "customer created", created)
}

func (h *DirectoryHandler) DeleteCustomer(c *fiber.Ctx) error {
	return h.deleteScoped(c, "customer", h.service.DeleteCustomer)
}

func (h *DirectoryHandler) deleteScoped(c *fiber.Ctx, entity string, remove func(ctx context.Context, orgID, id uint) error) error {
	orgID := orgIDFromContext(c)
	if orgID == 0 {
		return utils.SendError(c, fiber.StatusUnauthorized, "session lacks organization context")
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid "+entity+" id")
	}

	if err := remove(c.UserContext(), orgID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, entity+" not found")
		}
		h.logger.Error().Err(err).Uint("org_id", orgID).Uint("id", id).Str("entity", entity).Msg("failed to delete record")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to delete "+entity)
	}

	return utils.SendSuccess(c, entity+" deleted", fiber.Map{"id": id})
}
