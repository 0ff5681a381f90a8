package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/stockroomhq/stockroom-api/internal/dto"
	"github.com/stockroomhq/stockroom-api/internal/service"
	"github.com/stockroomhq/stockroom-api/internal/utils"
)

// ProductHandler serves catalog endpoints.
type ProductHandler struct {
	service service.ProductService
	logger  zerolog.Logger
}

// NewProductHandler constructs the handler instance.
func NewProductHandler(svc service.ProductService, logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		service: svc,
		logger:  logger.With().Str("component", "product_handler").Logger(),
	}
}

func (h *ProductHandler) List(c *fiber.Ctx) error {
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
		h.logger.Error().Err(err).Uint("org_id", orgID).Msg("failed to list products")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to fetch products")
	}

	return utils.SendSuccess(c, "products retrieved", result)
}

func (h *ProductHandler) Get(c *fiber.Ctx) error {
	orgID := orgIDFromContext(c)
	if orgID == 0 {
		return utils.SendError(c, fiber.StatusUnauthorized, "session lacks organization context")
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid product id")
	}

	product, err := h.service.Get(c.UserContext(), orgID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "product not found")
		}
		h.logger.Error().Err(err).Uint("product_id", id).Msg("failed to load product")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to fetch product")
	}

	return utils.SendSuccess(c, "product retrieved", product)
}

func (h *ProductHandler) Create(c *fiber.Ctx) error {
	actorID := userIDFromContext(c)
	orgID := orgIDFromContext(c)
	if actorID == 0 || orgID == 0 {
		return utils.SendError(c, fiber.StatusUnauthorized, "session lacks identity context")
	}

	var payload dto.ProductCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	created, err := h.service.Create(c.UserContext(), actorID, orgID, payload)
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		h.logger.Error().Err(err).Uint("org_id", orgID).Msg("failed to create product")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to create product")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "product created", created)
}

func (h *ProductHandler) Update(c *fiber.Ctx) error {
	actorID := userIDFromContext(c)
	orgID := orgIDFromContext(c)
	if actorID == 0 || orgID == 0 {
		return utils.SendError(c, fiber.StatusUnauthorized, "session lacks identity context")
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid product id")
	}

	var payload dto.ProductUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	updated, err := h.service.Update(c.UserContext(), actorID, orgID, id, payload)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "product not found")
		}
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		h.logger.Error().Err(err).Uint("product_id", id).Msg("failed to update product")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to update product")
	}

	return utils.SendSuccess(c, "product updated", updated)
}

func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	actorID := userIDFromContext(c)
	orgID := orgIDFromContext(c)
	if actorID == 0 || orgID == 0 {
		return utils.SendError(c, fiber.StatusUnauthorized, "session lacks identity context")
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid product id")
	}

	if err := h.service.Delete(c.UserContext(), actorID, orgID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "product not found")
		}
		h.logger.Error().Err(err).Uint("product_id", id).Msg("failed to delete product")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to delete product")
	}

	return utils.SendSuccess(c, "product deleted", fiber.Map{"id": id})
}

func (h *ProductHandler) AttachImage(c *fiber.Ctx) error {
	orgID := orgIDFromContext(c)
	if orgID == 0 {
		return utils.SendError(c, fiber.StatusUnauthorized, "session lacks organization context")
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid product id")
	}

	file, err := c.FormFile("image")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "image file is required")
	}

	updated, err := h.service.AttachImage(c.UserContext(), orgID, id, file)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "product not found")
		case errors.Is(err, service.ErrImageTooLarge):
			return utils.SendError(c, fiber.StatusRequestEntityTooLarge, "image exceeds the size limit")
		case errors.Is(err, service.ErrImageTypeNotAllowed):
			return utils.SendError(c, fiber.StatusUnsupportedMediaType, "file is not a supported image type")
		default:
			h.logger.Error().Err(err).Uint("product_id", id).Msg("failed to attach product image")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to upload image")
		}
	}

	return utils.SendSuccess(c, "image attached", updated)
}

func (h *ProductHandler) SuggestDescription(c *fiber.Ctx) error {
	orgID := orgIDFromContext(c)
	if orgID == 0 {
		return utils.SendError(c, fiber.StatusUnauthorized, "session lacks organization context")
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid product id")
	}

	suggestion, err := h.service.SuggestDescription(c.UserContext(), orgID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "product not found")
		}
		h.logger.Error().Err(err).Uint("product_id", id).Msg("failed to suggest description")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to generate description")
	}

	return utils.SendSuccess(c, "description suggested", suggestion)
}
