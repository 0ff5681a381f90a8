package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/stockroomhq/stockroom-api/internal/dto"
	"github.com/stockroomhq/stockroom-api/internal/permission"
	"github.com/stockroomhq/stockroom-api/internal/service"
	"github.com/stockroomhq/stockroom-api/internal/utils"
)

// UserHandler serves the organization member directory.
type UserHandler struct {
	service service.UserService
	logger  zerolog.Logger
}

// NewUserHandler constructs the handler instance.
func NewUserHandler(svc service.UserService, logger zerolog.Logger) *UserHandler {
	return &UserHandler{
		service: svc,
		logger:  logger.With().Str("component", "user_handler").Logger(),
	}
}

// Register binds the user management routes.
func (h *UserHandler) Register(router fiber.Router) {
	router.Get("/", h.list)
	router.Post("/", h.create)
}

func (h *UserHandler) list(c *fiber.Ctx) error {
	orgID := orgIDFromContext(c)
	if orgID == 0 {
		return utils.SendError(c, fiber.StatusUnauthorized, "session lacks organization context")
	}

	users, err := h.service.List(c.UserContext(), orgID)
	if err != nil {
		h.logger.Error().Err(err).Uint("org_id", orgID).Msg("failed to list users")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to fetch users")
	}

	return utils.SendSuccess(c, "users retrieved", users)
}

func (h *UserHandler) create(c *fiber.Ctx) error {
	actorID := userIDFromContext(c)
	orgID := orgIDFromContext(c)
	if actorID == 0 || orgID == 0 {
		return utils.SendError(c, fiber.StatusUnauthorized, "session lacks identity context")
	}

	var payload dto.UserCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	created, err := h.service.Create(c.UserContext(), actorID, orgID, payload)
	if err != nil {
		if isValidationError(err) || errors.Is(err, permission.ErrUnknownRole) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		h.logger.Error().Err(err).Uint("org_id", orgID).Msg("failed to create user")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to create user")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "user created", created)
}
