package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/stockroomhq/stockroom-api/internal/dto"
	"github.com/stockroomhq/stockroom-api/internal/service"
	"github.com/stockroomhq/stockroom-api/internal/utils"
)

// AuthHandler serves authentication endpoints.
type AuthHandler struct {
	service service.AuthService
	logger  zerolog.Logger
}

// NewAuthHandler constructs the handler instance.
func NewAuthHandler(svc service.AuthService, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		service: svc,
		logger:  logger.With().Str("component", "auth_handler").Logger(),
	}
}

// Register binds the authentication routes.
func (h *AuthHandler) Register(router fiber.Router) {
	router.Post("/login", h.login)
}

func (h *AuthHandler) login(c *fiber.Ctx) error {
	var payload dto.LoginRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.service.Login(c.UserContext(), payload)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid email or password")
		}
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		h.logger.Error().Err(err).Msg("login failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to sign in")
	}

	return utils.SendSuccess(c, "signed in", result)
}
