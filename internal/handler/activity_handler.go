package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/stockroomhq/stockroom-api/internal/service"
	"github.com/stockroomhq/stockroom-api/internal/utils"
)

// ActivityHandler serves the organization-scoped audit feed.
type ActivityHandler struct {
	service service.ActivityFeedService
	logger  zerolog.Logger
}

// NewActivityHandler constructs the handler instance.
func NewActivityHandler(svc service.ActivityFeedService, logger zerolog.Logger) *ActivityHandler {
	return &ActivityHandler{
		service: svc,
		logger:  logger.With().Str("component", "activity_handler").Logger(),
	}
}

// Register wires the activity feed routes.
func (h *ActivityHandler) Register(router fiber.Router) {
	router.Get("/", h.list)
}

func (h *ActivityHandler) list(c *fiber.Ctx) error {
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

	result, err := h.service.ListForOrganization(c.UserContext(), orgID, page, pageSize)
	if err != nil {
		h.logger.Error().Err(err).Uint("org_id", orgID).Msg("failed to assemble activity feed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to fetch activities")
	}

	if result.CacheHit {
		c.Set("X-Cache-Hit", "true")
	} else {
		c.Set("X-Cache-Hit", "false")
	}

	return utils.SendSuccess(c, "activities retrieved", result)
}
