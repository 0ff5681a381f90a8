package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/stockroomhq/stockroom-api/internal/dto"
	"github.com/stockroomhq/stockroom-api/internal/middleware"
	"github.com/stockroomhq/stockroom-api/internal/service"
	"github.com/stockroomhq/stockroom-api/internal/utils"
)

// NotificationHandler serves the polling notification surface.
type NotificationHandler struct {
	service      service.NotificationService
	logger       zerolog.Logger
	limit        int
	pollInterval int
}

// NewNotificationHandler constructs a handler instance. pollIntervalSeconds
// is echoed to clients so the refresh cadence stays server-controlled.
func NewNotificationHandler(svc service.NotificationService, logger zerolog.Logger, limit, pollIntervalSeconds int) *NotificationHandler {
	if limit <= 0 {
		limit = 20
	}
	if pollIntervalSeconds <= 0 {
		pollIntervalSeconds = 30
	}
	return &NotificationHandler{
		service:      svc,
		logger:       logger.With().Str("component", "notification_handler").Logger(),
		limit:        limit,
		pollInterval: pollIntervalSeconds,
	}
}

// Register binds the notification routes.
func (h *NotificationHandler) Register(router fiber.Router) {
	router.Get("/", h.list)
	router.Patch("/", h.markManyRead)
	router.Patch("/:id/read", h.markRead)
}

func (h *NotificationHandler) list(c *fiber.Ctx) error {
	userID := userIDFromContext(c)
	if userID == 0 {
		return utils.SendError(c, fiber.StatusUnauthorized, "user not authenticated")
	}

	ctx := h.requestContext(c)

	notifications, err := h.service.List(ctx, userID, h.limit)
	if err != nil {
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to fetch notifications")
	}

	unread, err := h.service.UnreadCount(ctx, userID)
	if err != nil {
		h.logger.Warn().Err(err).Uint("user_id", userID).Msg("unread count degraded to batch scan")
		unread = 0
		for _, notification := range notifications {
			if !notification.Read {
				unread++
			}
		}
	}

	payload := dto.NotificationListResponse{
		Items:               notifications,
		UnreadCount:         unread,
		Badge:               dto.UnreadBadge(unread),
		PollIntervalSeconds: h.pollInterval,
	}

	return utils.SendSuccess(c, "notifications", payload)
}

// markManyRead handles the bulk read-state update. Malformed payloads come
// back as an error-shaped body on HTTP 200 so clients can tell a validation
// problem from an authorization one by the body alone.
func (h *NotificationHandler) markManyRead(c *fiber.Ctx) error {
	userID := userIDFromContext(c)
	if userID == 0 {
		return utils.SendError(c, fiber.StatusUnauthorized, "user not authenticated")
	}

	var payload dto.MarkManyReadRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendValidationFailure(c, "notificationIds must be an array of ids")
	}
	if len(payload.NotificationIDs) == 0 {
		return utils.SendValidationFailure(c, "notificationIds must not be empty")
	}
	for _, id := range payload.NotificationIDs {
		if id == 0 {
			return utils.SendValidationFailure(c, "notificationIds must contain positive ids")
		}
	}

	updated, err := h.service.MarkManyRead(h.requestContext(c), payload.NotificationIDs, userID)
	if err != nil {
		h.logger.Error().Err(err).Uint("user_id", userID).Msg("bulk mark-read failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to update notifications")
	}

	return utils.SendSuccess(c, "notifications updated", dto.MarkManyReadResponse{Updated: updated})
}

func (h *NotificationHandler) markRead(c *fiber.Ctx) error {
	userID := userIDFromContext(c)
	if userID == 0 {
		return utils.SendError(c, fiber.StatusUnauthorized, "user not authenticated")
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid notification id")
	}

	notification, err := h.service.MarkRead(h.requestContext(c), id, userID)
	if err != nil {
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to update notification")
	}

	return utils.SendSuccess(c, "notification updated", notification)
}

func (h *NotificationHandler) requestContext(c *fiber.Ctx) context.Context {
	ctx := c.UserContext()
	if ctx == nil {
		ctx = context.Background()
	}
	return middleware.ContextWithCorrelation(ctx, middleware.GetCorrelationID(c))
}
