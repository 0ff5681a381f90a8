package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/stockroomhq/stockroom-api/internal/service"
	"github.com/stockroomhq/stockroom-api/internal/utils"
)

// ReportHandler serves dashboard aggregates.
type ReportHandler struct {
	service service.ReportService
	logger  zerolog.Logger
}

// NewReportHandler constructs the handler instance.
func NewReportHandler(svc service.ReportService, logger zerolog.Logger) *ReportHandler {
	return &ReportHandler{
		service: svc,
		logger:  logger.With().Str("component", "report_handler").Logger(),
	}
}

// Register binds the reporting routes.
func (h *ReportHandler) Register(router fiber.Router) {
	router.Get("/inventory", h.inventory)
	router.Get("/orders", h.orders)
}

func (h *ReportHandler) inventory(c *fiber.Ctx) error {
	orgID := orgIDFromContext(c)
	if orgID == 0 {
		return utils.SendError(c, fiber.StatusUnauthorized, "session lacks organization context")
	}

	report, err := h.service.InventoryReport(c.UserContext(), orgID)
	if err != nil {
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to build inventory report")
	}

	return utils.SendSuccess(c, "inventory report", report)
}

func (h *ReportHandler) orders(c *fiber.Ctx) error {
	orgID := orgIDFromContext(c)
	if orgID == 0 {
		return utils.SendError(c, fiber.StatusUnauthorized, "session lacks organization context")
	}

	report, err := h.service.OrderReport(c.UserContext(), orgID)
	if err != nil {
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to build order report")
	}

	return utils.SendSuccess(c, "order report", report)
}
