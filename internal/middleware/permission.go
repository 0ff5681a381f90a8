package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/stockroomhq/stockroom-api/internal/observability"
	"github.com/stockroomhq/stockroom-api/internal/permission"
	"github.com/stockroomhq/stockroom-api/internal/utils"
)

// RequirePermission gates a route on the static role/action table. A role
// outside the closed set is a configuration defect: it is logged and
// surfaced as a server error, never mapped to an ordinary deny, so a
// misconfigured deployment cannot hide behind 403s.
func RequirePermission(action permission.Action, logger zerolog.Logger) fiber.Handler {
	guardLogger := logger.With().Str("component", "permission_guard").Logger()

	return func(c *fiber.Ctx) error {
		roleValue, hasRole := c.Locals("user_role").(string)
		if !hasRole || roleValue == "" {
			return utils.SendError(c, fiber.StatusUnauthorized, "session lacks role context")
		}

		role, err := permission.ParseRole(roleValue)
		if err == nil {
			var granted bool
			granted, err = permission.HasPermission(role, action)
			if err == nil {
				if !granted {
					observability.PermissionChecks().WithLabelValues("deny").Inc()
					return utils.SendError(c, fiber.StatusForbidden, "insufficient permissions")
				}
				observability.PermissionChecks().WithLabelValues("allow").Inc()
				return c.Next()
			}
		}

		if errors.Is(err, permission.ErrUnknownRole) {
			observability.PermissionChecks().WithLabelValues("config_error").Inc()
			guardLogger.Error().Err(err).
				Str("role", roleValue).
				Str("action", string(action)).
				Msg("permission check hit unknown role")
			return utils.SendError(c, fiber.StatusInternalServerError, "permission configuration error")
		}

		return utils.SendError(c, fiber.StatusInternalServerError, "permission check failed")
	}
}
