package middleware

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/stockroomhq/stockroom-api/internal/utils"
)

// JWTProtected returns a middleware that validates JWT bearer tokens and
// binds the session identity (user id, email, organization, role) to the
// request. A missing or invalid token is a rejection, never a default
// identity.
func JWTProtected(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authorization := c.Get("Authorization")
		if authorization == "" {
			return utils.SendError(c, fiber.StatusUnauthorized, "authorization header missing")
		}

		const bearer = "Bearer "
		if !strings.HasPrefix(strings.ToLower(authorization), strings.ToLower(bearer)) {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid authorization header")
		}

		tokenString := strings.TrimSpace(authorization[len(bearer):])
		if tokenString == "" {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid token")
		}

		token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid token")
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid token claims")
		}

		userID := uintClaim(claims, "sub", "user_id")
		orgID := uintClaim(claims, "org_id")
		if userID == nil || orgID == nil {
			return utils.SendError(c, fiber.StatusUnauthorized, "session lacks identity context")
		}

		c.Locals("user_id", *userID)
		c.Locals("org_id", *orgID)
		if role, hasRole := claims["role"].(string); hasRole {
			c.Locals("user_role", strings.TrimSpace(role))
		}
		if email, hasEmail := claims["email"].(string); hasEmail {
			c.Locals("user_email", strings.TrimSpace(email))
		}

		return c.Next()
	}
}

func uintClaim(claims jwt.MapClaims, keys ...string) *uint {
	for _, key := range keys {
		value, ok := claims[key]
		if !ok {
			continue
		}
		if normalized, err := normalizeUintClaim(value); err == nil {
			return &normalized
		}
	}
	return nil
}

func normalizeUintClaim(value interface{}) (uint, error) {
	switch v := value.(type) {
	case float64:
		if v < 0 {
			return 0, fmt.Errorf("invalid claim value")
		}
		return uint(v), nil
	case string:
		parsed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return 0, err
		}
		return uint(parsed), nil
	case int:
		if v < 0 {
			return 0, fmt.Errorf("invalid claim value")
		}
		return uint(v), nil
	default:
		return 0, fmt.Errorf("unsupported claim type")
	}
}
