package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/stockroomhq/stockroom-api/internal/dto"
)

type stubFeedService struct {
	response dto.ActivityFeedResponse
	err      error
	orgID    uint
	page     int
	pageSize int
}

func (s *stubFeedService) ListForOrganization(_ context.Context, orgID uint, page, pageSize int) (dto.ActivityFeedResponse, error) {
	s.orgID = orgID
	s.page = page
	s.pageSize = pageSize
	return s.response, s.err
}

func newActivityApp(svc *stubFeedService, authenticated bool) *fiber.App {
	app := fiber.New()
	if authenticated {
		app.Use(func(c *fiber.Ctx) error {
			c.Locals("user_id", uint(7))
			c.Locals("org_id", uint(3))
			return c.Next()
		})
	}

	handler := NewActivityHandler(svc, zerolog.Nop())
	handler.Register(app.Group("/api/activities"))
	return app
}

func TestActivityFeedRequiresAuthentication(t *testing.T) {
	app := newActivityApp(&stubFeedService{}, false)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/activities/", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestActivityFeedForwardsPaginationAndOrg(t *testing.T) {
	svc := &stubFeedService{
		response: dto.ActivityFeedResponse{
			Items: []dto.ActivityFeedItem{
				{ActivityResponse: dto.ActivityResponse{ID: 1, Action: "ORDER_CREATED"}, ActorName: "alice"},
			},
			Pagination: dto.PaginationMeta{Page: 2, PageSize: 10, TotalItems: 11, TotalPages: 2},
		},
	}
	app := newActivityApp(svc, true)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/activities/?page=2&pageSize=10", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, uint(3), svc.orgID)
	require.Equal(t, 2, svc.page)
	require.Equal(t, 10, svc.pageSize)

	env := decodeEnvelope(t, resp.Body)
	require.True(t, env.Success)

	var payload dto.ActivityFeedResponse
	require.NoError(t, json.Unmarshal(env.Data, &payload))
	require.Len(t, payload.Items, 1)
	require.Equal(t, "alice", payload.Items[0].ActorName)
}

func TestActivityFeedCacheHitHeader(t *testing.T) {
	svc := &stubFeedService{response: dto.ActivityFeedResponse{CacheHit: true}}
	app := newActivityApp(svc, true)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/activities/", nil))
	require.NoError(t, err)
	require.Equal(t, "true", resp.Header.Get("X-Cache-Hit"))
}

func TestActivityFeedRejectsBadPagination(t *testing.T) {
	app := newActivityApp(&stubFeedService{}, true)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/activities/?page=abc", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestActivityFeedStorageFailure(t *testing.T) {
	app := newActivityApp(&stubFeedService{err: errors.New("store down")}, true)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/activities/", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}
