package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/stockroomhq/stockroom-api/internal/dto"
	"github.com/stockroomhq/stockroom-api/internal/models"
)

type stubNotificationService struct {
	items       []dto.NotificationResponse
	unread      int64
	unreadErr   error
	markedIDs   []uint
	markedUser  uint
	markManyErr error
	updated     int64
}

func (s *stubNotificationService) List(_ context.Context, _ uint, _ int) ([]dto.NotificationResponse, error) {
	return s.items, nil
}

func (s *stubNotificationService) MarkRead(_ context.Context, id, _ uint) (dto.NotificationResponse, error) {
	return dto.NotificationResponse{ID: id, Read: true}, nil
}

func (s *stubNotificationService) MarkManyRead(_ context.Context, ids []uint, userID uint) (int64, error) {
	s.markedIDs = ids
	s.markedUser = userID
	return s.updated, s.markManyErr
}

func (s *stubNotificationService) UnreadCount(_ context.Context, _ uint) (int64, error) {
	return s.unread, s.unreadErr
}

func (s *stubNotificationService) Dispatch(_ context.Context, _ models.ActivityRecord, _ uint) error {
	return nil
}

func (s *stubNotificationService) FanOut(_ context.Context, _ models.ActivityRecord, _ uint) error {
	return nil
}

func (s *stubNotificationService) Start(_ context.Context) {}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

func decodeEnvelope(t *testing.T, body io.Reader) envelope {
	t.Helper()

	var env envelope
	require.NoError(t, json.NewDecoder(body).Decode(&env))
	return env
}

func newNotificationApp(svc *stubNotificationService, authenticated bool) *fiber.App {
	app := fiber.New()
	if authenticated {
		app.Use(func(c *fiber.Ctx) error {
			c.Locals("user_id", uint(7))
			c.Locals("org_id", uint(3))
			return c.Next()
		})
	}

	handler := NewNotificationHandler(svc, zerolog.Nop(), 20, 30)
	handler.Register(app.Group("/api/notifications"))
	return app
}

func TestNotificationListRequiresAuthentication(t *testing.T) {
	app := newNotificationApp(&stubNotificationService{}, false)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/notifications/", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestNotificationListIncludesBadgeAndPollInterval(t *testing.T) {
	svc := &stubNotificationService{
		items:  []dto.NotificationResponse{{ID: 1}, {ID: 2}},
		unread: 14,
	}
	app := newNotificationApp(svc, true)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/notifications/", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	env := decodeEnvelope(t, resp.Body)
	require.True(t, env.Success)

	var payload dto.NotificationListResponse
	require.NoError(t, json.Unmarshal(env.Data, &payload))
	require.Len(t, payload.Items, 2)
	require.EqualValues(t, 14, payload.UnreadCount)
	require.Equal(t, "9+", payload.Badge)
	require.Equal(t, 30, payload.PollIntervalSeconds)
}

func TestNotificationListBadgeBelowCap(t *testing.T) {
	svc := &stubNotificationService{unread: 4}
	app := newNotificationApp(svc, true)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/notifications/", nil))
	require.NoError(t, err)

	env := decodeEnvelope(t, resp.Body)
	var payload dto.NotificationListResponse
	require.NoError(t, json.Unmarshal(env.Data, &payload))
	require.Equal(t, "4", payload.Badge)
}

func TestMarkManyReadMalformedBodyIsSoftFailure(t *testing.T) {
	app := newNotificationApp(&stubNotificationService{}, true)

	req := httptest.NewRequest("PATCH", "/api/notifications/", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	env := decodeEnvelope(t, resp.Body)
	require.False(t, env.Success)
}

func TestMarkManyReadEmptyListIsSoftFailure(t *testing.T) {
	app := newNotificationApp(&stubNotificationService{}, true)

	req := httptest.NewRequest("PATCH", "/api/notifications/", strings.NewReader(`{"notificationIds": []}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	env := decodeEnvelope(t, resp.Body)
	require.False(t, env.Success)
}

func TestMarkManyReadZeroIDIsSoftFailure(t *testing.T) {
	app := newNotificationApp(&stubNotificationService{}, true)

	req := httptest.NewRequest("PATCH", "/api/notifications/", strings.NewReader(`{"notificationIds": [1, 0, 3]}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	env := decodeEnvelope(t, resp.Body)
	require.False(t, env.Success)
}

func TestMarkManyReadSuccessReportsUpdatedCount(t *testing.T) {
	svc := &stubNotificationService{updated: 2}
	app := newNotificationApp(svc, true)

	req := httptest.NewRequest("PATCH", "/api/notifications/", strings.NewReader(`{"notificationIds": [5, 6, 7]}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	env := decodeEnvelope(t, resp.Body)
	require.True(t, env.Success)

	var payload dto.MarkManyReadResponse
	require.NoError(t, json.Unmarshal(env.Data, &payload))
	require.EqualValues(t, 2, payload.Updated)

	require.Equal(t, []uint{5, 6, 7}, svc.markedIDs)
	require.Equal(t, uint(7), svc.markedUser)
}

func TestMarkManyReadRequiresAuthentication(t *testing.T) {
	app := newNotificationApp(&stubNotificationService{}, false)

	req := httptest.NewRequest("PATCH", "/api/notifications/", strings.NewReader(`{"notificationIds": [1]}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestMarkManyReadStorageFailureIsHardError(t *testing.T) {
	svc := &stubNotificationService{markManyErr: errors.New("store down")}
	app := newNotificationApp(svc, true)

	req := httptest.NewRequest("PATCH", "/api/notifications/", strings.NewReader(`{"notificationIds": [1]}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}
