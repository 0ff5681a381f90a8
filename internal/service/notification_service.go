package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/stockroomhq/stockroom-api/internal/dto"
	"github.com/stockroomhq/stockroom-api/internal/models"
	"github.com/stockroomhq/stockroom-api/internal/observability"
	"github.com/stockroomhq/stockroom-api/internal/permission"
	"github.com/stockroomhq/stockroom-api/internal/repository"
)

const (
	fanoutSubject = "stockroom.activity.recorded"
	fanoutQueue   = "stockroom-fanout"
)

// ErrEmptyIDList marks a bulk mark-read call with nothing to update.
var ErrEmptyIDList = errors.New("notification id list must not be empty")

// NotificationService tracks per-user read state and fans activity out to
// organization members. Delivery to clients is polling only; the Redis and
// NATS channels here move fan-out work between nodes, they never push to
// browsers.
type NotificationService interface {
	List(ctx context.Context, userID uint, limit int) ([]dto.NotificationResponse, error)
	MarkRead(ctx context.Context, id, userID uint) (dto.NotificationResponse, error)
	MarkManyRead(ctx context.Context, ids []uint, userID uint) (int64, error)
	UnreadCount(ctx context.Context, userID uint) (int64, error)
	Dispatch(ctx context.Context, activity models.ActivityRecord, orgID uint) error
	FanOut(ctx context.Context, activity models.ActivityRecord, orgID uint) error
	Start(ctx context.Context)
}

type notificationService struct {
	repo     repository.NotificationRepository
	users    repository.UserRepository
	cache    *redis.Client
	nats     *nats.Conn
	cacheTTL time.Duration
	logger   zerolog.Logger
	tracer   trace.Tracer
	nodeID   string
}

type fanoutEvent struct {
	Source         string    `json:"source"`
	ActivityID     uint      `json:"activity_id"`
	ActorID        uint      `json:"actor_id"`
	OrganizationID uint      `json:"organization_id"`
	Action         string    `json:"action"`
	SentAt         time.Time `json:"sent_at"`
}

// NewNotificationService constructs the notification service.
func NewNotificationService(repo repository.NotificationRepository, users repository.UserRepository, cache *redis.Client, natsConn *nats.Conn, cacheTTL time.Duration, logger zerolog.Logger) NotificationService {
	if cacheTTL <= 0 {
		cacheTTL = 30 * time.Second
	}

	return &notificationService{
		repo:     repo,
		users:    users,
		cache:    cache,
		nats:     natsConn,
		cacheTTL: cacheTTL,
		logger:   logger.With().Str("component", "notification_service").Logger(),
		tracer:   otel.Tracer("github.com/stockroomhq/stockroom-api/internal/service/notification"),
		nodeID:   uuid.NewString(),
	}
}

// Start subscribes to the fan-out work queue when NATS is configured. Queue
// semantics mean exactly one node in the group performs each fan-out.
func (s *notificationService) Start(ctx context.Context) {
	if s.nats == nil {
		return
	}

	sub, err := s.nats.QueueSubscribe(fanoutSubject, fanoutQueue, func(msg *nats.Msg) {
		var event fanoutEvent
		if err := json.Unmarshal(msg.Data, &event); err != nil {
			s.logger.Warn().Err(err).Msg("invalid fan-out event payload")
			return
		}

		activity := models.ActivityRecord{ID: event.ActivityID, UserID: event.ActorID, Action: event.Action}
		if err := s.FanOut(context.Background(), activity, event.OrganizationID); err != nil {
			s.logger.Error().Err(err).Uint("activity_id", event.ActivityID).Msg("fan-out from queue failed")
		}
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to subscribe to fan-out subject")
		return
	}

	go func() {
		<-ctx.Done()
		if err := sub.Drain(); err != nil {
			s.logger.Warn().Err(err).Msg("failed to drain fan-out subscription")
		}
	}()
}

// List returns the caller's most recent notifications, newest first. A
// storage failure on this read path degrades to an empty batch with a logged
// warning; polling clients tolerate staleness better than a hard error.
func (s *notificationService) List(ctx context.Context, userID uint, limit int) ([]dto.NotificationResponse, error) {
	if userID == 0 {
		return nil, errors.New("user id is required")
	}

	notifications, err := s.repo.ListByUser(ctx, userID, limit)
	if err != nil {
		s.logger.Warn().Err(err).Uint("user_id", userID).Msg("notification fetch degraded to empty batch")
		return []dto.NotificationResponse{}, nil
	}

	return dto.NewNotificationResponseSlice(notifications), nil
}

// MarkRead flips a single record owned by the caller. Marking an
// already-read record is a no-op success.
func (s *notificationService) MarkRead(ctx context.Context, id, userID uint) (dto.NotificationResponse, error) {
	spanCtx, span := s.tracer.Start(ctx, "notifications.mark_read", trace.WithAttributes(
		attribute.Int64("notification.user_id", int64(userID)),
	))
	defer span.End()

	notification, err := s.repo.MarkRead(spanCtx, id, userID)
	if err != nil {
		span.RecordError(err)
		return dto.NotificationResponse{}, err
	}

	s.invalidateUnread(spanCtx, userID)

	return dto.NewNotificationResponse(notification), nil
}

// MarkManyRead updates the caller's records in one storage call. Ids the
// caller does not own are excluded silently rather than rejected.
func (s *notificationService) MarkManyRead(ctx context.Context, ids []uint, userID uint) (int64, error) {
	if len(ids) == 0 {
		return 0, ErrEmptyIDList
	}

	spanCtx, span := s.tracer.Start(ctx, "notifications.mark_many_read", trace.WithAttributes(
		attribute.Int64("notification.user_id", int64(userID)),
		attribute.Int("notification.id_count", len(ids)),
	))
	defer span.End()

	updated, err := s.repo.MarkManyRead(spanCtx, ids, userID)
	if err != nil {
		span.RecordError(err)
		return 0, err
	}

	s.invalidateUnread(spanCtx, userID)

	return updated, nil
}

// UnreadCount derives count(read == false) for the caller, served from a
// short-TTL cache so a 30s polling fleet does not hammer the store.
func (s *notificationService) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	key := unreadCacheKey(userID)

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, key).Result(); err == nil {
			if count, parseErr := strconv.ParseInt(cached, 10, 64); parseErr == nil {
				observability.UnreadCacheRequests().WithLabelValues("hit").Inc()
				return count, nil
			}
		}
	}

	count, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		observability.UnreadCacheRequests().WithLabelValues("error").Inc()
		return 0, err
	}

	observability.UnreadCacheRequests().WithLabelValues("miss").Inc()

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, strconv.FormatInt(count, 10), s.cacheTTL).Err(); err != nil {
			s.logger.Warn().Err(err).Msg("failed to write unread-count cache")
		}
	}

	return count, nil
}

// Dispatch hands an activity to the fan-out pipeline: over NATS when
// configured, inline otherwise.
func (s *notificationService) Dispatch(ctx context.Context, activity models.ActivityRecord, orgID uint) error {
	if s.nats == nil {
		return s.FanOut(ctx, activity, orgID)
	}

	event := fanoutEvent{
		Source:         s.nodeID,
		ActivityID:     activity.ID,
		ActorID:        activity.UserID,
		OrganizationID: orgID,
		Action:         activity.Action,
		SentAt:         time.Now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	if err := s.nats.Publish(fanoutSubject, payload); err != nil {
		s.logger.Warn().Err(err).Msg("fan-out publish failed, falling back to inline")
		return s.FanOut(ctx, activity, orgID)
	}

	return nil
}

// FanOut creates one notification per ADMIN and STAFF member of the actor's
// organization, excluding the actor. CUSTOMER and PARTNER members are not
// notified.
func (s *notificationService) FanOut(ctx context.Context, activity models.ActivityRecord, orgID uint) error {
	spanCtx, span := s.tracer.Start(ctx, "notifications.fan_out", trace.WithAttributes(
		attribute.Int64("activity.id", int64(activity.ID)),
		attribute.Int64("organization.id", int64(orgID)),
	))
	defer span.End()

	recipients, err := s.users.ListByOrganizationRoles(spanCtx, orgID, []string{
		string(permission.RoleAdmin), string(permission.RoleStaff),
	})
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to resolve fan-out recipients: %w", err)
	}

	notifications := make([]models.Notification, 0, len(recipients))
	for _, recipient := range recipients {
		if recipient.ID == activity.UserID {
			continue
		}
		activityID := activity.ID
		notifications = append(notifications, models.Notification{
			UserID:     recipient.ID,
			ActivityID: &activityID,
		})
	}

	if len(notifications) == 0 {
		return nil
	}

	if err := s.repo.CreateBatch(spanCtx, notifications); err != nil {
		span.RecordError(err)
		s.logger.Error().Err(err).Uint("activity_id", activity.ID).Msg("failed to create fan-out notifications")
		return err
	}

	for _, notification := range notifications {
		s.invalidateUnread(spanCtx, notification.UserID)
		observability.NotificationsFanout().Inc()
	}

	return nil
}

func (s *notificationService) invalidateUnread(ctx context.Context, userID uint) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, unreadCacheKey(userID)).Err(); err != nil {
		s.logger.Warn().Err(err).Uint("user_id", userID).Msg("failed to invalidate unread-count cache")
	}
}

func unreadCacheKey(userID uint) string {
	return fmt.Sprintf("notifications:unread:v1:%d", userID)
}
