package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/datatypes"

	"github.com/stockroomhq/stockroom-api/internal/models"
	"github.com/stockroomhq/stockroom-api/internal/observability"
	"github.com/stockroomhq/stockroom-api/internal/repository"
)

// Well-known action codes. The recorder also accepts free-form codes so new
// event types can ship without touching this list.
const (
	ActionProductCreated = "PRODUCT_CREATED"
	ActionProductUpdated = "PRODUCT_UPDATED"
	ActionProductDeleted = "PRODUCT_DELETED"
	ActionOrderCreated   = "ORDER_CREATED"
	ActionOrderUpdated   = "ORDER_UPDATED"
	ActionOrderDeleted   = "ORDER_DELETED"
	ActionUserCreated    = "USER_CREATED"
	ActionVendorCreated  = "VENDOR_CREATED"
)

// ActivityEntry captures the details required to persist an audit entry.
type ActivityEntry struct {
	UserID   uint
	Action   string
	Details  string
	Metadata map[string]interface{}
}

// ActivityRecorder defines behaviour for appending audit records.
type ActivityRecorder interface {
	Record(ctx context.Context, entry ActivityEntry) (models.ActivityRecord, error)
}

// ActivityService persists audit records.
type ActivityService interface {
	ActivityRecorder
}

type activityService struct {
	repo      repository.ActivityRepository
	logger    zerolog.Logger
	tracer    trace.Tracer
	sanitizer *bluemonday.Policy
}

// NewActivityService constructs the activity recorder.
func NewActivityService(repo repository.ActivityRepository, logger zerolog.Logger) ActivityService {
	return &activityService{
		repo:      repo,
		logger:    logger.With().Str("component", "activity_service").Logger(),
		tracer:    otel.Tracer("github.com/stockroomhq/stockroom-api/internal/service/activity"),
		sanitizer: bluemonday.StrictPolicy(),
	}
}

// Record appends one immutable audit record. A storage failure is logged
// with its operation context and returned to the caller; an audit gap must
// surface as a visible error, never be swallowed.
func (s *activityService) Record(ctx context.Context, entry ActivityEntry) (models.ActivityRecord, error) {
	action := strings.TrimSpace(entry.Action)
	if action == "" {
		return models.ActivityRecord{}, fmt.Errorf("action is required")
	}
	if entry.UserID == 0 {
		return models.ActivityRecord{}, fmt.Errorf("acting user is required")
	}

	spanCtx, span := s.tracer.Start(ctx, "activity.record", trace.WithAttributes(
		attribute.Int64("activity.user_id", int64(entry.UserID)),
		attribute.String("activity.action", action),
	))
	defer span.End()

	model := models.ActivityRecord{
		UserID:   entry.UserID,
		Action:   action,
		Details:  strings.TrimSpace(s.sanitizer.Sanitize(entry.Details)),
		Metadata: sanitizeMetadata(entry.Metadata),
	}

	if err := s.repo.Create(spanCtx, &model); err != nil {
		span.RecordError(err)
		s.logger.Error().Err(err).
			Uint("user_id", entry.UserID).
			Str("action", action).
			Msg("failed to persist activity record")
		return models.ActivityRecord{}, err
	}

	observability.ActivityRecords().WithLabelValues(action).Inc()

	return model, nil
}

// sanitizeMetadata masks values under keys that commonly carry credentials
// or addresses before they reach the audit trail.
func sanitizeMetadata(metadata map[string]interface{}) datatypes.JSONMap {
	if metadata == nil {
		return datatypes.JSONMap{}
	}

	sanitized := datatypes.JSONMap{}
	for key, value := range metadata {
		lower := strings.ToLower(key)
		if strings.Contains(lower, "password") || strings.Contains(lower, "token") || strings.Contains(lower, "secret") {
			sanitized[key] = "***"
			continue
		}
		sanitized[key] = value
	}
	return sanitized
}
