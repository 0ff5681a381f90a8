package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/stockroomhq/stockroom-api/internal/dto"
	"github.com/stockroomhq/stockroom-api/internal/observability"
	"github.com/stockroomhq/stockroom-api/internal/repository"
)

// ActivityFeedService assembles the organization-scoped audit stream.
type ActivityFeedService interface {
	ListForOrganization(ctx context.Context, orgID uint, page, pageSize int) (dto.ActivityFeedResponse, error)
}

type activityFeedService struct {
	repo   repository.ActivityRepository
	cache  *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

// NewActivityFeedService builds the activity feed service.
func NewActivityFeedService(repo repository.ActivityRepository, cache *redis.Client, ttl time.Duration, logger zerolog.Logger) ActivityFeedService {
	if ttl <= 0 {
		ttl = 45 * time.Second
	}
	return &activityFeedService{
		repo:   repo,
		cache:  cache,
		ttl:    ttl,
		logger: logger.With().Str("component", "activity_feed_service").Logger(),
	}
}

// ListForOrganization returns the feed for one tenant, newest first. Records
// follow the acting user's current organization, so the same record can move
// between feeds if its actor is reassigned.
func (s *activityFeedService) ListForOrganization(ctx context.Context, orgID uint, page, pageSize int) (dto.ActivityFeedResponse, error) {
	start := time.Now()
	defer func() {
		observability.FeedLatency().Observe(time.Since(start).Seconds())
	}()

	if page <= 0 {
		page = 1
	}
	pageSize = clampPageSize(pageSize)

	cacheKey := s.cacheKey(orgID, page, pageSize)
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey).Result(); err == nil && cached != "" {
			var response dto.ActivityFeedResponse
			if err := json.Unmarshal([]byte(cached), &response); err == nil {
				response.CacheHit = true
				observability.FeedRequests().WithLabelValues("hit").Inc()
				return response, nil
			}
		}
	}

	rows, total, err := s.repo.ListByOrganization(ctx, orgID, page, pageSize)
	if err != nil {
		observability.FeedRequests().WithLabelValues("error").Inc()
		return dto.ActivityFeedResponse{}, err
	}

	items := make([]dto.ActivityFeedItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, dto.NewActivityFeedItem(row))
	}

	pagination := dto.PaginationMeta{
		Page:       page,
		PageSize:   pageSize,
		TotalItems: total,
	}
	if pageSize > 0 {
		pagination.TotalPages = int(math.Ceil(float64(total) / float64(pageSize)))
	} else {
		pagination.TotalPages = 1
	}

	response := dto.ActivityFeedResponse{Items: items, Pagination: pagination, CacheHit: false}

	if s.cache != nil {
		if payload, err := json.Marshal(response); err == nil {
			if err := s.cache.Set(ctx, cacheKey, payload, s.ttl).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to write activity feed cache")
			}
		}
	}

	observability.FeedRequests().WithLabelValues("miss").Inc()

	return response, nil
}

func (s *activityFeedService) cacheKey(orgID uint, page, pageSize int) string {
	return fmt.Sprintf("activities:feed:v1:%d:%d:%d", orgID, page, pageSize)
}

func clampPageSize(size int) int {
	if size <= 0 {
		return 20
	}
	if size > 100 {
		return 100
	}
	return size
}
