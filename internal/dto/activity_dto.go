package dto

import (
	"time"

	"github.com/stockroomhq/stockroom-api/internal/models"
	"github.com/stockroomhq/stockroom-api/internal/repository"
)

// ActivityResponse is a single audit entry returned to clients.
type ActivityResponse struct {
	ID        uint                   `json:"id"`
	UserID    uint                   `json:"user_id"`
	Action    string                 `json:"action"`
	Details   string                 `json:"details,omitempty"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Read      bool                   `json:"read"`
	CreatedAt time.Time              `json:"created_at"`
}

// ActivityFeedItem is an audit entry enriched with the actor's identity.
type ActivityFeedItem struct {
	ActivityResponse
	ActorName  string `json:"actor_name"`
	ActorEmail string `json:"actor_email"`
}

// ActivityFeedResponse is the organization-scoped feed payload.
type ActivityFeedResponse struct {
	Items      []ActivityFeedItem `json:"items"`
	Pagination PaginationMeta     `json:"pagination"`
	CacheHit   bool               `json:"cache_hit"`
}

// NewActivityResponse converts an activity model to a DTO.
func NewActivityResponse(model models.ActivityRecord) ActivityResponse {
	return ActivityResponse{
		ID:        model.ID,
		UserID:    model.UserID,
		Action:    model.Action,
		Details:   model.Details,
		Metadata:  map[string]interface{}(model.Metadata),
		Read:      model.Read,
		CreatedAt: model.CreatedAt,
	}
}

// NewActivityFeedItem converts a joined repository row to a DTO.
func NewActivityFeedItem(row repository.ActivityWithActor) ActivityFeedItem {
	return ActivityFeedItem{
		ActivityResponse: ActivityResponse{
			ID:        row.ID,
			UserID:    row.UserID,
			Action:    row.Action,
			Details:   row.Details,
			Metadata:  map[string]interface{}(row.Metadata),
			Read:      row.Read,
			CreatedAt: row.CreatedAt,
		},
		ActorName:  row.ActorName,
		ActorEmail: row.ActorEmail,
	}
}
