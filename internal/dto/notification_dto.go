package dto

import (
	"strconv"
	"time"

	"github.com/stockroomhq/stockroom-api/internal/models"
)

// unreadBadgeCap bounds the badge display; anything above renders as "9+".
const unreadBadgeCap = 9

// NotificationResponse represents notification data returned to clients.
type NotificationResponse struct {
	ID         uint              `json:"id"`
	UserID     uint              `json:"user_id"`
	ActivityID *uint             `json:"activity_id,omitempty"`
	Activity   *ActivityResponse `json:"activity,omitempty"`
	Read       bool              `json:"read"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

// NotificationListResponse is the polling payload: the recent batch plus the
// derived unread state and the interval clients should poll at.
type NotificationListResponse struct {
	Items               []NotificationResponse `json:"items"`
	UnreadCount         int64                  `json:"unread_count"`
	Badge               string                 `json:"badge"`
	PollIntervalSeconds int                    `json:"poll_interval_seconds"`
}

// MarkManyReadRequest is the bulk read-state update payload.
type MarkManyReadRequest struct {
	NotificationIDs []uint `json:"notificationIds" validate:"required,min=1,dive,gt=0"`
}

// MarkManyReadResponse reports how many records the caller actually owned
// and flipped.
type MarkManyReadResponse struct {
	Updated int64 `json:"updated"`
}

// NewNotificationResponse converts a notification model to a DTO.
func NewNotificationResponse(model models.Notification) NotificationResponse {
	response := NotificationResponse{
		ID:         model.ID,
		UserID:     model.UserID,
		ActivityID: model.ActivityID,
		Read:       model.Read,
		CreatedAt:  model.CreatedAt,
		UpdatedAt:  model.UpdatedAt,
	}
	if model.Activity != nil {
		activity := NewActivityResponse(*model.Activity)
		response.Activity = &activity
	}
	return response
}

// NewNotificationResponseSlice converts a slice to DTOs.
func NewNotificationResponseSlice(items []models.Notification) []NotificationResponse {
	out := make([]NotificationResponse, 0, len(items))
	for _, item := range items {
		out = append(out, NewNotificationResponse(item))
	}
	return out
}

// UnreadBadge renders the badge string for an unread count, truncating
// anything above nine to "9+".
func UnreadBadge(count int64) string {
	if count > unreadBadgeCap {
		return "9+"
	}
	return strconv.FormatInt(count, 10)
}
