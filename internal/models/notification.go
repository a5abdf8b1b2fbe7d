package models

import (
	"slices"
	"time"
)

const (
	NotificationFollow  = "follow"
	NotificationLike    = "like"
	NotificationComment = "comment"

	NotificationAnnouncement = "announcement"
	NotificationSystem       = "system"
	NotificationUpdate       = "update"
	NotificationWarning      = "warning"
	NotificationInfo         = "info"
)

// BroadcastTypes is the allow-list for admin broadcasts.
var BroadcastTypes = []string{
	NotificationAnnouncement,
	NotificationSystem,
	NotificationUpdate,
	NotificationWarning,
	NotificationInfo,
}

// NormalizeBroadcastType maps unknown broadcast types to announcement.
func NormalizeBroadcastType(t string) string {
	if slices.Contains(BroadcastTypes, t) {
		return t
	}
	return NotificationAnnouncement
}

// Notification is immutable except for IsRead.
type Notification struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	RecipientID uint      `json:"recipient_id" gorm:"index:idx_notification_recipient_created,priority:1"`
	SenderID    uint      `json:"sender_id" gorm:"index"`
	Type        string    `json:"type" gorm:"size:20;index"`
	PostID      *string   `json:"post_id,omitempty" gorm:"size:36"`
	Message     string    `json:"message" gorm:"size:500"`
	IsRead      bool      `json:"is_read" gorm:"not null;default:false;index"`
	CreatedAt   time.Time `json:"created_at" gorm:"index:idx_notification_recipient_created,priority:2"`
}

// BroadcastRequest defines the request body for an admin broadcast
type BroadcastRequest struct {
	Message string `json:"message" validate:"required"`
	Type    string `json:"notification_type"`
}
