package notification

import (
	"time"

	"CampusEventPortal/internal/authz"

	"github.com/google/uuid"
)

// Notification is owned by its recipient; the only mutable field after
// creation is IsRead.
type Notification struct {
	ID                   uuid.UUID              `gorm:"type:uuid;primaryKey" json:"id"`
	RecipientID          uuid.UUID              `gorm:"type:uuid;not null;index" json:"recipient_id"`
	Title                string                 `gorm:"size:255;not null" json:"title"`
	Body                 string                 `json:"body,omitempty"`
	Type                 authz.NotificationType `gorm:"size:20;not null" json:"type"`
	RelatedEventID       *uuid.UUID             `gorm:"type:uuid" json:"related_event_id,omitempty"`
	RelatedOpportunityID *uuid.UUID             `gorm:"type:uuid" json:"related_opportunity_id,omitempty"`
	IsRead               bool                   `gorm:"not null;default:false" json:"is_read"`
	CreatedAt            time.Time              `json:"created_at"`
}

// CreateNotificationRequest is the admin payload for a manual notification.
type CreateNotificationRequest struct {
	RecipientID          string `json:"recipient_id"`
	Title                string `json:"title"`
	Body                 string `json:"body"`
	Type                 string `json:"type"`
	RelatedEventID       string `json:"related_event_id"`
	RelatedOpportunityID string `json:"related_opportunity_id"`
}
