package event

import (
	"time"

	"CampusEventPortal/internal/authz"

	"github.com/google/uuid"
)

// Event carries the creator's role as a snapshot taken at creation time.
// Authorization always judges the snapshot, never the creator's current role.
type Event struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Title             string     `gorm:"size:255;not null" json:"title"`
	Description       string     `json:"description,omitempty"`
	Location          string     `gorm:"size:255" json:"location,omitempty"`
	Department        string     `gorm:"size:200" json:"department,omitempty"`
	StartTime         time.Time  `gorm:"not null" json:"start_time"`
	EndTime           *time.Time `json:"end_time,omitempty"`
	Capacity          *int       `json:"capacity,omitempty"`
	IsPublic          bool       `gorm:"not null;default:true" json:"is_public"`
	CreatorID         uuid.UUID  `gorm:"type:uuid;not null;index" json:"creator_id"`
	CreatorRole       authz.Role `gorm:"size:20;not null" json:"creator_role"`
	ConfirmationCount int        `gorm:"not null;default:0" json:"confirmation_count"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// View projects the event into the value the predicates consume. Confirmed is
// filled per-actor by the service.
func (e *Event) View(confirmed bool) authz.EventView {
	return authz.EventView{
		CreatorID:   e.CreatorID,
		CreatorRole: e.CreatorRole,
		Department:  e.Department,
		IsPublic:    e.IsPublic,
		Confirmed:   confirmed,
	}
}

// Confirmation joins a student to an event. The composite unique index is the
// real duplicate guard; application pre-checks only shape the error message.
type Confirmation struct {
	ID          uuid.UUID                `gorm:"type:uuid;primaryKey" json:"id"`
	EventID     uuid.UUID                `gorm:"type:uuid;not null;uniqueIndex:uq_event_student" json:"event_id"`
	StudentID   uuid.UUID                `gorm:"type:uuid;not null;uniqueIndex:uq_event_student" json:"student_id"`
	Status      authz.ConfirmationStatus `gorm:"size:20;not null" json:"status"`
	Note        string                   `json:"note,omitempty"`
	ConfirmedAt time.Time                `gorm:"not null" json:"confirmed_at"`
	UpdatedAt   time.Time                `json:"updated_at"`
}

// EventRequest is the write payload for create and update. Server-owned
// fields (id, creator, count, timestamps) are absent.
type EventRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Location    string     `json:"location"`
	Department  string     `json:"department"`
	StartTime   time.Time  `json:"start_time"`
	EndTime     *time.Time `json:"end_time"`
	Capacity    *int       `json:"capacity"`
	IsPublic    *bool      `json:"is_public"`
}

// ConfirmationRequest is the student payload for confirming an event.
type ConfirmationRequest struct {
	EventID string `json:"event_id"`
	Note    string `json:"note"`
	Status  string `json:"status"`
}
