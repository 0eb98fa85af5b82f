package opportunity

import (
	"time"

	"CampusEventPortal/internal/authz"

	"github.com/google/uuid"
)

// Opportunity carries the poster's role as a snapshot taken at posting time.
type Opportunity struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Title        string     `gorm:"size:255;not null" json:"title"`
	Description  string     `json:"description,omitempty"`
	Link         string     `gorm:"size:1024" json:"link,omitempty"`
	Department   string     `gorm:"size:200" json:"department,omitempty"`
	PostedByID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"posted_by_id"`
	PostedByRole authz.Role `gorm:"size:20;not null" json:"posted_by_role"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (o *Opportunity) View() authz.OpportunityView {
	return authz.OpportunityView{
		PostedByID:   o.PostedByID,
		PostedByRole: o.PostedByRole,
		Department:   o.Department,
	}
}

// OpportunityRequest is the write payload for create and update.
type OpportunityRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Link        string `json:"link"`
	Department  string `json:"department"`
}
