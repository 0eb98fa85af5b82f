package auth

import (
	"time"

	"CampusEventPortal/internal/authz"

	"github.com/google/uuid"
)

// User is an authenticated identity. Role is immutable once issued;
// department may change.
type User struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Username     string     `gorm:"size:150;not null;uniqueIndex" json:"username"`
	Email        string     `gorm:"size:320;not null;uniqueIndex" json:"email"`
	FullName     string     `gorm:"size:200" json:"full_name,omitempty"`
	PasswordHash string     `gorm:"size:1024;not null" json:"-"`
	Role         authz.Role `gorm:"size:20;not null" json:"role"`
	Department   string     `gorm:"size:200" json:"department,omitempty"`
	IsActive     bool       `gorm:"not null;default:true" json:"is_active"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// CreateUserRequest is the admin payload for creating a user.
type CreateUserRequest struct {
	Username   string `json:"username"`
	Email      string `json:"email"`
	FullName   string `json:"full_name"`
	Password   string `json:"password"`
	Role       string `json:"role"`
	Department string `json:"department"`
}

// UpdateUserRequest is the admin payload for updating a user. Empty fields
// are left unchanged; role is deliberately absent, it never changes after
// issuance.
type UpdateUserRequest struct {
	Username   string `json:"username"`
	Email      string `json:"email"`
	FullName   string `json:"full_name"`
	Password   string `json:"password"`
	Department string `json:"department"`
}

// UpdateProfileRequest is the self-service subset of UpdateUserRequest.
type UpdateProfileRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}
