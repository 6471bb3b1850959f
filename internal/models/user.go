package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered principal
type User struct {
	ID        uuid.UUID `json:"id" db:"id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	Email    string `json:"email" db:"email"`
	FullName string `json:"fullName" db:"full_name"`

	PasswordHash string `json:"-" db:"password_hash"`

	// Role is the legacy single-role field, used by the authorization
	// gate when no company context is resolved
	Role string `json:"role" db:"role"`

	AvatarURL string `json:"avatarUrl,omitempty" db:"avatar_url"`
	IsActive  bool   `json:"isActive" db:"is_active"`

	LastLoginAt *time.Time `json:"lastLoginAt,omitempty" db:"last_login_at"`

	Settings Variables `json:"settings" db:"settings"`
}
