package models

import (
	"time"

	"github.com/google/uuid"
)

// Role is a membership role within a company
type Role string

// Membership roles. OWNER is implicit for the company's owner and is
// never stored as a membership row.
const (
	RoleOwner     Role = "OWNER"
	RoleAdmin     Role = "ADMIN"
	RoleManager   Role = "MANAGER"
	RoleOperative Role = "OPERATIVE"
	RoleFinance   Role = "FINANCE"
	RoleMarketing Role = "MARKETING"
	RoleGuest     Role = "GUEST"
)

// ValidRole reports whether r is a known membership role
func ValidRole(r Role) bool {
	switch r {
	case RoleOwner, RoleAdmin, RoleManager, RoleOperative, RoleFinance, RoleMarketing, RoleGuest:
		return true
	}
	return false
}

// Company represents a tenant
type Company struct {
	BaseModel

	OwnerUserID uuid.UUID `json:"ownerUserId" db:"owner_user_id"`

	Name        string `json:"name" db:"name"`
	Type        string `json:"type,omitempty" db:"type"`
	Description string `json:"description,omitempty" db:"description"`
	LogoURL     string `json:"logoUrl,omitempty" db:"logo_url"`

	PrimaryColor   string `json:"primaryColor" db:"primary_color"`
	SecondaryColor string `json:"secondaryColor" db:"secondary_color"`

	Settings Variables `json:"settings" db:"settings"`
	IsActive bool      `json:"isActive" db:"is_active"`
}

// CompanyUser links a user to a company with a role
type CompanyUser struct {
	BaseModel

	CompanyID uuid.UUID `json:"companyId" db:"company_id"`
	UserID    uuid.UUID `json:"userId" db:"user_id"`

	Role        Role      `json:"role" db:"role"`
	Permissions Variables `json:"permissions" db:"permissions"`
	IsActive    bool      `json:"isActive" db:"is_active"`

	InvitedBy *uuid.UUID `json:"invitedBy,omitempty" db:"invited_by"`
	InvitedAt *time.Time `json:"invitedAt,omitempty" db:"invited_at"`
	JoinedAt  time.Time  `json:"joinedAt" db:"joined_at"`
}
