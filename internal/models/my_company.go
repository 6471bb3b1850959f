package models

import (
	"github.com/google/uuid"
)

// MyCompany represents the principal's own business profile, used to
// fill the issuer side of generated documents
type MyCompany struct {
	BaseModel

	OwnerUserID uuid.UUID `json:"ownerUserId" db:"owner_user_id"`

	Name        string `json:"name" db:"name"`
	Type        string `json:"type,omitempty" db:"type"`
	Description string `json:"description,omitempty" db:"description"`
	LogoURL     string `json:"logoUrl,omitempty" db:"logo_url"`

	PrimaryColor   string `json:"primaryColor" db:"primary_color"`
	SecondaryColor string `json:"secondaryColor" db:"secondary_color"`

	TaxID    string `json:"taxId,omitempty" db:"tax_id"`
	Industry string `json:"industry,omitempty" db:"industry"`
	Website  string `json:"website,omitempty" db:"website"`
	Phone    string `json:"phone,omitempty" db:"phone"`
	Email    string `json:"email,omitempty" db:"email"`
	Address  string `json:"address,omitempty" db:"address"`
	City     string `json:"city,omitempty" db:"city"`
	Country  string `json:"country" db:"country"`

	Settings Variables `json:"settings" db:"settings"`
	IsActive bool      `json:"isActive" db:"is_active"`
}
