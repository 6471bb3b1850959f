package models

import (
	"github.com/google/uuid"
)

// TemplateType enumerates document template kinds
type TemplateType string

const (
	TemplateContract TemplateType = "contract"
	TemplateInvoice  TemplateType = "invoice"
	TemplateReceipt  TemplateType = "receipt"
	TemplateQuote    TemplateType = "quote"
	TemplateReport   TemplateType = "report"
)

// ValidTemplateType reports whether t is a known template type
func ValidTemplateType(t TemplateType) bool {
	switch t {
	case TemplateContract, TemplateInvoice, TemplateReceipt, TemplateQuote, TemplateReport:
		return true
	}
	return false
}

// PDFTemplate represents a named, typed document template with a field schema
type PDFTemplate struct {
	BaseModel

	Name         string       `json:"name" db:"name"`
	TemplateType TemplateType `json:"templateType" db:"template_type"`
	TemplateData Variables    `json:"templateData" db:"template_data"`
	Description  string       `json:"description,omitempty" db:"description"`
	IsActive     bool         `json:"isActive" db:"is_active"`
	CreatedBy    *uuid.UUID   `json:"createdBy,omitempty" db:"created_by"`
}

// GeneratedDocument represents a rendered PDF artifact.
// Records are created once per generation and never mutated.
type GeneratedDocument struct {
	BaseModel

	TemplateID uuid.UUID `json:"templateId" db:"template_id"`
	FileName   string    `json:"fileName" db:"file_name"`
	FilePath   string    `json:"filePath" db:"file_path"`

	// DocumentData is the processed data snapshot the PDF was rendered from
	DocumentData Variables `json:"documentData" db:"document_data"`

	RelatedContactID *uuid.UUID `json:"relatedContactId,omitempty" db:"related_contact_id"`
	RelatedProjectID *uuid.UUID `json:"relatedProjectId,omitempty" db:"related_project_id"`
	CreatedBy        *uuid.UUID `json:"createdBy,omitempty" db:"created_by"`
}
