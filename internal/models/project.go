package models

import (
	"time"

	"github.com/google/uuid"
)

// Project represents a company-scoped project
type Project struct {
	BaseModel

	CompanyID uuid.UUID `json:"companyId" db:"company_id"`
	OwnerID   uuid.UUID `json:"ownerId" db:"owner_id"`

	Name        string `json:"name" db:"name"`
	Description string `json:"description,omitempty" db:"description"`
	Status      string `json:"status" db:"status"`
	Color       string `json:"color,omitempty" db:"color"`

	StartDate *time.Time `json:"startDate,omitempty" db:"start_date"`
	EndDate   *time.Time `json:"endDate,omitempty" db:"end_date"`
}

// Task represents a project task
type Task struct {
	BaseModel

	ProjectID uuid.UUID `json:"projectId" db:"project_id"`
	CompanyID uuid.UUID `json:"companyId" db:"company_id"`

	Title       string `json:"title" db:"title"`
	Description string `json:"description,omitempty" db:"description"`
	Status      string `json:"status" db:"status"`
	Priority    string `json:"priority" db:"priority"`

	AssigneeID *uuid.UUID `json:"assigneeId,omitempty" db:"assignee_id"`
	DueDate    *time.Time `json:"dueDate,omitempty" db:"due_date"`
}
