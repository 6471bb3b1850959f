package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/verlyx/hub-server/internal/models"
)

// Default brand colors for new companies
const (
	defaultPrimaryColor   = "#6366f1"
	defaultSecondaryColor = "#8b5cf6"
)

// ========== Company handlers ==========

// HandleListCompanies lists the companies owned by the authenticated user
func (s *RESTServer) HandleListCompanies(w http.ResponseWriter, r *http.Request) {
	principal := principalFrom(r.Context())

	companies, err := s.store.ListCompaniesByOwner(r.Context(), principal.UserID)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"companies": companies,
		"total":     len(companies),
	})
}

// HandleCreateCompany creates a company owned by the authenticated user.
// The creator also gets an owner membership row.
func (s *RESTServer) HandleCreateCompany(w http.ResponseWriter, r *http.Request) {
	principal := principalFrom(r.Context())

	var req struct {
		Name           string           `json:"name" validate:"required,min=2,max=100"`
		Type           string           `json:"type"`
		Description    string           `json:"description"`
		LogoURL        string           `json:"logoUrl"`
		PrimaryColor   string           `json:"primaryColor"`
		SecondaryColor string           `json:"secondaryColor"`
		Settings       models.Variables `json:"settings"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.validator.Validate(req); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	company := &models.Company{
		OwnerUserID:    principal.UserID,
		Name:           req.Name,
		Type:           req.Type,
		Description:    req.Description,
		LogoURL:        req.LogoURL,
		PrimaryColor:   req.PrimaryColor,
		SecondaryColor: req.SecondaryColor,
		Settings:       req.Settings,
		IsActive:       true,
	}
	if company.PrimaryColor == "" {
		company.PrimaryColor = defaultPrimaryColor
	}
	if company.SecondaryColor == "" {
		company.SecondaryColor = defaultSecondaryColor
	}

	if err := s.store.CreateCompany(r.Context(), company); err != nil {
		s.respondStorageError(w, err, "company not found")
		return
	}

	member := &models.CompanyUser{
		CompanyID: company.ID,
		UserID:    principal.UserID,
		Role:      models.RoleOwner,
		IsActive:  true,
		JoinedAt:  time.Now(),
	}
	if err := s.store.CreateCompanyUser(r.Context(), member); err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.respondJSON(w, http.StatusCreated, company)
}

// HandleGetCompany gets a company
func (s *RESTServer) HandleGetCompany(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid company id")
		return
	}

	ok, err := s.gate.HasAccess(r.Context(), principalFrom(r.Context()), id)
	if err != nil || !ok {
		s.respondError(w, http.StatusForbidden, "Insufficient permissions")
		return
	}

	company, err := s.store.GetCompany(r.Context(), id)
	if err != nil {
		s.respondStorageError(w, err, "company not found")
		return
	}

	s.respondJSON(w, http.StatusOK, company)
}

// HandleUpdateCompany updates a company
func (s *RESTServer) HandleUpdateCompany(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid company id")
		return
	}

	if !s.requireCompanyRoles(w, r, &id, models.RoleOwner, models.RoleAdmin) {
		return
	}

	company, err := s.store.GetCompany(r.Context(), id)
	if err != nil {
		s.respondStorageError(w, err, "company not found")
		return
	}

	var req struct {
		Name           *string          `json:"name" validate:"omitempty,min=2,max=100"`
		Type           *string          `json:"type"`
		Description    *string          `json:"description"`
		LogoURL        *string          `json:"logoUrl"`
		PrimaryColor   *string          `json:"primaryColor"`
		SecondaryColor *string          `json:"secondaryColor"`
		Settings       models.Variables `json:"settings"`
		IsActive       *bool            `json:"isActive"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.validator.Validate(req); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.Name != nil {
		company.Name = *req.Name
	}
	if req.Type != nil {
		company.Type = *req.Type
	}
	if req.Description != nil {
		company.Description = *req.Description
	}
	if req.LogoURL != nil {
		company.LogoURL = *req.LogoURL
	}
	if req.PrimaryColor != nil {
		company.PrimaryColor = *req.PrimaryColor
	}
	if req.SecondaryColor != nil {
		company.SecondaryColor = *req.SecondaryColor
	}
	if req.Settings != nil {
		company.Settings = req.Settings
	}
	if req.IsActive != nil {
		company.IsActive = *req.IsActive
	}

	if err := s.store.UpdateCompany(r.Context(), company); err != nil {
		s.respondStorageError(w, err, "company not found")
		return
	}

	s.respondJSON(w, http.StatusOK, company)
}

// HandleDeleteCompany deletes a company. Only the owner may do this.
func (s *RESTServer) HandleDeleteCompany(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid company id")
		return
	}

	owner, err := s.gate.IsOwner(r.Context(), principalFrom(r.Context()), id)
	if err != nil || !owner {
		s.respondError(w, http.StatusForbidden, "Insufficient permissions")
		return
	}

	if err := s.store.DeleteCompany(r.Context(), id); err != nil {
		s.respondStorageError(w, err, "company not found")
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// ========== Membership handlers ==========

// HandleListMembers lists the members of a company
func (s *RESTServer) HandleListMembers(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid company id")
		return
	}

	ok, err := s.gate.HasAccess(r.Context(), principalFrom(r.Context()), id)
	if err != nil || !ok {
		s.respondError(w, http.StatusForbidden, "Insufficient permissions")
		return
	}

	members, err := s.store.ListCompanyUsers(r.Context(), id)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"members": members,
		"total":   len(members),
	})
}

// HandleInviteMember adds a user to a company
func (s *RESTServer) HandleInviteMember(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid company id")
		return
	}

	if !s.requireCompanyRoles(w, r, &id, models.RoleOwner, models.RoleAdmin) {
		return
	}

	var req struct {
		UserID uuid.UUID   `json:"userId" validate:"required"`
		Role   models.Role `json:"role" validate:"required"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if !models.ValidRole(req.Role) {
		s.respondError(w, http.StatusBadRequest, "invalid role")
		return
	}

	principal := principalFrom(r.Context())
	now := time.Now()
	member := &models.CompanyUser{
		CompanyID: id,
		UserID:    req.UserID,
		Role:      req.Role,
		IsActive:  true,
		InvitedBy: &principal.UserID,
		InvitedAt: &now,
		JoinedAt:  now,
	}

	if err := s.store.CreateCompanyUser(r.Context(), member); err != nil {
		s.respondStorageError(w, err, "company not found")
		return
	}

	s.events.MemberInvited(member)

	s.respondJSON(w, http.StatusCreated, member)
}

// HandleUpdateMemberRole changes a member's role
func (s *RESTServer) HandleUpdateMemberRole(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid company id")
		return
	}
	memberID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	if !s.requireCompanyRoles(w, r, &id, models.RoleOwner, models.RoleAdmin) {
		return
	}

	var req struct {
		Role models.Role `json:"role" validate:"required"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if !models.ValidRole(req.Role) {
		s.respondError(w, http.StatusBadRequest, "invalid role")
		return
	}

	member, err := s.store.UpdateCompanyUserRole(r.Context(), id, memberID, req.Role)
	if err != nil {
		s.respondStorageError(w, err, "member not found")
		return
	}

	s.respondJSON(w, http.StatusOK, member)
}

// HandleRemoveMember removes a member from a company
func (s *RESTServer) HandleRemoveMember(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid company id")
		return
	}
	memberID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	if !s.requireCompanyRoles(w, r, &id, models.RoleOwner, models.RoleAdmin) {
		return
	}

	member, err := s.store.GetCompanyUser(r.Context(), id, memberID)
	if err != nil {
		s.respondStorageError(w, err, "member not found")
		return
	}

	if err := s.store.DeleteCompanyUser(r.Context(), id, memberID); err != nil {
		s.respondStorageError(w, err, "member not found")
		return
	}

	s.events.MemberRemoved(member)

	s.respondJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}
