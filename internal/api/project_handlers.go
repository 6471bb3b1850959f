package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/verlyx/hub-server/internal/models"
)

// ========== Project handlers ==========

// HandleListProjects lists projects of the resolved company
func (s *RESTServer) HandleListProjects(w http.ResponseWriter, r *http.Request) {
	companyID := companyIDFrom(r.Context())
	if companyID == nil {
		s.respondError(w, http.StatusBadRequest, "company context is required")
		return
	}

	ok, err := s.gate.HasAccess(r.Context(), principalFrom(r.Context()), *companyID)
	if err != nil || !ok {
		s.respondError(w, http.StatusForbidden, "Insufficient permissions")
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit == 0 {
		limit = 20
	}
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	projects, total, err := s.store.ListProjects(r.Context(), *companyID, limit, offset)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"projects": projects,
		"total":    total,
	})
}

// HandleCreateProject creates a project in the resolved company
func (s *RESTServer) HandleCreateProject(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CompanyID   *uuid.UUID `json:"companyId"`
		Name        string     `json:"name" validate:"required,min=2,max=200"`
		Description string     `json:"description"`
		Status      string     `json:"status"`
		Color       string     `json:"color"`
		StartDate   *time.Time `json:"startDate"`
		EndDate     *time.Time `json:"endDate"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	companyID := companyIDFrom(r.Context())
	if companyID == nil {
		companyID = req.CompanyID
	}
	if companyID == nil {
		s.respondError(w, http.StatusBadRequest, "company context is required")
		return
	}

	if !s.requireCompanyRoles(w, r, companyID, models.RoleOwner, models.RoleAdmin, models.RoleManager) {
		return
	}

	if err := s.validator.Validate(req); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	principal := principalFrom(r.Context())
	project := &models.Project{
		CompanyID:   *companyID,
		OwnerID:     principal.UserID,
		Name:        req.Name,
		Description: req.Description,
		Status:      req.Status,
		Color:       req.Color,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	}

	if err := s.store.CreateProject(r.Context(), project); err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.respondJSON(w, http.StatusCreated, project)
}

// HandleGetProject gets a project
func (s *RESTServer) HandleGetProject(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid project id")
		return
	}

	project, err := s.store.GetProject(r.Context(), id)
	if err != nil {
		s.respondStorageError(w, err, "project not found")
		return
	}

	ok, err := s.gate.HasAccess(r.Context(), principalFrom(r.Context()), project.CompanyID)
	if err != nil || !ok {
		s.respondError(w, http.StatusForbidden, "Insufficient permissions")
		return
	}

	s.respondJSON(w, http.StatusOK, project)
}

// HandleUpdateProject updates a project
func (s *RESTServer) HandleUpdateProject(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid project id")
		return
	}

	project, err := s.store.GetProject(r.Context(), id)
	if err != nil {
		s.respondStorageError(w, err, "project not found")
		return
	}

	if !s.requireCompanyRoles(w, r, &project.CompanyID, models.RoleOwner, models.RoleAdmin, models.RoleManager) {
		return
	}

	var req struct {
		Name        *string    `json:"name" validate:"omitempty,min=2,max=200"`
		Description *string    `json:"description"`
		Status      *string    `json:"status"`
		Color       *string    `json:"color"`
		StartDate   *time.Time `json:"startDate"`
		EndDate     *time.Time `json:"endDate"`
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
		project.Name = *req.Name
	}
	if req.Description != nil {
		project.Description = *req.Description
	}
	if req.Status != nil {
		project.Status = *req.Status
	}
	if req.Color != nil {
		project.Color = *req.Color
	}
	if req.StartDate != nil {
		project.StartDate = req.StartDate
	}
	if req.EndDate != nil {
		project.EndDate = req.EndDate
	}

	if err := s.store.UpdateProject(r.Context(), project); err != nil {
		s.respondStorageError(w, err, "project not found")
		return
	}

	s.respondJSON(w, http.StatusOK, project)
}

// HandleDeleteProject deletes a project
func (s *RESTServer) HandleDeleteProject(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid project id")
		return
	}

	project, err := s.store.GetProject(r.Context(), id)
	if err != nil {
		s.respondStorageError(w, err, "project not found")
		return
	}

	if !s.requireCompanyRoles(w, r, &project.CompanyID, models.RoleOwner, models.RoleAdmin) {
		return
	}

	if err := s.store.DeleteProject(r.Context(), id); err != nil {
		s.respondStorageError(w, err, "project not found")
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
