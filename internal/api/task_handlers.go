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

// ========== Task handlers ==========

// HandleListTasks lists the tasks of a project
func (s *RESTServer) HandleListTasks(w http.ResponseWriter, r *http.Request) {
	projectID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid project id")
		return
	}

	project, err := s.store.GetProject(r.Context(), projectID)
	if err != nil {
		s.respondStorageError(w, err, "project not found")
		return
	}

	ok, err := s.gate.HasAccess(r.Context(), principalFrom(r.Context()), project.CompanyID)
	if err != nil || !ok {
		s.respondError(w, http.StatusForbidden, "Insufficient permissions")
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit == 0 {
		limit = 50
	}
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	tasks, total, err := s.store.ListTasks(r.Context(), projectID, limit, offset)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"tasks": tasks,
		"total": total,
	})
}

// HandleCreateTask creates a task in a project
func (s *RESTServer) HandleCreateTask(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProjectID   uuid.UUID  `json:"projectId" validate:"required"`
		Title       string     `json:"title" validate:"required,min=1,max=200"`
		Description string     `json:"description"`
		Status      string     `json:"status"`
		Priority    string     `json:"priority"`
		AssigneeID  *uuid.UUID `json:"assigneeId"`
		DueDate     *time.Time `json:"dueDate"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.validator.Validate(req); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	project, err := s.store.GetProject(r.Context(), req.ProjectID)
	if err != nil {
		s.respondStorageError(w, err, "project not found")
		return
	}

	ok, err := s.gate.HasAccess(r.Context(), principalFrom(r.Context()), project.CompanyID)
	if err != nil || !ok {
		s.respondError(w, http.StatusForbidden, "Insufficient permissions")
		return
	}

	task := &models.Task{
		ProjectID:   project.ID,
		CompanyID:   project.CompanyID,
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		AssigneeID:  req.AssigneeID,
		DueDate:     req.DueDate,
	}

	if err := s.store.CreateTask(r.Context(), task); err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.respondJSON(w, http.StatusCreated, task)
}

// HandleGetTask gets a task
func (s *RESTServer) HandleGetTask(w http.ResponseWriter, r *http.Request) {
	task, ok := s.loadAccessibleTask(w, r)
	if !ok {
		return
	}
	s.respondJSON(w, http.StatusOK, task)
}

// HandleUpdateTask updates a task
func (s *RESTServer) HandleUpdateTask(w http.ResponseWriter, r *http.Request) {
	task, ok := s.loadAccessibleTask(w, r)
	if !ok {
		return
	}

	var req struct {
		Title       *string    `json:"title" validate:"omitempty,min=1,max=200"`
		Description *string    `json:"description"`
		Status      *string    `json:"status"`
		Priority    *string    `json:"priority"`
		AssigneeID  *uuid.UUID `json:"assigneeId"`
		DueDate     *time.Time `json:"dueDate"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.validator.Validate(req); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Status != nil {
		task.Status = *req.Status
	}
	if req.Priority != nil {
		task.Priority = *req.Priority
	}
	if req.AssigneeID != nil {
		task.AssigneeID = req.AssigneeID
	}
	if req.DueDate != nil {
		task.DueDate = req.DueDate
	}

	if err := s.store.UpdateTask(r.Context(), task); err != nil {
		s.respondStorageError(w, err, "task not found")
		return
	}

	s.respondJSON(w, http.StatusOK, task)
}

// HandleDeleteTask deletes a task
func (s *RESTServer) HandleDeleteTask(w http.ResponseWriter, r *http.Request) {
	task, ok := s.loadAccessibleTask(w, r)
	if !ok {
		return
	}

	if !s.requireCompanyRoles(w, r, &task.CompanyID, models.RoleOwner, models.RoleAdmin, models.RoleManager) {
		return
	}

	if err := s.store.DeleteTask(r.Context(), task.ID); err != nil {
		s.respondStorageError(w, err, "task not found")
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// loadAccessibleTask fetches the task in the path and verifies company
// access, writing the response itself on failure
func (s *RESTServer) loadAccessibleTask(w http.ResponseWriter, r *http.Request) (*models.Task, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid task id")
		return nil, false
	}

	task, err := s.store.GetTask(r.Context(), id)
	if err != nil {
		s.respondStorageError(w, err, "task not found")
		return nil, false
	}

	ok, err := s.gate.HasAccess(r.Context(), principalFrom(r.Context()), task.CompanyID)
	if err != nil || !ok {
		s.respondError(w, http.StatusForbidden, "Insufficient permissions")
		return nil, false
	}

	return task, true
}
