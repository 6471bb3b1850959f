package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/verlyx/hub-server/internal/docgen"
	"github.com/verlyx/hub-server/internal/models"
	"github.com/verlyx/hub-server/internal/storage"
)

// ========== PDF template handlers ==========

// HandleListTemplates lists document templates
func (s *RESTServer) HandleListTemplates(w http.ResponseWriter, r *http.Request) {
	var filters storage.TemplateFilters

	if t := r.URL.Query().Get("templateType"); t != "" {
		tt := models.TemplateType(t)
		if !models.ValidTemplateType(tt) {
			s.respondError(w, http.StatusBadRequest, "invalid template type")
			return
		}
		filters.TemplateType = &tt
	}

	if active := r.URL.Query().Get("isActive"); active != "" {
		isActive := active == "true"
		filters.IsActive = &isActive
	}

	templates, err := s.store.ListTemplates(r.Context(), filters)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"templates": templates,
		"total":     len(templates),
	})
}

// HandleCreateTemplate creates a document template
func (s *RESTServer) HandleCreateTemplate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name         string              `json:"name" validate:"required,min=2,max=100"`
		TemplateType models.TemplateType `json:"templateType" validate:"required"`
		TemplateData models.Variables    `json:"templateData"`
		Description  string              `json:"description"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.validator.Validate(req); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if !models.ValidTemplateType(req.TemplateType) {
		s.respondError(w, http.StatusBadRequest, "invalid template type")
		return
	}

	principal := principalFrom(r.Context())
	tpl := &models.PDFTemplate{
		Name:         req.Name,
		TemplateType: req.TemplateType,
		TemplateData: req.TemplateData,
		Description:  req.Description,
		IsActive:     true,
		CreatedBy:    &principal.UserID,
	}

	if err := s.store.CreateTemplate(r.Context(), tpl); err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.respondJSON(w, http.StatusCreated, tpl)
}

// HandleGetTemplate gets a document template
func (s *RESTServer) HandleGetTemplate(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid template id")
		return
	}

	tpl, err := s.store.GetTemplate(r.Context(), id)
	if err != nil {
		s.respondStorageError(w, err, "template not found")
		return
	}

	s.respondJSON(w, http.StatusOK, tpl)
}

// HandleUpdateTemplate updates a document template
func (s *RESTServer) HandleUpdateTemplate(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid template id")
		return
	}

	tpl, err := s.store.GetTemplate(r.Context(), id)
	if err != nil {
		s.respondStorageError(w, err, "template not found")
		return
	}

	var req struct {
		Name         *string          `json:"name" validate:"omitempty,min=2,max=100"`
		TemplateData models.Variables `json:"templateData"`
		Description  *string          `json:"description"`
		IsActive     *bool            `json:"isActive"`
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
		tpl.Name = *req.Name
	}
	if req.TemplateData != nil {
		tpl.TemplateData = req.TemplateData
	}
	if req.Description != nil {
		tpl.Description = *req.Description
	}
	if req.IsActive != nil {
		tpl.IsActive = *req.IsActive
	}

	if err := s.store.UpdateTemplate(r.Context(), tpl); err != nil {
		s.respondStorageError(w, err, "template not found")
		return
	}

	s.respondJSON(w, http.StatusOK, tpl)
}

// HandleDeleteTemplate deletes a document template
func (s *RESTServer) HandleDeleteTemplate(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid template id")
		return
	}

	if err := s.store.DeleteTemplate(r.Context(), id); err != nil {
		s.respondStorageError(w, err, "template not found")
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// ========== Document generation handlers ==========

// HandleGenerateDocument runs the PDF generation pipeline
func (s *RESTServer) HandleGenerateDocument(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TemplateID       uuid.UUID        `json:"templateId" validate:"required"`
		FileName         string           `json:"fileName"`
		DocumentData     models.Variables `json:"documentData" validate:"required"`
		RelatedContactID *uuid.UUID       `json:"relatedContactId"`
		RelatedProjectID *uuid.UUID       `json:"relatedProjectId"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.validator.Validate(req); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	principal := principalFrom(r.Context())
	doc, err := s.pipeline.Generate(r.Context(), &docgen.GenerateRequest{
		TemplateID:       req.TemplateID,
		FileName:         req.FileName,
		DocumentData:     req.DocumentData,
		RelatedContactID: req.RelatedContactID,
		RelatedProjectID: req.RelatedProjectID,
		CreatedBy:        &principal.UserID,
	})
	if err != nil {
		s.respondStorageError(w, err, "template not found")
		return
	}

	s.events.DocumentGenerated(doc)

	s.respondJSON(w, http.StatusCreated, doc)
}

// HandleListGeneratedDocuments lists generated documents, optionally
// filtered by template
func (s *RESTServer) HandleListGeneratedDocuments(w http.ResponseWriter, r *http.Request) {
	var templateID *uuid.UUID
	if raw := r.URL.Query().Get("templateId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			s.respondError(w, http.StatusBadRequest, "invalid template id")
			return
		}
		templateID = &id
	}

	docs, err := s.store.ListGeneratedDocuments(r.Context(), templateID)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"documents": docs,
		"total":     len(docs),
	})
}

// HandleGetGeneratedDocument gets a generated document record
func (s *RESTServer) HandleGetGeneratedDocument(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid document id")
		return
	}

	doc, err := s.store.GetGeneratedDocument(r.Context(), id)
	if err != nil {
		s.respondStorageError(w, err, "document not found")
		return
	}

	s.respondJSON(w, http.StatusOK, doc)
}

// HandleDeleteGeneratedDocument deletes a generated document record
func (s *RESTServer) HandleDeleteGeneratedDocument(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid document id")
		return
	}

	if err := s.store.DeleteGeneratedDocument(r.Context(), id); err != nil {
		s.respondStorageError(w, err, "document not found")
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
