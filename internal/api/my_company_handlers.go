package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/verlyx/hub-server/internal/models"
)

// ========== My-company handlers ==========
//
// Business profiles are personal records used as the issuer side of
// generated documents. They are scoped to the authenticated user, not to a
// shared company, so no role gate applies.

// HandleListMyCompanies lists the user's business profiles
func (s *RESTServer) HandleListMyCompanies(w http.ResponseWriter, r *http.Request) {
	principal := principalFrom(r.Context())

	companies, err := s.store.ListMyCompanies(r.Context(), principal.UserID)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"myCompanies": companies,
		"total":       len(companies),
	})
}

// HandleCreateMyCompany creates a business profile
func (s *RESTServer) HandleCreateMyCompany(w http.ResponseWriter, r *http.Request) {
	principal := principalFrom(r.Context())

	var req struct {
		Name           string `json:"name" validate:"required,min=2,max=100"`
		Type           string `json:"type"`
		Description    string `json:"description"`
		LogoURL        string `json:"logoUrl"`
		PrimaryColor   string `json:"primaryColor"`
		SecondaryColor string `json:"secondaryColor"`
		TaxID          string `json:"taxId"`
		Industry       string `json:"industry"`
		Website        string `json:"website"`
		Phone          string `json:"phone"`
		Email          string `json:"email" validate:"omitempty,email"`
		Address        string `json:"address"`
		City           string `json:"city"`
		Country        string `json:"country"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.validator.Validate(req); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	mc := &models.MyCompany{
		OwnerUserID:    principal.UserID,
		Name:           req.Name,
		Type:           req.Type,
		Description:    req.Description,
		LogoURL:        req.LogoURL,
		PrimaryColor:   req.PrimaryColor,
		SecondaryColor: req.SecondaryColor,
		TaxID:          req.TaxID,
		Industry:       req.Industry,
		Website:        req.Website,
		Phone:          req.Phone,
		Email:          req.Email,
		Address:        req.Address,
		City:           req.City,
		Country:        req.Country,
	}
	if mc.PrimaryColor == "" {
		mc.PrimaryColor = defaultPrimaryColor
	}
	if mc.SecondaryColor == "" {
		mc.SecondaryColor = defaultSecondaryColor
	}

	if err := s.store.CreateMyCompany(r.Context(), mc); err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.respondJSON(w, http.StatusCreated, mc)
}

// HandleGetMyCompany gets a business profile
func (s *RESTServer) HandleGetMyCompany(w http.ResponseWriter, r *http.Request) {
	principal := principalFrom(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	mc, err := s.store.GetMyCompany(r.Context(), principal.UserID, id)
	if err != nil {
		s.respondStorageError(w, err, "business profile not found")
		return
	}

	s.respondJSON(w, http.StatusOK, mc)
}

// HandleUpdateMyCompany updates a business profile
func (s *RESTServer) HandleUpdateMyCompany(w http.ResponseWriter, r *http.Request) {
	principal := principalFrom(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	mc, err := s.store.GetMyCompany(r.Context(), principal.UserID, id)
	if err != nil {
		s.respondStorageError(w, err, "business profile not found")
		return
	}

	var req map[string]*string
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	apply := func(key string, dst *string) {
		if v, ok := req[key]; ok && v != nil {
			*dst = *v
		}
	}
	apply("name", &mc.Name)
	apply("type", &mc.Type)
	apply("description", &mc.Description)
	apply("logoUrl", &mc.LogoURL)
	apply("primaryColor", &mc.PrimaryColor)
	apply("secondaryColor", &mc.SecondaryColor)
	apply("taxId", &mc.TaxID)
	apply("industry", &mc.Industry)
	apply("website", &mc.Website)
	apply("phone", &mc.Phone)
	apply("email", &mc.Email)
	apply("address", &mc.Address)
	apply("city", &mc.City)
	apply("country", &mc.Country)

	if mc.Name == "" {
		s.respondError(w, http.StatusBadRequest, "name cannot be empty")
		return
	}

	if err := s.store.UpdateMyCompany(r.Context(), mc); err != nil {
		s.respondStorageError(w, err, "business profile not found")
		return
	}

	s.respondJSON(w, http.StatusOK, mc)
}

// HandleDeleteMyCompany deletes a business profile
func (s *RESTServer) HandleDeleteMyCompany(w http.ResponseWriter, r *http.Request) {
	principal := principalFrom(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := s.store.DeleteMyCompany(r.Context(), principal.UserID, id); err != nil {
		s.respondStorageError(w, err, "business profile not found")
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
