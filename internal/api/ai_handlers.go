package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/verlyx/hub-server/internal/models"
)

// ========== Conversation handlers ==========

// HandleListConversations lists the user's conversations
func (s *RESTServer) HandleListConversations(w http.ResponseWriter, r *http.Request) {
	principal := principalFrom(r.Context())

	var contextType *models.ContextType
	if raw := r.URL.Query().Get("contextType"); raw != "" {
		ct := models.ContextType(raw)
		if !models.ValidContextType(ct) {
			s.respondError(w, http.StatusBadRequest, "invalid context type")
			return
		}
		contextType = &ct
	}

	conversations, err := s.store.ListConversations(r.Context(), principal.UserID, contextType)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"conversations": conversations,
		"total":         len(conversations),
	})
}

// HandleCreateConversation creates a conversation
func (s *RESTServer) HandleCreateConversation(w http.ResponseWriter, r *http.Request) {
	principal := principalFrom(r.Context())

	var req struct {
		Title       string             `json:"title" validate:"required,min=1,max=200"`
		ContextType models.ContextType `json:"contextType"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.validator.Validate(req); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.ContextType == "" {
		req.ContextType = models.ContextGeneral
	}
	if !models.ValidContextType(req.ContextType) {
		s.respondError(w, http.StatusBadRequest, "invalid context type")
		return
	}

	conv := &models.Conversation{
		UserID:      principal.UserID,
		Title:       req.Title,
		ContextType: req.ContextType,
	}

	if err := s.store.CreateConversation(r.Context(), conv); err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.respondJSON(w, http.StatusCreated, conv)
}

// HandleGetConversation gets a conversation with its messages
func (s *RESTServer) HandleGetConversation(w http.ResponseWriter, r *http.Request) {
	principal := principalFrom(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid conversation id")
		return
	}

	conv, err := s.store.GetConversation(r.Context(), principal.UserID, id)
	if err != nil {
		s.respondStorageError(w, err, "conversation not found")
		return
	}

	messages, err := s.store.ListMessages(r.Context(), conv.ID, 0)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"conversation": conv,
		"messages":     messages,
	})
}

// HandleUpdateConversation renames or pins a conversation
func (s *RESTServer) HandleUpdateConversation(w http.ResponseWriter, r *http.Request) {
	principal := principalFrom(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid conversation id")
		return
	}

	conv, err := s.store.GetConversation(r.Context(), principal.UserID, id)
	if err != nil {
		s.respondStorageError(w, err, "conversation not found")
		return
	}

	var req struct {
		Title    *string `json:"title" validate:"omitempty,min=1,max=200"`
		IsPinned *bool   `json:"isPinned"`
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
		conv.Title = *req.Title
	}
	if req.IsPinned != nil {
		conv.IsPinned = *req.IsPinned
	}

	if err := s.store.UpdateConversation(r.Context(), conv); err != nil {
		s.respondStorageError(w, err, "conversation not found")
		return
	}

	s.respondJSON(w, http.StatusOK, conv)
}

// HandleDeleteConversation deletes a conversation and its messages
func (s *RESTServer) HandleDeleteConversation(w http.ResponseWriter, r *http.Request) {
	principal := principalFrom(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid conversation id")
		return
	}

	if err := s.store.DeleteConversation(r.Context(), principal.UserID, id); err != nil {
		s.respondStorageError(w, err, "conversation not found")
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// HandleListConversationMessages lists the messages of a conversation
func (s *RESTServer) HandleListConversationMessages(w http.ResponseWriter, r *http.Request) {
	principal := principalFrom(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid conversation id")
		return
	}

	conv, err := s.store.GetConversation(r.Context(), principal.UserID, id)
	if err != nil {
		s.respondStorageError(w, err, "conversation not found")
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit == 0 {
		limit = 50
	}

	messages, err := s.store.ListMessages(r.Context(), conv.ID, limit)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"messages": messages,
		"total":    len(messages),
	})
}

// HandleSendMessage runs one conversation turn
func (s *RESTServer) HandleSendMessage(w http.ResponseWriter, r *http.Request) {
	principal := principalFrom(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid conversation id")
		return
	}

	var req struct {
		Content string `json:"content" validate:"required,min=1"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.validator.Validate(req); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := s.assistant.SendMessage(r.Context(), principal.UserID, id, req.Content)
	if err != nil {
		s.respondStorageError(w, err, "conversation not found")
		return
	}

	s.respondJSON(w, http.StatusOK, result)
}

// ========== AI helper handlers ==========

// HandleChat answers a standalone message without persistence
func (s *RESTServer) HandleChat(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Message string `json:"message" validate:"required,min=1"`
		Context string `json:"context"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.validator.Validate(req); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	reply, err := s.assistant.Chat(r.Context(), req.Message, req.Context)
	if err != nil {
		s.respondError(w, http.StatusBadGateway, "assistant unavailable")
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]string{"response": reply})
}

// HandleSuggestFields suggests values for empty document fields
func (s *RESTServer) HandleSuggestFields(w http.ResponseWriter, r *http.Request) {
	var req struct {
		DocumentType string           `json:"documentType" validate:"required"`
		Fields       models.Variables `json:"fields"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.validator.Validate(req); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	suggestions, err := s.assistant.SuggestFieldValues(r.Context(), req.DocumentType, req.Fields)
	if err != nil {
		s.respondError(w, http.StatusBadGateway, "assistant unavailable")
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]interface{}{"suggestions": suggestions})
}

// HandleAnalyzeDocument reviews document data for problems
func (s *RESTServer) HandleAnalyzeDocument(w http.ResponseWriter, r *http.Request) {
	var req struct {
		DocumentData models.Variables `json:"documentData" validate:"required"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.validator.Validate(req); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	analysis, err := s.assistant.AnalyzeDocument(r.Context(), req.DocumentData)
	if err != nil {
		s.respondError(w, http.StatusBadGateway, "assistant unavailable")
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]string{"analysis": analysis})
}

// HandleProjectDescription writes a short project description
func (s *RESTServer) HandleProjectDescription(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name" validate:"required,min=1,max=200"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.validator.Validate(req); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	description, err := s.assistant.GenerateProjectDescription(r.Context(), req.Name)
	if err != nil {
		s.respondError(w, http.StatusBadGateway, "assistant unavailable")
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]string{"description": description})
}

// HandleSuggestTasks proposes starter tasks for a project
func (s *RESTServer) HandleSuggestTasks(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string `json:"name" validate:"required,min=1,max=200"`
		Description string `json:"description"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.validator.Validate(req); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	tasks, err := s.assistant.SuggestTasks(r.Context(), req.Name, req.Description)
	if err != nil {
		s.respondError(w, http.StatusBadGateway, "assistant unavailable")
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]interface{}{"tasks": tasks})
}

// HandleSummarize summarizes a collection of business items
func (s *RESTServer) HandleSummarize(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ItemType string        `json:"itemType" validate:"required"`
		Items    []interface{} `json:"items" validate:"required,min=1"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.validator.Validate(req); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	summary, err := s.assistant.SummarizeItems(r.Context(), req.ItemType, req.Items)
	if err != nil {
		s.respondError(w, http.StatusBadGateway, "assistant unavailable")
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]string{"summary": summary})
}

// HandleTranslate translates text to a target language
func (s *RESTServer) HandleTranslate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text           string `json:"text" validate:"required,min=1"`
		TargetLanguage string `json:"targetLanguage" validate:"required,min=2"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.validator.Validate(req); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	translation, err := s.assistant.DetectAndTranslate(r.Context(), req.Text, req.TargetLanguage)
	if err != nil {
		s.respondError(w, http.StatusBadGateway, "assistant unavailable")
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]string{"translation": translation})
}
