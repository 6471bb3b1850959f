package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/verlyx/hub-server/internal/models"
)

// ========== Task comment handlers ==========
//
// Comment listings and reactions are served by database functions that
// join user profiles and aggregate reaction counts, so they come back as
// raw JSON documents rather than typed rows.

// HandleListTaskComments lists top-level comments of a task with author
// profiles attached
func (s *RESTServer) HandleListTaskComments(w http.ResponseWriter, r *http.Request) {
	task, ok := s.loadAccessibleTask(w, r)
	if !ok {
		return
	}

	comments, err := s.store.ListTaskComments(r.Context(), task.ID)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"comments": comments,
		"total":    len(comments),
	})
}

// HandleCreateTaskComment adds a comment to a task
func (s *RESTServer) HandleCreateTaskComment(w http.ResponseWriter, r *http.Request) {
	task, ok := s.loadAccessibleTask(w, r)
	if !ok {
		return
	}

	var req struct {
		Content         string             `json:"content" validate:"required,min=1"`
		ContentHTML     string             `json:"contentHtml"`
		ParentCommentID *uuid.UUID         `json:"parentCommentId"`
		MentionedUsers  models.StringArray `json:"mentionedUsers"`
		Attachments     models.StringArray `json:"attachments"`
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
	comment := &models.TaskComment{
		TaskID:          task.ID,
		MyCompanyID:     task.CompanyID,
		UserID:          principal.UserID,
		Content:         req.Content,
		ContentHTML:     req.ContentHTML,
		ParentCommentID: req.ParentCommentID,
		MentionedUsers:  req.MentionedUsers,
		Attachments:     req.Attachments,
	}

	if err := s.store.CreateTaskComment(r.Context(), comment); err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.respondJSON(w, http.StatusCreated, comment)
}

// HandleUpdateTaskComment edits a comment. Only the author may edit.
func (s *RESTServer) HandleUpdateTaskComment(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid comment id")
		return
	}

	comment, err := s.store.GetTaskComment(r.Context(), id)
	if err != nil {
		s.respondStorageError(w, err, "comment not found")
		return
	}

	principal := principalFrom(r.Context())
	if comment.UserID != principal.UserID {
		s.respondError(w, http.StatusForbidden, "Insufficient permissions")
		return
	}

	var req struct {
		Content     string `json:"content" validate:"required,min=1"`
		ContentHTML string `json:"contentHtml"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.validator.Validate(req); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	comment.Content = req.Content
	comment.ContentHTML = req.ContentHTML

	if err := s.store.UpdateTaskComment(r.Context(), comment); err != nil {
		s.respondStorageError(w, err, "comment not found")
		return
	}

	s.respondJSON(w, http.StatusOK, comment)
}

// HandleDeleteTaskComment deletes a comment. Only the author may delete.
func (s *RESTServer) HandleDeleteTaskComment(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid comment id")
		return
	}

	comment, err := s.store.GetTaskComment(r.Context(), id)
	if err != nil {
		s.respondStorageError(w, err, "comment not found")
		return
	}

	principal := principalFrom(r.Context())
	if comment.UserID != principal.UserID {
		s.respondError(w, http.StatusForbidden, "Insufficient permissions")
		return
	}

	if err := s.store.DeleteTaskComment(r.Context(), id); err != nil {
		s.respondStorageError(w, err, "comment not found")
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// HandleListCommentReplies lists the replies of a comment
func (s *RESTServer) HandleListCommentReplies(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid comment id")
		return
	}

	replies, err := s.store.ListCommentReplies(r.Context(), id)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"replies": replies,
		"total":   len(replies),
	})
}

// HandleAddCommentReaction adds an emoji reaction to a comment
func (s *RESTServer) HandleAddCommentReaction(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid comment id")
		return
	}

	var req struct {
		Emoji string `json:"emoji" validate:"required,min=1,max=16"`
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
	reactions, err := s.store.AddCommentReaction(r.Context(), id, req.Emoji, principal.UserID)
	if err != nil {
		s.respondStorageError(w, err, "comment not found")
		return
	}

	s.respondJSON(w, http.StatusOK, reactions)
}

// HandleRemoveCommentReaction removes an emoji reaction from a comment
func (s *RESTServer) HandleRemoveCommentReaction(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid comment id")
		return
	}

	var req struct {
		Emoji string `json:"emoji" validate:"required,min=1,max=16"`
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
	reactions, err := s.store.RemoveCommentReaction(r.Context(), id, req.Emoji, principal.UserID)
	if err != nil {
		s.respondStorageError(w, err, "comment not found")
		return
	}

	s.respondJSON(w, http.StatusOK, reactions)
}
