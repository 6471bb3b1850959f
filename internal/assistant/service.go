// Package assistant implements the conversational AI features: persistent
// conversations with context-aware prompting, plus single-shot helpers for
// form filling, document analysis, project planning, summaries and
// translation.
package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/verlyx/hub-server/internal/models"
	"github.com/verlyx/hub-server/internal/storage"
)

// Fallback replies used when the model returns nothing
const (
	fallbackReply     = "I couldn't generate a response."
	fallbackAnalysis  = "The document could not be analyzed."
	fallbackSummary   = "Could not generate the summary."
	contextWindowSize = 10
)

// Service runs assistant conversations and helpers
type Service struct {
	store     storage.Store
	client    *Client
	maxTokens int
}

// NewService creates the assistant service
func NewService(store storage.Store, client *Client, maxTokens int) *Service {
	return &Service{
		store:     store,
		client:    client,
		maxTokens: maxTokens,
	}
}

// TurnResult is the outcome of one conversation turn
type TurnResult struct {
	UserMessage      *models.Message `json:"userMessage"`
	AssistantMessage *models.Message `json:"assistantMessage"`
}

// SendMessage appends the user's message to the conversation, queries the
// model with the last turns as context and persists the reply. The user
// message survives even when the model call fails.
func (s *Service) SendMessage(ctx context.Context, userID, conversationID uuid.UUID, content string) (*TurnResult, error) {
	conv, err := s.store.GetConversation(ctx, userID, conversationID)
	if err != nil {
		return nil, err
	}

	// Context window is the history before this turn
	history, err := s.store.ListRecentMessages(ctx, conv.ID, contextWindowSize)
	if err != nil {
		return nil, fmt.Errorf("load conversation history: %w", err)
	}

	userMsg := &models.Message{
		ConversationID: conv.ID,
		Role:           models.MessageRoleUser,
		Content:        content,
	}
	if err := s.store.CreateMessage(ctx, userMsg); err != nil {
		return nil, fmt.Errorf("persist user message: %w", err)
	}

	messages := make([]ChatMessage, 0, len(history)+2)
	messages = append(messages, ChatMessage{Role: "system", Content: SystemPrompt(conv.ContextType)})
	for _, m := range history {
		messages = append(messages, ChatMessage{Role: string(m.Role), Content: m.Content})
	}
	messages = append(messages, ChatMessage{Role: "user", Content: content})

	reply, err := s.client.Complete(ctx, messages, CompletionOptions{
		MaxTokens:   s.maxTokens,
		Temperature: 0.7,
	})
	if err != nil {
		log.Error().Err(err).
			Str("conversation_id", conv.ID.String()).
			Msg("Assistant completion failed")
		return nil, fmt.Errorf("assistant completion: %w", err)
	}
	if reply == "" {
		reply = fallbackReply
	}

	assistantMsg := &models.Message{
		ConversationID: conv.ID,
		Role:           models.MessageRoleAssistant,
		Content:        reply,
	}
	if err := s.store.CreateMessage(ctx, assistantMsg); err != nil {
		return nil, fmt.Errorf("persist assistant message: %w", err)
	}

	return &TurnResult{UserMessage: userMsg, AssistantMessage: assistantMsg}, nil
}

// Chat answers a standalone message without conversation persistence.
// An optional free-form context string is passed along to the model.
func (s *Service) Chat(ctx context.Context, message, extraContext string) (string, error) {
	prompt := message
	if extraContext != "" {
		prompt = fmt.Sprintf("Context: %s\n\n%s", extraContext, message)
	}

	reply, err := s.client.Complete(ctx, []ChatMessage{
		{Role: "system", Content: SystemPrompt(models.ContextGeneral)},
		{Role: "user", Content: prompt},
	}, CompletionOptions{MaxTokens: s.maxTokens, Temperature: 0.7})
	if err != nil {
		return "", err
	}
	if reply == "" {
		reply = fallbackReply
	}
	return reply, nil
}

// SuggestFieldValues proposes values for the empty fields of a document
// form given the ones already filled in
func (s *Service) SuggestFieldValues(ctx context.Context, documentType string, existing models.Variables) (models.Variables, error) {
	filled, err := json.Marshal(existing)
	if err != nil {
		return nil, fmt.Errorf("encode existing fields: %w", err)
	}

	prompt := fmt.Sprintf(
		"A user is filling out a %q document. These fields are already set: %s\n"+
			"Suggest plausible values for the remaining typical fields of this document type. "+
			"Reply with a single JSON object mapping field names to suggested values.",
		documentType, filled)

	reply, err := s.client.Complete(ctx, []ChatMessage{
		{Role: "system", Content: "You help users fill out business documents. Reply only with JSON."},
		{Role: "user", Content: prompt},
	}, CompletionOptions{MaxTokens: 1000, Temperature: 0.5, JSONResponse: true})
	if err != nil {
		return nil, err
	}

	var suggestions models.Variables
	if err := json.Unmarshal([]byte(reply), &suggestions); err != nil {
		return nil, fmt.Errorf("model returned invalid JSON: %w", err)
	}
	return suggestions, nil
}

// AnalyzeDocument reviews document data and points out inconsistencies or
// missing information
func (s *Service) AnalyzeDocument(ctx context.Context, data models.Variables) (string, error) {
	encoded, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("encode document data: %w", err)
	}

	prompt := fmt.Sprintf(
		"Review this business document data and point out errors, inconsistencies or missing "+
			"information. Be specific and brief.\n\n%s", encoded)

	reply, err := s.client.Complete(ctx, []ChatMessage{
		{Role: "system", Content: "You are a meticulous business document reviewer."},
		{Role: "user", Content: prompt},
	}, CompletionOptions{MaxTokens: 1000, Temperature: 0.3})
	if err != nil {
		return "", err
	}
	if reply == "" {
		reply = fallbackAnalysis
	}
	return reply, nil
}

// GenerateProjectDescription writes a short description for a project name
func (s *Service) GenerateProjectDescription(ctx context.Context, name string) (string, error) {
	prompt := fmt.Sprintf("Write a concise two-sentence description for a project named %q.", name)

	reply, err := s.client.Complete(ctx, []ChatMessage{
		{Role: "user", Content: prompt},
	}, CompletionOptions{MaxTokens: 150, Temperature: 0.7})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(reply), nil
}

// SuggestTasks proposes an initial task list for a project
func (s *Service) SuggestTasks(ctx context.Context, name, description string) ([]string, error) {
	prompt := fmt.Sprintf(
		"Suggest 5 to 8 concrete starter tasks for a project named %q. Description: %s\n"+
			"Reply with a JSON object of the form {\"tasks\": [\"...\"]}.",
		name, description)

	reply, err := s.client.Complete(ctx, []ChatMessage{
		{Role: "system", Content: "You help plan projects. Reply only with JSON."},
		{Role: "user", Content: prompt},
	}, CompletionOptions{MaxTokens: 500, Temperature: 0.6, JSONResponse: true})
	if err != nil {
		return nil, err
	}

	var out struct {
		Tasks []string `json:"tasks"`
	}
	if err := json.Unmarshal([]byte(reply), &out); err != nil {
		return nil, fmt.Errorf("model returned invalid JSON: %w", err)
	}
	return out.Tasks, nil
}

// SummarizeItems produces a short summary of a collection of business
// items, for example recent invoices or open tasks
func (s *Service) SummarizeItems(ctx context.Context, itemType string, items []interface{}) (string, error) {
	encoded, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("encode items: %w", err)
	}

	prompt := fmt.Sprintf("Summarize the following %s in a short paragraph with the key figures:\n%s",
		itemType, encoded)

	reply, err := s.client.Complete(ctx, []ChatMessage{
		{Role: "user", Content: prompt},
	}, CompletionOptions{MaxTokens: 800, Temperature: 0.5})
	if err != nil {
		return "", err
	}
	if reply == "" {
		reply = fallbackSummary
	}
	return reply, nil
}

// DetectAndTranslate translates text into the target language, detecting
// the source language. The original text is returned when the model has
// nothing to say.
func (s *Service) DetectAndTranslate(ctx context.Context, text, targetLanguage string) (string, error) {
	prompt := fmt.Sprintf(
		"Detect the language of the following text and translate it to %s. "+
			"Reply with the translation only.\n\n%s", targetLanguage, text)

	reply, err := s.client.Complete(ctx, []ChatMessage{
		{Role: "user", Content: prompt},
	}, CompletionOptions{MaxTokens: 500, Temperature: 0.3})
	if err != nil {
		return "", err
	}
	if reply == "" {
		return text, nil
	}
	return reply, nil
}
