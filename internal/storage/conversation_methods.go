package storage

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/verlyx/hub-server/internal/models"
)

// ========== Conversation methods ==========

// CreateConversation creates a conversation
func (s *PostgresStore) CreateConversation(ctx context.Context, conv *models.Conversation) error {
	if conv.ID == uuid.Nil {
		conv.ID = uuid.New()
	}
	if conv.ContextType == "" {
		conv.ContextType = models.ContextGeneral
	}

	now := time.Now()
	conv.CreatedAt = now
	conv.UpdatedAt = now

	query := `
		INSERT INTO ai_conversations (
			id, created_at, updated_at, user_id, title, context_type, is_pinned
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		)`

	_, err := s.getDB().ExecContext(ctx, query,
		conv.ID, conv.CreatedAt, conv.UpdatedAt, conv.UserID, conv.Title,
		conv.ContextType, conv.IsPinned,
	)

	return mapError(err)
}

// GetConversation gets a conversation owned by the user
func (s *PostgresStore) GetConversation(ctx context.Context, userID, id uuid.UUID) (*models.Conversation, error) {
	query := `
		SELECT id, created_at, updated_at, user_id, title, context_type, is_pinned
		FROM ai_conversations
		WHERE id = $1 AND user_id = $2`

	conv := &models.Conversation{}
	err := s.getDB().QueryRowContext(ctx, query, id, userID).Scan(
		&conv.ID, &conv.CreatedAt, &conv.UpdatedAt, &conv.UserID, &conv.Title,
		&conv.ContextType, &conv.IsPinned,
	)
	if err != nil {
		return nil, mapError(err)
	}

	return conv, nil
}

// UpdateConversation updates title/pin state
func (s *PostgresStore) UpdateConversation(ctx context.Context, conv *models.Conversation) error {
	conv.UpdatedAt = time.Now()

	query := `
		UPDATE ai_conversations SET
			updated_at = $3, title = $4, is_pinned = $5
		WHERE id = $1 AND user_id = $2`

	result, err := s.getDB().ExecContext(ctx, query,
		conv.ID, conv.UserID, conv.UpdatedAt, conv.Title, conv.IsPinned,
	)
	if err != nil {
		return mapError(err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

// DeleteConversation deletes a conversation. Messages cascade via FK.
func (s *PostgresStore) DeleteConversation(ctx context.Context, userID, id uuid.UUID) error {
	result, err := s.getDB().ExecContext(ctx,
		`DELETE FROM ai_conversations WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return mapError(err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

// ListConversations lists the user's conversations, pinned first then
// most recently updated, with message counts
func (s *PostgresStore) ListConversations(ctx context.Context, userID uuid.UUID, contextType *models.ContextType) ([]*models.Conversation, error) {
	query := `
		SELECT c.id, c.created_at, c.updated_at, c.user_id, c.title,
		       c.context_type, c.is_pinned,
		       (SELECT COUNT(*) FROM ai_messages m WHERE m.conversation_id = c.id)
		FROM ai_conversations c
		WHERE c.user_id = $1`

	args := []interface{}{userID}
	if contextType != nil {
		query += " AND c.context_type = $2"
		args = append(args, *contextType)
	}
	query += " ORDER BY c.is_pinned DESC, c.updated_at DESC"

	rows, err := s.getDB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	conversations := make([]*models.Conversation, 0)
	for rows.Next() {
		conv := &models.Conversation{}
		if err := rows.Scan(
			&conv.ID, &conv.CreatedAt, &conv.UpdatedAt, &conv.UserID, &conv.Title,
			&conv.ContextType, &conv.IsPinned, &conv.MessageCount,
		); err != nil {
			return nil, err
		}
		conversations = append(conversations, conv)
	}

	return conversations, rows.Err()
}

// ========== Message methods ==========

// CreateMessage appends a message to a conversation and touches the
// conversation's updated_at
func (s *PostgresStore) CreateMessage(ctx context.Context, msg *models.Message) error {
	if msg.ID == uuid.Nil {
		msg.ID = uuid.New()
	}
	msg.CreatedAt = time.Now()

	query := `
		INSERT INTO ai_messages (id, created_at, conversation_id, role, content)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := s.getDB().ExecContext(ctx, query,
		msg.ID, msg.CreatedAt, msg.ConversationID, msg.Role, msg.Content,
	)
	if err != nil {
		return mapError(err)
	}

	_, err = s.getDB().ExecContext(ctx,
		`UPDATE ai_conversations SET updated_at = $2 WHERE id = $1`,
		msg.ConversationID, msg.CreatedAt,
	)
	return mapError(err)
}

// ListMessages lists messages in chronological order, bounded by limit.
// A non-positive limit falls back to a 500 message page.
func (s *PostgresStore) ListMessages(ctx context.Context, conversationID uuid.UUID, limit int) ([]*models.Message, error) {
	if limit <= 0 {
		limit = 500
	}

	query := `
		SELECT id, created_at, conversation_id, role, content
		FROM ai_messages
		WHERE conversation_id = $1
		ORDER BY created_at ASC
		LIMIT $2`

	rows, err := s.getDB().QueryContext(ctx, query, conversationID, limit)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	return scanMessages(rows)
}

// ListRecentMessages returns the last n messages in chronological order,
// used as the completion context window
func (s *PostgresStore) ListRecentMessages(ctx context.Context, conversationID uuid.UUID, n int) ([]*models.Message, error) {
	query := `
		SELECT id, created_at, conversation_id, role, content
		FROM (
			SELECT id, created_at, conversation_id, role, content
			FROM ai_messages
			WHERE conversation_id = $1
			ORDER BY created_at DESC
			LIMIT $2
		) recent
		ORDER BY created_at ASC`

	rows, err := s.getDB().QueryContext(ctx, query, conversationID, n)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	return scanMessages(rows)
}

func scanMessages(rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}) ([]*models.Message, error) {
	messages := make([]*models.Message, 0)
	for rows.Next() {
		msg := &models.Message{}
		if err := rows.Scan(&msg.ID, &msg.CreatedAt, &msg.ConversationID, &msg.Role, &msg.Content); err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}
