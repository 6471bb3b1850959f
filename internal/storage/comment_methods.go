package storage

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/verlyx/hub-server/internal/models"
)

// Threading and reactions are implemented by stored functions owned by the
// database schema: get_task_comments_with_users, get_comment_replies,
// add_comment_reaction, remove_comment_reaction.

// CreateTaskComment creates a comment
func (s *PostgresStore) CreateTaskComment(ctx context.Context, comment *models.TaskComment) error {
	if comment.ID == uuid.Nil {
		comment.ID = uuid.New()
	}

	now := time.Now()
	comment.CreatedAt = now
	comment.UpdatedAt = now

	query := `
		INSERT INTO task_comments (
			id, created_at, updated_at, task_id, my_company_id, user_id,
			content, content_html, parent_comment_id, mentioned_users,
			attachments, reactions
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12
		)`

	_, err := s.getDB().ExecContext(ctx, query,
		comment.ID, comment.CreatedAt, comment.UpdatedAt, comment.TaskID,
		comment.MyCompanyID, comment.UserID, comment.Content, comment.ContentHTML,
		comment.ParentCommentID, comment.MentionedUsers, comment.Attachments,
		comment.Reactions,
	)

	return mapError(err)
}

// GetTaskComment gets a comment by ID
func (s *PostgresStore) GetTaskComment(ctx context.Context, id uuid.UUID) (*models.TaskComment, error) {
	query := `
		SELECT id, created_at, updated_at, task_id, my_company_id, user_id,
		       content, content_html, parent_comment_id, mentioned_users,
		       attachments, reactions
		FROM task_comments
		WHERE id = $1`

	comment := &models.TaskComment{}
	err := s.getDB().QueryRowContext(ctx, query, id).Scan(
		&comment.ID, &comment.CreatedAt, &comment.UpdatedAt, &comment.TaskID,
		&comment.MyCompanyID, &comment.UserID, &comment.Content, &comment.ContentHTML,
		&comment.ParentCommentID, &comment.MentionedUsers, &comment.Attachments,
		&comment.Reactions,
	)
	if err != nil {
		return nil, mapError(err)
	}

	return comment, nil
}

// UpdateTaskComment updates comment content fields
func (s *PostgresStore) UpdateTaskComment(ctx context.Context, comment *models.TaskComment) error {
	comment.UpdatedAt = time.Now()

	query := `
		UPDATE task_comments SET
			updated_at = $2, content = $3, content_html = $4,
			mentioned_users = $5, attachments = $6
		WHERE id = $1`

	result, err := s.getDB().ExecContext(ctx, query,
		comment.ID, comment.UpdatedAt, comment.Content, comment.ContentHTML,
		comment.MentionedUsers, comment.Attachments,
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

// DeleteTaskComment deletes a comment
func (s *PostgresStore) DeleteTaskComment(ctx context.Context, id uuid.UUID) error {
	result, err := s.getDB().ExecContext(ctx, `DELETE FROM task_comments WHERE id = $1`, id)
	if err != nil {
		return mapError(err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

// ListTaskComments lists a task's comments joined with author info
func (s *PostgresStore) ListTaskComments(ctx context.Context, taskID uuid.UUID) ([]models.Variables, error) {
	return s.queryJSONRows(ctx, `SELECT get_task_comments_with_users($1)`, taskID)
}

// ListCommentReplies lists replies to a comment joined with author info
func (s *PostgresStore) ListCommentReplies(ctx context.Context, parentCommentID uuid.UUID) ([]models.Variables, error) {
	return s.queryJSONRows(ctx, `SELECT get_comment_replies($1)`, parentCommentID)
}

// AddCommentReaction adds an emoji reaction and returns the updated
// reactions object
func (s *PostgresStore) AddCommentReaction(ctx context.Context, commentID uuid.UUID, emoji string, userID uuid.UUID) (models.Variables, error) {
	return s.queryJSONRow(ctx, `SELECT add_comment_reaction($1, $2, $3)`, commentID, emoji, userID)
}

// RemoveCommentReaction removes an emoji reaction and returns the updated
// reactions object
func (s *PostgresStore) RemoveCommentReaction(ctx context.Context, commentID uuid.UUID, emoji string, userID uuid.UUID) (models.Variables, error) {
	return s.queryJSONRow(ctx, `SELECT remove_comment_reaction($1, $2, $3)`, commentID, emoji, userID)
}

// queryJSONRows runs a stored function returning a set of JSON rows
func (s *PostgresStore) queryJSONRows(ctx context.Context, query string, args ...interface{}) ([]models.Variables, error) {
	rows, err := s.getDB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	results := make([]models.Variables, 0)
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		var v models.Variables
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		results = append(results, v)
	}

	return results, rows.Err()
}

// queryJSONRow runs a stored function returning a single JSON value
func (s *PostgresStore) queryJSONRow(ctx context.Context, query string, args ...interface{}) (models.Variables, error) {
	var raw []byte
	if err := s.getDB().QueryRowContext(ctx, query, args...).Scan(&raw); err != nil {
		return nil, mapError(err)
	}

	var v models.Variables
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}

	return v, nil
}
