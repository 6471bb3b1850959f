package models

import (
	"github.com/google/uuid"
)

// TaskComment represents a comment on a task, with optional threading
type TaskComment struct {
	BaseModel

	TaskID      uuid.UUID `json:"taskId" db:"task_id"`
	MyCompanyID uuid.UUID `json:"myCompanyId" db:"my_company_id"`
	UserID      uuid.UUID `json:"userId" db:"user_id"`

	Content     string `json:"content" db:"content"`
	ContentHTML string `json:"contentHtml,omitempty" db:"content_html"`

	ParentCommentID *uuid.UUID `json:"parentCommentId,omitempty" db:"parent_comment_id"`

	MentionedUsers StringArray `json:"mentionedUsers" db:"mentioned_users"`
	Attachments    StringArray `json:"attachments" db:"attachments"`

	// Reactions maps emoji to the list of user ids that reacted
	Reactions Variables `json:"reactions" db:"reactions"`
}
