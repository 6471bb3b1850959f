package storage

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/verlyx/hub-server/internal/models"
)

// Common errors
var (
	ErrNotFound     = errors.New("not found")
	ErrDuplicateKey = errors.New("duplicate key")
	ErrInvalidData  = errors.New("invalid data")
)

// TemplateFilters represents filters for template listings
type TemplateFilters struct {
	TemplateType *models.TemplateType
	IsActive     *bool
}

// Store defines the storage interface
type Store interface {
	// Transaction support
	BeginTx(ctx context.Context) (Store, error)
	Commit() error
	Rollback() error

	// User methods
	CreateUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error

	// Company methods
	CreateCompany(ctx context.Context, company *models.Company) error
	GetCompany(ctx context.Context, id uuid.UUID) (*models.Company, error)
	UpdateCompany(ctx context.Context, company *models.Company) error
	DeleteCompany(ctx context.Context, id uuid.UUID) error
	ListCompaniesByOwner(ctx context.Context, ownerID uuid.UUID) ([]*models.Company, error)

	// Membership methods
	CreateCompanyUser(ctx context.Context, member *models.CompanyUser) error
	GetCompanyUser(ctx context.Context, companyID, memberID uuid.UUID) (*models.CompanyUser, error)
	GetMembershipRole(ctx context.Context, userID, companyID uuid.UUID) (models.Role, error)
	UpdateCompanyUserRole(ctx context.Context, companyID, memberID uuid.UUID, role models.Role) (*models.CompanyUser, error)
	DeleteCompanyUser(ctx context.Context, companyID, memberID uuid.UUID) error
	ListCompanyUsers(ctx context.Context, companyID uuid.UUID) ([]*models.CompanyUser, error)

	// My-company methods
	CreateMyCompany(ctx context.Context, mc *models.MyCompany) error
	GetMyCompany(ctx context.Context, ownerID, id uuid.UUID) (*models.MyCompany, error)
	UpdateMyCompany(ctx context.Context, mc *models.MyCompany) error
	DeleteMyCompany(ctx context.Context, ownerID, id uuid.UUID) error
	ListMyCompanies(ctx context.Context, ownerID uuid.UUID) ([]*models.MyCompany, error)

	// Project methods
	CreateProject(ctx context.Context, project *models.Project) error
	GetProject(ctx context.Context, id uuid.UUID) (*models.Project, error)
	UpdateProject(ctx context.Context, project *models.Project) error
	DeleteProject(ctx context.Context, id uuid.UUID) error
	ListProjects(ctx context.Context, companyID uuid.UUID, limit, offset int) ([]*models.Project, int64, error)

	// Task methods
	CreateTask(ctx context.Context, task *models.Task) error
	GetTask(ctx context.Context, id uuid.UUID) (*models.Task, error)
	UpdateTask(ctx context.Context, task *models.Task) error
	DeleteTask(ctx context.Context, id uuid.UUID) error
	ListTasks(ctx context.Context, projectID uuid.UUID, limit, offset int) ([]*models.Task, int64, error)

	// Task comment methods
	CreateTaskComment(ctx context.Context, comment *models.TaskComment) error
	GetTaskComment(ctx context.Context, id uuid.UUID) (*models.TaskComment, error)
	UpdateTaskComment(ctx context.Context, comment *models.TaskComment) error
	DeleteTaskComment(ctx context.Context, id uuid.UUID) error
	ListTaskComments(ctx context.Context, taskID uuid.UUID) ([]models.Variables, error)
	ListCommentReplies(ctx context.Context, parentCommentID uuid.UUID) ([]models.Variables, error)
	AddCommentReaction(ctx context.Context, commentID uuid.UUID, emoji string, userID uuid.UUID) (models.Variables, error)
	RemoveCommentReaction(ctx context.Context, commentID uuid.UUID, emoji string, userID uuid.UUID) (models.Variables, error)

	// PDF template methods
	CreateTemplate(ctx context.Context, tpl *models.PDFTemplate) error
	GetTemplate(ctx context.Context, id uuid.UUID) (*models.PDFTemplate, error)
	UpdateTemplate(ctx context.Context, tpl *models.PDFTemplate) error
	DeleteTemplate(ctx context.Context, id uuid.UUID) error
	ListTemplates(ctx context.Context, filters TemplateFilters) ([]*models.PDFTemplate, error)

	// Generated document methods
	CreateGeneratedDocument(ctx context.Context, doc *models.GeneratedDocument) error
	GetGeneratedDocument(ctx context.Context, id uuid.UUID) (*models.GeneratedDocument, error)
	DeleteGeneratedDocument(ctx context.Context, id uuid.UUID) error
	ListGeneratedDocuments(ctx context.Context, templateID *uuid.UUID) ([]*models.GeneratedDocument, error)

	// Conversation methods
	CreateConversation(ctx context.Context, conv *models.Conversation) error
	GetConversation(ctx context.Context, userID, id uuid.UUID) (*models.Conversation, error)
	UpdateConversation(ctx context.Context, conv *models.Conversation) error
	DeleteConversation(ctx context.Context, userID, id uuid.UUID) error
	ListConversations(ctx context.Context, userID uuid.UUID, contextType *models.ContextType) ([]*models.Conversation, error)

	// Message methods
	CreateMessage(ctx context.Context, msg *models.Message) error
	ListMessages(ctx context.Context, conversationID uuid.UUID, limit int) ([]*models.Message, error)
	ListRecentMessages(ctx context.Context, conversationID uuid.UUID, n int) ([]*models.Message, error)

	// Close the store
	Close() error
}
