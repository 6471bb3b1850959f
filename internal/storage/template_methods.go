package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/verlyx/hub-server/internal/models"
)

// ========== PDF template methods ==========

// CreateTemplate creates a document template
func (s *PostgresStore) CreateTemplate(ctx context.Context, tpl *models.PDFTemplate) error {
	if tpl.ID == uuid.Nil {
		tpl.ID = uuid.New()
	}

	now := time.Now()
	tpl.CreatedAt = now
	tpl.UpdatedAt = now

	query := `
		INSERT INTO pdf_templates (
			id, created_at, updated_at, name, template_type, template_data,
			description, is_active, created_by
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9
		)`

	_, err := s.getDB().ExecContext(ctx, query,
		tpl.ID, tpl.CreatedAt, tpl.UpdatedAt, tpl.Name, tpl.TemplateType,
		tpl.TemplateData, tpl.Description, tpl.IsActive, tpl.CreatedBy,
	)

	return mapError(err)
}

// GetTemplate gets a template by ID
func (s *PostgresStore) GetTemplate(ctx context.Context, id uuid.UUID) (*models.PDFTemplate, error) {
	query := `
		SELECT id, created_at, updated_at, name, template_type, template_data,
		       description, is_active, created_by
		FROM pdf_templates
		WHERE id = $1`

	tpl := &models.PDFTemplate{}
	err := s.getDB().QueryRowContext(ctx, query, id).Scan(
		&tpl.ID, &tpl.CreatedAt, &tpl.UpdatedAt, &tpl.Name, &tpl.TemplateType,
		&tpl.TemplateData, &tpl.Description, &tpl.IsActive, &tpl.CreatedBy,
	)
	if err != nil {
		return nil, mapError(err)
	}

	return tpl, nil
}

// UpdateTemplate updates a template. Identity is immutable, schema and
// content are not.
func (s *PostgresStore) UpdateTemplate(ctx context.Context, tpl *models.PDFTemplate) error {
	tpl.UpdatedAt = time.Now()

	query := `
		UPDATE pdf_templates SET
			updated_at = $2, name = $3, template_type = $4, template_data = $5,
			description = $6, is_active = $7
		WHERE id = $1`

	result, err := s.getDB().ExecContext(ctx, query,
		tpl.ID, tpl.UpdatedAt, tpl.Name, tpl.TemplateType, tpl.TemplateData,
		tpl.Description, tpl.IsActive,
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

// DeleteTemplate deletes a template
func (s *PostgresStore) DeleteTemplate(ctx context.Context, id uuid.UUID) error {
	result, err := s.getDB().ExecContext(ctx, `DELETE FROM pdf_templates WHERE id = $1`, id)
	if err != nil {
		return mapError(err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

// ListTemplates lists templates with optional type/active filters,
// newest first. The listing is unbounded, matching the API contract.
func (s *PostgresStore) ListTemplates(ctx context.Context, filters TemplateFilters) ([]*models.PDFTemplate, error) {
	query := `
		SELECT id, created_at, updated_at, name, template_type, template_data,
		       description, is_active, created_by
		FROM pdf_templates`

	args := make([]interface{}, 0, 2)
	where := ""

	if filters.TemplateType != nil {
		args = append(args, *filters.TemplateType)
		where += fmt.Sprintf(" WHERE template_type = $%d", len(args))
	}
	if filters.IsActive != nil {
		args = append(args, *filters.IsActive)
		if where == "" {
			where = fmt.Sprintf(" WHERE is_active = $%d", len(args))
		} else {
			where += fmt.Sprintf(" AND is_active = $%d", len(args))
		}
	}

	query += where + " ORDER BY created_at DESC"

	rows, err := s.getDB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	templates := make([]*models.PDFTemplate, 0)
	for rows.Next() {
		tpl := &models.PDFTemplate{}
		if err := rows.Scan(
			&tpl.ID, &tpl.CreatedAt, &tpl.UpdatedAt, &tpl.Name, &tpl.TemplateType,
			&tpl.TemplateData, &tpl.Description, &tpl.IsActive, &tpl.CreatedBy,
		); err != nil {
			return nil, err
		}
		templates = append(templates, tpl)
	}

	return templates, rows.Err()
}

// ========== Generated document methods ==========

// CreateGeneratedDocument persists a generated PDF record
func (s *PostgresStore) CreateGeneratedDocument(ctx context.Context, doc *models.GeneratedDocument) error {
	if doc.ID == uuid.Nil {
		doc.ID = uuid.New()
	}

	now := time.Now()
	doc.CreatedAt = now
	doc.UpdatedAt = now

	query := `
		INSERT INTO generated_pdfs (
			id, created_at, updated_at, template_id, file_name, file_path,
			document_data, related_contact_id, related_project_id, created_by
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10
		)`

	_, err := s.getDB().ExecContext(ctx, query,
		doc.ID, doc.CreatedAt, doc.UpdatedAt, doc.TemplateID, doc.FileName,
		doc.FilePath, doc.DocumentData, doc.RelatedContactID,
		doc.RelatedProjectID, doc.CreatedBy,
	)

	return mapError(err)
}

// GetGeneratedDocument gets a generated PDF record by ID
func (s *PostgresStore) GetGeneratedDocument(ctx context.Context, id uuid.UUID) (*models.GeneratedDocument, error) {
	query := `
		SELECT id, created_at, updated_at, template_id, file_name, file_path,
		       document_data, related_contact_id, related_project_id, created_by
		FROM generated_pdfs
		WHERE id = $1`

	doc := &models.GeneratedDocument{}
	err := s.getDB().QueryRowContext(ctx, query, id).Scan(
		&doc.ID, &doc.CreatedAt, &doc.UpdatedAt, &doc.TemplateID, &doc.FileName,
		&doc.FilePath, &doc.DocumentData, &doc.RelatedContactID,
		&doc.RelatedProjectID, &doc.CreatedBy,
	)
	if err != nil {
		return nil, mapError(err)
	}

	return doc, nil
}

// DeleteGeneratedDocument deletes a generated PDF record
func (s *PostgresStore) DeleteGeneratedDocument(ctx context.Context, id uuid.UUID) error {
	result, err := s.getDB().ExecContext(ctx, `DELETE FROM generated_pdfs WHERE id = $1`, id)
	if err != nil {
		return mapError(err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

// ListGeneratedDocuments lists generated PDF records, optionally filtered
// by template, newest first
func (s *PostgresStore) ListGeneratedDocuments(ctx context.Context, templateID *uuid.UUID) ([]*models.GeneratedDocument, error) {
	query := `
		SELECT id, created_at, updated_at, template_id, file_name, file_path,
		       document_data, related_contact_id, related_project_id, created_by
		FROM generated_pdfs`

	args := make([]interface{}, 0, 1)
	if templateID != nil {
		query += " WHERE template_id = $1"
		args = append(args, *templateID)
	}
	query += " ORDER BY created_at DESC"

	rows, err := s.getDB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	docs := make([]*models.GeneratedDocument, 0)
	for rows.Next() {
		doc := &models.GeneratedDocument{}
		if err := rows.Scan(
			&doc.ID, &doc.CreatedAt, &doc.UpdatedAt, &doc.TemplateID, &doc.FileName,
			&doc.FilePath, &doc.DocumentData, &doc.RelatedContactID,
			&doc.RelatedProjectID, &doc.CreatedBy,
		); err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}

	return docs, rows.Err()
}
