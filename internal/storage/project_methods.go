package storage

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/verlyx/hub-server/internal/models"
)

// ========== Project methods ==========

// CreateProject creates a project
func (s *PostgresStore) CreateProject(ctx context.Context, project *models.Project) error {
	if project.ID == uuid.Nil {
		project.ID = uuid.New()
	}
	if project.Status == "" {
		project.Status = "active"
	}

	now := time.Now()
	project.CreatedAt = now
	project.UpdatedAt = now

	query := `
		INSERT INTO projects (
			id, created_at, updated_at, company_id, owner_id, name, description,
			status, color, start_date, end_date
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
		)`

	_, err := s.getDB().ExecContext(ctx, query,
		project.ID, project.CreatedAt, project.UpdatedAt, project.CompanyID,
		project.OwnerID, project.Name, project.Description, project.Status,
		project.Color, project.StartDate, project.EndDate,
	)

	return mapError(err)
}

// GetProject gets a project by ID
func (s *PostgresStore) GetProject(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	query := `
		SELECT id, created_at, updated_at, company_id, owner_id, name, description,
		       status, color, start_date, end_date
		FROM projects
		WHERE id = $1`

	project := &models.Project{}
	err := s.getDB().QueryRowContext(ctx, query, id).Scan(
		&project.ID, &project.CreatedAt, &project.UpdatedAt, &project.CompanyID,
		&project.OwnerID, &project.Name, &project.Description, &project.Status,
		&project.Color, &project.StartDate, &project.EndDate,
	)
	if err != nil {
		return nil, mapError(err)
	}

	return project, nil
}

// UpdateProject updates a project
func (s *PostgresStore) UpdateProject(ctx context.Context, project *models.Project) error {
	project.UpdatedAt = time.Now()

	query := `
		UPDATE projects SET
			updated_at = $2, name = $3, description = $4, status = $5,
			color = $6, start_date = $7, end_date = $8
		WHERE id = $1`

	result, err := s.getDB().ExecContext(ctx, query,
		project.ID, project.UpdatedAt, project.Name, project.Description,
		project.Status, project.Color, project.StartDate, project.EndDate,
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

// DeleteProject deletes a project
func (s *PostgresStore) DeleteProject(ctx context.Context, id uuid.UUID) error {
	result, err := s.getDB().ExecContext(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return mapError(err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

// ListProjects lists company projects, newest first
func (s *PostgresStore) ListProjects(ctx context.Context, companyID uuid.UUID, limit, offset int) ([]*models.Project, int64, error) {
	var total int64
	err := s.getDB().QueryRowContext(ctx,
		`SELECT COUNT(*) FROM projects WHERE company_id = $1`, companyID).Scan(&total)
	if err != nil {
		return nil, 0, mapError(err)
	}

	query := `
		SELECT id, created_at, updated_at, company_id, owner_id, name, description,
		       status, color, start_date, end_date
		FROM projects
		WHERE company_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := s.getDB().QueryContext(ctx, query, companyID, limit, offset)
	if err != nil {
		return nil, 0, mapError(err)
	}
	defer rows.Close()

	projects := make([]*models.Project, 0)
	for rows.Next() {
		project := &models.Project{}
		if err := rows.Scan(
			&project.ID, &project.CreatedAt, &project.UpdatedAt, &project.CompanyID,
			&project.OwnerID, &project.Name, &project.Description, &project.Status,
			&project.Color, &project.StartDate, &project.EndDate,
		); err != nil {
			return nil, 0, err
		}
		projects = append(projects, project)
	}

	return projects, total, rows.Err()
}

// ========== Task methods ==========

// CreateTask creates a task
func (s *PostgresStore) CreateTask(ctx context.Context, task *models.Task) error {
	if task.ID == uuid.Nil {
		task.ID = uuid.New()
	}
	if task.Status == "" {
		task.Status = "todo"
	}
	if task.Priority == "" {
		task.Priority = "medium"
	}

	now := time.Now()
	task.CreatedAt = now
	task.UpdatedAt = now

	query := `
		INSERT INTO tasks (
			id, created_at, updated_at, project_id, company_id, title, description,
			status, priority, assignee_id, due_date
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
		)`

	_, err := s.getDB().ExecContext(ctx, query,
		task.ID, task.CreatedAt, task.UpdatedAt, task.ProjectID, task.CompanyID,
		task.Title, task.Description, task.Status, task.Priority,
		task.AssigneeID, task.DueDate,
	)

	return mapError(err)
}

// GetTask gets a task by ID
func (s *PostgresStore) GetTask(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	query := `
		SELECT id, created_at, updated_at, project_id, company_id, title, description,
		       status, priority, assignee_id, due_date
		FROM tasks
		WHERE id = $1`

	task := &models.Task{}
	err := s.getDB().QueryRowContext(ctx, query, id).Scan(
		&task.ID, &task.CreatedAt, &task.UpdatedAt, &task.ProjectID, &task.CompanyID,
		&task.Title, &task.Description, &task.Status, &task.Priority,
		&task.AssigneeID, &task.DueDate,
	)
	if err != nil {
		return nil, mapError(err)
	}

	return task, nil
}

// UpdateTask updates a task
func (s *PostgresStore) UpdateTask(ctx context.Context, task *models.Task) error {
	task.UpdatedAt = time.Now()

	query := `
		UPDATE tasks SET
			updated_at = $2, title = $3, description = $4, status = $5,
			priority = $6, assignee_id = $7, due_date = $8
		WHERE id = $1`

	result, err := s.getDB().ExecContext(ctx, query,
		task.ID, task.UpdatedAt, task.Title, task.Description, task.Status,
		task.Priority, task.AssigneeID, task.DueDate,
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

// DeleteTask deletes a task
func (s *PostgresStore) DeleteTask(ctx context.Context, id uuid.UUID) error {
	result, err := s.getDB().ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return mapError(err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

// ListTasks lists project tasks, newest first
func (s *PostgresStore) ListTasks(ctx context.Context, projectID uuid.UUID, limit, offset int) ([]*models.Task, int64, error) {
	var total int64
	err := s.getDB().QueryRowContext(ctx,
		`SELECT COUNT(*) FROM tasks WHERE project_id = $1`, projectID).Scan(&total)
	if err != nil {
		return nil, 0, mapError(err)
	}

	query := `
		SELECT id, created_at, updated_at, project_id, company_id, title, description,
		       status, priority, assignee_id, due_date
		FROM tasks
		WHERE project_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := s.getDB().QueryContext(ctx, query, projectID, limit, offset)
	if err != nil {
		return nil, 0, mapError(err)
	}
	defer rows.Close()

	tasks := make([]*models.Task, 0)
	for rows.Next() {
		task := &models.Task{}
		if err := rows.Scan(
			&task.ID, &task.CreatedAt, &task.UpdatedAt, &task.ProjectID, &task.CompanyID,
			&task.Title, &task.Description, &task.Status, &task.Priority,
			&task.AssigneeID, &task.DueDate,
		); err != nil {
			return nil, 0, err
		}
		tasks = append(tasks, task)
	}

	return tasks, total, rows.Err()
}
