package storage

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/verlyx/hub-server/internal/models"
)

// ========== Company methods ==========

// CreateCompany creates a new company
func (s *PostgresStore) CreateCompany(ctx context.Context, company *models.Company) error {
	if company.ID == uuid.Nil {
		company.ID = uuid.New()
	}

	now := time.Now()
	company.CreatedAt = now
	company.UpdatedAt = now

	query := `
		INSERT INTO companies (
			id, created_at, updated_at, owner_user_id, name, type, description,
			logo_url, primary_color, secondary_color, settings, is_active
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12
		)`

	_, err := s.getDB().ExecContext(ctx, query,
		company.ID, company.CreatedAt, company.UpdatedAt, company.OwnerUserID,
		company.Name, company.Type, company.Description, company.LogoURL,
		company.PrimaryColor, company.SecondaryColor, company.Settings, company.IsActive,
	)

	return mapError(err)
}

// GetCompany gets a company by ID
func (s *PostgresStore) GetCompany(ctx context.Context, id uuid.UUID) (*models.Company, error) {
	query := `
		SELECT id, created_at, updated_at, owner_user_id, name, type, description,
		       logo_url, primary_color, secondary_color, settings, is_active
		FROM companies
		WHERE id = $1`

	company := &models.Company{}
	err := s.getDB().QueryRowContext(ctx, query, id).Scan(
		&company.ID, &company.CreatedAt, &company.UpdatedAt, &company.OwnerUserID,
		&company.Name, &company.Type, &company.Description, &company.LogoURL,
		&company.PrimaryColor, &company.SecondaryColor, &company.Settings, &company.IsActive,
	)
	if err != nil {
		return nil, mapError(err)
	}

	return company, nil
}

// UpdateCompany updates a company
func (s *PostgresStore) UpdateCompany(ctx context.Context, company *models.Company) error {
	company.UpdatedAt = time.Now()

	query := `
		UPDATE companies SET
			updated_at = $2, name = $3, type = $4, description = $5,
			logo_url = $6, primary_color = $7, secondary_color = $8,
			settings = $9, is_active = $10
		WHERE id = $1`

	result, err := s.getDB().ExecContext(ctx, query,
		company.ID, company.UpdatedAt, company.Name, company.Type,
		company.Description, company.LogoURL, company.PrimaryColor,
		company.SecondaryColor, company.Settings, company.IsActive,
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

// DeleteCompany deletes a company. Memberships cascade via FK.
func (s *PostgresStore) DeleteCompany(ctx context.Context, id uuid.UUID) error {
	result, err := s.getDB().ExecContext(ctx, `DELETE FROM companies WHERE id = $1`, id)
	if err != nil {
		return mapError(err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

// ListCompaniesByOwner lists active companies owned by a user, newest first
func (s *PostgresStore) ListCompaniesByOwner(ctx context.Context, ownerID uuid.UUID) ([]*models.Company, error) {
	query := `
		SELECT id, created_at, updated_at, owner_user_id, name, type, description,
		       logo_url, primary_color, secondary_color, settings, is_active
		FROM companies
		WHERE owner_user_id = $1 AND is_active = true
		ORDER BY created_at DESC`

	rows, err := s.getDB().QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	companies := make([]*models.Company, 0)
	for rows.Next() {
		company := &models.Company{}
		if err := rows.Scan(
			&company.ID, &company.CreatedAt, &company.UpdatedAt, &company.OwnerUserID,
			&company.Name, &company.Type, &company.Description, &company.LogoURL,
			&company.PrimaryColor, &company.SecondaryColor, &company.Settings, &company.IsActive,
		); err != nil {
			return nil, err
		}
		companies = append(companies, company)
	}

	return companies, rows.Err()
}

// ========== Membership methods ==========

// CreateCompanyUser creates a membership row
func (s *PostgresStore) CreateCompanyUser(ctx context.Context, member *models.CompanyUser) error {
	if member.ID == uuid.Nil {
		member.ID = uuid.New()
	}

	now := time.Now()
	member.CreatedAt = now
	member.UpdatedAt = now
	if member.JoinedAt.IsZero() {
		member.JoinedAt = now
	}

	query := `
		INSERT INTO company_users (
			id, created_at, updated_at, company_id, user_id, role, permissions,
			is_active, invited_by, invited_at, joined_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
		)`

	_, err := s.getDB().ExecContext(ctx, query,
		member.ID, member.CreatedAt, member.UpdatedAt, member.CompanyID,
		member.UserID, member.Role, member.Permissions, member.IsActive,
		member.InvitedBy, member.InvitedAt, member.JoinedAt,
	)

	return mapError(err)
}

// GetCompanyUser gets a membership row by company and row id
func (s *PostgresStore) GetCompanyUser(ctx context.Context, companyID, memberID uuid.UUID) (*models.CompanyUser, error) {
	query := `
		SELECT id, created_at, updated_at, company_id, user_id, role, permissions,
		       is_active, invited_by, invited_at, joined_at
		FROM company_users
		WHERE id = $1 AND company_id = $2`

	member := &models.CompanyUser{}
	err := s.getDB().QueryRowContext(ctx, query, memberID, companyID).Scan(
		&member.ID, &member.CreatedAt, &member.UpdatedAt, &member.CompanyID,
		&member.UserID, &member.Role, &member.Permissions, &member.IsActive,
		&member.InvitedBy, &member.InvitedAt, &member.JoinedAt,
	)
	if err != nil {
		return nil, mapError(err)
	}

	return member, nil
}

// GetMembershipRole returns the active membership role of a user in a company
func (s *PostgresStore) GetMembershipRole(ctx context.Context, userID, companyID uuid.UUID) (models.Role, error) {
	query := `
		SELECT role
		FROM company_users
		WHERE user_id = $1 AND company_id = $2 AND is_active = true`

	var role models.Role
	err := s.getDB().QueryRowContext(ctx, query, userID, companyID).Scan(&role)
	if err != nil {
		return "", mapError(err)
	}

	return role, nil
}

// UpdateCompanyUserRole updates a member's role
func (s *PostgresStore) UpdateCompanyUserRole(ctx context.Context, companyID, memberID uuid.UUID, role models.Role) (*models.CompanyUser, error) {
	query := `
		UPDATE company_users SET role = $3, updated_at = $4
		WHERE id = $1 AND company_id = $2`

	result, err := s.getDB().ExecContext(ctx, query, memberID, companyID, role, time.Now())
	if err != nil {
		return nil, mapError(err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return nil, ErrNotFound
	}

	return s.GetCompanyUser(ctx, companyID, memberID)
}

// DeleteCompanyUser removes a member from a company
func (s *PostgresStore) DeleteCompanyUser(ctx context.Context, companyID, memberID uuid.UUID) error {
	result, err := s.getDB().ExecContext(ctx,
		`DELETE FROM company_users WHERE id = $1 AND company_id = $2`, memberID, companyID)
	if err != nil {
		return mapError(err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

// ListCompanyUsers lists active members of a company ordered by role
func (s *PostgresStore) ListCompanyUsers(ctx context.Context, companyID uuid.UUID) ([]*models.CompanyUser, error) {
	query := `
		SELECT id, created_at, updated_at, company_id, user_id, role, permissions,
		       is_active, invited_by, invited_at, joined_at
		FROM company_users
		WHERE company_id = $1 AND is_active = true
		ORDER BY role ASC`

	rows, err := s.getDB().QueryContext(ctx, query, companyID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	members := make([]*models.CompanyUser, 0)
	for rows.Next() {
		member := &models.CompanyUser{}
		if err := rows.Scan(
			&member.ID, &member.CreatedAt, &member.UpdatedAt, &member.CompanyID,
			&member.UserID, &member.Role, &member.Permissions, &member.IsActive,
			&member.InvitedBy, &member.InvitedAt, &member.JoinedAt,
		); err != nil {
			return nil, err
		}
		members = append(members, member)
	}

	return members, rows.Err()
}
