package storage

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/verlyx/hub-server/internal/models"
)

const myCompanyColumns = `
	id, created_at, updated_at, owner_user_id, name, type, description,
	logo_url, primary_color, secondary_color, tax_id, industry, website,
	phone, email, address, city, country, settings, is_active`

// CreateMyCompany creates a business profile
func (s *PostgresStore) CreateMyCompany(ctx context.Context, mc *models.MyCompany) error {
	if mc.ID == uuid.Nil {
		mc.ID = uuid.New()
	}

	now := time.Now()
	mc.CreatedAt = now
	mc.UpdatedAt = now

	query := `
		INSERT INTO my_companies (
			id, created_at, updated_at, owner_user_id, name, type, description,
			logo_url, primary_color, secondary_color, tax_id, industry, website,
			phone, email, address, city, country, settings, is_active
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			$11, $12, $13, $14, $15, $16, $17, $18, $19, $20
		)`

	_, err := s.getDB().ExecContext(ctx, query,
		mc.ID, mc.CreatedAt, mc.UpdatedAt, mc.OwnerUserID, mc.Name, mc.Type,
		mc.Description, mc.LogoURL, mc.PrimaryColor, mc.SecondaryColor,
		mc.TaxID, mc.Industry, mc.Website, mc.Phone, mc.Email, mc.Address,
		mc.City, mc.Country, mc.Settings, mc.IsActive,
	)

	return mapError(err)
}

// GetMyCompany gets a business profile by owner and id
func (s *PostgresStore) GetMyCompany(ctx context.Context, ownerID, id uuid.UUID) (*models.MyCompany, error) {
	query := `SELECT ` + myCompanyColumns + `
		FROM my_companies
		WHERE id = $1 AND owner_user_id = $2`

	row := s.getDB().QueryRowContext(ctx, query, id, ownerID)

	mc := &models.MyCompany{}
	err := row.Scan(
		&mc.ID, &mc.CreatedAt, &mc.UpdatedAt, &mc.OwnerUserID, &mc.Name, &mc.Type,
		&mc.Description, &mc.LogoURL, &mc.PrimaryColor, &mc.SecondaryColor,
		&mc.TaxID, &mc.Industry, &mc.Website, &mc.Phone, &mc.Email, &mc.Address,
		&mc.City, &mc.Country, &mc.Settings, &mc.IsActive,
	)
	if err != nil {
		return nil, mapError(err)
	}

	return mc, nil
}

// UpdateMyCompany updates a business profile
func (s *PostgresStore) UpdateMyCompany(ctx context.Context, mc *models.MyCompany) error {
	mc.UpdatedAt = time.Now()

	query := `
		UPDATE my_companies SET
			updated_at = $3, name = $4, type = $5, description = $6,
			logo_url = $7, primary_color = $8, secondary_color = $9,
			tax_id = $10, industry = $11, website = $12, phone = $13,
			email = $14, address = $15, city = $16, country = $17,
			settings = $18, is_active = $19
		WHERE id = $1 AND owner_user_id = $2`

	result, err := s.getDB().ExecContext(ctx, query,
		mc.ID, mc.OwnerUserID, mc.UpdatedAt, mc.Name, mc.Type, mc.Description,
		mc.LogoURL, mc.PrimaryColor, mc.SecondaryColor, mc.TaxID, mc.Industry,
		mc.Website, mc.Phone, mc.Email, mc.Address, mc.City, mc.Country,
		mc.Settings, mc.IsActive,
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

// DeleteMyCompany deletes a business profile
func (s *PostgresStore) DeleteMyCompany(ctx context.Context, ownerID, id uuid.UUID) error {
	result, err := s.getDB().ExecContext(ctx,
		`DELETE FROM my_companies WHERE id = $1 AND owner_user_id = $2`, id, ownerID)
	if err != nil {
		return mapError(err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

// ListMyCompanies lists active business profiles of a user, newest first
func (s *PostgresStore) ListMyCompanies(ctx context.Context, ownerID uuid.UUID) ([]*models.MyCompany, error) {
	query := `SELECT ` + myCompanyColumns + `
		FROM my_companies
		WHERE owner_user_id = $1 AND is_active = true
		ORDER BY created_at DESC`

	rows, err := s.getDB().QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	list := make([]*models.MyCompany, 0)
	for rows.Next() {
		mc := &models.MyCompany{}
		if err := rows.Scan(
			&mc.ID, &mc.CreatedAt, &mc.UpdatedAt, &mc.OwnerUserID, &mc.Name, &mc.Type,
			&mc.Description, &mc.LogoURL, &mc.PrimaryColor, &mc.SecondaryColor,
			&mc.TaxID, &mc.Industry, &mc.Website, &mc.Phone, &mc.Email, &mc.Address,
			&mc.City, &mc.Country, &mc.Settings, &mc.IsActive,
		); err != nil {
			return nil, err
		}
		list = append(list, mc)
	}

	return list, rows.Err()
}
