// Package repositories provides PostgreSQL data access for profiles,
// opportunities, and matches.
package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/prospera-ai/prospera-engine/pkg/apperrors"
	"github.com/prospera-ai/prospera-engine/pkg/database"
	"github.com/prospera-ai/prospera-engine/pkg/models"
)

// ProfileRepository provides data access for company profiles.
type ProfileRepository interface {
	Upsert(ctx context.Context, profile *models.CompanyProfile) error
	GetByID(ctx context.Context, companyID uuid.UUID) (*models.CompanyProfile, error)
	List(ctx context.Context) ([]*models.CompanyProfile, error)
	Delete(ctx context.Context, companyID uuid.UUID) error
}

type profileRepository struct {
	db *database.DB
}

// NewProfileRepository creates a new ProfileRepository.
func NewProfileRepository(db *database.DB) ProfileRepository {
	return &profileRepository{db: db}
}

var _ ProfileRepository = (*profileRepository)(nil)

func (r *profileRepository) Upsert(ctx context.Context, profile *models.CompanyProfile) error {
	now := time.Now().UTC()
	if profile.CompanyID == uuid.Nil {
		profile.CompanyID = uuid.New()
	}
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = now
	}
	profile.UpdatedAt = now

	query := `
		INSERT INTO company_profiles (
			company_id, company_name, industry, business_type, company_size,
			description, services, target_markets, key_challenges,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (company_id) DO UPDATE SET
			company_name = EXCLUDED.company_name,
			industry = EXCLUDED.industry,
			business_type = EXCLUDED.business_type,
			company_size = EXCLUDED.company_size,
			description = EXCLUDED.description,
			services = EXCLUDED.services,
			target_markets = EXCLUDED.target_markets,
			key_challenges = EXCLUDED.key_challenges,
			updated_at = EXCLUDED.updated_at`

	_, err := r.db.Exec(ctx, query,
		profile.CompanyID, profile.CompanyName, profile.Industry,
		profile.BusinessType, profile.CompanySize, profile.Description,
		profile.Services, profile.TargetMarkets, profile.KeyChallenges,
		profile.CreatedAt, profile.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert company profile: %w", err)
	}

	return nil
}

func (r *profileRepository) GetByID(ctx context.Context, companyID uuid.UUID) (*models.CompanyProfile, error) {
	query := `
		SELECT company_id, company_name, industry, business_type, company_size,
		       description, services, target_markets, key_challenges,
		       created_at, updated_at
		FROM company_profiles
		WHERE company_id = $1`

	row := r.db.QueryRow(ctx, query, companyID)
	return scanProfileRow(row)
}

func (r *profileRepository) List(ctx context.Context) ([]*models.CompanyProfile, error) {
	query := `
		SELECT company_id, company_name, industry, business_type, company_size,
		       description, services, target_markets, key_challenges,
		       created_at, updated_at
		FROM company_profiles
		ORDER BY company_name ASC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query company profiles: %w", err)
	}
	defer rows.Close()

	profiles := make([]*models.CompanyProfile, 0)
	for rows.Next() {
		profile, err := scanProfileRow(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, profile)
	}

	return profiles, rows.Err()
}

func (r *profileRepository) Delete(ctx context.Context, companyID uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM company_profiles WHERE company_id = $1`, companyID)
	if err != nil {
		return fmt.Errorf("failed to delete company profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func scanProfileRow(row pgx.Row) (*models.CompanyProfile, error) {
	var profile models.CompanyProfile
	err := row.Scan(
		&profile.CompanyID, &profile.CompanyName, &profile.Industry,
		&profile.BusinessType, &profile.CompanySize, &profile.Description,
		&profile.Services, &profile.TargetMarkets, &profile.KeyChallenges,
		&profile.CreatedAt, &profile.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan company profile: %w", err)
	}
	return &profile, nil
}
