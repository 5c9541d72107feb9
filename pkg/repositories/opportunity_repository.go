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

// OpportunityRepository provides data access for the opportunity catalog.
type OpportunityRepository interface {
	Upsert(ctx context.Context, opp *models.Opportunity) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Opportunity, error)
	List(ctx context.Context) ([]*models.Opportunity, error)
	ListByType(ctx context.Context, oppType models.OpportunityType) ([]*models.Opportunity, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int, error)
}

type opportunityRepository struct {
	db *database.DB
}

// NewOpportunityRepository creates a new OpportunityRepository.
func NewOpportunityRepository(db *database.DB) OpportunityRepository {
	return &opportunityRepository{db: db}
}

var _ OpportunityRepository = (*opportunityRepository)(nil)

func (r *opportunityRepository) Upsert(ctx context.Context, opp *models.Opportunity) error {
	if !models.IsValidOpportunityType(opp.Type) {
		return fmt.Errorf("%w: %q", apperrors.ErrInvalidOpportunityType, opp.Type)
	}

	if opp.ID == uuid.Nil {
		opp.ID = uuid.New()
	}
	if opp.CreatedAt.IsZero() {
		opp.CreatedAt = time.Now().UTC()
	}
	if opp.Metadata == nil {
		opp.Metadata = map[string]string{}
	}
	// tags is NOT NULL and pgx encodes a nil slice as SQL NULL.
	if opp.Tags == nil {
		opp.Tags = []string{}
	}

	query := `
		INSERT INTO opportunities (
			id, title, description, content, source, source_url,
			opportunity_type, tags, published_at, metadata, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			content = EXCLUDED.content,
			source = EXCLUDED.source,
			source_url = EXCLUDED.source_url,
			opportunity_type = EXCLUDED.opportunity_type,
			tags = EXCLUDED.tags,
			published_at = EXCLUDED.published_at,
			metadata = EXCLUDED.metadata`

	_, err := r.db.Exec(ctx, query,
		opp.ID, opp.Title, opp.Description, opp.Content,
		opp.Source, opp.SourceURL, opp.Type, opp.Tags,
		opp.PublishedAt, opp.Metadata, opp.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert opportunity: %w", err)
	}

	return nil
}

func (r *opportunityRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Opportunity, error) {
	query := `
		SELECT id, title, description, content, source, source_url,
		       opportunity_type, tags, published_at, metadata, created_at
		FROM opportunities
		WHERE id = $1`

	row := r.db.QueryRow(ctx, query, id)
	return scanOpportunityRow(row)
}

func (r *opportunityRepository) List(ctx context.Context) ([]*models.Opportunity, error) {
	query := `
		SELECT id, title, description, content, source, source_url,
		       opportunity_type, tags, published_at, metadata, created_at
		FROM opportunities
		ORDER BY created_at ASC, id ASC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query opportunities: %w", err)
	}
	defer rows.Close()

	return scanOpportunityRows(rows)
}

func (r *opportunityRepository) ListByType(ctx context.Context, oppType models.OpportunityType) ([]*models.Opportunity, error) {
	query := `
		SELECT id, title, description, content, source, source_url,
		       opportunity_type, tags, published_at, metadata, created_at
		FROM opportunities
		WHERE opportunity_type = $1
		ORDER BY created_at ASC, id ASC`

	rows, err := r.db.Query(ctx, query, oppType)
	if err != nil {
		return nil, fmt.Errorf("failed to query opportunities by type: %w", err)
	}
	defer rows.Close()

	return scanOpportunityRows(rows)
}

func (r *opportunityRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM opportunities WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete opportunity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *opportunityRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM opportunities`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count opportunities: %w", err)
	}
	return count, nil
}

func scanOpportunityRow(row pgx.Row) (*models.Opportunity, error) {
	var opp models.Opportunity
	err := row.Scan(
		&opp.ID, &opp.Title, &opp.Description, &opp.Content,
		&opp.Source, &opp.SourceURL, &opp.Type, &opp.Tags,
		&opp.PublishedAt, &opp.Metadata, &opp.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan opportunity: %w", err)
	}
	return &opp, nil
}

func scanOpportunityRows(rows pgx.Rows) ([]*models.Opportunity, error) {
	opportunities := make([]*models.Opportunity, 0)
	for rows.Next() {
		opp, err := scanOpportunityRow(rows)
		if err != nil {
			return nil, err
		}
		opportunities = append(opportunities, opp)
	}
	return opportunities, rows.Err()
}
