package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/prospera-ai/prospera-engine/pkg/apperrors"
	"github.com/prospera-ai/prospera-engine/pkg/database"
	"github.com/prospera-ai/prospera-engine/pkg/models"
)

// MatchRepository provides data access for scored matches.
type MatchRepository interface {
	CreateBatch(ctx context.Context, matches []*models.Match) error
	// ReplaceForCompany atomically swaps the company's stored matches for a
	// new run's results. Either the old set survives or the new set does.
	ReplaceForCompany(ctx context.Context, companyID uuid.UUID, matches []*models.Match) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Match, error)
	GetByCompany(ctx context.Context, companyID uuid.UUID) ([]*models.Match, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.MatchStatus) error
	DeleteByCompany(ctx context.Context, companyID uuid.UUID) error
}

type matchRepository struct {
	db *database.DB
}

// NewMatchRepository creates a new MatchRepository.
func NewMatchRepository(db *database.DB) MatchRepository {
	return &matchRepository{db: db}
}

var _ MatchRepository = (*matchRepository)(nil)

func (r *matchRepository) CreateBatch(ctx context.Context, matches []*models.Match) error {
	if len(matches) == 0 {
		return nil
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := insertMatches(ctx, tx, matches); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit match batch: %w", err)
	}

	return nil
}

func (r *matchRepository) ReplaceForCompany(ctx context.Context, companyID uuid.UUID, matches []*models.Match) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM matches WHERE company_id = $1`, companyID); err != nil {
		return fmt.Errorf("failed to clear previous matches: %w", err)
	}

	if err := insertMatches(ctx, tx, matches); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit match replacement: %w", err)
	}

	return nil
}

func insertMatches(ctx context.Context, tx pgx.Tx, matches []*models.Match) error {
	query := `
		INSERT INTO matches (
			id, company_id, opportunity_id, relevance_score, reasoning,
			key_match_factors, actionability, status, error_kind, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	for _, m := range matches {
		factors := m.KeyMatchFactors
		if factors == nil {
			// The column is NOT NULL; a nil slice would encode as SQL NULL.
			factors = []string{}
		}
		if _, err := tx.Exec(ctx, query,
			m.ID, m.CompanyID, m.OpportunityID, m.RelevanceScore, m.Reasoning,
			factors, m.Actionability, m.Status, m.ErrorKind, m.CreatedAt,
		); err != nil {
			return fmt.Errorf("failed to insert match: %w", err)
		}
	}

	return nil
}

func (r *matchRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Match, error) {
	query := `
		SELECT id, company_id, opportunity_id, relevance_score, reasoning,
		       key_match_factors, actionability, status, error_kind, created_at
		FROM matches
		WHERE id = $1`

	row := r.db.QueryRow(ctx, query, id)
	return scanMatchRow(row)
}

func (r *matchRepository) GetByCompany(ctx context.Context, companyID uuid.UUID) ([]*models.Match, error) {
	query := `
		SELECT id, company_id, opportunity_id, relevance_score, reasoning,
		       key_match_factors, actionability, status, error_kind, created_at
		FROM matches
		WHERE company_id = $1
		ORDER BY relevance_score DESC, created_at ASC`

	rows, err := r.db.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches: %w", err)
	}
	defer rows.Close()

	matches := make([]*models.Match, 0)
	for rows.Next() {
		match, err := scanMatchRow(rows)
		if err != nil {
			return nil, err
		}
		matches = append(matches, match)
	}

	return matches, rows.Err()
}

// UpdateStatus moves a match through its review lifecycle. Only pending
// matches can be accepted or dismissed.
func (r *matchRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.MatchStatus) error {
	match, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !match.Status.CanTransitionTo(status) {
		return fmt.Errorf("%w: %s -> %s", apperrors.ErrInvalidStatusTransition, match.Status, status)
	}

	tag, err := r.db.Exec(ctx,
		`UPDATE matches SET status = $1 WHERE id = $2 AND status = $3`,
		status, id, match.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to update match status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		// Lost a race with a concurrent status change.
		return apperrors.ErrConflict
	}

	return nil
}

func (r *matchRepository) DeleteByCompany(ctx context.Context, companyID uuid.UUID) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM matches WHERE company_id = $1`, companyID); err != nil {
		return fmt.Errorf("failed to delete matches: %w", err)
	}
	return nil
}

func scanMatchRow(row pgx.Row) (*models.Match, error) {
	var match models.Match
	err := row.Scan(
		&match.ID, &match.CompanyID, &match.OpportunityID,
		&match.RelevanceScore, &match.Reasoning, &match.KeyMatchFactors,
		&match.Actionability, &match.Status, &match.ErrorKind, &match.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan match: %w", err)
	}
	return &match, nil
}
