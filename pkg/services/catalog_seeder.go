package services

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/prospera-ai/prospera-engine/pkg/apperrors"
	"github.com/prospera-ai/prospera-engine/pkg/models"
	"github.com/prospera-ai/prospera-engine/pkg/repositories"
)

// seedFile is the on-disk shape of an opportunity seed file.
type seedFile struct {
	Opportunities []seedOpportunity `yaml:"opportunities"`
}

type seedOpportunity struct {
	ID          string            `yaml:"id"`
	Title       string            `yaml:"title"`
	Description string            `yaml:"description"`
	Content     string            `yaml:"content"`
	Source      string            `yaml:"source"`
	SourceURL   string            `yaml:"source_url"`
	Type        string            `yaml:"type"`
	Tags        []string          `yaml:"tags"`
	PublishedAt *time.Time        `yaml:"published_at"`
	Metadata    map[string]string `yaml:"metadata"`
}

// CatalogSeeder loads bootstrap opportunities from a YAML file into the
// catalog. Seeding is idempotent: entries with explicit IDs upsert in place.
type CatalogSeeder struct {
	opportunities repositories.OpportunityRepository
	logger        *zap.Logger
}

// NewCatalogSeeder creates a CatalogSeeder.
func NewCatalogSeeder(opportunities repositories.OpportunityRepository, logger *zap.Logger) *CatalogSeeder {
	return &CatalogSeeder{
		opportunities: opportunities,
		logger:        logger.Named("catalog-seeder"),
	}
}

// Seed reads the seed file at path and upserts every opportunity in it.
// Returns the number of opportunities loaded.
func (s *CatalogSeeder) Seed(ctx context.Context, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read seed file %s: %w", path, err)
	}

	var file seedFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return 0, fmt.Errorf("failed to parse seed file %s: %w", path, err)
	}

	for i, entry := range file.Opportunities {
		opp, err := entry.toModel()
		if err != nil {
			return 0, fmt.Errorf("seed entry %d (%q): %w", i, entry.Title, err)
		}
		if err := s.opportunities.Upsert(ctx, opp); err != nil {
			return 0, fmt.Errorf("seed entry %d (%q): %w", i, entry.Title, err)
		}
	}

	s.logger.Info("seeded opportunity catalog",
		zap.String("path", path),
		zap.Int("count", len(file.Opportunities)))

	return len(file.Opportunities), nil
}

func (e *seedOpportunity) toModel() (*models.Opportunity, error) {
	if e.Title == "" {
		return nil, fmt.Errorf("title is required")
	}

	oppType, ok := models.ParseOpportunityType(e.Type)
	if !ok {
		return nil, fmt.Errorf("%w: %q", apperrors.ErrInvalidOpportunityType, e.Type)
	}

	opp := &models.Opportunity{
		Title:       e.Title,
		Description: e.Description,
		Content:     e.Content,
		Source:      e.Source,
		SourceURL:   e.SourceURL,
		Type:        oppType,
		Tags:        e.Tags,
		Metadata:    e.Metadata,
	}

	if e.ID != "" {
		id, err := uuid.Parse(e.ID)
		if err != nil {
			return nil, fmt.Errorf("invalid id %q: %w", e.ID, err)
		}
		opp.ID = id
	}

	if e.PublishedAt != nil {
		opp.PublishedAt = *e.PublishedAt
	} else {
		opp.PublishedAt = time.Now().UTC()
	}
	if opp.Tags == nil {
		opp.Tags = []string{}
	}

	return opp, nil
}
