package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/prospera-ai/prospera-engine/pkg/config"
	"github.com/prospera-ai/prospera-engine/pkg/llm"
	"github.com/prospera-ai/prospera-engine/pkg/models"
)

// RunReport summarizes one matching run.
type RunReport struct {
	// Characterization is the analyzed (possibly degraded) company summary
	// the scoring was based on.
	Characterization *models.CompanyCharacterization `json:"characterization"`

	// Matches holds the ranked results: threshold-filtered, descending by
	// relevance score.
	Matches []*models.Match `json:"matches"`

	// AllMatches holds every scored match in catalog order, including
	// failures and below-threshold scores, for persistence and diagnostics.
	AllMatches []*models.Match `json:"all_matches"`

	ScoredCount int           `json:"scored_count"`
	FailedCount int           `json:"failed_count"`
	Duration    time.Duration `json:"duration"`
}

// OpportunityMatcher runs the full pipeline: characterize the company once,
// score every opportunity concurrently, then rank.
type OpportunityMatcher interface {
	// FindMatches runs a full matching pass. minScore is the threshold
	// applied by the ranker; callers usually pass the configured default.
	FindMatches(ctx context.Context, profile *models.CompanyProfile, opportunities []*models.Opportunity, minScore float64) (*RunReport, error)
}

type opportunityMatcher struct {
	analyzer ProfileAnalyzer
	scorer   RelevanceScorer
	pool     *llm.WorkerPool
	matching config.MatchingConfig
	logger   *zap.Logger
}

// NewOpportunityMatcher wires the pipeline stages together.
func NewOpportunityMatcher(
	analyzer ProfileAnalyzer,
	scorer RelevanceScorer,
	matching config.MatchingConfig,
	logger *zap.Logger,
) OpportunityMatcher {
	pool := llm.NewWorkerPool(llm.WorkerPoolConfig{MaxConcurrent: matching.MaxConcurrentScoring}, logger)
	return &opportunityMatcher{
		analyzer: analyzer,
		scorer:   scorer,
		pool:     pool,
		matching: matching,
		logger:   logger.Named("opportunity-matcher"),
	}
}

var _ OpportunityMatcher = (*opportunityMatcher)(nil)

func (m *opportunityMatcher) FindMatches(ctx context.Context, profile *models.CompanyProfile, opportunities []*models.Opportunity, minScore float64) (*RunReport, error) {
	start := time.Now()

	characterization, err := m.analyzer.Analyze(ctx, profile)
	if err != nil {
		return nil, err
	}

	if characterization.Degraded() {
		m.logger.Warn("scoring against degraded characterization",
			zap.String("company_id", profile.CompanyID.String()),
			zap.String("error_kind", string(characterization.ErrorKind)))
	}

	report := &RunReport{
		Characterization: characterization,
		Matches:          []*models.Match{},
		AllMatches:       make([]*models.Match, len(opportunities)),
	}

	if len(opportunities) == 0 {
		report.Duration = time.Since(start)
		return report, nil
	}

	items := make([]llm.WorkItem[*models.Match], len(opportunities))
	for i, opp := range opportunities {
		items[i] = llm.WorkItem[*models.Match]{
			ID: opp.ID.String(),
			Execute: func(ctx context.Context) (*models.Match, error) {
				return m.scorer.Score(ctx, profile.CompanyID, characterization, opp), nil
			},
		}
	}

	// The pool returns one result per item in catalog order, which is what
	// makes equal-score ranking ties deterministic.
	results := llm.Process(ctx, m.pool, items, func(completed, total int) {
		m.logger.Debug("scoring progress", zap.Int("completed", completed), zap.Int("total", total))
	})

	for i, r := range results {
		if r.Err != nil {
			// Only context cancellation reaches here; the scorer itself
			// never returns an error.
			failed := models.NewMatch(profile.CompanyID, opportunities[i].ID, 0.0, "Analysis unavailable: "+r.Err.Error())
			failed.ErrorKind = models.ScoringErrorUnavailable
			report.AllMatches[i] = failed
			continue
		}
		report.AllMatches[i] = r.Result
	}

	for _, match := range report.AllMatches {
		if match.Failed() {
			report.FailedCount++
		} else {
			report.ScoredCount++
		}
	}

	report.Matches = RankMatches(report.AllMatches, minScore)
	report.Duration = time.Since(start)

	m.logger.Info("matching run complete",
		zap.String("company_id", profile.CompanyID.String()),
		zap.Int("opportunities", len(opportunities)),
		zap.Int("scored", report.ScoredCount),
		zap.Int("failed", report.FailedCount),
		zap.Int("above_threshold", len(report.Matches)),
		zap.Duration("duration", report.Duration))

	return report, nil
}
