package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/prospera-ai/prospera-engine/pkg/config"
	"github.com/prospera-ai/prospera-engine/pkg/jsonutil"
	"github.com/prospera-ai/prospera-engine/pkg/llm"
	"github.com/prospera-ai/prospera-engine/pkg/models"
	"github.com/prospera-ai/prospera-engine/pkg/prompts"
	"github.com/prospera-ai/prospera-engine/pkg/retry"
)

// RelevanceScorer scores a single opportunity against a characterized
// company.
type RelevanceScorer interface {
	// Score never returns an error: every failure mode collapses to a
	// zero-score match carrying the failure kind, so one bad opportunity
	// never aborts a batch.
	Score(ctx context.Context, companyID uuid.UUID, c *models.CompanyCharacterization, opp *models.Opportunity) *models.Match
}

type relevanceScorer struct {
	oracle   llm.OracleClient
	matching config.MatchingConfig
	timeout  time.Duration
	retryCfg *retry.Config
	breaker  *llm.CircuitBreaker
	logger   *zap.Logger
}

// NewRelevanceScorer creates a RelevanceScorer backed by the given oracle.
// timeout bounds each individual oracle call.
func NewRelevanceScorer(oracle llm.OracleClient, matching config.MatchingConfig, timeout time.Duration, logger *zap.Logger) RelevanceScorer {
	return &relevanceScorer{
		oracle:   oracle,
		matching: matching,
		timeout:  timeout,
		retryCfg: retry.DefaultConfig(),
		breaker:  llm.NewCircuitBreaker(llm.DefaultCircuitBreakerConfig()),
		logger:   logger.Named("relevance-scorer"),
	}
}

var _ RelevanceScorer = (*relevanceScorer)(nil)

// relevanceScoringResponse mirrors the JSON schema in the scoring prompt.
type relevanceScoringResponse struct {
	RelevanceScore  json.RawMessage `json:"relevance_score"`
	Reasoning       json.RawMessage `json:"reasoning"`
	KeyMatchFactors json.RawMessage `json:"key_match_factors"`
	Actionability   json.RawMessage `json:"actionability"`
}

func (s *relevanceScorer) Score(ctx context.Context, companyID uuid.UUID, c *models.CompanyCharacterization, opp *models.Opportunity) *models.Match {
	if allowed, err := s.breaker.Allow(); !allowed {
		return s.failed(companyID, opp, models.ScoringErrorUnavailable, err)
	}

	prompt := prompts.BuildRelevanceScoringPrompt(c, opp, s.matching.ContentPreviewRunes)
	systemMessage := prompts.RelevanceScoringSystemMessage()

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var result *llm.CompletionResult
	err := retry.DoIfRetryable(callCtx, s.retryCfg, func() error {
		var callErr error
		result, callErr = s.oracle.Complete(callCtx, prompt, systemMessage, s.matching.ScoringTemperature)
		if callErr != nil {
			return llm.ClassifyError(callErr)
		}
		return nil
	})
	if err != nil {
		s.breaker.RecordFailure()
		s.logger.Warn("relevance scoring oracle call failed",
			zap.String("company_id", companyID.String()),
			zap.String("opportunity_id", opp.ID.String()),
			zap.String("error_type", string(llm.GetErrorType(err))),
			zap.Error(err))
		kind := models.ScoringErrorUnavailable
		if llm.GetErrorType(err) == llm.ErrorTypeMalformed {
			kind = models.ScoringErrorMalformed
		}
		return s.failed(companyID, opp, kind, err)
	}
	s.breaker.RecordSuccess()

	parsed, err := llm.ParseJSONResponse[relevanceScoringResponse](result.Content)
	if err != nil {
		s.logger.Warn("relevance scoring response unparseable",
			zap.String("opportunity_id", opp.ID.String()),
			zap.Error(err))
		return s.failed(companyID, opp, models.ScoringErrorMalformed, err)
	}

	rawScore, ok := jsonutil.FlexibleFloat(parsed.RelevanceScore)
	if !ok {
		s.logger.Warn("relevance score missing or not numeric",
			zap.String("opportunity_id", opp.ID.String()),
			zap.String("raw_score", string(parsed.RelevanceScore)))
		return s.failed(companyID, opp, models.ScoringErrorInvalidScore,
			fmt.Errorf("relevance_score %q is not a finite number", string(parsed.RelevanceScore)))
	}

	reasoning := jsonutil.FlexibleString(parsed.Reasoning)
	if reasoning == "" {
		// A scored match always carries reasoning text, even when the
		// oracle omits the field.
		reasoning = "AI analysis completed"
	}

	match := models.NewMatch(companyID, opp.ID, rawScore, reasoning)
	match.KeyMatchFactors = jsonutil.FlexibleStringSlice(parsed.KeyMatchFactors)
	match.Actionability = jsonutil.FlexibleString(parsed.Actionability)

	s.logger.Debug("opportunity scored",
		zap.String("opportunity_id", opp.ID.String()),
		zap.Float64("relevance_score", match.RelevanceScore),
		zap.Int("total_tokens", result.TotalTokens))

	return match
}

// failed builds the zero-score match recorded when scoring could not
// produce a real verdict.
func (s *relevanceScorer) failed(companyID uuid.UUID, opp *models.Opportunity, kind models.ScoringErrorKind, cause error) *models.Match {
	match := models.NewMatch(companyID, opp.ID, 0.0, fmt.Sprintf("Analysis unavailable: %v", cause))
	match.ErrorKind = kind
	return match
}
