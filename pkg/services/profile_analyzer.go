// Package services implements the matching pipeline: profile analysis,
// relevance scoring, ranking, and the orchestrator that ties them together.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/prospera-ai/prospera-engine/pkg/apperrors"
	"github.com/prospera-ai/prospera-engine/pkg/config"
	"github.com/prospera-ai/prospera-engine/pkg/jsonutil"
	"github.com/prospera-ai/prospera-engine/pkg/llm"
	"github.com/prospera-ai/prospera-engine/pkg/models"
	"github.com/prospera-ai/prospera-engine/pkg/prompts"
	"github.com/prospera-ai/prospera-engine/pkg/retry"
)

// ProfileAnalyzer derives a scoring-ready characterization from a raw
// company profile.
type ProfileAnalyzer interface {
	// Analyze characterizes the given profile. The only fatal condition is
	// an empty profile (apperrors.ErrEmptyProfile); oracle failures degrade
	// to a characterization derived from the raw profile with ErrorKind set.
	Analyze(ctx context.Context, profile *models.CompanyProfile) (*models.CompanyCharacterization, error)
}

type profileAnalyzer struct {
	oracle   llm.OracleClient
	matching config.MatchingConfig
	timeout  time.Duration
	retryCfg *retry.Config
	logger   *zap.Logger
}

// NewProfileAnalyzer creates a ProfileAnalyzer backed by the given oracle.
// timeout bounds the analysis oracle call.
func NewProfileAnalyzer(oracle llm.OracleClient, matching config.MatchingConfig, timeout time.Duration, logger *zap.Logger) ProfileAnalyzer {
	return &profileAnalyzer{
		oracle:   oracle,
		matching: matching,
		timeout:  timeout,
		retryCfg: retry.DefaultConfig(),
		logger:   logger.Named("profile-analyzer"),
	}
}

var _ ProfileAnalyzer = (*profileAnalyzer)(nil)

// profileAnalysisResponse mirrors the JSON schema in the analysis prompt.
// Fields are raw so oracle type drift (numbers as strings, a single string
// where an array was asked for) can be coerced instead of rejected.
type profileAnalysisResponse struct {
	IndustryFocus        json.RawMessage `json:"industry_focus"`
	BusinessStage        json.RawMessage `json:"business_stage"`
	TargetCustomers      json.RawMessage `json:"target_customers"`
	GrowthPriorities     json.RawMessage `json:"growth_priorities"`
	TechnologyAdoption   json.RawMessage `json:"technology_adoption"`
	GeographicScope      json.RawMessage `json:"geographic_scope"`
	KeyCapabilities      json.RawMessage `json:"key_capabilities"`
	PartnershipInterests json.RawMessage `json:"partnership_interests"`
}

func (a *profileAnalyzer) Analyze(ctx context.Context, profile *models.CompanyProfile) (*models.CompanyCharacterization, error) {
	if profile == nil || profile.IsEmpty() {
		return nil, apperrors.ErrEmptyProfile
	}

	prompt := prompts.BuildProfileAnalysisPrompt(profile)
	systemMessage := prompts.ProfileAnalysisSystemMessage()

	callCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	var result *llm.CompletionResult
	err := retry.DoIfRetryable(callCtx, a.retryCfg, func() error {
		var callErr error
		result, callErr = a.oracle.Complete(callCtx, prompt, systemMessage, a.matching.AnalysisTemperature)
		if callErr != nil {
			return llm.ClassifyError(callErr)
		}
		return nil
	})
	if err != nil {
		a.logger.Warn("profile analysis oracle call failed, using fallback characterization",
			zap.String("company_id", profile.CompanyID.String()),
			zap.String("error_type", string(llm.GetErrorType(err))),
			zap.Error(err))
		return a.fallback(profile, models.AnalysisErrorUnavailable, err), nil
	}

	parsed, err := llm.ParseJSONResponse[profileAnalysisResponse](result.Content)
	if err != nil {
		a.logger.Warn("profile analysis response unparseable, using fallback characterization",
			zap.String("company_id", profile.CompanyID.String()),
			zap.Error(err))
		return a.fallback(profile, models.AnalysisErrorMalformed, err), nil
	}

	c := models.NewCompanyCharacterization()
	c.IndustryFocus = jsonutil.FlexibleString(parsed.IndustryFocus)
	c.BusinessStage = models.NormalizeBusinessStage(jsonutil.FlexibleString(parsed.BusinessStage))
	c.TargetCustomers = jsonutil.FlexibleStringSlice(parsed.TargetCustomers)
	c.GrowthPriorities = jsonutil.FlexibleStringSlice(parsed.GrowthPriorities)
	c.TechnologyAdoption = models.NormalizeTechnologyAdoption(jsonutil.FlexibleString(parsed.TechnologyAdoption))
	c.GeographicScope = models.NormalizeGeographicScope(jsonutil.FlexibleString(parsed.GeographicScope))
	c.KeyCapabilities = jsonutil.FlexibleStringSlice(parsed.KeyCapabilities)
	c.PartnershipInterests = jsonutil.FlexibleStringSlice(parsed.PartnershipInterests)

	if c.IndustryFocus == "" {
		c.IndustryFocus = profile.Industry
	}

	a.logger.Debug("profile analysis complete",
		zap.String("company_id", profile.CompanyID.String()),
		zap.String("business_stage", string(c.BusinessStage)),
		zap.String("geographic_scope", string(c.GeographicScope)),
		zap.Int("total_tokens", result.TotalTokens))

	return c, nil
}

// fallback builds a characterization directly from the raw profile so
// scoring can proceed with whatever signal the profile itself carries.
func (a *profileAnalyzer) fallback(profile *models.CompanyProfile, kind models.AnalysisErrorKind, cause error) *models.CompanyCharacterization {
	c := models.NewCompanyCharacterization()
	c.IndustryFocus = profile.Industry
	if len(profile.TargetMarkets) > 0 {
		c.TargetCustomers = append(c.TargetCustomers, profile.TargetMarkets...)
	}
	if len(profile.Services) > 0 {
		c.KeyCapabilities = append(c.KeyCapabilities, profile.Services...)
	}
	c.ErrorKind = kind
	c.Error = fmt.Sprintf("Analysis unavailable: %v", cause)
	return c
}
