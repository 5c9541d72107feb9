package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/prospera-ai/prospera-engine/pkg/llm"
	"github.com/prospera-ai/prospera-engine/pkg/models"
)

func testOpportunity(title string) *models.Opportunity {
	return &models.Opportunity{
		ID:          uuid.New(),
		Title:       title,
		Description: "description",
		Content:     "content body",
		Source:      "test",
		Type:        models.OpportunityTypeNews,
		Tags:        []string{"tag"},
		PublishedAt: time.Now().UTC(),
	}
}

func newTestScorer(mock *llm.MockOracleClient) RelevanceScorer {
	return NewRelevanceScorer(mock, testMatchingConfig(), 5*time.Second, zap.NewNop())
}

func TestScoreSuccess(t *testing.T) {
	mock := llm.NewMockOracleClient()
	mock.CompleteFunc = func(ctx context.Context, prompt, systemMessage string, temperature float64) (*llm.CompletionResult, error) {
		assert.Contains(t, prompt, "Expansion Grant")
		assert.InDelta(t, 0.2, temperature, 1e-9)
		return &llm.CompletionResult{Content: `{
			"relevance_score": 0.85,
			"reasoning": "strong industry and stage fit",
			"key_match_factors": ["industry alignment", "timing"],
			"actionability": "apply before the deadline"
		}`}, nil
	}

	companyID := uuid.New()
	opp := testOpportunity("Expansion Grant")
	match := newTestScorer(mock).Score(context.Background(), companyID, models.NewCompanyCharacterization(), opp)

	require.NotNil(t, match)
	assert.Equal(t, companyID, match.CompanyID)
	assert.Equal(t, opp.ID, match.OpportunityID)
	assert.Equal(t, 0.85, match.RelevanceScore)
	assert.Equal(t, "strong industry and stage fit", match.Reasoning)
	assert.Equal(t, []string{"industry alignment", "timing"}, match.KeyMatchFactors)
	assert.Equal(t, "apply before the deadline", match.Actionability)
	assert.Equal(t, models.MatchStatusPending, match.Status)
	assert.False(t, match.Failed())
}

func TestScoreClampsOutOfRange(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want float64
	}{
		{"above one", "1.5", 1.0},
		{"negative", "-3", 0.0},
		{"string score", `"0.7"`, 0.7},
		{"percent score", `"85%"`, 0.85},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := llm.NewMockOracleClient()
			mock.CompleteFunc = func(ctx context.Context, prompt, systemMessage string, temperature float64) (*llm.CompletionResult, error) {
				return &llm.CompletionResult{Content: `{"relevance_score": ` + tt.raw + `, "reasoning": "r"}`}, nil
			}

			match := newTestScorer(mock).Score(context.Background(), uuid.New(), models.NewCompanyCharacterization(), testOpportunity("t"))
			assert.Equal(t, tt.want, match.RelevanceScore)
			assert.False(t, match.Failed())
		})
	}
}

func TestScoreDefaultsMissingReasoning(t *testing.T) {
	mock := llm.NewMockOracleClient()
	mock.CompleteFunc = func(ctx context.Context, prompt, systemMessage string, temperature float64) (*llm.CompletionResult, error) {
		return &llm.CompletionResult{Content: `{"relevance_score": 0.9}`}, nil
	}

	match := newTestScorer(mock).Score(context.Background(), uuid.New(), models.NewCompanyCharacterization(), testOpportunity("t"))

	require.NotNil(t, match)
	assert.Equal(t, 0.9, match.RelevanceScore)
	assert.Equal(t, "AI analysis completed", match.Reasoning)
	assert.False(t, match.Failed())
}

func TestScoreNonNumericScore(t *testing.T) {
	mock := llm.NewMockOracleClient()
	mock.CompleteFunc = func(ctx context.Context, prompt, systemMessage string, temperature float64) (*llm.CompletionResult, error) {
		return &llm.CompletionResult{Content: `{"relevance_score": "NaN", "reasoning": "r"}`}, nil
	}

	match := newTestScorer(mock).Score(context.Background(), uuid.New(), models.NewCompanyCharacterization(), testOpportunity("t"))

	require.NotNil(t, match)
	assert.Equal(t, 0.0, match.RelevanceScore)
	assert.Equal(t, models.ScoringErrorInvalidScore, match.ErrorKind)
	assert.True(t, match.Failed())
}

func TestScoreOracleUnavailable(t *testing.T) {
	mock := llm.NewMockOracleClient()
	mock.CompleteFunc = func(ctx context.Context, prompt, systemMessage string, temperature float64) (*llm.CompletionResult, error) {
		// Non-retryable failure so the retry loop exits immediately.
		return nil, errors.New("401 Unauthorized")
	}

	match := newTestScorer(mock).Score(context.Background(), uuid.New(), models.NewCompanyCharacterization(), testOpportunity("t"))

	require.NotNil(t, match)
	assert.Equal(t, 0.0, match.RelevanceScore)
	assert.Equal(t, models.ScoringErrorUnavailable, match.ErrorKind)
	assert.Contains(t, match.Reasoning, "Analysis unavailable:")
	assert.Equal(t, models.MatchStatusPending, match.Status)
}

func TestScoreMalformedResponse(t *testing.T) {
	mock := llm.NewMockOracleClient()
	mock.CompleteFunc = func(ctx context.Context, prompt, systemMessage string, temperature float64) (*llm.CompletionResult, error) {
		return &llm.CompletionResult{Content: "not json"}, nil
	}

	match := newTestScorer(mock).Score(context.Background(), uuid.New(), models.NewCompanyCharacterization(), testOpportunity("t"))

	assert.Equal(t, models.ScoringErrorMalformed, match.ErrorKind)
	assert.Equal(t, 0.0, match.RelevanceScore)
}

func TestScoreCircuitBreakerTripsOnRepeatedFailures(t *testing.T) {
	mock := llm.NewMockOracleClient()
	mock.CompleteFunc = func(ctx context.Context, prompt, systemMessage string, temperature float64) (*llm.CompletionResult, error) {
		return nil, errors.New("401 Unauthorized")
	}

	scorer := newTestScorer(mock)
	c := models.NewCompanyCharacterization()

	// Default breaker threshold is 5 consecutive failures.
	for i := 0; i < 5; i++ {
		match := scorer.Score(context.Background(), uuid.New(), c, testOpportunity("t"))
		assert.Equal(t, models.ScoringErrorUnavailable, match.ErrorKind)
	}
	callsBefore := mock.CompleteCalls

	match := scorer.Score(context.Background(), uuid.New(), c, testOpportunity("t"))
	assert.Equal(t, models.ScoringErrorUnavailable, match.ErrorKind)
	assert.Contains(t, match.Reasoning, "circuit breaker open")
	assert.Equal(t, callsBefore, mock.CompleteCalls, "open circuit must not reach the oracle")
}
