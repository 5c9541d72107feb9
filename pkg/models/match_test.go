package models

import (
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClampScore(t *testing.T) {
	tests := []struct {
		name string
		raw  float64
		want float64
	}{
		{"in range", 0.75, 0.75},
		{"zero", 0.0, 0.0},
		{"one", 1.0, 1.0},
		{"above range", 1.5, 1.0},
		{"below range", -3.0, 0.0},
		{"NaN", math.NaN(), 0.0},
		{"positive infinity", math.Inf(1), 0.0},
		{"negative infinity", math.Inf(-1), 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClampScore(tt.raw))
		})
	}
}

func TestNewMatch(t *testing.T) {
	companyID := uuid.New()
	oppID := uuid.New()

	match := NewMatch(companyID, oppID, 1.5, "very relevant")

	require.NotNil(t, match)
	assert.NotEqual(t, uuid.Nil, match.ID)
	assert.Equal(t, companyID, match.CompanyID)
	assert.Equal(t, oppID, match.OpportunityID)
	assert.Equal(t, 1.0, match.RelevanceScore, "score must be clamped into range")
	assert.Equal(t, "very relevant", match.Reasoning)
	assert.NotNil(t, match.KeyMatchFactors, "factors must be empty, not nil, so they encode as an empty array")
	assert.Empty(t, match.KeyMatchFactors)
	assert.Equal(t, MatchStatusPending, match.Status)
	assert.False(t, match.Failed())
	assert.False(t, match.CreatedAt.IsZero())
}

func TestMatchFailed(t *testing.T) {
	match := NewMatch(uuid.New(), uuid.New(), 0.0, "Analysis unavailable: timeout")
	assert.False(t, match.Failed())

	match.ErrorKind = ScoringErrorUnavailable
	assert.True(t, match.Failed())
}

func TestMatchStatusCanTransitionTo(t *testing.T) {
	tests := []struct {
		from MatchStatus
		to   MatchStatus
		want bool
	}{
		{MatchStatusPending, MatchStatusAccepted, true},
		{MatchStatusPending, MatchStatusDismissed, true},
		{MatchStatusPending, MatchStatusPending, false},
		{MatchStatusAccepted, MatchStatusDismissed, false},
		{MatchStatusAccepted, MatchStatusPending, false},
		{MatchStatusDismissed, MatchStatusAccepted, false},
		{MatchStatusPending, MatchStatus("bogus"), false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to),
			"%s -> %s", tt.from, tt.to)
	}
}
