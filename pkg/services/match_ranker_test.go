package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prospera-ai/prospera-engine/pkg/models"
)

func matchWithScore(score float64) *models.Match {
	return models.NewMatch(uuid.New(), uuid.New(), score, "reasoning")
}

func TestRankMatchesFiltersAndSorts(t *testing.T) {
	matches := []*models.Match{
		matchWithScore(0.9),
		matchWithScore(0.5),
		matchWithScore(0.75),
	}

	ranked := RankMatches(matches, 0.6)

	require.Len(t, ranked, 2)
	assert.Equal(t, 0.9, ranked[0].RelevanceScore)
	assert.Equal(t, 0.75, ranked[1].RelevanceScore)
}

func TestRankMatchesThresholdIsInclusive(t *testing.T) {
	matches := []*models.Match{matchWithScore(0.6)}
	ranked := RankMatches(matches, 0.6)
	assert.Len(t, ranked, 1)
}

func TestRankMatchesStableTies(t *testing.T) {
	first := matchWithScore(0.8)
	second := matchWithScore(0.8)
	third := matchWithScore(0.8)

	ranked := RankMatches([]*models.Match{first, second, third}, 0.6)

	require.Len(t, ranked, 3)
	assert.Same(t, first, ranked[0])
	assert.Same(t, second, ranked[1])
	assert.Same(t, third, ranked[2])
}

func TestRankMatchesEmpty(t *testing.T) {
	ranked := RankMatches(nil, 0.6)
	assert.NotNil(t, ranked)
	assert.Empty(t, ranked)
}

func TestRankMatchesAllBelowThreshold(t *testing.T) {
	matches := []*models.Match{matchWithScore(0.1), matchWithScore(0.59)}
	assert.Empty(t, RankMatches(matches, 0.6))
}

func TestRankMatchesIdempotent(t *testing.T) {
	matches := []*models.Match{
		matchWithScore(0.7),
		matchWithScore(0.95),
		matchWithScore(0.8),
	}

	once := RankMatches(matches, 0.6)
	twice := RankMatches(once, 0.6)

	assert.Equal(t, once, twice)
}

func TestRankMatchesDoesNotMutateInput(t *testing.T) {
	first := matchWithScore(0.5)
	second := matchWithScore(0.9)
	matches := []*models.Match{first, second}

	RankMatches(matches, 0.0)

	assert.Same(t, first, matches[0])
	assert.Same(t, second, matches[1])
}
