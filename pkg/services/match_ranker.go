package services

import (
	"sort"

	"github.com/prospera-ai/prospera-engine/pkg/models"
)

// RankMatches filters out matches below minScore and orders the survivors
// by descending relevance score. The sort is stable: matches with equal
// scores keep their input order. The input slice is never mutated.
func RankMatches(matches []*models.Match, minScore float64) []*models.Match {
	ranked := make([]*models.Match, 0, len(matches))
	for _, m := range matches {
		if m.RelevanceScore >= minScore {
			ranked = append(ranked, m)
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].RelevanceScore > ranked[j].RelevanceScore
	})

	return ranked
}
