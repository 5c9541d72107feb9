package models

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// ============================================================================
// Match Status
// ============================================================================

// MatchStatus represents the review state of a match.
type MatchStatus string

const (
	MatchStatusPending   MatchStatus = "pending"
	MatchStatusAccepted  MatchStatus = "accepted"
	MatchStatusDismissed MatchStatus = "dismissed"
)

// ValidMatchStatuses contains all valid match status values.
var ValidMatchStatuses = []MatchStatus{
	MatchStatusPending,
	MatchStatusAccepted,
	MatchStatusDismissed,
}

// IsValidMatchStatus checks if the given status is valid.
func IsValidMatchStatus(s MatchStatus) bool {
	for _, v := range ValidMatchStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// CanTransitionTo reports whether a reviewer may move a match from s to next.
// Only pending matches can be accepted or dismissed.
func (s MatchStatus) CanTransitionTo(next MatchStatus) bool {
	if !IsValidMatchStatus(next) {
		return false
	}
	return s == MatchStatusPending && next != MatchStatusPending
}

// ============================================================================
// Scoring Error Kind
// ============================================================================

// ScoringErrorKind tags what went wrong when a match was scored, so callers
// can distinguish failure modes programmatically instead of parsing the
// reasoning text.
type ScoringErrorKind string

const (
	ScoringErrorNone         ScoringErrorKind = ""
	ScoringErrorUnavailable  ScoringErrorKind = "oracle_unavailable"
	ScoringErrorMalformed    ScoringErrorKind = "malformed_response"
	ScoringErrorInvalidScore ScoringErrorKind = "invalid_score"
)

// ============================================================================
// Match
// ============================================================================

// Match is one scored company-opportunity pairing.
type Match struct {
	ID            uuid.UUID `json:"id"`
	CompanyID     uuid.UUID `json:"company_id"`
	OpportunityID uuid.UUID `json:"opportunity_id"`

	// RelevanceScore is always within [0.0, 1.0]; construction clamps
	// whatever the scoring oracle returned.
	RelevanceScore  float64          `json:"relevance_score"`
	Reasoning       string           `json:"reasoning"`
	KeyMatchFactors []string         `json:"key_match_factors,omitempty"`
	Actionability   string           `json:"actionability,omitempty"`
	Status          MatchStatus      `json:"status"`
	ErrorKind       ScoringErrorKind `json:"error_kind,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// ClampScore forces a raw oracle score into [0.0, 1.0].
// NaN and infinities collapse to 0.0.
func ClampScore(raw float64) float64 {
	if math.IsNaN(raw) || math.IsInf(raw, 0) {
		return 0.0
	}
	return math.Max(0.0, math.Min(1.0, raw))
}

// NewMatch creates a pending match with the score clamped into range.
// KeyMatchFactors starts empty, not nil: the matches table declares the
// column NOT NULL and pgx encodes a nil slice as SQL NULL.
func NewMatch(companyID, opportunityID uuid.UUID, rawScore float64, reasoning string) *Match {
	return &Match{
		ID:              uuid.New(),
		CompanyID:       companyID,
		OpportunityID:   opportunityID,
		RelevanceScore:  ClampScore(rawScore),
		Reasoning:       reasoning,
		KeyMatchFactors: []string{},
		Status:          MatchStatusPending,
		CreatedAt:       time.Now().UTC(),
	}
}

// Failed reports whether this match records a scoring failure rather than
// a real oracle verdict.
func (m *Match) Failed() bool {
	return m.ErrorKind != ScoringErrorNone
}
