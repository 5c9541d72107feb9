package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// ============================================================================
// Opportunity Type
// ============================================================================

// OpportunityType classifies the source category of an opportunity.
type OpportunityType string

const (
	OpportunityTypeNews     OpportunityType = "news"
	OpportunityTypeSupplier OpportunityType = "supplier"
	OpportunityTypeEvent    OpportunityType = "event"
	OpportunityTypeTrend    OpportunityType = "trend"
)

// ValidOpportunityTypes contains all valid opportunity type values.
var ValidOpportunityTypes = []OpportunityType{
	OpportunityTypeNews,
	OpportunityTypeSupplier,
	OpportunityTypeEvent,
	OpportunityTypeTrend,
}

// IsValidOpportunityType checks if the given type is valid.
func IsValidOpportunityType(t OpportunityType) bool {
	for _, v := range ValidOpportunityTypes {
		if v == t {
			return true
		}
	}
	return false
}

// ParseOpportunityType normalizes a raw string into an OpportunityType.
// Returns false if the value is not in the closed set.
func ParseOpportunityType(raw string) (OpportunityType, bool) {
	t := OpportunityType(strings.ToLower(strings.TrimSpace(raw)))
	if !IsValidOpportunityType(t) {
		return "", false
	}
	return t, true
}

// ============================================================================
// Opportunity
// ============================================================================

// Opportunity is one external business opportunity from the catalog.
// It is read-only during matching and shared across companies and runs.
type Opportunity struct {
	ID          uuid.UUID         `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Content     string            `json:"content"`
	Source      string            `json:"source"`
	SourceURL   string            `json:"source_url"`
	Type        OpportunityType   `json:"opportunity_type"`
	Tags        []string          `json:"tags"`
	PublishedAt time.Time         `json:"published_at"`
	Metadata    map[string]string `json:"metadata,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// ContentPreview returns at most maxRunes runes of the content body.
// Previews bound prompt size when the full body is long.
func (o *Opportunity) ContentPreview(maxRunes int) string {
	if maxRunes <= 0 {
		return ""
	}
	runes := []rune(o.Content)
	if len(runes) <= maxRunes {
		return o.Content
	}
	return string(runes[:maxRunes])
}
