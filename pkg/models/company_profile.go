package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// CompanyProfile is the raw business profile supplied by the profile store.
// It is read-only input to a matching run.
type CompanyProfile struct {
	CompanyID     uuid.UUID `json:"company_id"`
	CompanyName   string    `json:"company_name"`
	Industry      string    `json:"industry"`
	BusinessType  string    `json:"business_type"`
	CompanySize   string    `json:"company_size"`
	Description   string    `json:"description"`
	Services      []string  `json:"services"`
	TargetMarkets []string  `json:"target_markets"`
	KeyChallenges []string  `json:"key_challenges"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsEmpty reports whether the profile carries nothing an analyzer could
// work with. An empty profile is the one fatal input for a matching run.
func (p *CompanyProfile) IsEmpty() bool {
	return strings.TrimSpace(p.CompanyName) == "" &&
		strings.TrimSpace(p.Industry) == "" &&
		strings.TrimSpace(p.Description) == ""
}
