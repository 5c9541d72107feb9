package models

import "strings"

// ============================================================================
// Business Stage
// ============================================================================

// BusinessStage represents the maturity stage of a company.
type BusinessStage string

const (
	BusinessStageStartup     BusinessStage = "startup"
	BusinessStageGrowth      BusinessStage = "growth"
	BusinessStageEstablished BusinessStage = "established"
	BusinessStageEnterprise  BusinessStage = "enterprise"
	BusinessStageUnknown     BusinessStage = "unknown"
)

// ValidBusinessStages contains all valid business stage values.
var ValidBusinessStages = []BusinessStage{
	BusinessStageStartup,
	BusinessStageGrowth,
	BusinessStageEstablished,
	BusinessStageEnterprise,
	BusinessStageUnknown,
}

// IsValidBusinessStage checks if the given stage is valid.
func IsValidBusinessStage(s BusinessStage) bool {
	for _, v := range ValidBusinessStages {
		if v == s {
			return true
		}
	}
	return false
}

// NormalizeBusinessStage maps arbitrary oracle output onto the closed set.
// Unrecognized values become BusinessStageUnknown rather than failing.
func NormalizeBusinessStage(raw string) BusinessStage {
	s := BusinessStage(strings.ToLower(strings.TrimSpace(raw)))
	if s == "" || !IsValidBusinessStage(s) {
		return BusinessStageUnknown
	}
	return s
}

// ============================================================================
// Technology Adoption
// ============================================================================

// TechnologyAdoption represents how readily a company adopts technology.
type TechnologyAdoption string

const (
	TechAdoptionLow     TechnologyAdoption = "low"
	TechAdoptionMedium  TechnologyAdoption = "medium"
	TechAdoptionHigh    TechnologyAdoption = "high"
	TechAdoptionUnknown TechnologyAdoption = "unknown"
)

// ValidTechnologyAdoptions contains all valid technology adoption values.
var ValidTechnologyAdoptions = []TechnologyAdoption{
	TechAdoptionLow,
	TechAdoptionMedium,
	TechAdoptionHigh,
	TechAdoptionUnknown,
}

// IsValidTechnologyAdoption checks if the given level is valid.
func IsValidTechnologyAdoption(a TechnologyAdoption) bool {
	for _, v := range ValidTechnologyAdoptions {
		if v == a {
			return true
		}
	}
	return false
}

// NormalizeTechnologyAdoption maps arbitrary oracle output onto the closed set.
func NormalizeTechnologyAdoption(raw string) TechnologyAdoption {
	a := TechnologyAdoption(strings.ToLower(strings.TrimSpace(raw)))
	if a == "" || !IsValidTechnologyAdoption(a) {
		return TechAdoptionUnknown
	}
	return a
}

// ============================================================================
// Geographic Scope
// ============================================================================

// GeographicScope represents the geographic reach of a company.
type GeographicScope string

const (
	GeoScopeLocal         GeographicScope = "local"
	GeoScopeRegional      GeographicScope = "regional"
	GeoScopeNational      GeographicScope = "national"
	GeoScopeInternational GeographicScope = "international"
	GeoScopeUnknown       GeographicScope = "unknown"
)

// ValidGeographicScopes contains all valid geographic scope values.
var ValidGeographicScopes = []GeographicScope{
	GeoScopeLocal,
	GeoScopeRegional,
	GeoScopeNational,
	GeoScopeInternational,
	GeoScopeUnknown,
}

// IsValidGeographicScope checks if the given scope is valid.
func IsValidGeographicScope(g GeographicScope) bool {
	for _, v := range ValidGeographicScopes {
		if v == g {
			return true
		}
	}
	return false
}

// NormalizeGeographicScope maps arbitrary oracle output onto the closed set.
func NormalizeGeographicScope(raw string) GeographicScope {
	g := GeographicScope(strings.ToLower(strings.TrimSpace(raw)))
	if g == "" || !IsValidGeographicScope(g) {
		return GeoScopeUnknown
	}
	return g
}

// ============================================================================
// Analysis Error Kind
// ============================================================================

// AnalysisErrorKind tags why a characterization was built from fallback
// defaults instead of oracle output.
type AnalysisErrorKind string

const (
	AnalysisErrorNone        AnalysisErrorKind = ""
	AnalysisErrorUnavailable AnalysisErrorKind = "oracle_unavailable"
	AnalysisErrorMalformed   AnalysisErrorKind = "malformed_response"
)

// ============================================================================
// Company Characterization
// ============================================================================

// CompanyCharacterization is the normalized, scoring-ready summary derived
// from a raw company profile. Every field is always populated: enum fields
// default to unknown and list fields are non-nil, so downstream scoring
// never sees a partial structure.
type CompanyCharacterization struct {
	IndustryFocus        string             `json:"industry_focus"`
	BusinessStage        BusinessStage      `json:"business_stage"`
	TargetCustomers      []string           `json:"target_customers"`
	GrowthPriorities     []string           `json:"growth_priorities"`
	TechnologyAdoption   TechnologyAdoption `json:"technology_adoption"`
	GeographicScope      GeographicScope    `json:"geographic_scope"`
	KeyCapabilities      []string           `json:"key_capabilities"`
	PartnershipInterests []string           `json:"partnership_interests"`

	// Set when the analysis oracle failed and the characterization was
	// derived from the raw profile instead.
	ErrorKind AnalysisErrorKind `json:"error_kind,omitempty"`
	Error     string            `json:"error,omitempty"`
}

// NewCompanyCharacterization returns a fully-defaulted characterization:
// all enums unknown, all slices empty but non-nil.
func NewCompanyCharacterization() *CompanyCharacterization {
	return &CompanyCharacterization{
		BusinessStage:        BusinessStageUnknown,
		TargetCustomers:      []string{},
		GrowthPriorities:     []string{},
		TechnologyAdoption:   TechAdoptionUnknown,
		GeographicScope:      GeoScopeUnknown,
		KeyCapabilities:      []string{},
		PartnershipInterests: []string{},
	}
}

// Degraded reports whether this characterization was built from fallback
// defaults because the analysis oracle failed.
func (c *CompanyCharacterization) Degraded() bool {
	return c.ErrorKind != AnalysisErrorNone
}
